package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"content-analytics-api/config"
	"content-analytics-api/logging"
	"content-analytics-api/middleware"
	"content-analytics-api/models"
	"content-analytics-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using OS environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	if len(os.Args) > 1 && os.Args[1] == "token" {
		os.Exit(runToken(cfg, os.Args[2:]))
	}

	if err := serve(cfg); err != nil {
		slog.Error("Server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func serve(cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	db, err := config.OpenDB(cfg.DB, cfg.LogLevel)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(cfg, db),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", slog.String("port", cfg.Port), slog.Bool("auth_enabled", cfg.AuthEnabled))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// runToken prints a signed bearer token for an ingest client.
func runToken(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	subject := fs.String("subject", "", "client name written to the sub claim")
	role := fs.String("role", string(models.RoleIngestor), "ingestor or admin")
	ttl := fs.Duration("ttl", cfg.JWTExpiration, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *role != string(models.RoleIngestor) && *role != string(models.RoleAdmin) {
		fmt.Fprintln(os.Stderr, "role must be ingestor or admin")
		return 2
	}

	token, err := middleware.IssueToken(cfg.JWTSecret, *subject, models.Role(*role), *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(token)
	return 0
}
