package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DB DatabaseConfig

	JWTSecret     []byte
	JWTExpiration time.Duration
	AuthEnabled   bool

	IngestMaxBatch     int
	IngestMaxBodyBytes int64
	IngestRatePerSec   float64
	IngestRateBurst    int

	PageSizeDefault int
	PageSizeMax     int
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Path     string
}

// Load reads the configuration from the environment. Unset values fall back
// to defaults; values that are set but unparsable are reported as errors.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "release"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DB: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "content_analytics"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "content_analytics.db"),
		},
		JWTSecret: []byte(getEnv("JWT_SECRET", "your-secret-key-change-this-in-production")),
	}

	var err error
	if cfg.JWTExpiration, err = getDuration("JWT_EXPIRATION", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.AuthEnabled, err = getBool("AUTH_ENABLED", true); err != nil {
		return nil, err
	}
	if cfg.IngestMaxBatch, err = getInt("INGEST_MAX_BATCH", 500); err != nil {
		return nil, err
	}
	if cfg.IngestMaxBodyBytes, err = getInt64("INGEST_MAX_BODY_BYTES", 10<<20); err != nil {
		return nil, err
	}
	if cfg.IngestRatePerSec, err = getFloat("INGEST_RATE_PER_SEC", 10); err != nil {
		return nil, err
	}
	if cfg.IngestRateBurst, err = getInt("INGEST_RATE_BURST", 20); err != nil {
		return nil, err
	}
	if cfg.PageSizeDefault, err = getInt("PAGE_SIZE_DEFAULT", 10); err != nil {
		return nil, err
	}
	if cfg.PageSizeMax, err = getInt("PAGE_SIZE_MAX", 100); err != nil {
		return nil, err
	}

	if cfg.DB.Driver != "postgres" && cfg.DB.Driver != "sqlite" {
		return nil, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", cfg.DB.Driver)
	}
	if cfg.PageSizeDefault < 1 || cfg.PageSizeMax < cfg.PageSizeDefault {
		return nil, fmt.Errorf("invalid page sizes: default=%d max=%d", cfg.PageSizeDefault, cfg.PageSizeMax)
	}
	if cfg.IngestMaxBatch < 1 {
		return nil, fmt.Errorf("INGEST_MAX_BATCH must be positive, got %d", cfg.IngestMaxBatch)
	}
	if cfg.IngestMaxBodyBytes < 1 {
		return nil, fmt.Errorf("INGEST_MAX_BODY_BYTES must be positive, got %d", cfg.IngestMaxBodyBytes)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
