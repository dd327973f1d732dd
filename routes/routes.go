package routes

import (
	"time"

	"content-analytics-api/config"
	"content-analytics-api/handlers"
	"content-analytics-api/middleware"
	"content-analytics-api/models"
	"content-analytics-api/repositories"
	"content-analytics-api/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and handlers onto a gin engine.
func NewRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	// Initialize repositories
	store := repositories.NewStore(db)

	// Initialize services
	contentService := services.NewContentService(store, time.Now)
	tagService := services.NewTagService(store.Tags())

	// Initialize handlers
	contentHandler := handlers.NewContentHandler(contentService,
		handlers.PageLimits{Default: cfg.PageSizeDefault, Max: cfg.PageSizeMax},
		handlers.IngestLimits{MaxBatch: cfg.IngestMaxBatch, MaxBodyBytes: cfg.IngestMaxBodyBytes})
	tagHandler := handlers.NewTagHandler(tagService)
	healthHandler := handlers.NewHealthHandler(store)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.Prometheus(),
		middleware.CORS(),
	)

	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		contents := v1.Group("/contents")
		{
			contents.GET("", contentHandler.GetContents)
			contents.GET("/stats", contentHandler.GetStats)

			// Rejected callers must not spend the shared ingest budget.
			var ingest []gin.HandlerFunc
			if cfg.AuthEnabled {
				ingest = append(ingest,
					middleware.AuthMiddleware(cfg.JWTSecret),
					middleware.RequireRole(models.RoleIngestor, models.RoleAdmin))
			}
			ingest = append(ingest,
				middleware.RateLimit(rate.NewLimiter(rate.Limit(cfg.IngestRatePerSec), cfg.IngestRateBurst)),
				contentHandler.IngestContents)
			contents.POST("", ingest...)
		}

		tags := v1.Group("/tags")
		{
			tags.GET("", tagHandler.GetTags)
			tags.GET("/:id", tagHandler.GetTag)
		}
	}

	return router
}
