package handlers

import (
	"context"
	"log/slog"
	"time"

	"content-analytics-api/helper"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store  Pinger
	Helper *helper.HTTPHelper
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store, Helper: &helper.HTTPHelper{}}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		slog.Error("[HealthHandler] Store ping failed", slog.Any("error", err))
		h.Helper.SendServiceUnavailable(c, "unhealthy")
		return
	}
	h.Helper.SendSuccess(c, "healthy", map[string]string{"status": "healthy"})
}
