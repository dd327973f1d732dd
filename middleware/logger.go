package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("request_id", GetRequestID(c)),
		}
		switch {
		case status >= 500:
			slog.Error("[HTTP] request", attrs...)
		case status >= 400:
			slog.Warn("[HTTP] request", attrs...)
		default:
			slog.Info("[HTTP] request", attrs...)
		}
	}
}
