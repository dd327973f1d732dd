package middleware

import (
	"content-analytics-api/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit rejects requests beyond the limiter's budget with 429.
func RateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			metrics.RecordRateLimitHit(c.FullPath())
			HTTPHelper.SendTooManyRequests(c, "Too many requests, retry later")
			c.Abort()
			return
		}
		c.Next()
	}
}
