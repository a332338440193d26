package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkpad-app/inkpad-backend/internal/metrics"
)

// MetricsMiddleware records every handled request into the collector. The
// route template (FullPath) is used rather than the raw URL so that
// /stories/:id aggregates as one endpoint.
func MetricsMiddleware(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		userID := ""
		if user, ok := GetUserFromContext(c); ok {
			userID = user.UserID
		}

		collector.Record(c.Request.Method, path, c.Writer.Status(), time.Since(start), userID)
	}
}
