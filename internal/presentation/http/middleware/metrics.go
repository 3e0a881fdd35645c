package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/retailpos-api/internal/infrastructure/metrics"
)

// MetricsMiddleware records request counts, latency and in-flight requests
// per route template.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		done := m.RequestStarted()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		done(c.Request.Method, route, c.Writer.Status())
	}
}
