package middleware

import (
	"strconv"
	"time"

	"github.com/fabioverbena/Event-Manager/internal/infrastructure/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency per route template. Unmatched
// routes are grouped under "unmatched" to bound label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.
			WithLabelValues(c.Request.Method, path, status).
			Inc()
	}
}
