package middleware

import (
	"strconv"
	"time"

	"github.com/foodreco/foodreco-backend/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request count, latency and in-flight requests. The path
// label is the registered route, or the raw path when nothing matched.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.HTTPRequestsInflight.Inc()
		defer metrics.HTTPRequestsInflight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequests.WithLabelValues(method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
