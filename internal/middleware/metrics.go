package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"goride/internal/observability"
)

// Metrics returns middleware that records Prometheus request counters and
// latency histograms, labeled by route template rather than raw path so
// parameterized routes aggregate.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		observability.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		observability.HTTPRequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
	}
}
