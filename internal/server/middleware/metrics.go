package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/looplj/jsonfixer/internal/metrics"
)

// WithMetrics records request count and latency per route.
func WithMetrics(recorder *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		recorder.RecordRequest(c.Request.Context(), c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
