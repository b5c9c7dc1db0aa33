package middleware

import (
	"strconv"
	"time"

	"github.com/SscSPs/eft_batch_service/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request latency by method, route template and status.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
