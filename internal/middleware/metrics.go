package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/yatube/internal/metrics"
)

// HTTPMetrics records request count and duration per matched route
func HTTPMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Context(), c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
