package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/flarelab/combust/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request count and duration per route. The route template
// (":id" rather than the concrete value) keeps label cardinality bounded;
// unmatched requests are grouped under a single label.
func Metrics(m *prometheus.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		prometheus.RecordHTTPRequest(m, c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
