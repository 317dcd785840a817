package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/osc-dev/contest-api/internal/service"
)

// Metrics records a duration histogram and request counter per handled
// request. The route template keeps cardinality bounded; unmatched requests
// fall back to the raw path.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
