package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"contract-service/internal/logging"
)

// RequestLoggingMiddleware logs method, path, status, and latency for each
// request.
func RequestLoggingMiddleware(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Infof("%s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
