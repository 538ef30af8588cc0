package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"formforge/internal/core"
)

// RequestLogger logs one line per completed request.
func RequestLogger(log core.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request completed",
			"request_id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
