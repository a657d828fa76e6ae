package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"docrepo-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": latency.Milliseconds(),
			"request_id": RequestIDFromContext(c),
		}
		if username := c.GetString(usernameKey); username != "" {
			fields["username"] = username
		}
		telemetry.Info("http.request", fields)
	}
}
