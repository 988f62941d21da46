package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// assigns a request id, attaches a scoped logger to the request context and logs completion
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		scoped := With("request_id", requestID)
		c.Request = c.Request.WithContext(WithContext(c.Request.Context(), scoped))

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}

		switch {
		case status >= 500:
			scoped.Error("request failed", args...)
		case status >= 400:
			scoped.Warn("request rejected", args...)
		default:
			scoped.Info("request completed", args...)
		}
	}
}
