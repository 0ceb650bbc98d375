package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-api/internal/response"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger gives every request an id (reusing a valid incoming
// X-Request-ID), stores a request-scoped logger in the context, and logs
// one line when the request completes.
func RequestLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if !isValidRequestID(id) {
			id = uuid.New().String()
		}
		c.Header(requestIDHeader, id)

		reqLg := lg.With(zap.String("request_id", id))
		c.Request = c.Request.WithContext(zctx.Base(c.Request.Context(), reqLg))

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		// The auth middleware may have enriched the context logger.
		done := zctx.From(c.Request.Context())
		if c.Writer.Status() >= http.StatusInternalServerError {
			done.Warn("Request completed", fields...)
			return
		}
		done.Info("Request completed", fields...)
	}
}

// isValidRequestID checks that id is non-empty, at most 128 bytes, and
// contains only printable ASCII.
func isValidRequestID(id string) bool {
	if len(id) == 0 || len(id) > 128 {
		return false
	}
	for i := range len(id) {
		if id[i] < 0x20 || id[i] > 0x7E {
			return false
		}
	}
	return true
}

// Recovery recovers from panics, logs them with a stack trace, and answers
// with a 500 envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				zctx.From(c.Request.Context()).Error("Panic recovered",
					zap.Any("panic", rec),
					zap.Stack("stack"),
				)
				c.Header("Connection", "close")
				response.Fail(c, http.StatusInternalServerError, "Internal server error", nil)
			}
		}()
		c.Next()
	}
}

// Diagnostics toggles raw error text in failure envelopes.
func Diagnostics(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(response.DebugKey, enabled)
		c.Next()
	}
}
