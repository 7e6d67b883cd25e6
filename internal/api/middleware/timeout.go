package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout returns a middleware that sets a deadline on the request context.
// If the handler doesn't complete within the timeout, a 504 is returned.
// This bounds the HTTP round trip only; the search engine's own Timeout
// config bounds the underlying search regardless of this middleware.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		done := make(chan struct{})

		go func() {
			c.Next()
			close(done)
		}()

		select {
		case <-done:
			return
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				requestID := GetRequestID(c)

				c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
					"error":      "request_timeout",
					"message":    "Request took too long to process",
					"request_id": requestID,
				})
			}
		}
	}
}
