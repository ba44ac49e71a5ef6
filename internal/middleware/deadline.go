package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// StoreDeadline bounds the time a request may spend waiting on the store,
// including connection pool acquisition. Queries past the deadline fail with
// context.DeadlineExceeded and are reported as transient errors.
func StoreDeadline(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
