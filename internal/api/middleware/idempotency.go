package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	IdempotencyKeyHeader     = "Idempotency-Key"
	IdempotencyKeyContextKey = "idempotency_key"
)

func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		idempotencyKey := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		c.Set(IdempotencyKeyContextKey, idempotencyKey)
		c.Next()
	}
}
