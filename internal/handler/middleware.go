package handler

import (
	"crypto/subtle"
	"strings"

	"asteroid-tracker/internal/domain"

	"github.com/gin-gonic/gin"
)

const apiKeyHeader = "X-API-Key"

// APIKeyAuth rejects requests whose X-API-Key header does not match key.
// An empty key disables the check.
func APIKeyAuth(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		provided := strings.TrimSpace(c.GetHeader(apiKeyHeader))
		if provided == "" {
			abortWith(c, domain.CategoryUnauthorized, "missing X-API-Key header")
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			abortWith(c, domain.CategoryForbidden, "invalid API key")
			return
		}
		c.Next()
	}
}

func abortWith(c *gin.Context, category, msg string) {
	c.AbortWithStatusJSON(statusFor(category), ErrorResponse{Error: msg, Category: category})
}
