package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// InternalAuthMiddleware validates service-to-service authentication
// using the X-Internal-API-Key header. The expected token comes from
// configuration, falling back to the INTERNAL_API_TOKEN environment
// variable.
func InternalAuthMiddleware(token string) gin.HandlerFunc {
	if token == "" {
		token = os.Getenv("INTERNAL_API_TOKEN")
	}
	if token == "" {
		// Return a middleware that always returns 500 if misconfigured
		return func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "server misconfigured: internal token not set",
			})
		}
	}
	tokenBytes := []byte(token)

	return func(c *gin.Context) {
		key := c.GetHeader("X-Internal-API-Key")
		// Use subtle.ConstantTimeCompare to prevent timing attacks
		if subtle.ConstantTimeCompare([]byte(key), tokenBytes) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized",
			})
			return
		}
		c.Next()
	}
}
