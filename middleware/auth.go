package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"a1care/utils"
)

// Context keys set by JWTAuthMiddleware for downstream handlers.
const (
	ContextRequesterID = "requesterID"
	ContextRole        = "role"
)

// JWTAuthMiddleware validates the bearer token and stores the caller's
// identity (subject and role) on the gin context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		subject, role, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		c.Set(ContextRequesterID, subject)
		c.Set(ContextRole, role)
		c.Next()
	}
}
