package middleware

import (
	"github.com/gin-gonic/gin"
)

// OptionalAuthMiddleware sets user_id when a valid token is present and lets
// guests through otherwise.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerOrCookie(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := parseToken(tokenString)
		if err != nil {
			// expired or forged: treat as guest
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}
