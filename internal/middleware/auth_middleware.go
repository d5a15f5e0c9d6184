package middleware

import (
	"errors"
	"fmt"
	"os"
	"strings"

	autherrors "swarachna-api/internal/auth/errors"
	"swarachna-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const AccessTokenCookie = "access_token"

type tokenClaims struct {
	UserID string
	Email  string
}

// bearerOrCookie prefers the cookie set at sign-in and falls back to an
// Authorization header for non-browser clients.
func bearerOrCookie(c *gin.Context) string {
	if tok, err := c.Cookie(AccessTokenCookie); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func parseToken(tokenString string) (tokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return tokenClaims{}, autherrors.ErrTokenExpired
		}
		return tokenClaims{}, autherrors.ErrInvalidToken
	}
	if !token.Valid {
		return tokenClaims{}, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return tokenClaims{}, autherrors.ErrInvalidToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return tokenClaims{}, autherrors.ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	return tokenClaims{UserID: userID, Email: email}, nil
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerOrCookie(c)
		if tokenString == "" {
			response.FromError(c, autherrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := parseToken(tokenString)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		c.Set("user_id_validated", claims.UserID)
		c.Set("email", claims.Email)

		c.Next()
	}
}
