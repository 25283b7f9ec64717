package middleware

import (
	"context"
	"fleet_registry/internal/app/ds"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey = "user_id"
	RoleKey   = "role"
	TokenKey  = "token"
)

type SessionChecker interface {
	SessionUser(ctx context.Context, token string) (*ds.JWTClaims, error)
}

// Token reads the JWT from the "jwt" cookie or a Bearer header.
func Token(c *gin.Context) string {
	if tokenStr, err := c.Cookie("jwt"); err == nil && tokenStr != "" {
		return tokenStr
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// AuthMiddleware checks the JWT and its session, then stores user_id and
// role in the context.
func AuthMiddleware(sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := Token(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization token"})
			return
		}
		claims, err := sessions.SessionUser(c.Request.Context(), tokenStr)
		if err != nil {
			Logger(c).Infof("rejected token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)
		c.Set(TokenKey, tokenStr)
		c.Next()
	}
}

// WriteGuard runs auth on every method except GET, HEAD and OPTIONS when enabled.
func WriteGuard(enabled bool, auth gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		auth(c)
	}
}
