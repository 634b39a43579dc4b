package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Rishabh705/pixel-pals-backend/internal/auth"
	"github.com/Rishabh705/pixel-pals-backend/internal/config"
)

// Context keys set by VerifyJWT for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
)

// CORS applies the origin whitelist with credentials, mirroring the original
// deployment's allow-list behavior.
func CORS(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if !cfg.AllowedOrigin(origin) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Not allowed by cors"})
				return
			}
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// VerifyJWT guards the chat and contact routes: 401 without a bearer token,
// 403 on a bad one.
func VerifyJWT(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := strings.TrimSpace(c.GetHeader("Authorization"))
		if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
			return
		}
		token := strings.TrimSpace(authz[len("bearer "):])
		claims, err := tokens.VerifyAccess(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid token"})
			return
		}
		c.Set(CtxUserID, string(claims.UserID))
		c.Set(CtxUsername, claims.Username)
		c.Next()
	}
}
