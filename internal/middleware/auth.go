package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"spendwise/internal/auth"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	UserIDKey = "userID"
	EmailKey  = "email"
)

// RequireAuth verifies the bearer token on protected routes and injects the
// verified identity into the request context. Handlers behind this middleware
// never re-verify tokens; they trust the injected user ID.
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}
