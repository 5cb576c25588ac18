package httpserver

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/domain"
	"github.com/gin-gonic/gin"
)

type ctxKey string

const userCtxKey ctxKey = "currentUser"

// authMiddleware resolves the bearer token into a user and stores it on the
// request context. Handlers downstream never touch session state directly.
func authMiddleware(accounts accountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		u, err := accounts.LookupByToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), userCtxKey, u)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// adminOnly rejects requests from non-admin users. Must run after
// authMiddleware.
func adminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok || !u.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Unauthorized. Admin access required."})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (*domain.User, bool) {
	u, ok := c.Request.Context().Value(userCtxKey).(*domain.User)
	return u, ok
}
