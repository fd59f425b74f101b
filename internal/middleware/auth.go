package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Kirito514/unilib/internal/permissions"
	"github.com/Kirito514/unilib/internal/session"
)

// Gin context keys set by RequireAuth.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

type AuthMiddleware struct {
	store session.Store
}

func NewAuthMiddleware(store session.Store) *AuthMiddleware {
	return &AuthMiddleware{store: store}
}

// RequireAuth resolves the session cookie to an authenticated user
// and attaches the user id and role to the request context. Expiry is
// enforced here as well: Redis TTLs handle the common case but a
// session surviving past ExpiresAt must still be rejected.
func (a *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Request.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		sess, err := a.store.Get(c.Request.Context(), cookie.Value)
		if err != nil || sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if time.Now().After(sess.ExpiresAt) {
			_ = a.store.Delete(c.Request.Context(), sess.SessionID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(ContextUserID, sess.UserID)
		c.Set(ContextRole, string(sess.Role))
		c.Next()
	}
}

// CurrentRole returns the authenticated role set by RequireAuth.
func CurrentRole(c *gin.Context) permissions.Role {
	return permissions.Role(c.GetString(ContextRole))
}

// CurrentUserID returns the authenticated user id set by RequireAuth.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
