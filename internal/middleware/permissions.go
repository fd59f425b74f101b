package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kirito514/unilib/internal/permissions"
)

// RequireAny admits the request when the authenticated role owns at
// least one of the given permissions. Must run after RequireAuth.
func RequireAny(perms ...permissions.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		if permissions.HasAny(CurrentRole(c), perms...) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// RequireAll admits the request only when the authenticated role owns
// every one of the given permissions.
func RequireAll(perms ...permissions.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		if permissions.HasAll(CurrentRole(c), perms...) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}
