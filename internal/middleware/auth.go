package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snackshop/snackshop-api/internal/session"
)

const identityKey = "identity"

// SessionResolver turns an opaque session token into an identity.
// *session.Store satisfies it.
type SessionResolver interface {
	Get(ctx context.Context, token string) (*session.Identity, error)
}

// Auth resolves the session cookie to a server-side identity. Requests
// without a resolvable session are rejected with 403, matching the API's
// error contract.
func Auth(store SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "authentication required"})
			return
		}

		ident, err := store.Get(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if ident == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "authentication required"})
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := GetIdentity(c)
		if ident == nil || !ident.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.Next()
	}
}

func GetIdentity(c *gin.Context) *session.Identity {
	v, _ := c.Get(identityKey)
	ident, _ := v.(*session.Identity)
	return ident
}
