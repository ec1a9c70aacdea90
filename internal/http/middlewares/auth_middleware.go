package middlewares

import (
	"net/http"

	"github.com/dkrasnove/bloghub/internal/authz"
	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type TokenAuthenticator interface {
	Authenticate(token string) (authz.Identity, error)
}

type AuthMiddleware struct {
	tokens TokenAuthenticator
}

func NewAuthMiddleware(tokens TokenAuthenticator) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth verifies the bearer credential and stashes the caller
// identity on the context. No protected handler runs without it; malformed
// or expired tokens fail closed.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Missing or invalid Authorization header",
				},
			})
			return
		}

		caller, err := m.tokens.Authenticate(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Invalid or expired access token",
				},
			})
			return
		}

		c.Set(ctxCallerKey, caller)

		c.Next()
	}
}

// CallerFromContext returns the identity RequireAuth stored, so handlers
// don't need to know the magic key.
func CallerFromContext(c *gin.Context) (authz.Identity, bool) {
	v, ok := c.Get(ctxCallerKey)
	if !ok {
		return authz.Identity{}, false
	}
	caller, ok := v.(authz.Identity)
	return caller, ok
}
