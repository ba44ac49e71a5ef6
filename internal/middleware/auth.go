package middleware

import (
	"errors"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/authz"
	sessionService "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/session/service"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/apperror"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/response"
	"github.com/gin-gonic/gin"
)

const contextIdentity = "identity"

type AuthMiddleware struct {
	sessions   sessionService.SessionService
	cookieName string
}

func NewAuthMiddleware(sessions sessionService.SessionService, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
	}
}

// RequireAuth resolves the session cookie and rejects the request when there
// is no live session.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(m.cookieName)

		identity, err := m.sessions.Resolve(c.Request.Context(), cookie)
		if err != nil {
			response.ResponseError(c, err)
			c.Abort()
			return
		}

		c.Set(contextIdentity, identity)
		c.Set(response.ContextUserID, identity.ID)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := CurrentIdentity(c)
		if err != nil {
			response.ResponseError(c, err)
			c.Abort()
			return
		}

		if !identity.HasRole(role) {
			response.ResponseError(c, apperror.Forbidden(role+" access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentIdentity returns the identity stored by RequireAuth.
func CurrentIdentity(c *gin.Context) (authz.Identity, error) {
	raw, exists := c.Get(contextIdentity)
	if !exists {
		return authz.Identity{}, apperror.ErrUnauthorized
	}
	identity, ok := raw.(authz.Identity)
	if !ok {
		return authz.Identity{}, errors.New("identity has unexpected type")
	}
	return identity, nil
}
