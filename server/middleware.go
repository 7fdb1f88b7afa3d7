package coffeeshopserver

import (
	"strings"

	"github.com/gin-gonic/gin"

	userdomain "github.com/beandock/coffeeshop-api/internal/domains/users/domain"
	userports "github.com/beandock/coffeeshop-api/internal/domains/users/ports"
	apierrors "github.com/beandock/coffeeshop-api/internal/shared/errors"
)

const (
	contextUserKey  = "auth.user"
	contextTokenKey = "auth.token"
)

// AuthMiddleware resolves bearer tokens into authenticated users.
type AuthMiddleware struct {
	users userports.Service
}

// NewAuthMiddleware builds the middleware on top of the user service.
func NewAuthMiddleware(users userports.Service) *AuthMiddleware {
	return &AuthMiddleware{users: users}
}

// Authenticate requires a valid `Authorization: Bearer <token>` header and
// stores the resolved user in the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("missing or malformed Authorization header"))
			c.Abort()
			return
		}
		user, err := m.users.GetByToken(c.Request.Context(), token)
		if err != nil {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("invalid or expired session"))
			c.Abort()
			return
		}
		c.Set(contextUserKey, user)
		c.Set(contextTokenKey, token)
		c.Next()
	}
}

// RequireAdmin rejects non-admin users. Must run after Authenticate.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok || !user.IsAdmin {
			apierrors.Respond(c, apierrors.ErrForbidden.WithDetail("administrator access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (*userdomain.User, bool) {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*userdomain.User)
	return user, ok
}

func currentToken(c *gin.Context) string {
	return c.GetString(contextTokenKey)
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
