package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/skillforge/backend/internal/domain"
	"github.com/skillforge/backend/pkg/util"
)

const principalKey = "auth_principal"

// Authenticator resolves a bearer token to a live user record.
type Authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (*domain.User, error)
}

// Middleware validates bearer tokens and loads the calling user.
type Middleware struct {
	identity Authenticator
}

// NewMiddleware constructs middleware around the identity service.
func NewMiddleware(identity Authenticator) *Middleware {
	return &Middleware{identity: identity}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return util.NewInvalidToken("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return util.NewInvalidToken("invalid authorization header")
	}

	user, err := m.identity.Authenticate(c.Context(), parts[1])
	if err != nil {
		return err
	}

	c.Locals(principalKey, user)
	return c.Next()
}

// HandleOptional authenticates when a bearer token is present and passes
// through anonymously otherwise. Registration uses this so an admin token can
// unlock role elevation without requiring one for self-service signups.
func (m *Middleware) HandleOptional(c *fiber.Ctx) error {
	if c.Get("Authorization") == "" {
		return c.Next()
	}
	return m.Handle(c)
}

// UserFromContext retrieves the authenticated user.
func UserFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
