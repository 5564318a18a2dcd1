package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/skillforge/backend/internal/api/dto"
	"github.com/skillforge/backend/internal/auth"
	"github.com/skillforge/backend/internal/service"
	"github.com/skillforge/backend/pkg/util"
)

// AuthHandler exposes registration, login and profile endpoints.
type AuthHandler struct {
	identity *service.IdentityService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(identity *service.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// Register handles POST /api/auth/register. A bearer token is optional here;
// only an admin token unlocks non-default roles.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	actor, _ := auth.UserFromContext(c)
	user, token, exp, err := h.identity.Register(c.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}, actor)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return util.NewValidationError("email and password required", nil)
	}

	user, token, exp, err := h.identity.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return util.NewInvalidToken("authentication required")
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}
