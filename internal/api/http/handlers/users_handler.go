package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skillforge/backend/internal/api/dto"
	"github.com/skillforge/backend/internal/auth"
	"github.com/skillforge/backend/internal/service"
	"github.com/skillforge/backend/pkg/util"
)

// UsersHandler exposes user management endpoints.
type UsersHandler struct {
	identity *service.IdentityService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(identity *service.IdentityService) *UsersHandler {
	return &UsersHandler{identity: identity}
}

// List handles GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	users, err := h.identity.ListUsers(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(users)})
}

// Get handles GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	user, err := h.identity.GetUser(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// ChangeRole handles PUT /api/users/:id/role.
func (h *UsersHandler) ChangeRole(c *fiber.Ctx) error {
	var req dto.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	actor, _ := auth.UserFromContext(c)
	user, err := h.identity.ChangeRole(c.Context(), actor, c.Params("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Count handles GET /api/admin/users/count.
func (h *UsersHandler) Count(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	count, err := h.identity.CountUsers(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"total_users": count}})
}

// Purge handles DELETE /api/admin/users.
func (h *UsersHandler) Purge(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	deleted, err := h.identity.DeleteAllUsers(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": deleted}})
}
