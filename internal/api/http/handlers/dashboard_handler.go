package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skillforge/backend/internal/auth"
	"github.com/skillforge/backend/internal/service"
)

// DashboardHandler exposes the aggregate stats endpoint.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Overview handles GET /api/dashboard.
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	stats, err := h.dashboard.Overview(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}
