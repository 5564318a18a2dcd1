package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/skillforge/backend/internal/api/dto"
	"github.com/skillforge/backend/internal/auth"
	"github.com/skillforge/backend/internal/service"
	"github.com/skillforge/backend/pkg/util"
)

// ExamsHandler exposes exam endpoints.
type ExamsHandler struct {
	exams *service.ExamService
}

// NewExamsHandler constructs handler.
func NewExamsHandler(exams *service.ExamService) *ExamsHandler {
	return &ExamsHandler{exams: exams}
}

// Create handles POST /api/exams.
func (h *ExamsHandler) Create(c *fiber.Ctx) error {
	var req dto.ExamCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	actor, _ := auth.UserFromContext(c)
	exam, err := h.exams.Create(c.Context(), actor, service.ExamCreateInput{
		CourseID:        req.CourseID,
		Title:           req.Title,
		DurationMinutes: req.DurationMinutes,
		TotalMarks:      req.TotalMarks,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": exam})
}

// List handles GET /api/exams.
func (h *ExamsHandler) List(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	exams, err := h.exams.List(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": exams})
}

// Get handles GET /api/exams/:id.
func (h *ExamsHandler) Get(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	exam, err := h.exams.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": exam})
}

// ListByCourse handles GET /api/exams/course/:courseId.
func (h *ExamsHandler) ListByCourse(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	exams, err := h.exams.ListByCourse(c.Context(), actor, c.Params("courseId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": exams})
}

// Delete handles DELETE /api/exams/:id.
func (h *ExamsHandler) Delete(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	if err := h.exams.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
