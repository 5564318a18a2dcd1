package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/skillforge/backend/internal/api/dto"
	"github.com/skillforge/backend/internal/auth"
	"github.com/skillforge/backend/internal/service"
	"github.com/skillforge/backend/pkg/util"
)

// CoursesHandler exposes course catalog endpoints.
type CoursesHandler struct {
	courses *service.CourseService
}

// NewCoursesHandler constructs handler.
func NewCoursesHandler(courses *service.CourseService) *CoursesHandler {
	return &CoursesHandler{courses: courses}
}

// Create handles POST /api/courses.
func (h *CoursesHandler) Create(c *fiber.Ctx) error {
	var req dto.CourseCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	actor, _ := auth.UserFromContext(c)
	course, err := h.courses.Create(c.Context(), actor, service.CourseCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Instructor:  req.Instructor,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": course})
}

// List handles GET /api/courses.
func (h *CoursesHandler) List(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	courses, err := h.courses.List(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": courses})
}

// Get handles GET /api/courses/:id.
func (h *CoursesHandler) Get(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	course, err := h.courses.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": course})
}

// Delete handles DELETE /api/courses/:id.
func (h *CoursesHandler) Delete(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	if err := h.courses.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
