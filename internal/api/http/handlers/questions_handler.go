package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/skillforge/backend/internal/api/dto"
	"github.com/skillforge/backend/internal/auth"
	"github.com/skillforge/backend/internal/service"
	"github.com/skillforge/backend/pkg/util"
)

// QuestionsHandler exposes question bank endpoints.
type QuestionsHandler struct {
	questions *service.QuestionService
}

// NewQuestionsHandler constructs handler.
func NewQuestionsHandler(questions *service.QuestionService) *QuestionsHandler {
	return &QuestionsHandler{questions: questions}
}

// Create handles POST /api/questions.
func (h *QuestionsHandler) Create(c *fiber.Ctx) error {
	var req dto.QuestionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	actor, _ := auth.UserFromContext(c)
	question, err := h.questions.Create(c.Context(), actor, service.QuestionCreateInput{
		CourseID:      req.CourseID,
		Text:          req.Text,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectAnswer: req.CorrectAnswer,
		Difficulty:    req.Difficulty,
		Topic:         req.Topic,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": question})
}

// List handles GET /api/questions.
func (h *QuestionsHandler) List(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	questions, err := h.questions.List(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": questions})
}

// ListByCourse handles GET /api/questions/course/:courseId.
func (h *QuestionsHandler) ListByCourse(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	questions, err := h.questions.ListByCourse(c.Context(), actor, c.Params("courseId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": questions})
}

// Delete handles DELETE /api/questions/:id.
func (h *QuestionsHandler) Delete(c *fiber.Ctx) error {
	actor, _ := auth.UserFromContext(c)
	if err := h.questions.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
