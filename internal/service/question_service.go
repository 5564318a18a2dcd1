package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skillforge/backend/internal/auth"
	"github.com/skillforge/backend/internal/domain"
	"github.com/skillforge/backend/internal/events"
	"github.com/skillforge/backend/internal/repository"
	"github.com/skillforge/backend/internal/validator"
	"github.com/skillforge/backend/pkg/util"
)

// QuestionService coordinates question bank workflows.
type QuestionService struct {
	questions  repository.QuestionRepository
	courses    repository.CourseRepository
	guard      *auth.Guard
	validate   *validator.Validator
	dispatcher events.Dispatcher
}

// NewQuestionService constructs the service.
func NewQuestionService(questions repository.QuestionRepository, courses repository.CourseRepository, guard *auth.Guard, validate *validator.Validator, dispatcher events.Dispatcher) *QuestionService {
	return &QuestionService{questions: questions, courses: courses, guard: guard, validate: validate, dispatcher: dispatcher}
}

// QuestionCreateInput describes question creation payload.
type QuestionCreateInput struct {
	CourseID      string `validate:"required"`
	Text          string `validate:"required"`
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectAnswer string `validate:"required"`
	Difficulty    string
	Topic         string
}

// Create adds a question to a course's bank.
func (s *QuestionService) Create(ctx context.Context, actor *domain.User, input QuestionCreateInput) (*domain.Question, error) {
	if actor == nil || !s.guard.Authorize(actor.Role, auth.ResourceQuestion, auth.ActionCreate) {
		return nil, util.NewForbidden("question creation requires admin access")
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}
	if _, err := s.courses.GetByID(ctx, input.CourseID); err != nil {
		return nil, err
	}

	question := &domain.Question{
		CourseID:      input.CourseID,
		Text:          strings.TrimSpace(input.Text),
		OptionA:       input.OptionA,
		OptionB:       input.OptionB,
		OptionC:       input.OptionC,
		OptionD:       input.OptionD,
		CorrectAnswer: input.CorrectAnswer,
		Difficulty:    input.Difficulty,
		Topic:         input.Topic,
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}

	s.publish(ctx, actor, events.Event{
		Type:    events.EventQuestionCreated,
		Payload: events.CatalogPayload{ResourceID: question.ID, CourseID: question.CourseID},
	})
	return question, nil
}

// List returns the whole question bank.
func (s *QuestionService) List(ctx context.Context, actor *domain.User) ([]domain.Question, error) {
	if actor == nil || !s.guard.Authorize(actor.Role, auth.ResourceQuestion, auth.ActionRead) {
		return nil, util.NewForbidden("question access denied")
	}
	return s.questions.List(ctx)
}

// ListByCourse returns the questions of one course.
func (s *QuestionService) ListByCourse(ctx context.Context, actor *domain.User, courseID string) ([]domain.Question, error) {
	if actor == nil || !s.guard.Authorize(actor.Role, auth.ResourceQuestion, auth.ActionRead) {
		return nil, util.NewForbidden("question access denied")
	}
	return s.questions.ListByCourse(ctx, courseID)
}

// Delete removes a question.
func (s *QuestionService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if actor == nil || !s.guard.Authorize(actor.Role, auth.ResourceQuestion, auth.ActionDelete) {
		return util.NewForbidden("question deletion requires admin access")
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, actor, events.Event{
		Type:    events.EventQuestionDeleted,
		Payload: events.CatalogPayload{ResourceID: id},
	})
	return nil
}

func (s *QuestionService) publish(ctx context.Context, actor *domain.User, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	event.Actor = events.Actor{UserID: actor.ID, Role: actor.Role}
	_ = s.dispatcher.Publish(ctx, event)
}
