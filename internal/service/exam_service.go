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

// ExamService coordinates exam workflows.
type ExamService struct {
	exams      repository.ExamRepository
	courses    repository.CourseRepository
	guard      *auth.Guard
	validate   *validator.Validator
	dispatcher events.Dispatcher
}

// NewExamService constructs the service.
func NewExamService(exams repository.ExamRepository, courses repository.CourseRepository, guard *auth.Guard, validate *validator.Validator, dispatcher events.Dispatcher) *ExamService {
	return &ExamService{exams: exams, courses: courses, guard: guard, validate: validate, dispatcher: dispatcher}
}

// ExamCreateInput describes exam creation payload.
type ExamCreateInput struct {
	CourseID        string `validate:"required"`
	Title           string `validate:"required"`
	DurationMinutes int    `validate:"gte=0"`
	TotalMarks      int    `validate:"gte=0"`
}

// Create attaches a new exam to an existing course.
func (s *ExamService) Create(ctx context.Context, actor *domain.User, input ExamCreateInput) (*domain.Exam, error) {
	if actor == nil || !s.guard.Authorize(actor.Role, auth.ResourceExam, auth.ActionCreate) {
		return nil, util.NewForbidden("exam creation requires admin access")
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}
	if _, err := s.courses.GetByID(ctx, input.CourseID); err != nil {
		return nil, err
	}

	exam := &domain.Exam{
		CourseID:        input.CourseID,
		Title:           strings.TrimSpace(input.Title),
		DurationMinutes: input.DurationMinutes,
		TotalMarks:      input.TotalMarks,
	}
	if err := s.exams.Create(ctx, exam); err != nil {
		return nil, err
	}

	s.publish(ctx, actor, events.Event{
		Type:    events.EventExamCreated,
		Payload: events.CatalogPayload{ResourceID: exam.ID, CourseID: exam.CourseID, Title: exam.Title},
	})
	return exam, nil
}

// Get returns a single exam.
func (s *ExamService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Exam, error) {
	if actor == nil || !s.guard.Authorize(actor.Role, auth.ResourceExam, auth.ActionRead) {
		return nil, util.NewForbidden("exam access denied")
	}
	return s.exams.GetByID(ctx, id)
}

// List returns every exam.
func (s *ExamService) List(ctx context.Context, actor *domain.User) ([]domain.Exam, error) {
	if actor == nil || !s.guard.Authorize(actor.Role, auth.ResourceExam, auth.ActionRead) {
		return nil, util.NewForbidden("exam access denied")
	}
	return s.exams.List(ctx)
}

// ListByCourse returns the exams of one course.
func (s *ExamService) ListByCourse(ctx context.Context, actor *domain.User, courseID string) ([]domain.Exam, error) {
	if actor == nil || !s.guard.Authorize(actor.Role, auth.ResourceExam, auth.ActionRead) {
		return nil, util.NewForbidden("exam access denied")
	}
	return s.exams.ListByCourse(ctx, courseID)
}

// Delete removes an exam.
func (s *ExamService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if actor == nil || !s.guard.Authorize(actor.Role, auth.ResourceExam, auth.ActionDelete) {
		return util.NewForbidden("exam deletion requires admin access")
	}
	if err := s.exams.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, actor, events.Event{
		Type:    events.EventExamDeleted,
		Payload: events.CatalogPayload{ResourceID: id},
	})
	return nil
}

func (s *ExamService) publish(ctx context.Context, actor *domain.User, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	event.Actor = events.Actor{UserID: actor.ID, Role: actor.Role}
	_ = s.dispatcher.Publish(ctx, event)
}
