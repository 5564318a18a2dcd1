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

// CourseService coordinates course catalog workflows. Every mutation goes
// through the authorization guard before touching storage.
type CourseService struct {
	courses    repository.CourseRepository
	guard      *auth.Guard
	validate   *validator.Validator
	dispatcher events.Dispatcher
}

// NewCourseService constructs the service.
func NewCourseService(courses repository.CourseRepository, guard *auth.Guard, validate *validator.Validator, dispatcher events.Dispatcher) *CourseService {
	return &CourseService{courses: courses, guard: guard, validate: validate, dispatcher: dispatcher}
}

// CourseCreateInput describes course creation payload.
type CourseCreateInput struct {
	Title       string `validate:"required"`
	Description string
	Instructor  string
}

// Create adds a course to the catalog.
func (s *CourseService) Create(ctx context.Context, actor *domain.User, input CourseCreateInput) (*domain.Course, error) {
	if actor == nil || !s.guard.Authorize(actor.Role, auth.ResourceCourse, auth.ActionCreate) {
		return nil, util.NewForbidden("course creation requires admin access")
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	course := &domain.Course{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Instructor:  strings.TrimSpace(input.Instructor),
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	s.publish(ctx, actor, events.Event{
		Type:    events.EventCourseCreated,
		Payload: events.CatalogPayload{ResourceID: course.ID, Title: course.Title},
	})
	return course, nil
}

// Get returns a single course.
func (s *CourseService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Course, error) {
	if actor == nil || !s.guard.Authorize(actor.Role, auth.ResourceCourse, auth.ActionRead) {
		return nil, util.NewForbidden("course access denied")
	}
	return s.courses.GetByID(ctx, id)
}

// List returns the whole catalog.
func (s *CourseService) List(ctx context.Context, actor *domain.User) ([]domain.Course, error) {
	if actor == nil || !s.guard.Authorize(actor.Role, auth.ResourceCourse, auth.ActionRead) {
		return nil, util.NewForbidden("course access denied")
	}
	return s.courses.List(ctx)
}

// Delete removes a course and, through the store, its exams and questions.
func (s *CourseService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if actor == nil || !s.guard.Authorize(actor.Role, auth.ResourceCourse, auth.ActionDelete) {
		return util.NewForbidden("course deletion requires admin access")
	}
	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, actor, events.Event{
		Type:    events.EventCourseDeleted,
		Payload: events.CatalogPayload{ResourceID: id},
	})
	return nil
}

func (s *CourseService) publish(ctx context.Context, actor *domain.User, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	event.Actor = events.Actor{UserID: actor.ID, Role: actor.Role}
	_ = s.dispatcher.Publish(ctx, event)
}
