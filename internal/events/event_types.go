package events

import (
	"time"

	"github.com/skillforge/backend/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventUserRoleChanged EventType = "user_role_changed"
	EventUsersPurged     EventType = "users_purged"
	EventCourseCreated   EventType = "course_created"
	EventCourseDeleted   EventType = "course_deleted"
	EventExamCreated     EventType = "exam_created"
	EventExamDeleted     EventType = "exam_deleted"
	EventQuestionCreated EventType = "question_created"
	EventQuestionDeleted EventType = "question_deleted"
)

// Actor identifies who triggered an event. Empty for self-service flows such
// as registration.
type Actor struct {
	UserID string      `json:"user_id,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// UserRoleChangedPayload payload.
type UserRoleChangedPayload struct {
	UserID  string      `json:"user_id"`
	OldRole domain.Role `json:"old_role"`
	NewRole domain.Role `json:"new_role"`
}

// UsersPurgedPayload payload.
type UsersPurgedPayload struct {
	Deleted int64 `json:"deleted"`
}

// CatalogPayload covers course, exam and question lifecycle events.
type CatalogPayload struct {
	ResourceID string `json:"resource_id"`
	CourseID   string `json:"course_id,omitempty"`
	Title      string `json:"title,omitempty"`
}
