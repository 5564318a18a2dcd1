package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/skillforge/backend/internal/events"
)

var auditedEvents = []events.EventType{
	events.EventUserRegistered,
	events.EventUserRoleChanged,
	events.EventUsersPurged,
	events.EventCourseCreated,
	events.EventCourseDeleted,
	events.EventExamCreated,
	events.EventExamDeleted,
	events.EventQuestionCreated,
	events.EventQuestionDeleted,
}

// StartAuditWorker subscribes a structured-log audit trail to every domain
// event the services publish.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}
	audit := logger.Named("audit")

	for _, eventType := range auditedEvents {
		dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			audit.Info("domain event",
				zap.String("event_id", event.ID),
				zap.String("type", string(event.Type)),
				zap.String("actor_id", event.Actor.UserID),
				zap.String("actor_role", string(event.Actor.Role)),
				zap.Time("timestamp", event.Timestamp),
				zap.Any("payload", event.Payload),
			)
			return nil
		})
	}
}
