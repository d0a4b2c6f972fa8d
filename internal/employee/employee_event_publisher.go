package employee

import (
	"context"
	"time"

	"github.com/aswanthpvtk/employee-Task-Backend/internal/events"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/messaging/kafka"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/contextutil"

	"go.uber.org/zap"
)

// eventPublisher emits lifecycle events after the store write. Failures are
// logged and never fail the request.
type eventPublisher struct {
	publisher kafka.Publisher
	logger    *zap.Logger
}

func newEventPublisher(p kafka.Publisher, logger *zap.Logger) eventPublisher {
	if p == nil {
		p = kafka.NoopPublisher()
	}
	return eventPublisher{publisher: p, logger: logger}
}

func (p eventPublisher) publish(ctx context.Context, eventType string, e *Employee, mode UpdateMode) {
	event := events.EmployeeEvent{
		EventType:  eventType,
		RequestID:  contextutil.GetRequestID(ctx),
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		UpdateMode: string(mode),
		OccurredAt: time.Now().UTC(),
	}

	err := p.publisher.Publish(ctx, kafka.Event{
		Topic:         events.EmployeeLifecycleTopic,
		Key:           e.ID,
		EventType:     eventType,
		AggregateType: "employee",
		Payload:       event,
	})
	if err != nil {
		p.logger.Warn("publish employee event failed",
			zap.String("event_type", eventType),
			zap.String("employee_id", e.EmployeeID),
			zap.Error(err),
		)
	}
}
