package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aswanthpvtk/employee-Task-Backend/internal/events"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/audit"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Topics is every topic the audit trail subscribes to.
var Topics = []string{events.EmployeeLifecycleTopic, events.SectionCatalogTopic}

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeAuditTrail turns employee and section lifecycle events into audit
// entries until ctx is cancelled. Undecodable messages are committed and
// skipped so a poison message cannot stall the group.
func ConsumeAuditTrail(
	ctx context.Context,
	reader MessageReader,
	auditLogger audit.Logger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.audit_trail")
	log.Info("audit trail consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("audit trail consumer stopped")
				return
			}
			log.Error("fetch lifecycle message failed", zap.Error(err))
			continue
		}

		msgCtx := ctx
		if rid := header(msg, "request_id"); rid != "" {
			msgCtx = contextutil.WithRequestID(ctx, rid)
		}

		entry, err := toAuditEntry(msg)
		if err != nil {
			log.Error("decode lifecycle message failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		auditLogger.Log(msgCtx, entry)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit lifecycle message failed", zap.Error(err))
		}
	}
}

func toAuditEntry(msg kafkago.Message) (audit.Entry, error) {
	switch msg.Topic {
	case events.EmployeeLifecycleTopic:
		var ev events.EmployeeEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			return audit.Entry{}, err
		}
		meta := map[string]any{
			"id":          ev.ID,
			"employee_id": ev.EmployeeID,
			"occurred_at": ev.OccurredAt,
		}
		if ev.UpdateMode != "" {
			meta["update_mode"] = ev.UpdateMode
		}
		return audit.Entry{
			Action:  strings.ToUpper(ev.EventType),
			Message: fmt.Sprintf("employee %s: %s", ev.EmployeeID, ev.EventType),
			Meta:    meta,
		}, nil

	case events.SectionCatalogTopic:
		var ev events.SectionEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			return audit.Entry{}, err
		}
		meta := map[string]any{
			"section_id":  ev.SectionID,
			"name":        ev.Name,
			"occurred_at": ev.OccurredAt,
		}
		if ev.EventType == events.SectionDeleted {
			meta["employees"] = ev.Employees
		}
		return audit.Entry{
			Action:  strings.ToUpper(ev.EventType),
			Message: fmt.Sprintf("section %s: %s", ev.Name, ev.EventType),
			Meta:    meta,
		}, nil
	}

	return audit.Entry{}, fmt.Errorf("unexpected topic %q", msg.Topic)
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
