package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
)

// Event is one lifecycle message. Payload is JSON encoded; Key keeps every
// event of the same aggregate on one partition.
type Event struct {
	Topic         string
	Key           string
	EventType     string
	AggregateType string
	Payload       any
}

//go:generate mockgen -source=publisher.go -destination=mock/publisher_mock.go -package=mock
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type writerPublisher struct {
	writer MessageWriter
}

func NewPublisher(writer MessageWriter) Publisher {
	return &writerPublisher{writer: writer}
}

func (p *writerPublisher) Publish(ctx context.Context, event Event) error {
	if event.Topic == "" {
		return fmt.Errorf("kafka event %q has no topic", event.EventType)
	}

	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.EventType, err)
	}

	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte(event.EventType)},
		{Key: "aggregate_type", Value: []byte(event.AggregateType)},
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		headers = append(headers, kafkago.Header{Key: "request_id", Value: []byte(rid)})
	}

	return p.writer.WriteMessages(ctx, kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.Key),
		Value:   payload,
		Headers: headers,
	})
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Event) error { return nil }

// NoopPublisher is used when no broker is configured.
func NoopPublisher() Publisher { return noopPublisher{} }
