// Package events publishes activity events to Kafka. Publishing is
// fire-and-forget: a broker failure is logged and never fails the request
// that produced the event.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/devister/devister/internal/logger"
)

// Event types emitted by the service.
const (
	TypeUserRegistered = "user.registered"
	TypeUserDeleted    = "user.deleted"
	TypePostCreated    = "post.created"
)

// Envelope is the wire format of an activity event.
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes activity events to a Kafka topic.
type Publisher struct {
	writer messageWriter
}

// New creates a Publisher for the given brokers and topic.
func New(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Publish emits one event. The payload must be JSON-marshalable.
func (p *Publisher) Publish(ctx context.Context, eventType string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Errorw("failed to marshal event payload", "type", eventType, "error", err)
		return
	}

	body, err := json.Marshal(Envelope{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	})
	if err != nil {
		logger.Log.Errorw("failed to marshal event", "type", eventType, "error", err)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: body,
	})
	if err != nil {
		logger.Log.Errorw("failed to publish event", "type", eventType, "error", err)
		return
	}

	logger.Log.Infow("published event", "type", eventType)
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
