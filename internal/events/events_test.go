package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	publisher := &Publisher{writer: writer}

	payload := map[string]string{"user_id": "abc", "email": "alice@example.com"}
	publisher.Publish(context.Background(), TypeUserRegistered, payload)

	assert.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, []byte(TypeUserRegistered), msg.Key)

	var envelope Envelope
	assert.NoError(t, json.Unmarshal(msg.Value, &envelope))
	assert.Equal(t, TypeUserRegistered, envelope.Type)
	assert.WithinDuration(t, time.Now().UTC(), envelope.OccurredAt, time.Minute)

	var got map[string]string
	assert.NoError(t, json.Unmarshal(envelope.Payload, &got))
	assert.Equal(t, payload, got)
}

func TestPublisher_PublishBrokerDown(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker unavailable")}
	publisher := &Publisher{writer: writer}

	// A broker failure is swallowed; the caller never sees it.
	publisher.Publish(context.Background(), TypePostCreated, map[string]string{"post_id": "abc"})

	assert.Empty(t, writer.messages)
}

func TestPublisher_PublishUnmarshalablePayload(t *testing.T) {
	writer := &fakeWriter{}
	publisher := &Publisher{writer: writer}

	publisher.Publish(context.Background(), TypeUserDeleted, func() {})

	assert.Empty(t, writer.messages)
}

func TestPublisher_Close(t *testing.T) {
	writer := &fakeWriter{}
	publisher := &Publisher{writer: writer}

	assert.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}
