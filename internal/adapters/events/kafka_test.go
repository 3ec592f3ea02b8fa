package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ports "pet-grooming-agenda/internal/ports/events"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{w: w, topic: "appointments.activity"}

	at := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	err := p.Publish(context.Background(), ports.Message{
		ID:            "e1",
		Type:          "APPOINTMENT_CREATED",
		AppointmentID: "a1",
		OwnerUserID:   "u1",
		ActorID:       "u1",
		ActorRole:     "CLIENT",
		OccurredAt:    at,
		Payload:       map[string]any{"date": "2025-06-11"},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "a1", string(msg.Key))
	assert.Equal(t, "e1", header(msg, "event_id"))
	assert.Equal(t, "APPOINTMENT_CREATED", header(msg, "event_type"))

	var body wireMessage
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "u1", body.OwnerUserID)
	assert.Equal(t, "2025-06-11", body.Payload["date"])
	assert.True(t, at.Equal(body.OccurredAt))
}

func TestKafkaPublisher_WrapsWriteError(t *testing.T) {
	p := &KafkaPublisher{w: &fakeWriter{err: errors.New("no leader")}, topic: "t"}
	err := p.Publish(context.Background(), ports.Message{ID: "e1"})
	assert.ErrorContains(t, err, "no leader")
}

func TestNewKafkaPublisher_Validates(t *testing.T) {
	_, err := NewKafkaPublisher(KafkaConfig{Brokers: " , ", Topic: "t"})
	assert.Error(t, err)

	_, err = NewKafkaPublisher(KafkaConfig{Brokers: "localhost:9092"})
	assert.Error(t, err)
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, SplitBrokers(" a:9092, ,b:9092 "))
	assert.Empty(t, SplitBrokers(""))
}
