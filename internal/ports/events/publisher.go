package events

import (
	"context"
	"time"
)

// Message es lo que sale hacia el broker (una entrada del activity log).
type Message struct {
	ID            string
	Type          string
	AppointmentID string
	OwnerUserID   string
	ActorID       string
	ActorRole     string
	OccurredAt    time.Time
	Payload       map[string]any
}

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}
