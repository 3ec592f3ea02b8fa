package events

import (
	"context"
	"log/slog"

	ports "pet-grooming-agenda/internal/ports/events"
)

// LogPublisher es el publisher de dev: solo deja la línea en el log.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, m ports.Message) error {
	p.logger.InfoContext(ctx, "appointment event",
		"event_id", m.ID,
		"event_type", m.Type,
		"appointment_id", m.AppointmentID,
		"actor_id", m.ActorID,
	)
	return nil
}
