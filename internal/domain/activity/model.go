package activity

import (
	"time"

	"pet-grooming-agenda/internal/session"
)

type Actor struct {
	ID   string
	Role session.Role
}

// Entry es una línea del historial de un turno. Se conserva aunque el turno se borre.
type Entry struct {
	ID            string
	AppointmentID string
	OwnerUserID   string

	Type  Type
	Actor Actor

	// Payload lleva el snapshot relevante (fecha, hora, estado anterior/nuevo).
	Payload map[string]any

	OccurredAt time.Time
}
