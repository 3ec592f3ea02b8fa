package activity

import "context"

type Repository interface {
	Append(ctx context.Context, e Entry) error
	// ListByAppointment ordena por occurred_at asc.
	ListByAppointment(ctx context.Context, appointmentID string) ([]Entry, error)
}
