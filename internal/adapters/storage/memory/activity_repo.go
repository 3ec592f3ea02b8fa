package memory

import (
	"context"
	"errors"
	"sync"

	"pet-grooming-agenda/internal/domain/activity"
)

// activityRepo es append-only; el orden de inserción es el orden cronológico.
type activityRepo struct {
	mu            sync.RWMutex
	byAppointment map[string][]activity.Entry
}

func NewActivityRepo() activity.Repository {
	return &activityRepo{
		byAppointment: make(map[string][]activity.Entry),
	}
}

func (r *activityRepo) Append(ctx context.Context, e activity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("activity id required")
	}
	r.byAppointment[e.AppointmentID] = append(r.byAppointment[e.AppointmentID], e)
	return nil
}

func (r *activityRepo) ListByAppointment(ctx context.Context, appointmentID string) ([]activity.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.byAppointment[appointmentID]
	out := make([]activity.Entry, len(src))
	copy(out, src)
	return out, nil
}
