package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-grooming-agenda/internal/domain/appointments"
)

type appointmentRepo struct {
	mu   sync.RWMutex
	byID map[string]appointments.Appointment
}

func NewAppointmentRepo() appointments.Repository {
	return &appointmentRepo{
		byID: make(map[string]appointments.Appointment),
	}
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("appointment id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("appointment already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, nil
}

// guarded corre fn con el lock tomado si el turno existe y su estado es expect.
func (r *appointmentRepo) guarded(id string, expect appointments.Status, fn func(cur appointments.Appointment)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[id]
	if !ok {
		return appointments.ErrNotFound
	}
	if cur.Status != expect {
		return appointments.ErrStale
	}
	fn(cur)
	return nil
}

func (r *appointmentRepo) Update(ctx context.Context, a appointments.Appointment, expect appointments.Status) error {
	return r.guarded(a.ID, expect, func(cur appointments.Appointment) {
		a.Status = cur.Status
		a.OwnerUserID = cur.OwnerUserID
		a.CreatedAt = cur.CreatedAt
		r.byID[a.ID] = a
	})
}

func (r *appointmentRepo) UpdateStatus(ctx context.Context, id string, from, to appointments.Status, at time.Time) error {
	return r.guarded(id, from, func(cur appointments.Appointment) {
		cur.Status = to
		cur.UpdatedAt = at
		r.byID[id] = cur
	})
}

func (r *appointmentRepo) Delete(ctx context.Context, id string, expect appointments.Status) error {
	return r.guarded(id, expect, func(appointments.Appointment) {
		delete(r.byID, id)
	})
}

func (r *appointmentRepo) List(ctx context.Context, f appointments.Filter) ([]appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if f.Match(a) {
			out = append(out, a)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
