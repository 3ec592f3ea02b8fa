package appointments

import (
	"context"
	"time"
)

// Filter: campos vacíos no filtran. From/To son inclusivos (YYYY-MM-DD).
type Filter struct {
	OwnerUserID string
	Date        string
	From        string
	To          string
	Status      Status
}

// Match aplica el filtro en memoria (lo usan los adapters sin SQL).
func (f Filter) Match(a Appointment) bool {
	if f.OwnerUserID != "" && a.OwnerUserID != f.OwnerUserID {
		return false
	}
	if f.Date != "" && a.Date != f.Date {
		return false
	}
	if f.From != "" && a.Date < f.From {
		return false
	}
	if f.To != "" && a.Date > f.To {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	return true
}

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	// GetByID devuelve ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (Appointment, error)
	// Update reemplaza los datos editables (no el estado) si el estado sigue siendo expect.
	Update(ctx context.Context, a Appointment, expect Status) error
	// UpdateStatus es un único UPDATE condicionado al estado actual; si cambió devuelve ErrStale.
	UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error
	// Delete borra solo si el estado actual es expect; si cambió devuelve ErrStale.
	Delete(ctx context.Context, id string, expect Status) error
	// List ordena por fecha y hora asc.
	List(ctx context.Context, f Filter) ([]Appointment, error)
}
