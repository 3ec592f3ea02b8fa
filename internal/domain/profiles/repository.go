package profiles

import (
	"context"

	"pet-grooming-agenda/internal/session"
)

type Repository interface {
	// Get devuelve ErrNotFound si el perfil no existe.
	Get(ctx context.Context, id string) (Profile, error)
	// Upsert inserta o reemplaza por id.
	Upsert(ctx context.Context, p Profile) error
	ListByIDs(ctx context.Context, ids []string) ([]Profile, error)
	SetRole(ctx context.Context, id string, role session.Role) error
}
