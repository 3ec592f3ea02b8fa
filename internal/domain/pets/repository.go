package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
	// GetByID devuelve ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (Pet, error)
	// ListByOwner ordena por created_at desc.
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
	ListByIDs(ctx context.Context, ids []string) ([]Pet, error)
}
