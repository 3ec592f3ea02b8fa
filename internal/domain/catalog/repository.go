package catalog

import "context"

type Repository interface {
	Create(ctx context.Context, s Service) error
	Update(ctx context.Context, s Service) error
	Delete(ctx context.Context, id string) error
	// GetByID devuelve ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (Service, error)
	// List ordena por nombre.
	List(ctx context.Context) ([]Service, error)
	ListByIDs(ctx context.Context, ids []string) ([]Service, error)
}
