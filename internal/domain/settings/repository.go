package settings

import "context"

type Repository interface {
	// Get devuelve ErrNotFound si la categoría nunca se guardó.
	Get(ctx context.Context, c Category) (Setting, error)
	// Upsert inserta o reemplaza por categoría.
	Upsert(ctx context.Context, s Setting) error
}
