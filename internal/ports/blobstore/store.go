package blobstore

import (
	"context"
	"errors"
	"io"
)

// Buckets usados por la app.
const (
	BucketAvatars  = "avatars"
	BucketPets     = "pets"
	BucketServices = "services"
)

var ErrNotFound = errors.New("object not found")

// Store es el almacenamiento de imágenes. Put sobreescribe si la key existe
// y devuelve la URL pública del objeto.
type Store interface {
	Put(ctx context.Context, bucket, key, contentType string, data []byte) (string, error)
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, string, error)
}
