// Package blob implementa blobstore.Store sobre gocloud.dev/blob.
// Un único bucket físico; los buckets lógicos (avatars, pets, services) son prefijos.
package blob

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	gblob "gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"

	"pet-grooming-agenda/internal/ports/blobstore"
)

type Store struct {
	bucket     *gblob.Bucket
	publicBase string
}

// Open abre el bucket por URL (mem://, file:///ruta?create_dir=true).
// publicBase es el prefijo de las URLs públicas, p.ej. http://localhost:8080/media.
func Open(ctx context.Context, bucketURL, publicBase string) (*Store, error) {
	if strings.TrimSpace(bucketURL) == "" {
		bucketURL = "mem://"
	}
	b, err := gblob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", bucketURL)
	}
	return New(b, publicBase), nil
}

func New(b *gblob.Bucket, publicBase string) *Store {
	return &Store{bucket: b, publicBase: strings.TrimRight(publicBase, "/")}
}

// Put sobreescribe si la key ya existe.
func (s *Store) Put(ctx context.Context, bucket, key, contentType string, data []byte) (string, error) {
	full, err := objectKey(bucket, key)
	if err != nil {
		return "", err
	}
	opts := &gblob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, full, data, opts); err != nil {
		return "", errors.Wrapf(err, "write %s", full)
	}
	return s.PublicURL(bucket, key), nil
}

func (s *Store) Open(ctx context.Context, bucket, key string) (io.ReadCloser, string, error) {
	full, err := objectKey(bucket, key)
	if err != nil {
		return nil, "", err
	}
	r, err := s.bucket.NewReader(ctx, full, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, "", blobstore.ErrNotFound
		}
		return nil, "", errors.Wrapf(err, "read %s", full)
	}
	return r, r.ContentType(), nil
}

func (s *Store) PublicURL(bucket, key string) string {
	return s.publicBase + "/" + url.PathEscape(bucket) + "/" + escapeKey(key)
}

func (s *Store) Close() error {
	return s.bucket.Close()
}

func objectKey(bucket, key string) (string, error) {
	switch bucket {
	case blobstore.BucketAvatars, blobstore.BucketPets, blobstore.BucketServices:
	default:
		return "", errors.Wrapf(blobstore.ErrNotFound, "unknown bucket %q", bucket)
	}
	key = strings.TrimLeft(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return "", errors.Wrapf(blobstore.ErrNotFound, "invalid key %q", key)
	}
	return bucket + "/" + key, nil
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
