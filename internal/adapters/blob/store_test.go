package blob

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"

	"pet-grooming-agenda/internal/ports/blobstore"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(memblob.OpenBucket(nil), "http://localhost:8080/media/")
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutOverwritesAndReturnsPublicURL(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	url, err := s.Put(ctx, blobstore.BucketAvatars, "u1/avatar.png", "image/png", []byte("first"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/media/avatars/u1/avatar.png", url)

	_, err = s.Put(ctx, blobstore.BucketAvatars, "u1/avatar.png", "image/png", []byte("second"))
	require.NoError(t, err)

	rc, ct, err := s.Open(ctx, blobstore.BucketAvatars, "u1/avatar.png")
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "second", string(b))
	assert.Equal(t, "image/png", ct)
}

func TestOpen_NotFoundAndBadKeys(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, _, err := s.Open(ctx, blobstore.BucketPets, "nope.png")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	_, _, err = s.Open(ctx, "secrets", "x")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	_, err = s.Put(ctx, blobstore.BucketPets, "../escape", "image/png", []byte("x"))
	assert.Error(t, err)
}

func TestMediaHandler(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Put(context.Background(), blobstore.BucketServices, "s1.png", "image/png", []byte("img"))
	require.NoError(t, err)

	r := chi.NewRouter()
	RegisterRoutes(r, s)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/media/services/s1.png", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "img", rr.Body.String())
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/media/services/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
