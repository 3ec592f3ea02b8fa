package profiles

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-grooming-agenda/internal/ports/blobstore"
	"pet-grooming-agenda/internal/session"
)

// -------------------------
// Test doubles
// -------------------------

type testRepo struct {
	byID map[string]Profile
}

func newTestRepo() *testRepo { return &testRepo{byID: map[string]Profile{}} }

func (r *testRepo) Get(_ context.Context, id string) (Profile, error) {
	p, ok := r.byID[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) Upsert(_ context.Context, p Profile) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) ListByIDs(_ context.Context, ids []string) ([]Profile, error) {
	out := make([]Profile, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) SetRole(_ context.Context, id string, role session.Role) error {
	p, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	p.Role = role
	r.byID[id] = p
	return nil
}

type testStore struct {
	objects map[string][]byte
}

func (s *testStore) Put(_ context.Context, bucket, key, _ string, data []byte) (string, error) {
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[bucket+"/"+key] = data
	return "http://media.test/" + bucket + "/" + key, nil
}

func (s *testStore) Open(_ context.Context, bucket, key string) (io.ReadCloser, string, error) {
	b, ok := s.objects[bucket+"/"+key]
	if !ok {
		return nil, "", blobstore.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), "application/octet-stream", nil
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func newTestService(admins ...string) (*Service, *testRepo, *testStore) {
	repo := newTestRepo()
	store := &testStore{}
	svc := NewService(repo, store, admins)
	fixed := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	return svc, repo, store
}

func strPtr(s string) *string { return &s }

// -------------------------
// Tests
// -------------------------

func TestGet_AbsentIsNotAnError(t *testing.T) {
	svc, _, _ := newTestService()

	_, found, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, found)

	role, err := svc.RoleOf(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, session.RoleClient, role)
}

func TestEnsureOnSignIn_CreatesOnceAndBootstrapsAdmins(t *testing.T) {
	svc, _, _ := newTestService("boss")
	ctx := context.Background()

	p, created, err := svc.EnsureOnSignIn(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, session.RoleClient, p.Role)

	_, created, err = svc.EnsureOnSignIn(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, created)

	admin, _, err := svc.EnsureOnSignIn(ctx, "boss")
	require.NoError(t, err)
	assert.Equal(t, session.RoleAdmin, admin.Role)
}

func TestUpdate_UpsertsAndKeepsRole(t *testing.T) {
	svc, _, _ := newTestService("boss")
	ctx := context.Background()

	p, err := svc.Update(ctx, "boss", UpdateInput{FullName: strPtr("  Ana  "), Phone: strPtr("5551234")})
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.FullName)
	assert.Equal(t, "5551234", p.Phone)
	assert.Equal(t, session.RoleAdmin, p.Role)

	p, err = svc.Update(ctx, "boss", UpdateInput{Address: strPtr("Rua 1")})
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.FullName, "campos ausentes no se tocan")
	assert.Equal(t, "Rua 1", p.Address)
}

func TestSetAvatar(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	p, err := svc.SetAvatar(ctx, "u1", "me.png", pngHeader)
	require.NoError(t, err)
	assert.Equal(t, "http://media.test/avatars/u1/avatar.png", p.AvatarURL)
	assert.Contains(t, store.objects, "avatars/u1/avatar.png")

	_, err = svc.SetAvatar(ctx, "u1", "me.txt", []byte("not an image"))
	assert.ErrorIs(t, err, blobstore.ErrNotAnImage)
}

func TestPromoteAndLookupMany(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Promote(ctx, "u1", session.RoleAdmin))
	role, err := svc.RoleOf(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, session.RoleAdmin, role)

	assert.ErrorIs(t, svc.Promote(ctx, "", session.RoleAdmin), ErrInvalidInput)

	_, _, err = svc.EnsureOnSignIn(ctx, "u2")
	require.NoError(t, err)

	m, err := svc.LookupMany(ctx, []string{"u1", "u2", "ghost"})
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Contains(t, m, "u2")
}
