package pets

import (
	"bytes"
	"context"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo { return &testRepo{byID: map[string]Pet{}} }

func (r *testRepo) Create(_ context.Context, p Pet) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(_ context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(_ context.Context, owner string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == owner {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *testRepo) ListByIDs(_ context.Context, ids []string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type testStore struct{ keys []string }

func (s *testStore) Put(_ context.Context, bucket, key, _ string, _ []byte) (string, error) {
	s.keys = append(s.keys, bucket+"/"+key)
	return "http://media.test/" + bucket + "/" + key, nil
}

func (s *testStore) Open(context.Context, string, string) (io.ReadCloser, string, error) {
	return io.NopCloser(bytes.NewReader(nil)), "", nil
}

func newTestService() (*Service, *testStore) {
	store := &testStore{}
	svc := NewService(newTestRepo(), store)
	base := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	n := 0
	svc.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return svc, store
}

func TestCreate_Validates(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", CreateInput{Name: "", Type: "dog"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, "u1", CreateInput{Name: "Rex", Type: "lizard"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	p, err := svc.Create(ctx, "u1", CreateInput{Name: " Rex ", Breed: "Poodle", Age: "2", Type: "DOG"})
	require.NoError(t, err)
	assert.Equal(t, "Rex", p.Name)
	assert.Equal(t, TypeDog, p.Type)
	assert.NotEmpty(t, p.ID)
}

func TestListByOwner_NewestFirst(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, "u1", CreateInput{Name: "Rex", Type: "dog"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, "u1", CreateInput{Name: "Mia", Type: "cat"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u2", CreateInput{Name: "Other", Type: "other"})
	require.NoError(t, err)

	items, err := svc.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
}

func TestOwnerOnlyOperations(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, "u1", CreateInput{Name: "Rex", Type: "dog"})
	require.NoError(t, err)

	name := "Intruder"
	_, err = svc.Update(ctx, p.ID, "u2", UpdateInput{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, p.ID, "u2"), ErrForbidden)

	age := "3 años"
	updated, err := svc.Update(ctx, p.ID, "u1", UpdateInput{Age: &age})
	require.NoError(t, err)
	assert.Equal(t, "3 años", updated.Age)
	assert.Equal(t, "Rex", updated.Name)

	require.NoError(t, svc.Delete(ctx, p.ID, "u1"))
	_, err = svc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetImage_UsesOwnerKey(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, "u1", CreateInput{Name: "Rex", Type: "dog"})
	require.NoError(t, err)

	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	updated, err := svc.SetImage(ctx, p.ID, "u1", "rex.png", png)
	require.NoError(t, err)
	assert.Equal(t, []string{"pets/u1/" + p.ID + ".png"}, store.keys)
	assert.Equal(t, "http://media.test/pets/u1/"+p.ID+".png", updated.ImageURL)

	_, err = svc.SetImage(ctx, p.ID, "u2", "rex.png", png)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestLookupMany(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, "u1", CreateInput{Name: "Rex", Type: "dog"})
	require.NoError(t, err)

	m, err := svc.LookupMany(ctx, []string{p.ID, "missing"})
	require.NoError(t, err)
	assert.Len(t, m, 1)
	assert.Equal(t, "Rex", m[p.ID].Name)
}
