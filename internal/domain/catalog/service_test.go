package catalog

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID map[string]Service
}

func (r *testRepo) Create(_ context.Context, s Service) error { r.byID[s.ID] = s; return nil }

func (r *testRepo) Update(_ context.Context, s Service) error {
	if _, ok := r.byID[s.ID]; !ok {
		return ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) Delete(_ context.Context, id string) error { delete(r.byID, id); return nil }

func (r *testRepo) GetByID(_ context.Context, id string) (Service, error) {
	s, ok := r.byID[id]
	if !ok {
		return Service{}, ErrNotFound
	}
	return s, nil
}

func (r *testRepo) List(context.Context) ([]Service, error) {
	out := make([]Service, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *testRepo) ListByIDs(_ context.Context, ids []string) ([]Service, error) {
	out := make([]Service, 0)
	for _, id := range ids {
		if s, ok := r.byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func newTestCatalog() *Catalog {
	return NewCatalog(&testRepo{byID: map[string]Service{}}, nil)
}

func TestCreate_Validation(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"empty name", CreateInput{Name: " ", Price: 10}},
		{"negative price", CreateInput{Name: "Bath", Price: -1}},
		{"rating over 5", CreateInput{Name: "Bath", Price: 10, Rating: 5.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Create(ctx, tc.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	s, err := c.Create(ctx, CreateInput{Name: "Bath", Price: 0, Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Price)
}

func TestList_OrderedByName(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()

	for _, n := range []string{"Tosa", "Banho", "Hidratação"} {
		_, err := c.Create(ctx, CreateInput{Name: n, Price: 50})
		require.NoError(t, err)
	}

	items, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Banho", items[0].Name)
	assert.Equal(t, "Tosa", items[2].Name)
}

func TestUpdateAndDelete(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()

	s, err := c.Create(ctx, CreateInput{Name: "Banho", Price: 60})
	require.NoError(t, err)

	neg := -5.0
	_, err = c.Update(ctx, s.ID, UpdateInput{Price: &neg})
	assert.ErrorIs(t, err, ErrInvalidInput)

	price := 70.0
	updated, err := c.Update(ctx, s.ID, UpdateInput{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 70.0, updated.Price)
	assert.Equal(t, "Banho", updated.Name)

	require.NoError(t, c.Delete(ctx, s.ID))
	_, err = c.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, c.Delete(ctx, s.ID), ErrNotFound)
}

func TestSetImage_NoStorage(t *testing.T) {
	c := newTestCatalog()
	_, err := c.SetImage(context.Background(), "x", "a.png", nil)
	assert.Error(t, err)
}
