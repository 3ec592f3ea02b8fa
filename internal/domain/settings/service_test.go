package settings

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-grooming-agenda/internal/domain/activity"
)

type testRepo struct{ rows map[Category]Setting }

func (r *testRepo) Get(_ context.Context, c Category) (Setting, error) {
	s, ok := r.rows[c]
	if !ok {
		return Setting{}, ErrNotFound
	}
	return s, nil
}

func (r *testRepo) Upsert(_ context.Context, s Setting) error {
	r.rows[s.Category] = s
	return nil
}

func newTestService() (*Service, *testRepo) {
	repo := &testRepo{rows: map[Category]Setting{}}
	return NewService(repo), repo
}

func TestGet_DefaultsWhenAbsent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	v, err := svc.Get(ctx, CategoryBusinessHours)
	require.NoError(t, err)
	bh := v.(BusinessHours)
	assert.Equal(t, "18:00", bh.Mon.Close)
	assert.Equal(t, "12:00", bh.Sat.Close)
	assert.False(t, bh.Sun.Enabled)

	v, err = svc.Get(ctx, CategoryPaymentMethods)
	require.NoError(t, err)
	assert.Equal(t, DefaultPaymentMethods(), v)

	_, err = svc.Get(ctx, "theme")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestUpsert_RoundTripAndValidation(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, CategoryPaymentMethods, json.RawMessage(`{"pix":true,"cash":false,"credit":true,"debit":false}`))
	require.NoError(t, err)
	assert.Contains(t, repo.rows, CategoryPaymentMethods)

	v, err := svc.Get(ctx, CategoryPaymentMethods)
	require.NoError(t, err)
	assert.Equal(t, PaymentMethods{Pix: true, Credit: true}, v)

	_, err = svc.Upsert(ctx, CategoryPaymentMethods, json.RawMessage(`{"bitcoin":true}`))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Upsert(ctx, CategoryBusinessHours, json.RawMessage(`{"mon":{"open":"18:00","close":"08:00","enabled":true}}`))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Upsert(ctx, CategoryBusinessHours, json.RawMessage(`{"mon":{"open":"8h","close":"18:00","enabled":true}}`))
	assert.ErrorIs(t, err, ErrInvalidInput)

	v, err = svc.Upsert(ctx, CategoryBusinessHours, json.RawMessage(`{"sun":{"open":"09:00","close":"13:00","enabled":true}}`))
	require.NoError(t, err)
	bh := v.(BusinessHours)
	assert.True(t, bh.Sun.Enabled)
	assert.Equal(t, "08:00", bh.Mon.Open, "los días no enviados quedan en default")
}

func TestShouldPublish(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	ok, err := svc.ShouldPublish(ctx, activity.TypeCreated)
	require.NoError(t, err)
	assert.True(t, ok, "default: todo habilitado")

	_, err = svc.Upsert(ctx, CategoryNotifications, json.RawMessage(`{"enabled":true,"newApp":false,"cancel":true,"reminder":false}`))
	require.NoError(t, err)

	ok, _ = svc.ShouldPublish(ctx, activity.TypeCreated)
	assert.False(t, ok)
	ok, _ = svc.ShouldPublish(ctx, activity.TypeRejected)
	assert.True(t, ok)
	ok, _ = svc.ShouldPublish(ctx, activity.TypeConfirmed)
	assert.True(t, ok)

	_, err = svc.Upsert(ctx, CategoryNotifications, json.RawMessage(`{"enabled":false,"newApp":true,"cancel":true,"reminder":true}`))
	require.NoError(t, err)
	ok, _ = svc.ShouldPublish(ctx, activity.TypeRemoved)
	assert.False(t, ok)
}
