package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-grooming-agenda/internal/domain/appointments"
	"pet-grooming-agenda/internal/domain/pets"
	"pet-grooming-agenda/internal/domain/profiles"
	"pet-grooming-agenda/internal/session"
)

func TestAppointmentRepo_GuardedWrites(t *testing.T) {
	repo := NewAppointmentRepo()
	ctx := context.Background()

	a := appointments.Appointment{ID: "a1", OwnerUserID: "u1", Date: "2025-06-10", Time: "09:00", Status: appointments.StatusPending}
	require.NoError(t, repo.Create(ctx, a))
	assert.Error(t, repo.Create(ctx, a), "id duplicado")

	err := repo.UpdateStatus(ctx, "a1", appointments.StatusConfirmed, appointments.StatusCompleted, time.Now())
	assert.ErrorIs(t, err, appointments.ErrStale)

	require.NoError(t, repo.UpdateStatus(ctx, "a1", appointments.StatusPending, appointments.StatusConfirmed, time.Now()))

	// Update no pisa el estado ni el dueño
	edited := a
	edited.Time = "10:00"
	edited.OwnerUserID = "intruder"
	require.NoError(t, repo.Update(ctx, edited, appointments.StatusConfirmed))
	got, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, appointments.StatusConfirmed, got.Status)
	assert.Equal(t, "u1", got.OwnerUserID)
	assert.Equal(t, "10:00", got.Time)

	assert.ErrorIs(t, repo.Delete(ctx, "a1", appointments.StatusPending), appointments.ErrStale)
	require.NoError(t, repo.Delete(ctx, "a1", appointments.StatusConfirmed))
	_, err = repo.GetByID(ctx, "a1")
	assert.ErrorIs(t, err, appointments.ErrNotFound)
}

func TestAppointmentRepo_ListOrderAndFilter(t *testing.T) {
	repo := NewAppointmentRepo()
	ctx := context.Background()

	for _, a := range []appointments.Appointment{
		{ID: "c", OwnerUserID: "u1", Date: "2025-06-11", Time: "08:00", Status: appointments.StatusPending},
		{ID: "b", OwnerUserID: "u2", Date: "2025-06-10", Time: "14:00", Status: appointments.StatusConfirmed},
		{ID: "a", OwnerUserID: "u1", Date: "2025-06-10", Time: "09:00", Status: appointments.StatusPending},
	} {
		require.NoError(t, repo.Create(ctx, a))
	}

	all, err := repo.List(ctx, appointments.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
	assert.Equal(t, "c", all[2].ID)

	mine, err := repo.List(ctx, appointments.Filter{OwnerUserID: "u1", Status: appointments.StatusPending, From: "2025-06-11"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "c", mine[0].ID)
}

func TestPetRepo_NewestFirst(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "old", OwnerUserID: "u1", CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "new", OwnerUserID: "u1", CreatedAt: base.Add(time.Hour)}))

	items, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].ID)

	assert.ErrorIs(t, repo.Delete(ctx, "ghost"), pets.ErrNotFound)
}

func TestProfileRepo_UpsertKeepsCreatedAt(t *testing.T) {
	repo := NewProfileRepo()
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Upsert(ctx, profiles.Profile{ID: "u1", Role: session.RoleClient, CreatedAt: created}))
	require.NoError(t, repo.Upsert(ctx, profiles.Profile{ID: "u1", FullName: "Ana", Role: session.RoleClient, CreatedAt: created.Add(time.Hour)}))

	p, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.FullName)
	assert.Equal(t, created, p.CreatedAt)

	require.NoError(t, repo.SetRole(ctx, "u1", session.RoleAdmin))
	p, _ = repo.Get(ctx, "u1")
	assert.Equal(t, session.RoleAdmin, p.Role)

	_, err = repo.Get(ctx, "ghost")
	assert.ErrorIs(t, err, profiles.ErrNotFound)
}

func TestProfileRepo_UpsertDoesNotRevertRole(t *testing.T) {
	repo := NewProfileRepo()
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, profiles.Profile{ID: "u1", Role: session.RoleClient}))
	stale, err := repo.Get(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, repo.SetRole(ctx, "u1", session.RoleAdmin))

	// edición armada con la lectura de antes de la promoción
	stale.FullName = "Ana"
	require.NoError(t, repo.Upsert(ctx, stale))

	p, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.FullName)
	assert.Equal(t, session.RoleAdmin, p.Role)
}

func TestAppointmentRepo_ListTiesOrderedByID(t *testing.T) {
	repo := NewAppointmentRepo()
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for _, id := range []string{"c", "a", "d", "b"} {
		require.NoError(t, repo.Create(ctx, appointments.Appointment{
			ID: id, OwnerUserID: "u1", Date: "2025-06-10", Time: "09:00",
			Status: appointments.StatusPending, CreatedAt: at,
		}))
	}

	for i := 0; i < 5; i++ {
		list, err := repo.List(ctx, appointments.Filter{})
		require.NoError(t, err)
		ids := make([]string, 0, len(list))
		for _, a := range list {
			ids = append(ids, a.ID)
		}
		assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
	}
}
