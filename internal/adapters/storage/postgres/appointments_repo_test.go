package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pet-grooming-agenda/internal/domain/appointments"
)

func TestBuildAppointmentWhere(t *testing.T) {
	where, args := buildAppointmentWhere(appointments.Filter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = buildAppointmentWhere(appointments.Filter{
		OwnerUserID: "u1",
		From:        "2025-06-01",
		To:          "2025-06-30",
		Status:      appointments.StatusPending,
	})
	assert.Equal(t,
		" WHERE owner_user_id = $1 AND scheduled_date >= $2::text::date AND scheduled_date <= $3::text::date AND status = $4",
		where)
	assert.Equal(t, []any{"u1", "2025-06-01", "2025-06-30", "PENDING"}, args)
}
