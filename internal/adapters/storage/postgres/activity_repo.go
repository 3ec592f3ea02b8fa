package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/domain/activity"
	"pet-grooming-agenda/internal/session"
)

type ActivityRepo struct {
	db *sql.DB
}

func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) Append(ctx context.Context, e activity.Entry) error {
	payload := e.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshal activity payload")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO appointment_activity (
			id, appointment_id, owner_user_id, type,
			actor_id, actor_role, payload, occurred_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7::text::jsonb,$8)
	`,
		e.ID,
		e.AppointmentID,
		e.OwnerUserID,
		string(e.Type),
		e.Actor.ID,
		string(e.Actor.Role),
		string(b),
		e.OccurredAt,
	)
	return mapWriteErr(err, "insert activity")
}

func (r *ActivityRepo) ListByAppointment(ctx context.Context, appointmentID string) ([]activity.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, appointment_id, owner_user_id, type, actor_id, actor_role, payload::text, occurred_at
		FROM appointment_activity
		WHERE appointment_id = $1
		ORDER BY occurred_at, id
	`, appointmentID)
	if err != nil {
		return nil, errors.Wrap(err, "list activity")
	}
	defer rows.Close()

	out := make([]activity.Entry, 0)
	for rows.Next() {
		var (
			e       activity.Entry
			typ     string
			role    string
			payload string
		)
		if err := rows.Scan(&e.ID, &e.AppointmentID, &e.OwnerUserID, &typ, &e.Actor.ID, &role, &payload, &e.OccurredAt); err != nil {
			return nil, errors.Wrap(err, "scan activity")
		}
		e.Type = activity.Type(typ)
		e.Actor.Role = session.ParseRole(role)
		if err := json.Unmarshal([]byte(payload), &e.Payload); err != nil {
			return nil, errors.Wrap(err, "decode activity payload")
		}
		out = append(out, e)
	}
	return out, errors.WithStack(rows.Err())
}
