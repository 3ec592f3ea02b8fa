package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

// Fecha y hora salen como texto para no depender de la zona de la conexión.
const appointmentSelect = `
	SELECT id, owner_user_id, pet_id, service_id,
		to_char(scheduled_date, 'YYYY-MM-DD'), to_char(scheduled_time, 'HH24:MI'),
		status, notes, created_at, updated_at
	FROM appointments`

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, owner_user_id, pet_id, service_id,
			scheduled_date, scheduled_time,
			status, notes, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5::text::date,$6::text::time,$7,$8,$9,$10)
	`,
		a.ID,
		a.OwnerUserID,
		a.PetID,
		a.ServiceID,
		a.Date,
		a.Time,
		string(a.Status),
		a.Notes,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return mapWriteErr(err, "insert appointment")
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	row := r.db.QueryRowContext(ctx, appointmentSelect+` WHERE id = $1`, id)
	a, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appointments.Appointment{}, appointments.ErrNotFound
		}
		return appointments.Appointment{}, errors.Wrap(err, "get appointment")
	}
	return a, nil
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment, expect appointments.Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET
			pet_id = $2,
			service_id = $3,
			scheduled_date = $4::text::date,
			scheduled_time = $5::text::time,
			notes = $6,
			updated_at = $7
		WHERE id = $1 AND status = $8
	`,
		a.ID,
		a.PetID,
		a.ServiceID,
		a.Date,
		a.Time,
		a.Notes,
		a.UpdatedAt,
		string(expect),
	)
	if err != nil {
		return errors.Wrap(err, "update appointment")
	}
	return r.guardResult(ctx, res, a.ID)
}

func (r *AppointmentsRepo) UpdateStatus(ctx context.Context, id string, from, to appointments.Status, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
	`, id, string(from), string(to), at)
	if err != nil {
		return errors.Wrap(err, "update appointment status")
	}
	return r.guardResult(ctx, res, id)
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id string, expect appointments.Status) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM appointments WHERE id = $1 AND status = $2
	`, id, string(expect))
	if err != nil {
		return errors.Wrap(err, "delete appointment")
	}
	return r.guardResult(ctx, res, id)
}

// guardResult distingue "no existe" de "cambió el estado" cuando el WHERE no matcheó.
func (r *AppointmentsRepo) guardResult(ctx context.Context, res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if n > 0 {
		return nil
	}
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM appointments WHERE id = $1)`, id).Scan(&exists); err != nil {
		return errors.Wrap(err, "check appointment")
	}
	if !exists {
		return appointments.ErrNotFound
	}
	return appointments.ErrStale
}

func (r *AppointmentsRepo) List(ctx context.Context, f appointments.Filter) ([]appointments.Appointment, error) {
	where, args := buildAppointmentWhere(f)

	rows, err := r.db.QueryContext(ctx,
		appointmentSelect+where+` ORDER BY scheduled_date, scheduled_time, created_at`, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list appointments")
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan appointment")
		}
		out = append(out, a)
	}
	return out, errors.WithStack(rows.Err())
}

func buildAppointmentWhere(f appointments.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if f.OwnerUserID != "" {
		add("owner_user_id = ?", f.OwnerUserID)
	}
	if f.Date != "" {
		add("scheduled_date = ?::text::date", f.Date)
	}
	if f.From != "" {
		add("scheduled_date >= ?::text::date", f.From)
	}
	if f.To != "" {
		add("scheduled_date <= ?::text::date", f.To)
	}
	if f.Status != "" {
		add("status = ?", string(f.Status))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanAppointment(s scanner) (appointments.Appointment, error) {
	var a appointments.Appointment
	var status string
	err := s.Scan(
		&a.ID,
		&a.OwnerUserID,
		&a.PetID,
		&a.ServiceID,
		&a.Date,
		&a.Time,
		&status,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	a.Status = appointments.Status(status)
	return a, err
}
