package postgres

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/domain/profiles"
	"pet-grooming-agenda/internal/session"
)

type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

const profileColumns = `id, full_name, phone, avatar_url, role, address, neighborhood, created_at, updated_at`

func (r *ProfilesRepo) Get(ctx context.Context, id string) (profiles.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	p, err := scanProfile(row)
	if err != nil {
		// "no existe" es un estado válido; el servicio lo trata como ausencia
		if errors.Is(err, sql.ErrNoRows) {
			return profiles.Profile{}, profiles.ErrNotFound
		}
		return profiles.Profile{}, errors.Wrap(err, "get profile")
	}
	return p, nil
}

// Upsert no toca created_at ni role en conflicto: el rol solo cambia por SetRole.
func (r *ProfilesRepo) Upsert(ctx context.Context, p profiles.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			phone = EXCLUDED.phone,
			avatar_url = EXCLUDED.avatar_url,
			address = EXCLUDED.address,
			neighborhood = EXCLUDED.neighborhood,
			updated_at = EXCLUDED.updated_at
	`,
		p.ID,
		p.FullName,
		p.Phone,
		p.AvatarURL,
		string(p.Role),
		p.Address,
		p.Neighborhood,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return errors.Wrap(err, "upsert profile")
}

func (r *ProfilesRepo) ListByIDs(ctx context.Context, ids []string) ([]profiles.Profile, error) {
	if len(ids) == 0 {
		return []profiles.Profile{}, nil
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "list profiles")
	}
	defer rows.Close()

	out := make([]profiles.Profile, 0, len(ids))
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan profile")
		}
		out = append(out, p)
	}
	return out, errors.WithStack(rows.Err())
}

func (r *ProfilesRepo) SetRole(ctx context.Context, id string, role session.Role) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles SET role = $2, updated_at = now() WHERE id = $1
	`, id, string(role))
	if err != nil {
		return errors.Wrap(err, "set role")
	}
	return affectedOr(res, profiles.ErrNotFound)
}

func scanProfile(s scanner) (profiles.Profile, error) {
	var p profiles.Profile
	var role string
	err := s.Scan(
		&p.ID,
		&p.FullName,
		&p.Phone,
		&p.AvatarURL,
		&role,
		&p.Address,
		&p.Neighborhood,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	p.Role = session.ParseRole(role)
	return p, err
}
