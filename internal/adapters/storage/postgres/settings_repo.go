package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/domain/settings"
)

type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) Get(ctx context.Context, c settings.Category) (settings.Setting, error) {
	var (
		s     settings.Setting
		value string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT value::text, updated_at FROM admin_settings WHERE category = $1
	`, string(c)).Scan(&value, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return settings.Setting{}, settings.ErrNotFound
		}
		return settings.Setting{}, errors.Wrap(err, "get setting")
	}
	s.Category = c
	s.Value = json.RawMessage(value)
	return s, nil
}

func (r *SettingsRepo) Upsert(ctx context.Context, s settings.Setting) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_settings (category, value, updated_at)
		VALUES ($1, $2::text::jsonb, $3)
		ON CONFLICT (category) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, string(s.Category), string(s.Value), s.UpdatedAt)
	return errors.Wrap(err, "upsert setting")
}
