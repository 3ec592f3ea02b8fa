package postgres

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/domain/catalog"
)

type ServicesRepo struct {
	db *sql.DB
}

func NewServicesRepo(db *sql.DB) *ServicesRepo {
	return &ServicesRepo{db: db}
}

// price/rating son NUMERIC; se leen como float8.
const serviceSelect = `
	SELECT id, name, description, price::float8, duration, image_url, rating::float8, created_at, updated_at
	FROM services`

func (r *ServicesRepo) Create(ctx context.Context, s catalog.Service) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO services (id, name, description, price, duration, image_url, rating, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		s.ID,
		s.Name,
		s.Description,
		s.Price,
		s.Duration,
		s.ImageURL,
		s.Rating,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return mapWriteErr(err, "insert service")
}

func (r *ServicesRepo) Update(ctx context.Context, s catalog.Service) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE services
		SET
			name = $2,
			description = $3,
			price = $4,
			duration = $5,
			image_url = $6,
			rating = $7,
			updated_at = $8
		WHERE id = $1
	`,
		s.ID,
		s.Name,
		s.Description,
		s.Price,
		s.Duration,
		s.ImageURL,
		s.Rating,
		s.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "update service")
	}
	return affectedOr(res, catalog.ErrNotFound)
}

func (r *ServicesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete service")
	}
	return affectedOr(res, catalog.ErrNotFound)
}

func (r *ServicesRepo) GetByID(ctx context.Context, id string) (catalog.Service, error) {
	row := r.db.QueryRowContext(ctx, serviceSelect+` WHERE id = $1`, id)
	s, err := scanService(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Service{}, catalog.ErrNotFound
		}
		return catalog.Service{}, errors.Wrap(err, "get service")
	}
	return s, nil
}

func (r *ServicesRepo) List(ctx context.Context) ([]catalog.Service, error) {
	rows, err := r.db.QueryContext(ctx, serviceSelect+` ORDER BY name, id`)
	if err != nil {
		return nil, errors.Wrap(err, "list services")
	}
	return collectServices(rows)
}

func (r *ServicesRepo) ListByIDs(ctx context.Context, ids []string) ([]catalog.Service, error) {
	if len(ids) == 0 {
		return []catalog.Service{}, nil
	}
	rows, err := r.db.QueryContext(ctx, serviceSelect+` WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "list services by ids")
	}
	return collectServices(rows)
}

func scanService(s scanner) (catalog.Service, error) {
	var sv catalog.Service
	err := s.Scan(
		&sv.ID,
		&sv.Name,
		&sv.Description,
		&sv.Price,
		&sv.Duration,
		&sv.ImageURL,
		&sv.Rating,
		&sv.CreatedAt,
		&sv.UpdatedAt,
	)
	return sv, err
}

func collectServices(rows *sql.Rows) ([]catalog.Service, error) {
	defer rows.Close()

	out := make([]catalog.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan service")
		}
		out = append(out, s)
	}
	return out, errors.WithStack(rows.Err())
}
