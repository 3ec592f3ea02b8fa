package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `id, owner_user_id, name, breed, age, type, image_url, created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		p.Breed,
		p.Age,
		string(p.Type),
		p.ImageURL,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return mapWriteErr(err, "insert pet")
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			breed = $3,
			age = $4,
			type = $5,
			image_url = $6,
			updated_at = $7
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Breed,
		p.Age,
		string(p.Type),
		p.ImageURL,
		p.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "update pet")
	}
	return affectedOr(res, pets.ErrNotFound)
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete pet")
	}
	return affectedOr(res, pets.ErrNotFound)
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, errors.Wrap(err, "get pet")
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_user_id = $1
		ORDER BY created_at DESC, id
	`, ownerUserID)
	if err != nil {
		return nil, errors.Wrap(err, "list pets")
	}
	return collectPets(rows)
}

func (r *PetsRepo) ListByIDs(ctx context.Context, ids []string) ([]pets.Pet, error) {
	if len(ids) == 0 {
		return []pets.Pet{}, nil
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "list pets by ids")
	}
	return collectPets(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (pets.Pet, error) {
	var p pets.Pet
	var typ string
	err := s.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.Breed,
		&p.Age,
		&typ,
		&p.ImageURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	p.Type = pets.Type(typ)
	return p, err
}

func collectPets(rows *sql.Rows) ([]pets.Pet, error) {
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan pet")
		}
		out = append(out, p)
	}
	return out, errors.WithStack(rows.Err())
}
