package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/ports/blobstore"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("service not found")
)

const maxRating = 5

// Catalog administra el catálogo de servicios. Las escrituras son solo de admin
// (lo controla el router).
type Catalog struct {
	repo   Repository
	images blobstore.Store
	now    func() time.Time
}

func NewCatalog(repo Repository, images blobstore.Store) *Catalog {
	return &Catalog{
		repo:   repo,
		images: images,
		now:    time.Now,
	}
}

type CreateInput struct {
	Name        string
	Description string
	Price       float64
	Duration    string
	Rating      float64
}

func validate(name string, price, rating float64) error {
	if strings.TrimSpace(name) == "" {
		return errors.Wrap(ErrInvalidInput, "name is required")
	}
	if price < 0 {
		return errors.Wrap(ErrInvalidInput, "price must be >= 0")
	}
	if rating < 0 || rating > maxRating {
		return errors.Wrap(ErrInvalidInput, "rating must be between 0 and 5")
	}
	return nil
}

func (c *Catalog) Create(ctx context.Context, in CreateInput) (Service, error) {
	if err := validate(in.Name, in.Price, in.Rating); err != nil {
		return Service{}, err
	}

	now := c.now()
	s := Service{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Duration:    strings.TrimSpace(in.Duration),
		Rating:      in.Rating,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.repo.Create(ctx, s); err != nil {
		return Service{}, err
	}
	return s, nil
}

func (c *Catalog) Get(ctx context.Context, id string) (Service, error) {
	if strings.TrimSpace(id) == "" {
		return Service{}, ErrNotFound
	}
	return c.repo.GetByID(ctx, id)
}

func (c *Catalog) List(ctx context.Context) ([]Service, error) {
	return c.repo.List(ctx)
}

// LookupMany arma el mapa id -> servicio (enriquecimiento de turnos y reportes).
func (c *Catalog) LookupMany(ctx context.Context, ids []string) (map[string]Service, error) {
	out := make(map[string]Service, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	items, err := c.repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range items {
		out[s.ID] = s
	}
	return out, nil
}

type UpdateInput struct {
	// nil = no tocar
	Name        *string
	Description *string
	Price       *float64
	Duration    *string
	Rating      *float64
}

func (c *Catalog) Update(ctx context.Context, id string, in UpdateInput) (Service, error) {
	s, err := c.Get(ctx, id)
	if err != nil {
		return Service{}, err
	}

	if in.Name != nil {
		s.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		s.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		s.Price = *in.Price
	}
	if in.Duration != nil {
		s.Duration = strings.TrimSpace(*in.Duration)
	}
	if in.Rating != nil {
		s.Rating = *in.Rating
	}
	if err := validate(s.Name, s.Price, s.Rating); err != nil {
		return Service{}, err
	}
	s.UpdatedAt = c.now()

	if err := c.repo.Update(ctx, s); err != nil {
		return Service{}, err
	}
	return s, nil
}

func (c *Catalog) Delete(ctx context.Context, id string) error {
	if _, err := c.Get(ctx, id); err != nil {
		return err
	}
	return c.repo.Delete(ctx, id)
}

func (c *Catalog) SetImage(ctx context.Context, id, filename string, data []byte) (Service, error) {
	if c.images == nil {
		return Service{}, errors.New("image storage not configured")
	}
	s, err := c.Get(ctx, id)
	if err != nil {
		return Service{}, err
	}
	ext, ct, err := blobstore.DetectImage(filename, data)
	if err != nil {
		return Service{}, err
	}

	url, err := c.images.Put(ctx, blobstore.BucketServices, blobstore.ServiceImageKey(s.ID, ext), ct, data)
	if err != nil {
		return Service{}, errors.Wrap(err, "upload service image")
	}
	s.ImageURL = url
	s.UpdatedAt = c.now()
	if err := c.repo.Update(ctx, s); err != nil {
		return Service{}, err
	}
	return s, nil
}
