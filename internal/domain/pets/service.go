package pets

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
	ErrNotFound     = errors.New("pet not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo   Repository
	images blobstore.Store
	now    func() time.Time
}

func NewService(repo Repository, images blobstore.Store) *Service {
	return &Service{
		repo:   repo,
		images: images,
		now:    time.Now,
	}
}

type CreateInput struct {
	Name  string
	Breed string
	Age   string
	Type  string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	typ, ok := ParseType(strings.ToLower(strings.TrimSpace(in.Type)))
	if !ok {
		return Pet{}, errors.Wrap(ErrInvalidInput, "type must be dog, cat or other")
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Breed:       strings.TrimSpace(in.Breed),
		Age:         strings.TrimSpace(in.Age),
		Type:        typ,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	if strings.TrimSpace(id) == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// GetOwned devuelve la mascota solo si pertenece a userID.
func (s *Service) GetOwned(ctx context.Context, id, userID string) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != userID {
		return Pet{}, ErrForbidden
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// LookupMany arma el mapa id -> mascota para enriquecer turnos.
func (s *Service) LookupMany(ctx context.Context, ids []string) (map[string]Pet, error) {
	out := make(map[string]Pet, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	items, err := s.repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range items {
		out[p.ID] = p
	}
	return out, nil
}

type UpdateInput struct {
	// nil = no tocar
	Name  *string
	Breed *string
	Age   *string
	Type  *string
}

func (s *Service) Update(ctx context.Context, petID, userID string, in UpdateInput) (Pet, error) {
	p, err := s.GetOwned(ctx, petID, userID)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, errors.Wrap(ErrInvalidInput, "name cannot be empty")
		}
		p.Name = name
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		p.Age = strings.TrimSpace(*in.Age)
	}
	if in.Type != nil {
		typ, ok := ParseType(strings.ToLower(strings.TrimSpace(*in.Type)))
		if !ok {
			return Pet{}, errors.Wrap(ErrInvalidInput, "type must be dog, cat or other")
		}
		p.Type = typ
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Delete es inmediato; los turnos que referencian la mascota quedan sin enriquecer.
func (s *Service) Delete(ctx context.Context, petID, userID string) error {
	if _, err := s.GetOwned(ctx, petID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, petID)
}

// SetImage sube la foto (key <uid>/<petID>.<ext>, sobreescribe) y guarda la URL.
func (s *Service) SetImage(ctx context.Context, petID, userID, filename string, data []byte) (Pet, error) {
	if s.images == nil {
		return Pet{}, errors.New("image storage not configured")
	}
	p, err := s.GetOwned(ctx, petID, userID)
	if err != nil {
		return Pet{}, err
	}
	ext, ct, err := blobstore.DetectImage(filename, data)
	if err != nil {
		return Pet{}, err
	}

	url, err := s.images.Put(ctx, blobstore.BucketPets, blobstore.PetImageKey(userID, p.ID, ext), ct, data)
	if err != nil {
		return Pet{}, errors.Wrap(err, "upload pet image")
	}

	p.ImageURL = url
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}
