package profiles

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/ports/blobstore"
	"pet-grooming-agenda/internal/session"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("profile not found")
)

type Service struct {
	repo   Repository
	images blobstore.Store
	admins map[string]struct{}
	now    func() time.Time
}

// NewService recibe la lista de bootstrap admins: esos usuarios nacen con rol ADMIN
// en su primer sign-in.
func NewService(repo Repository, images blobstore.Store, bootstrapAdmins []string) *Service {
	admins := make(map[string]struct{}, len(bootstrapAdmins))
	for _, id := range bootstrapAdmins {
		if id = strings.TrimSpace(id); id != "" {
			admins[id] = struct{}{}
		}
	}
	return &Service{
		repo:   repo,
		images: images,
		admins: admins,
		now:    time.Now,
	}
}

// Get trata "no existe" como estado válido: found=false sin error.
func (s *Service) Get(ctx context.Context, id string) (Profile, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Profile{}, false, ErrInvalidInput
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Profile{}, false, nil
		}
		return Profile{}, false, err
	}
	return p, true, nil
}

// RoleOf devuelve el rol del usuario; sin perfil todavía => CLIENT.
func (s *Service) RoleOf(ctx context.Context, id string) (session.Role, error) {
	p, found, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !found {
		return session.RoleClient, nil
	}
	return p.Role, nil
}

// EnsureOnSignIn crea el perfil en el primer sign-in. Si ya existe lo devuelve tal cual.
func (s *Service) EnsureOnSignIn(ctx context.Context, userID string) (Profile, bool, error) {
	p, found, err := s.Get(ctx, userID)
	if err != nil {
		return Profile{}, false, err
	}
	if found {
		return p, false, nil
	}

	role := session.RoleClient
	if _, ok := s.admins[userID]; ok {
		role = session.RoleAdmin
	}

	now := s.now()
	p = Profile{
		ID:        strings.TrimSpace(userID),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return Profile{}, false, err
	}
	return p, true, nil
}

type UpdateInput struct {
	// nil = no tocar
	FullName     *string
	Phone        *string
	Address      *string
	Neighborhood *string
}

// Update aplica los campos presentes. Si el perfil aún no existe lo crea (upsert).
// El rol nunca se cambia por aquí.
func (s *Service) Update(ctx context.Context, userID string, in UpdateInput) (Profile, error) {
	p, _, err := s.EnsureOnSignIn(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	if in.FullName != nil {
		p.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		p.Address = strings.TrimSpace(*in.Address)
	}
	if in.Neighborhood != nil {
		p.Neighborhood = strings.TrimSpace(*in.Neighborhood)
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Upsert(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// SetAvatar sube la imagen (sobreescribe la anterior) y guarda la URL pública.
func (s *Service) SetAvatar(ctx context.Context, userID, filename string, data []byte) (Profile, error) {
	if s.images == nil {
		return Profile{}, errors.New("image storage not configured")
	}
	ext, ct, err := blobstore.DetectImage(filename, data)
	if err != nil {
		return Profile{}, err
	}

	p, _, err := s.EnsureOnSignIn(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	url, err := s.images.Put(ctx, blobstore.BucketAvatars, blobstore.AvatarKey(p.ID, ext), ct, data)
	if err != nil {
		return Profile{}, errors.Wrap(err, "upload avatar")
	}

	p.AvatarURL = url
	p.UpdatedAt = s.now()
	if err := s.repo.Upsert(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Promote cambia el rol (lo usa el CLI de operación).
func (s *Service) Promote(ctx context.Context, userID string, role session.Role) error {
	if strings.TrimSpace(userID) == "" || !role.Valid() {
		return ErrInvalidInput
	}
	if _, _, err := s.EnsureOnSignIn(ctx, userID); err != nil {
		return err
	}
	return s.repo.SetRole(ctx, userID, role)
}

// LookupMany arma el mapa id -> perfil para enriquecer listados.
func (s *Service) LookupMany(ctx context.Context, ids []string) (map[string]Profile, error) {
	out := make(map[string]Profile, len(ids))
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
