package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-grooming-agenda/internal/domain/profiles"
	"pet-grooming-agenda/internal/session"
)

type profileRepo struct {
	mu   sync.RWMutex
	byID map[string]profiles.Profile
}

func NewProfileRepo() profiles.Repository {
	return &profileRepo{
		byID: make(map[string]profiles.Profile),
	}
}

func (r *profileRepo) Get(ctx context.Context, id string) (profiles.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	return p, nil
}

func (r *profileRepo) Upsert(ctx context.Context, p profiles.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("profile id required")
	}
	// el rol solo cambia por SetRole, igual que el ON CONFLICT de postgres
	if prev, ok := r.byID[p.ID]; ok {
		p.CreatedAt = prev.CreatedAt
		p.Role = prev.Role
	}
	r.byID[p.ID] = p
	return nil
}

func (r *profileRepo) ListByIDs(ctx context.Context, ids []string) ([]profiles.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]profiles.Profile, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *profileRepo) SetRole(ctx context.Context, id string, role session.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return profiles.ErrNotFound
	}
	p.Role = role
	r.byID[id] = p
	return nil
}
