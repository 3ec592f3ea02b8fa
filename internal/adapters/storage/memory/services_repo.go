package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-grooming-agenda/internal/domain/catalog"
)

type serviceRepo struct {
	mu   sync.RWMutex
	byID map[string]catalog.Service
}

func NewServiceRepo() catalog.Repository {
	return &serviceRepo{
		byID: make(map[string]catalog.Service),
	}
}

func (r *serviceRepo) Create(ctx context.Context, s catalog.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("service id required")
	}
	if _, exists := r.byID[s.ID]; exists {
		return errors.New("service already exists")
	}
	r.byID[s.ID] = s
	return nil
}

func (r *serviceRepo) Update(ctx context.Context, s catalog.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[s.ID]; !exists {
		return catalog.ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *serviceRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return catalog.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *serviceRepo) GetByID(ctx context.Context, id string) (catalog.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return catalog.Service{}, catalog.ErrNotFound
	}
	return s, nil
}

func (r *serviceRepo) List(ctx context.Context) ([]catalog.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Service, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *serviceRepo) ListByIDs(ctx context.Context, ids []string) ([]catalog.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Service, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}
