package memory

import (
	"context"
	"encoding/json"
	"sync"

	"pet-grooming-agenda/internal/domain/settings"
)

type settingsRepo struct {
	mu    sync.RWMutex
	byCat map[settings.Category]settings.Setting
}

func NewSettingsRepo() settings.Repository {
	return &settingsRepo{
		byCat: make(map[settings.Category]settings.Setting),
	}
}

func (r *settingsRepo) Get(ctx context.Context, c settings.Category) (settings.Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byCat[c]
	if !ok {
		return settings.Setting{}, settings.ErrNotFound
	}
	return s, nil
}

func (r *settingsRepo) Upsert(ctx context.Context, s settings.Setting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// copia: el caller puede reusar el buffer
	s.Value = append(json.RawMessage(nil), s.Value...)
	r.byCat[s.Category] = s
	return nil
}
