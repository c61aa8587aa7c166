package preferences

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/newsdigest/internal/common"
	"github.com/dmitrijs2005/newsdigest/internal/server/models"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	byUser map[string]models.Preferences
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byUser: map[string]models.Preferences{}}
}

func (r *MemoryRepository) Get(ctx context.Context, userID string) (*models.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byUser[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.Categories = slices.Clone(p.Categories)
	return &p, nil
}

func (r *MemoryRepository) Save(ctx context.Context, userID string, prefs models.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prefs.Categories = slices.Clone(prefs.Categories)
	r.byUser[userID] = prefs
	return nil
}
