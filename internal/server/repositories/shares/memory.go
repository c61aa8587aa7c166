package shares

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/common"
	"github.com/dmitrijs2005/newsdigest/internal/server/models"
)

type MemoryRepository struct {
	mu     sync.Mutex
	shares map[string]models.Share
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{shares: map[string]models.Share{}}
}

func (r *MemoryRepository) Create(ctx context.Context, share *models.Share) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shares[share.ID]; ok {
		return common.ErrorAlreadyExists
	}
	share.CreatedAt = time.Now().UTC()
	share.Views = 0
	r.shares[share.ID] = *share
	return nil
}

func (r *MemoryRepository) View(ctx context.Context, id string) (*models.Share, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shares[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	s.Views++
	r.shares[id] = s
	return &s, nil
}
