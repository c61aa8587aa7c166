package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/newsdigest/internal/common"
	"github.com/dmitrijs2005/newsdigest/internal/dbx"
	"github.com/dmitrijs2005/newsdigest/internal/server/models"
	"github.com/dmitrijs2005/newsdigest/internal/server/repositories/repomanager"
)

type PreferenceService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
}

func NewPreferenceService(db dbx.DBTX, m repomanager.RepositoryManager) *PreferenceService {
	return &PreferenceService{db: db, repomanager: m}
}

// Get returns common.ErrorNotFound for a user who never saved preferences.
func (s *PreferenceService) Get(ctx context.Context, userID string) (*models.Preferences, error) {
	return s.repomanager.Preferences(s.db).Get(ctx, userID)
}

// Save validates and stores prefs for userID.
func (s *PreferenceService) Save(ctx context.Context, userID string, prefs models.Preferences) error {
	if err := prefs.Validate(); err != nil {
		return fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}
	return s.repomanager.Preferences(s.db).Save(ctx, userID, prefs)
}
