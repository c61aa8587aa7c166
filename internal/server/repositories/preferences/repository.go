// Package preferences stores each user's reading preferences.
package preferences

import (
	"context"

	"github.com/dmitrijs2005/newsdigest/internal/server/models"
)

type Repository interface {
	// Get returns common.ErrorNotFound when the user never saved any.
	Get(ctx context.Context, userID string) (*models.Preferences, error)
	// Save replaces the user's preferences.
	Save(ctx context.Context, userID string, prefs models.Preferences) error
}
