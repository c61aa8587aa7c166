// Package shares stores published article snapshots.
package shares

import (
	"context"

	"github.com/dmitrijs2005/newsdigest/internal/server/models"
)

type Repository interface {
	// Create stores share under share.ID. A taken ID yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, share *models.Share) error
	// View counts one more read of the share and returns it with the new
	// count.
	View(ctx context.Context, id string) (*models.Share, error)
}
