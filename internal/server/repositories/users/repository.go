// Package users stores accounts. Lookups by email expect the caller to have
// normalised it to lower case.
package users

import (
	"context"

	"github.com/dmitrijs2005/newsdigest/internal/server/models"
)

type Repository interface {
	// Create stores user and fills in its ID and CreatedAt. A taken email
	// yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
