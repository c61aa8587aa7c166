package api

import (
	"context"

	"github.com/dmitrijs2005/newsdigest/internal/client/models"
)

// Client is one method per backend capability.
type Client interface {
	FetchNews(ctx context.Context, category, uiLanguage, userLanguage string) ([]models.Article, error)
	GetArticle(ctx context.Context, id string) (*models.Article, error)
	ShareArticle(ctx context.Context, article models.Article) (models.ShareResult, error)
	GetSharedArticle(ctx context.Context, shareID string) (*models.Article, error)

	// GetUser returns the current identity or nil when there is none or it
	// could not be determined.
	GetUser(ctx context.Context) *models.User
	// FetchUser is the strict variant; 401 matches ErrUnauthorized.
	FetchUser(ctx context.Context) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Signup(ctx context.Context, email, password, name string) (*models.User, error)
	// Logout asks the backend to end the session and drops the local
	// credentials whatever the outcome.
	Logout(ctx context.Context) error

	SavePreferences(ctx context.Context, prefs models.Preferences) error
	// GetPreferences returns ErrNotFound (via RequestError) when the user has
	// never saved any.
	GetPreferences(ctx context.Context) (*models.Preferences, error)

	Ping(ctx context.Context) error
}
