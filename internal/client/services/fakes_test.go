package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/dmitrijs2005/newsdigest/internal/client/api"
	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/dmitrijs2005/newsdigest/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/newsdigest/internal/client/store"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newLocalStore(t *testing.T) (*LocalStore, metadata.Repository) {
	t.Helper()
	repo := metadata.NewSQLiteRepository(setupDB(t))
	return NewLocalStore(repo, logging.Nop()), repo
}

// fakeGateway implements api.Client for service tests.
type fakeGateway struct {
	mu sync.Mutex

	user      *models.User
	loginUser *models.User
	loginErr  error
	logoutErr error

	remotePrefs *models.Preferences
	getPrefsErr error

	// saveGate, when set, blocks SavePreferences until it is closed.
	saveGate chan struct{}
	saveErr  error
	saved    []models.Preferences

	logoutCalls int
}

var _ api.Client = (*fakeGateway)(nil)

func (f *fakeGateway) FetchNews(ctx context.Context, category, uiLanguage, userLanguage string) ([]models.Article, error) {
	return nil, nil
}
func (f *fakeGateway) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	return nil, api.ErrNotFound
}
func (f *fakeGateway) ShareArticle(ctx context.Context, a models.Article) (models.ShareResult, error) {
	return models.ShareResult{}, nil
}
func (f *fakeGateway) GetSharedArticle(ctx context.Context, id string) (*models.Article, error) {
	return nil, api.ErrNotFound
}
func (f *fakeGateway) GetUser(ctx context.Context) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user
}
func (f *fakeGateway) FetchUser(ctx context.Context) (*models.User, error) {
	if u := f.GetUser(ctx); u != nil {
		return u, nil
	}
	return nil, &api.RequestError{Status: 401}
}
func (f *fakeGateway) Login(ctx context.Context, email, password string) (*models.User, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginUser, nil
}
func (f *fakeGateway) Signup(ctx context.Context, email, password, name string) (*models.User, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.User{ID: email, Email: email, Name: name}, nil
}
func (f *fakeGateway) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	return f.logoutErr
}
func (f *fakeGateway) SavePreferences(ctx context.Context, p models.Preferences) error {
	if f.saveGate != nil {
		<-f.saveGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, p.Clone())
	return f.saveErr
}
func (f *fakeGateway) GetPreferences(ctx context.Context) (*models.Preferences, error) {
	if f.getPrefsErr != nil {
		return nil, f.getPrefsErr
	}
	if f.remotePrefs == nil {
		return nil, &api.RequestError{Status: 404}
	}
	p := f.remotePrefs.Clone()
	return &p, nil
}
func (f *fakeGateway) Ping(ctx context.Context) error { return nil }

func (f *fakeGateway) savedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}
