package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/newsdigest/internal/dbx"
	"github.com/dmitrijs2005/newsdigest/internal/server/repositories/preferences"
	"github.com/dmitrijs2005/newsdigest/internal/server/repositories/shares"
	"github.com/dmitrijs2005/newsdigest/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps everything in process memory. The db
// handles passed to it are ignored and may be nil.
type InMemoryRepositoryManager struct {
	users       *users.MemoryRepository
	shares      *shares.MemoryRepository
	preferences *preferences.MemoryRepository
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{
		users:       users.NewMemoryRepository(),
		shares:      shares.NewMemoryRepository(),
		preferences: preferences.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *InMemoryRepositoryManager) Shares(dbx.DBTX) shares.Repository { return m.shares }

func (m *InMemoryRepositoryManager) Preferences(dbx.DBTX) preferences.Repository {
	return m.preferences
}
