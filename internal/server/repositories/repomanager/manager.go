// Package repomanager vends repository implementations bound to a database
// handle, so services can run the same code against a connection or a
// transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/newsdigest/internal/dbx"
	"github.com/dmitrijs2005/newsdigest/internal/server/repositories/preferences"
	"github.com/dmitrijs2005/newsdigest/internal/server/repositories/shares"
	"github.com/dmitrijs2005/newsdigest/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Shares(db dbx.DBTX) shares.Repository
	Preferences(db dbx.DBTX) preferences.Repository
}
