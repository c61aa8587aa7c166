// Package server assembles the NewsDigest backend: storage, services and
// the HTTP API.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/dbx"
	"github.com/dmitrijs2005/newsdigest/internal/logging"
	"github.com/dmitrijs2005/newsdigest/internal/server/config"
	"github.com/dmitrijs2005/newsdigest/internal/server/httpapi"
	"github.com/dmitrijs2005/newsdigest/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/newsdigest/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

// NewApp opens storage and builds the services. An empty DatabaseDSN keeps
// all data in memory.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	var (
		db   *sql.DB
		dbtx dbx.DBTX
		rm   repomanager.RepositoryManager
	)

	if c.DatabaseDSN != "" {
		var err error
		db, err = sql.Open("pgx", c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db ping error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db migration error: %w", err)
		}
		dbtx = db
		logger.Info(ctx, "using postgres storage")
	} else {
		rm = repomanager.NewInMemoryRepositoryManager()
		logger.Warn(ctx, "no database configured, data is kept in memory")
	}

	if c.NewsAPIKey == "" {
		logger.Warn(ctx, "NEWS_API_KEY is not set, /api/news will return no articles")
	}

	httpClient := &http.Client{Timeout: 15 * time.Second}
	srv := httpapi.NewServer(c, logger,
		services.NewUserService(dbtx, rm, c.SecretKey, c.SessionLifetime, logger),
		services.NewNewsService(httpClient, c.NewsAPIURL, c.NewsAPIKey, logger),
		services.NewShareService(dbtx, rm, logger),
		services.NewPreferenceService(dbtx, rm),
	)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

// Run serves until ctx is cancelled and then releases storage.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...", "addr", app.config.ListenAddr)
	defer app.close(ctx)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "server error", "error", err)
		return err
	}
	app.logger.Info(ctx, "app stopped")
	return nil
}

func (app *App) close(ctx context.Context) {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing database", "error", err)
	}
}
