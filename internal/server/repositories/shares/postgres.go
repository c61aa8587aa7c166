package shares

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/newsdigest/internal/common"
	"github.com/dmitrijs2005/newsdigest/internal/dbx"
	"github.com/dmitrijs2005/newsdigest/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, share *models.Share) error {
	article, err := json.Marshal(share.Article)
	if err != nil {
		return fmt.Errorf("encode article: %w", err)
	}

	query :=
		`INSERT INTO shares (id, article)
		 VALUES ($1, $2)
		 RETURNING created_at
		 `

	err = r.db.QueryRowContext(ctx, query, share.ID, article).Scan(&share.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) View(ctx context.Context, id string) (*models.Share, error) {
	query :=
		`UPDATE shares SET views = views + 1
		 WHERE id = $1
		 RETURNING article, views, created_at
		 `

	var raw []byte
	share := &models.Share{ID: id}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&raw, &share.Views, &share.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(raw, &share.Article); err != nil {
		return nil, fmt.Errorf("decode article: %w", err)
	}
	return share, nil
}
