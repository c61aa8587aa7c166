package preferences

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/newsdigest/internal/common"
	"github.com/dmitrijs2005/newsdigest/internal/dbx"
	"github.com/dmitrijs2005/newsdigest/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.Preferences, error) {
	query := `SELECT data FROM preferences WHERE user_id = $1`

	var raw []byte
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	p := &models.Preferences{}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Save(ctx context.Context, userID string, prefs models.Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	query :=
		`INSERT INTO preferences (user_id, data, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, data); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
