package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"inscricaoflow/internal/domain"
)

// kvRepository stores wizard drafts and receipt flags in a single key-value
// table, for deployments where several kiosks share one draft state.
//
// Expected schema:
//
//	CREATE TABLE wizard_store (
//	    key        TEXT PRIMARY KEY,
//	    value      JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	)
type kvRepository struct {
	DB *sql.DB
}

// NewKeyValueRepository returns a Postgres-backed KeyValueStore.
func NewKeyValueRepository(db *sql.DB) domain.KeyValueStore {
	return &kvRepository{
		DB: db,
	}
}

func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT value
		FROM wizard_store
		WHERE key = $1
	`
	var value []byte
	err := r.DB.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *kvRepository) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO wizard_store (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	_, err := r.DB.ExecContext(ctx, query, key, value, time.Now().UTC())
	return err
}

func (r *kvRepository) Remove(ctx context.Context, key string) error {
	query := `
		DELETE FROM wizard_store
		WHERE key = $1
	`
	_, err := r.DB.ExecContext(ctx, query, key)
	return err
}
