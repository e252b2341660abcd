package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/shuzaifak/Property-Sync-Owner/internal/errors"
	_ "modernc.org/sqlite"
)

var _ Repo = (*SQLiteRepo)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS session_values (
	browser_id TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (browser_id, key)
);`

// SQLiteRepo persists session keys to a sqlite file so they survive restarts
type SQLiteRepo struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// single writer; sqlite serialises anyway
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create session schema: %w", err)
	}
	return &SQLiteRepo{db: db}, nil
}

func (r *SQLiteRepo) Get(ctx context.Context, browserID, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM session_values WHERE browser_id = ? AND key = ?`,
		browserID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get session value: %w", err)
	}
	return value, nil
}

func (r *SQLiteRepo) Set(ctx context.Context, browserID, key, value string) error {
	if browserID == "" {
		return fmt.Errorf("browserID is required")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session_values (browser_id, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(browser_id, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		browserID, key, value,
	)
	if err != nil {
		return fmt.Errorf("set session value: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) Delete(ctx context.Context, browserID string, keys ...string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, k := range keys {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM session_values WHERE browser_id = ? AND key = ?`, browserID, k,
		); err != nil {
			return fmt.Errorf("delete session value %s: %w", k, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}
