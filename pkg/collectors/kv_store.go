package collectors

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteKV is a string key-value store backed by a single SQLite table.
type SQLiteKV struct {
	db *sql.DB
}

func NewSQLiteKV(db *sql.DB) (*SQLiteKV, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	kv := &SQLiteKV{db: db}
	if err := kv.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return kv, nil
}

func (s *SQLiteKV) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	`

	_, err := s.db.Exec(query)
	return err
}

// Get returns the value stored under key; ok is false when nothing was ever written.
func (s *SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key: %w", err)
	}

	return value, true, nil
}

// Set replaces the whole value stored under key.
func (s *SQLiteKV) Set(ctx context.Context, key string, value string) error {
	query := `
	INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to set key: %w", err)
	}

	return nil
}
