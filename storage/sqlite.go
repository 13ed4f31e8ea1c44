package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver.
)

const createCartRecords = `
CREATE TABLE IF NOT EXISTS cart_records (
	cart_key   TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	updated_at TEXT NOT NULL
)`

const upsertCartRecord = `
INSERT INTO cart_records (cart_key, body, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(cart_key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`

// SQLiteBackend stores records in a single SQLite table.
type SQLiteBackend struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (or creates) the database at path. ":memory:" is accepted.
func OpenSQLite(ctx context.Context, path string) (*SQLiteBackend, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite storage requires a database path")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, BackendError("open", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createCartRecords); err != nil {
		_ = db.Close()
		return nil, BackendError("open", fmt.Errorf("failed to create cart_records: %w", err))
	}
	return &SQLiteBackend{db: db, now: time.Now}, nil
}

func (s *SQLiteBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM cart_records WHERE cart_key = ?`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFoundError("get")
	}
	if err != nil {
		return nil, BackendError("get", err)
	}
	return body, nil
}

func (s *SQLiteBackend) Put(ctx context.Context, key string, body []byte) error {
	stamp := s.now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, upsertCartRecord, key, body, stamp); err != nil {
		return BackendError("put", err)
	}
	return nil
}

func (s *SQLiteBackend) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cart_records WHERE cart_key = ?`, key); err != nil {
		return BackendError("delete", err)
	}
	return nil
}

// UpdatedAt reports when key was last written.
func (s *SQLiteBackend) UpdatedAt(ctx context.Context, key string) (time.Time, error) {
	var stamp string
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM cart_records WHERE cart_key = ?`, key).Scan(&stamp)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, NotFoundError("updated_at")
	}
	if err != nil {
		return time.Time{}, BackendError("updated_at", err)
	}
	t, err := time.Parse(time.RFC3339Nano, stamp)
	if err != nil {
		return time.Time{}, CorruptError("updated_at", err)
	}
	return t, nil
}

func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
