// Package storage persists the payroll ledger as whole-document snapshots.
//
// There is deliberately no row-per-entity schema: the PayrollBook is one
// JSON document under one fixed key, read once at startup and fully
// overwritten after every mutation.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load returns the document stored under key. The second return value is
// false when no snapshot exists yet (first run).
func (r *SQLiteRepository) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var document string
	err := r.db.QueryRowContext(ctx,
		`SELECT document FROM snapshots WHERE key = ?`, key).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot %q: %w", key, err)
	}
	return []byte(document), true, nil
}

// Save overwrites the document under key in one statement. There is no
// delta path: every persisted state is the full aggregate.
func (r *SQLiteRepository) Save(ctx context.Context, key string, document []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, document, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET document = excluded.document, updated_at = CURRENT_TIMESTAMP`,
		key, string(document))
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}

	slog.DebugContext(ctx, "Snapshot saved", "key", key, "bytes", len(document))
	return nil
}

// MemoryRepository is the in-process snapshot store used by tests and the
// memory data backend.
type MemoryRepository struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: make(map[string][]byte)}
}

func (r *MemoryRepository) Load(_ context.Context, key string) ([]byte, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), doc...), true, nil
}

func (r *MemoryRepository) Save(_ context.Context, key string, document []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[key] = append([]byte(nil), document...)
	return nil
}

func (r *MemoryRepository) Close() error { return nil }
