package blobstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// SQLiteStore persists datasets as rows in a local SQLite database.
// Useful when a single state file is preferred over a directory of
// JSON documents (backups, syncing).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) <dir>/state.db and ensures the
// datasets table exists.
func NewSQLiteStore(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("blobstore: create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("blobstore: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("blobstore: pragma %q: %w", p, err)
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS datasets (
		name       TEXT PRIMARY KEY,
		body       BLOB NOT NULL,
		updated_at TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("blobstore: create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Get reads a dataset row. A missing row returns (nil, nil).
func (s *SQLiteStore) Get(dataset string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRow("SELECT body FROM datasets WHERE name = ?", dataset).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading dataset %q: %w", dataset, err)
	}
	return body, nil
}

// Put upserts a dataset row.
func (s *SQLiteStore) Put(dataset string, data []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO datasets (name, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		dataset, data, now,
	)
	if err != nil {
		return fmt.Errorf("writing dataset %q: %w", dataset, err)
	}
	return nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
