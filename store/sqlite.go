// SPDX-License-Identifier: MIT
// Package: gnnlimit/store
//
// sqlite.go - Backend on a single SQLite file (pure-Go driver).

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver
)

// sqliteSchemaVersion is the current layout of the artifacts database.
const sqliteSchemaVersion = 1

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS artifacts (
    key   TEXT PRIMARY KEY,
    value BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS schema_version (
    version    INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
);
`

// SQLite is a Backend stored in one SQLite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and its
// parent directory.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("OpenSQLite: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("OpenSQLite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err = initSQLiteSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenSQLite: %w", err)
	}

	return &SQLite{db: db}, nil
}

// initSQLiteSchema creates the tables on first use and rejects databases
// written with a newer layout.
func initSQLiteSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	var version sql.NullInt64
	if err = tx.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_version`).Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	switch {
	case !version.Valid:
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO schema_version (version, applied_at) VALUES (?, datetime('now'))`,
			sqliteSchemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	case version.Int64 > sqliteSchemaVersion:
		return fmt.Errorf("database schema v%d, supported v%d: %w", version.Int64, sqliteSchemaVersion, ErrSchemaMismatch)
	}

	return tx.Commit()
}

// Get implements Backend.
func (s *SQLite) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(context.Background(),
		`SELECT value FROM artifacts WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Put implements Backend.
func (s *SQLite) Put(key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO artifacts (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Keys implements Backend.
func (s *SQLite) Keys(prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(context.Background(),
		`SELECT key FROM artifacts WHERE substr(key, 1, length(?)) = ? ORDER BY key`, prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("keys %q: %w", prefix, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err = rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("keys %q: %w", prefix, err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// Close implements Backend.
func (s *SQLite) Close() error { return s.db.Close() }
