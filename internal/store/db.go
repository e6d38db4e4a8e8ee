// Package store persists the smartlog's per-repository state: the set of
// commits the user has hidden and the merge-base cache. Both live in one
// SQLite database inside the .git directory.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS hidden_oids (
  oid TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS merge_base_cache (
  lhs TEXT NOT NULL,
  rhs TEXT NOT NULL,
  result TEXT NOT NULL,
  PRIMARY KEY (lhs, rhs)
);
`

// DB wraps the per-repository SQLite database.
type DB struct {
	sql *sql.DB
}

// Open opens the database at path, creating it and its schema if needed.
// Pass ":memory:" for an ephemeral database.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &DB{sql: db}, nil
}

// Close releases the underlying database handle.
func (d *DB) Close() error {
	return d.sql.Close()
}
