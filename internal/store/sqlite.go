// Package store keeps people, families and source templates in a local
// SQLite database. It implements genealogy.Database and genealogy.Writer.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/papapumpkin/fanchart/internal/genealogy"
)

// ErrMissingFamily is returned when a child is added to a family that does
// not exist.
var ErrMissingFamily = fmt.Errorf("store: missing family: %w", genealogy.ErrNotFound)

// schema is executed on every open; IF NOT EXISTS keeps it idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS persons (
    handle     TEXT PRIMARY KEY,
    gender     INTEGER NOT NULL DEFAULT 0,
    given      TEXT NOT NULL DEFAULT '',
    surname    TEXT NOT NULL DEFAULT '',
    suffix     TEXT NOT NULL DEFAULT '',
    birth_year INTEGER NOT NULL DEFAULT 0,
    death_year INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS families (
    handle     TEXT PRIMARY KEY,
    father     TEXT NOT NULL DEFAULT '',
    mother     TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS families_father ON families(father);
CREATE INDEX IF NOT EXISTS families_mother ON families(mother);

CREATE TABLE IF NOT EXISTS family_children (
    family   TEXT NOT NULL,
    child    TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (family, child)
);

CREATE INDEX IF NOT EXISTS family_children_child ON family_children(child);

CREATE TABLE IF NOT EXISTS templates (
    handle TEXT PRIMARY KEY,
    name   TEXT NOT NULL UNIQUE,
    descr  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS template_elements (
    template  TEXT NOT NULL,
    position  INTEGER NOT NULL,
    name      TEXT NOT NULL,
    display   TEXT NOT NULL DEFAULT '',
    hint      TEXT NOT NULL DEFAULT '',
    tooltip   TEXT NOT NULL DEFAULT '',
    citation  BOOLEAN NOT NULL DEFAULT FALSE,
    short     BOOLEAN NOT NULL DEFAULT FALSE,
    short_alg TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (template, position)
);

CREATE TABLE IF NOT EXISTS template_map (
    template TEXT NOT NULL,
    key      TEXT NOT NULL,
    value    TEXT NOT NULL,
    PRIMARY KEY (template, key)
);
`

// Store is a SQLite-backed genealogical database in WAL mode.
type Store struct {
	db   *sql.DB
	path string
}

var (
	_ genealogy.Database = (*Store)(nil)
	_ genealogy.Writer   = (*Store)(nil)
)

// Open opens (or creates) the database at path, enables WAL mode and a busy
// timeout, and creates the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// One connection: SQLite has a single writer, and every connection
	// would need its own PRAGMA setup.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path is the database file.
func (s *Store) Path() string { return s.path }

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// inTx runs fn in one transaction. The transaction commits only if fn
// returns nil.
func (s *Store) inTx(ctx context.Context, what string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx for %s: %w", what, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit %s: %w", what, err)
	}
	return nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func handles(ctx context.Context, q querier, query string, args ...any) ([]genealogy.Handle, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []genealogy.Handle
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		out = append(out, genealogy.Handle(h))
	}
	return out, rows.Err()
}

func exists(ctx context.Context, q querier, table string, h genealogy.Handle) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE handle = ?", string(h)).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
