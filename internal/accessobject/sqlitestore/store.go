// Package sqlitestore is a reference binding of the Access Object
// contract (internal/accessobject) on top of database/sql and
// github.com/ncruces/go-sqlite3, generalizing the teacher's
// internal/storage package (meta.go/project.go/schema.go) from a
// projects+knowledge-graph shape to the type-system+entity-graph shape
// this facade needs.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Store owns the raw database handle. It is not itself an
// accessobject.AccessObject — callers obtain one scoped to a
// transaction via Bind, or bound directly to the raw connection via
// BindUnbound for schema-lifecycle calls that run outside any business
// transaction.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database file at path, configured
// the way the teacher's OpenProject/OpenMeta configure theirs.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)",
		path,
	)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open metadata store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping metadata store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the raw handle for the transaction executor (internal/txn
// /sqlitetxn), which owns Begin/Commit/Rollback.
func (s *Store) DB() *sql.DB {
	return s.db
}

// queryExecer is satisfied by both *sql.DB and *sql.Tx, so BoundStore
// works identically whether bound to a live transaction or the raw
// connection (used only for schema-lifecycle operations).
type queryExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// BoundStore implements accessobject.AccessObject against whatever
// queryExecer it was constructed with.
type BoundStore struct {
	q queryExecer
}

// Bind returns an AccessObject bound to a live transaction.
func Bind(tx *sql.Tx) *BoundStore {
	return &BoundStore{q: tx}
}

// BindUnbound returns an AccessObject bound directly to the raw
// connection, for schema-lifecycle calls outside a business
// transaction (Init*/Downgrade).
func (s *Store) BindUnbound() *BoundStore {
	return &BoundStore{q: s.db}
}
