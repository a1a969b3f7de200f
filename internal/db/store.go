package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/albapepper/scoracle-assistant/internal/config"
	"github.com/albapepper/scoracle-assistant/internal/sqlbuild"
)

// ErrReadOnly is returned for statements refused by the read-only guard.
var ErrReadOnly = errors.New("read-only mode")

// Row is one result tuple in column order.
type Row []any

// Store is the read side of the league database.
type Store interface {
	// Query runs stmt inside a read-only transaction and returns every row.
	Query(ctx context.Context, stmt string, args ...any) ([]Row, error)
	// ListColumns returns the column names of table in ordinal order.
	ListColumns(ctx context.Context, table string) ([]string, error)
	Dialect() sqlbuild.Dialect
	Ping(ctx context.Context) error
	Close() error
}

// Tx is the write surface handed to InTx callbacks.
type Tx interface {
	Exec(ctx context.Context, stmt string, args ...any) error
	// QueryInt runs stmt and scans a single integer, typically RETURNING id.
	QueryInt(ctx context.Context, stmt string, args ...any) (int, error)
}

// Database is a Store that also accepts writes. Only the importer and schema
// setup use the write side.
type Database interface {
	Store
	// InTx runs fn in a read-write transaction, committing when fn returns
	// nil and rolling back otherwise.
	InTx(ctx context.Context, fn func(Tx) error) error
}

// Open connects to the database named by cfg.DatabaseURL: an embedded SQLite
// file for "sqlite:" URLs, a Postgres pool otherwise.
func Open(ctx context.Context, cfg *config.Config) (Database, error) {
	if path, ok := cfg.SQLitePath(); ok {
		return OpenSQLite(ctx, path)
	}
	return New(ctx, cfg)
}

// ApplySchema creates the league tables if they do not exist.
func ApplySchema(ctx context.Context, d Database) error {
	return d.InTx(ctx, func(tx Tx) error {
		for _, stmt := range sqlbuild.CreateTables(d.Dialect()) {
			if err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
		}
		return nil
	})
}
