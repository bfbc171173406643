package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/yeshlogin/internal/client/storage/migrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// DB is the SQLite-backed Durable store.
type DB struct {
	*SQLiteRepository
	db *sql.DB
}

// RunMigrations applies the embedded schema migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the SQLite database at dsn and migrates it.
// The pool is limited to one connection: the store is tiny, and in-memory
// DSNs would otherwise hand out a different empty database per connection.
func Open(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate storage: %w", err)
	}

	return &DB{SQLiteRepository: NewSQLiteRepository(db), db: db}, nil
}

// Atomically runs fn against a transaction-bound repository. Everything fn
// writes is committed together or not at all.
func (d *DB) Atomically(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
	return WithTx(ctx, d.db, nil, func(ctx context.Context, tx DBTX) error {
		return fn(ctx, NewSQLiteRepository(tx))
	})
}

func (d *DB) Close() error {
	return d.db.Close()
}
