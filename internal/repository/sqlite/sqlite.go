// Package sqlite opens the task store on modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	"task-manager/internal/errors"
	"task-manager/internal/repository"
	"task-manager/internal/repository/migrations"

	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// OpenDB opens dsn without touching the schema. A single connection is kept
// so an in-memory database is shared by every query.
func OpenDB(dsn string) (*sql.DB, error) {
	if err := ensureDir(dsn); err != nil {
		return nil, errors.NewDatabaseError("create database directory", err)
	}

	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("configure database", err)
	}
	return db, nil
}

// New opens dsn, applies pending migrations and returns the repository.
func New(ctx context.Context, dsn string) (*repository.SQLRepository, error) {
	db, err := OpenDB(dsn)
	if err != nil {
		return nil, err
	}

	if err := migrations.RunMigrations(ctx, db, repository.DialectSQLite); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return repository.NewSQLRepository(db, repository.DialectSQLite), nil
}

func ensureDir(dsn string) error {
	path := dsn
	if strings.HasPrefix(path, "file:") {
		path = strings.TrimPrefix(path, "file:")
	}
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
