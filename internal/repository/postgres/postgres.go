// Package postgres opens the task store on PostgreSQL through the pgx
// database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/repository"
	"task-manager/internal/repository/migrations"

	// Register pgx stdlib driver for database/sql usage.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DriverName is the database/sql driver registered by pgx.
const DriverName = "pgx"

const migrationLockTimeout = 45 * time.Second

// PoolConfig bounds the database/sql connection pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// OpenDB opens dsn and verifies the server answers.
func OpenDB(ctx context.Context, dsn string, pool PoolConfig) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.FromStoreError("ping database", err)
	}
	return db, nil
}

// New opens dsn, applies pending migrations under an advisory lock and
// returns the repository.
func New(ctx context.Context, dsn string, pool PoolConfig) (*repository.SQLRepository, error) {
	db, err := OpenDB(ctx, dsn, pool)
	if err != nil {
		return nil, err
	}

	if err := ApplyMigrationsWithLock(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return repository.NewSQLRepository(db, repository.DialectPostgres), nil
}

// ApplyMigrationsWithLock holds a session advisory lock while migrating so
// concurrent replicas do not race on startup.
func ApplyMigrationsWithLock(ctx context.Context, db *sql.DB) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire dedicated connection: %w", err)
	}
	defer conn.Close()

	lockCtx, cancel := context.WithTimeout(ctx, migrationLockTimeout)
	defer cancel()
	if _, err := conn.ExecContext(lockCtx, "SELECT pg_advisory_lock(hashtext($1), hashtext($2))", "task-manager", "migrations"); err != nil {
		return fmt.Errorf("acquire migration advisory lock: %w", err)
	}
	defer func() {
		if _, err := conn.ExecContext(context.WithoutCancel(ctx), "SELECT pg_advisory_unlock(hashtext($1), hashtext($2))", "task-manager", "migrations"); err != nil {
			logging.Debugf("release migration advisory lock: %v", err)
		}
	}()

	return migrations.RunMigrations(ctx, db, repository.DialectPostgres)
}
