package config

import (
	"context"
	"database/sql"
	"fmt"

	"task-manager/internal/repository"
	"task-manager/internal/repository/memory"
	"task-manager/internal/repository/postgres"
	"task-manager/internal/repository/sqlite"
)

// ResolveDSN returns the connection string for the configured provider.
// An explicit DSN always wins.
func ResolveDSN(config *Config) (string, error) {
	if config.Database.DSN != "" {
		return config.Database.DSN, nil
	}

	switch config.Database.Provider {
	case ProviderMemory:
		return "", nil
	case ProviderSQLite:
		if config.IsTesting() {
			return ":memory:", nil
		}
		return config.GetDatabasePath(), nil
	case ProviderPostgres:
		return "", &ConfigError{Field: "database.dsn", Message: "postgres requires a connection string"}
	default:
		return "", &ConfigError{Field: "database.provider", Message: "unknown provider " + config.Database.Provider}
	}
}

// CreateRepository creates a migrated repository for the configured provider
func CreateRepository(ctx context.Context, config *Config) (repository.Repository, error) {
	dsn, err := ResolveDSN(config)
	if err != nil {
		return nil, err
	}

	switch config.Database.Provider {
	case ProviderMemory:
		return memory.New(), nil
	case ProviderSQLite:
		repo, err := sqlite.New(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	case ProviderPostgres:
		repo, err := postgres.New(ctx, dsn, poolConfig(config))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	default:
		return nil, &ConfigError{Field: "database.provider", Message: "unknown provider " + config.Database.Provider}
	}
}

// OpenSQL opens the configured SQL database without applying migrations.
// The memory provider has no SQL database and is rejected.
func OpenSQL(ctx context.Context, config *Config) (*sql.DB, repository.Dialect, error) {
	if config.Database.Provider == ProviderMemory {
		return nil, 0, &ConfigError{Field: "database.provider", Message: "the memory provider has no schema to migrate"}
	}

	dialect, err := config.dialect()
	if err != nil {
		return nil, 0, &ConfigError{Field: "database.provider", Message: err.Error()}
	}
	dsn, err := ResolveDSN(config)
	if err != nil {
		return nil, 0, err
	}

	var db *sql.DB
	switch dialect {
	case repository.DialectPostgres:
		db, err = postgres.OpenDB(ctx, dsn, poolConfig(config))
	default:
		db, err = sqlite.OpenDB(dsn)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open database: %w", err)
	}
	return db, dialect, nil
}

func poolConfig(config *Config) postgres.PoolConfig {
	return postgres.PoolConfig{
		MaxOpenConns:    config.Database.MaxOpenConns,
		MaxIdleConns:    config.Database.MaxIdleConns,
		ConnMaxLifetime: config.Database.ConnMaxLifetime,
	}
}
