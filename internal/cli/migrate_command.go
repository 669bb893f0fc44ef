package cli

import (
	"context"
	"fmt"

	"task-manager/internal/config"
	"task-manager/internal/repository"
	"task-manager/internal/repository/migrations"
	"task-manager/internal/repository/postgres"
)

// MigrateOptions selects what the migrate command does
type MigrateOptions struct {
	// Rollback reverts the latest applied migration instead of applying.
	Rollback bool
	// Force clears failed attempts before applying.
	Force bool
	// Status only prints the applied versions.
	Status bool
}

// MigrateCommand applies or reverts schema migrations and exits
type MigrateCommand struct {
	app          *App
	opts         MigrateOptions
	errorHandler *ErrorHandler
}

// NewMigrateCommand creates a new migrate command handler
func NewMigrateCommand(app *App, opts MigrateOptions) *MigrateCommand {
	return &MigrateCommand{
		app:          app,
		opts:         opts,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the selected migration action against the configured database
func (c *MigrateCommand) Execute(ctx context.Context, _ []string) error {
	db, dialect, err := config.OpenSQL(ctx, c.app.config)
	if err != nil {
		return err
	}
	defer db.Close()

	switch {
	case c.opts.Status:
	case c.opts.Rollback:
		version, err := migrations.Rollback(ctx, db, dialect)
		if err != nil {
			return c.errorHandler.Handle("roll back migration", err)
		}
		if version == 0 {
			c.app.printf("No migrations to roll back\n")
		} else {
			c.app.printf("Rolled back migration %d\n", version)
		}
	default:
		if c.opts.Force {
			if err := migrations.ClearDirty(ctx, db, dialect); err != nil {
				return fmt.Errorf("failed to clear dirty migrations: %w", err)
			}
		}
		if dialect == repository.DialectPostgres {
			err = postgres.ApplyMigrationsWithLock(ctx, db)
		} else {
			err = migrations.RunMigrations(ctx, db, dialect)
		}
		if err != nil {
			return c.errorHandler.Handle("apply migrations", err)
		}
		c.app.logger.Info("migrations applied", "dialect", dialect.String())
	}

	versions, err := migrations.AppliedVersions(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}
	c.app.printf("Applied migrations: %v\n", versions)
	return nil
}
