// Package migrations applies the versioned task schema. SQL migrations are
// embedded per dialect; data migrations that need Go register themselves
// with RegisterGoMigration.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"

	"task-manager/internal/logging"
	"task-manager/internal/repository"
)

//go:embed sqlite/*.sql postgres/*.sql
var migrationsFS embed.FS

// GoMigrationFunc runs a data migration inside the migration transaction.
type GoMigrationFunc func(ctx context.Context, tx *sql.Tx, dialect repository.Dialect) error

// Migration represents a database migration
type Migration struct {
	Version  int
	Name     string
	Up       string
	Down     string
	UpFunc   GoMigrationFunc
	DownFunc GoMigrationFunc
}

var goMigrations = map[int]Migration{}

// RegisterGoMigration adds a migration implemented in Go. It panics on a
// duplicate version since registration happens from init.
func RegisterGoMigration(version int, name string, up, down GoMigrationFunc) {
	if _, exists := goMigrations[version]; exists {
		panic(fmt.Sprintf("migrations: duplicate go migration version %d", version))
	}
	goMigrations[version] = Migration{Version: version, Name: name, UpFunc: up, DownFunc: down}
}

// DirtyError reports versions whose last attempt failed.
type DirtyError struct {
	Versions []int
}

func (e *DirtyError) Error() string {
	return fmt.Sprintf("database is in a dirty state; failed migration(s): %v", e.Versions)
}

// RunMigrations executes all pending migrations for dialect
func RunMigrations(ctx context.Context, db *sql.DB, dialect repository.Dialect) error {
	if err := createMigrationsTable(ctx, db, dialect); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	dirty, err := getDirtyMigrations(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to check migration state: %w", err)
	}
	if len(dirty) > 0 {
		return &DirtyError{Versions: dirty}
	}

	migrations, err := Load(dialect)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	applied, err := getAppliedMigrations(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range migrations {
		if applied[migration.Version] {
			continue
		}
		logging.Debugf("applying %s migration %d (%s)", dialect, migration.Version, migration.Name)
		if err := applyMigration(ctx, db, dialect, migration); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// Rollback reverts the most recently applied migration and returns its
// version, or 0 when nothing is applied.
func Rollback(ctx context.Context, db *sql.DB, dialect repository.Dialect) (int, error) {
	if err := createMigrationsTable(ctx, db, dialect); err != nil {
		return 0, fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := getAppliedMigrations(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	migrations, err := Load(dialect)
	if err != nil {
		return 0, fmt.Errorf("failed to load migrations: %w", err)
	}

	for i := len(migrations) - 1; i >= 0; i-- {
		migration := migrations[i]
		if !applied[migration.Version] {
			continue
		}
		if err := revertMigration(ctx, db, dialect, migration); err != nil {
			return 0, fmt.Errorf("failed to revert migration %d: %w", migration.Version, err)
		}
		return migration.Version, nil
	}
	return 0, nil
}

// ClearDirty forgets failed attempts so RunMigrations can retry them.
func ClearDirty(ctx context.Context, db *sql.DB, dialect repository.Dialect) error {
	if err := createMigrationsTable(ctx, db, dialect); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, "DELETE FROM migrations WHERE dirty = TRUE")
	return err
}

// AppliedVersions lists the successfully applied versions in ascending order.
func AppliedVersions(ctx context.Context, db *sql.DB) ([]int, error) {
	applied, err := getAppliedMigrations(ctx, db)
	if err != nil {
		return nil, err
	}
	versions := make([]int, 0, len(applied))
	for v := range applied {
		versions = append(versions, v)
	}
	sort.Ints(versions)
	return versions, nil
}

func createMigrationsTable(ctx context.Context, db *sql.DB, dialect repository.Dialect) error {
	appliedAt := "DATETIME DEFAULT CURRENT_TIMESTAMP"
	if dialect == repository.DialectPostgres {
		appliedAt = "TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP"
	}
	query := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS migrations (
		version INTEGER PRIMARY KEY,
		applied_at %s,
		dirty BOOLEAN NOT NULL DEFAULT FALSE
	)`, appliedAt)
	_, err := db.ExecContext(ctx, query)
	return err
}

// Load returns the SQL and Go migrations for dialect sorted by version.
func Load(dialect repository.Dialect) ([]Migration, error) {
	sub, err := fs.Sub(migrationsFS, dialect.String())
	if err != nil {
		return nil, err
	}
	return loadMigrations(sub)
}

func loadMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	byVersion := make(map[int]Migration, len(goMigrations))
	for v, m := range goMigrations {
		byVersion[v] = m
	}

	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		version := extractVersion(entry.Name())
		if version == 0 {
			continue
		}
		if _, exists := byVersion[version]; exists {
			return nil, fmt.Errorf("migration version %d defined twice", version)
		}

		upSQL, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, err
		}

		downFile := strings.Replace(entry.Name(), ".up.sql", ".down.sql", 1)
		downSQL, err := fs.ReadFile(fsys, downFile)
		if err != nil {
			return nil, err
		}

		byVersion[version] = Migration{
			Version: version,
			Name:    extractName(entry.Name()),
			Up:      string(upSQL),
			Down:    string(downSQL),
		}
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		migrations = append(migrations, m)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

func getAppliedMigrations(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM migrations WHERE dirty = FALSE")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func getDirtyMigrations(ctx context.Context, db *sql.DB) ([]int, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM migrations WHERE dirty = TRUE ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dirty []int
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		dirty = append(dirty, version)
	}
	return dirty, rows.Err()
}

func applyMigration(ctx context.Context, db *sql.DB, dialect repository.Dialect, migration Migration) error {
	err := repository.WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := runStep(ctx, tx, dialect, migration.Up, migration.UpFunc); err != nil {
			return err
		}
		return recordMigration(ctx, tx, dialect, migration.Version, false)
	})
	if err != nil {
		if markErr := recordMigration(ctx, db, dialect, migration.Version, true); markErr != nil {
			logging.Debugf("could not mark migration %d dirty: %v", migration.Version, markErr)
		}
		return err
	}
	return nil
}

func revertMigration(ctx context.Context, db *sql.DB, dialect repository.Dialect, migration Migration) error {
	return repository.WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := runStep(ctx, tx, dialect, migration.Down, migration.DownFunc); err != nil {
			return err
		}
		query, args, err := dialect.Builder().
			Delete("migrations").
			Where(squirrel.Eq{"version": migration.Version}).
			ToSql()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, query, args...)
		return err
	})
}

func recordMigration(ctx context.Context, exec repository.DBTX, dialect repository.Dialect, version int, dirty bool) error {
	flag := "FALSE"
	if dirty {
		flag = "TRUE"
	}
	query, args, err := dialect.Builder().
		Insert("migrations").
		Columns("version", "dirty").
		Values(version, squirrel.Expr(flag)).
		ToSql()
	if err != nil {
		return err
	}
	_, err = exec.ExecContext(ctx, query, args...)
	return err
}

func runStep(ctx context.Context, tx *sql.Tx, dialect repository.Dialect, script string, fn GoMigrationFunc) error {
	if fn != nil {
		return fn(ctx, tx, dialect)
	}
	if strings.TrimSpace(script) == "" {
		return nil
	}
	_, err := tx.ExecContext(ctx, script)
	return err
}

func extractVersion(filename string) int {
	var version int
	fmt.Sscanf(filename, "%d_", &version)
	return version
}

func extractName(filename string) string {
	name := strings.TrimSuffix(filename, ".up.sql")
	if i := strings.Index(name, "_"); i >= 0 {
		return name[i+1:]
	}
	return name
}
