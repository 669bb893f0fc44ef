package repository

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

// Dialect identifies the SQL flavour a store speaks.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// String returns the provider name of the dialect.
func (d Dialect) String() string {
	switch d {
	case DialectSQLite:
		return "sqlite"
	case DialectPostgres:
		return "postgres"
	default:
		return "unknown"
	}
}

// ParseDialect maps a provider name to its Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pgx":
		return DialectPostgres, nil
	default:
		return 0, fmt.Errorf("unknown sql dialect %q", name)
	}
}

// SupportsLastInsertID reports whether sql.Result.LastInsertId works for the driver.
func (d Dialect) SupportsLastInsertID() bool {
	return d == DialectSQLite
}

// Placeholder returns the bind style the driver expects.
func (d Dialect) Placeholder() squirrel.PlaceholderFormat {
	if d == DialectPostgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}

// Builder returns a statement builder that emits the dialect's placeholders.
func (d Dialect) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(d.Placeholder())
}
