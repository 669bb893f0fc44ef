package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"task-manager/internal/logging"
	"task-manager/internal/repository"
	"task-manager/internal/validation"
)

const (
	legacyDateTimeLayout = "2006/01/02 15:04:05"
	legacySentinel       = "0000/00/00 00:00:00"
	legacyDetails        = "Non input details..."
)

func init() {
	RegisterGoMigration(2, "normalize_legacy_tasks", upNormalizeLegacyTasks, downNormalizeLegacyTasks)
}

// upNormalizeLegacyTasks rewrites rows imported from older exports:
//   - dates in dashed, RFC3339 or minute-precision layouts become yyyy/MM/dd HH:mm:ss
//   - empty dates become the sentinel
//   - blank details, or details starting with a space, become the fallback text
//
// Dates that match no known layout are left alone so the create-date
// backfill can still repair them.
func upNormalizeLegacyTasks(ctx context.Context, tx *sql.Tx, dialect repository.Dialect) error {
	type row struct {
		id         int64
		details    sql.NullString
		createDate sql.NullString
		updateDate sql.NullString
	}
	var rows []row

	// Read everything first; some drivers cannot update while a cursor is open.
	cursor, err := tx.QueryContext(ctx, "SELECT id, details, create_date, update_date FROM tasks")
	if err != nil {
		return fmt.Errorf("failed to query tasks: %w", err)
	}
	for cursor.Next() {
		var r row
		if err := cursor.Scan(&r.id, &r.details, &r.createDate, &r.updateDate); err != nil {
			cursor.Close()
			return fmt.Errorf("failed to scan task row: %w", err)
		}
		rows = append(rows, r)
	}
	if err := cursor.Err(); err != nil {
		cursor.Close()
		return fmt.Errorf("error iterating tasks: %w", err)
	}
	cursor.Close()

	updated := 0
	for _, r := range rows {
		details := normalizeLegacyDetails(r.details.String)
		createDate := normalizeLegacyDate(r.createDate.String)
		updateDate := normalizeLegacyDate(r.updateDate.String)
		if details == r.details.String && createDate == r.createDate.String && updateDate == r.updateDate.String {
			continue
		}
		query, args, err := dialect.Builder().
			Update("tasks").
			Set("details", details).
			Set("create_date", createDate).
			Set("update_date", updateDate).
			Where(squirrel.Eq{"id": r.id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build task update: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update task %d: %w", r.id, err)
		}
		updated++
	}

	logging.Debugf("normalized %d of %d task rows", updated, len(rows))
	return nil
}

// downNormalizeLegacyTasks is a no-op; the original values are not kept.
func downNormalizeLegacyTasks(ctx context.Context, tx *sql.Tx, dialect repository.Dialect) error {
	return nil
}

func normalizeLegacyDetails(details string) string {
	if !validation.IsNonEmptyString(details) || validation.StartsWithSpace(details) {
		return legacyDetails
	}
	return details
}

func normalizeLegacyDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return legacySentinel
	}
	if value == legacySentinel {
		return value
	}

	layouts := []string{
		legacyDateTimeLayout,
		"2006-01-02 15:04:05",
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006/01/02 15:04",
		"2006-01-02 15:04",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(legacyDateTimeLayout)
		}
	}
	return value
}
