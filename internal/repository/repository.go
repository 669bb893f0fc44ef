package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
)

// Repository defines the interface for task storage operations
type Repository interface {
	// Create operations
	CreateTask(ctx context.Context, task *Task) error

	// Read operations
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)

	// Update operations
	UpdateTask(ctx context.Context, task *Task) error

	// Delete operations
	DeleteTask(ctx context.Context, id int64) error
	DeleteTasks(ctx context.Context, ids []int64) (int64, error)

	// Utility
	Ping(ctx context.Context) error
	Close() error
}

// SQLRepository implements Repository over database/sql for any Dialect
type SQLRepository struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLRepository wraps an open database handle. The schema must already exist.
func NewSQLRepository(db *sql.DB, dialect Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

// DB exposes the underlying handle for migrations and tests.
func (r *SQLRepository) DB() *sql.DB {
	return r.db
}

// Dialect reports the SQL flavour the repository speaks.
func (r *SQLRepository) Dialect() Dialect {
	return r.dialect
}

// Close closes the database connection
func (r *SQLRepository) Close() error {
	return r.db.Close()
}

// Ping checks that the database is reachable
func (r *SQLRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return HandleDatabaseError("ping", err)
	}
	return nil
}

var taskColumns = []string{"id", "name", "details", "create_date", "update_date"}

// CreateTask inserts a task and sets its ID
func (r *SQLRepository) CreateTask(ctx context.Context, task *Task) error {
	insert := r.dialect.Builder().
		Insert("tasks").
		Columns("name", "details", "create_date", "update_date").
		Values(task.Name, task.Details, task.CreateDate, task.UpdateDate)
	if !r.dialect.SupportsLastInsertID() {
		insert = insert.Suffix("RETURNING id")
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return HandleDatabaseError("build insert", err)
	}

	var id int64
	if r.dialect.SupportsLastInsertID() {
		id, err = ExecuteWithLastInsertID(ctx, r.db, query, args...)
	} else {
		id, err = QueryReturningID(ctx, r.db, query, args...)
	}
	if err != nil {
		return err
	}

	task.ID = id
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLRepository) GetTask(ctx context.Context, id int64) (*Task, error) {
	query, args, err := r.dialect.Builder().
		Select(taskColumns...).
		From("tasks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, HandleDatabaseError("build select", err)
	}

	return QuerySingle(ctx, r.db, query, ScanTask, "task", FormatID(id), args...)
}

// ListTasks retrieves all tasks ordered by ID
func (r *SQLRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	query, args, err := r.dialect.Builder().
		Select(taskColumns...).
		From("tasks").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, HandleDatabaseError("build select", err)
	}

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", args...)
}

// UpdateTask saves every column of an existing task
func (r *SQLRepository) UpdateTask(ctx context.Context, task *Task) error {
	query, args, err := r.dialect.Builder().
		Update("tasks").
		Set("name", task.Name).
		Set("details", task.Details).
		Set("create_date", task.CreateDate).
		Set("update_date", task.UpdateDate).
		Where(squirrel.Eq{"id": task.ID}).
		ToSql()
	if err != nil {
		return HandleDatabaseError("build update", err)
	}

	return ExecuteWithRowsAffected(ctx, r.db, query, "task", FormatID(task.ID), args...)
}

// DeleteTask deletes a task by ID
func (r *SQLRepository) DeleteTask(ctx context.Context, id int64) error {
	query, args, err := r.dialect.Builder().
		Delete("tasks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return HandleDatabaseError("build delete", err)
	}

	return ExecuteWithRowsAffected(ctx, r.db, query, "task", FormatID(id), args...)
}

// DeleteTasks removes every listed task in one transaction and returns how
// many rows went away. Unknown IDs are ignored.
func (r *SQLRepository) DeleteTasks(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := r.dialect.Builder().
		Delete("tasks").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return 0, HandleDatabaseError("build delete", err)
	}

	var deleted int64
	err = WithTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return HandleDatabaseError("delete tasks", err)
		}
		deleted, err = result.RowsAffected()
		if err != nil {
			return HandleDatabaseError("get rows affected", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

var _ Repository = (*SQLRepository)(nil)
