package services

import (
	"context"
	"time"

	"task-manager/internal/domain"
)

// TaskSummary counts tasks by lifecycle state
type TaskSummary struct {
	Total             int `json:"total"`
	Updated           int `json:"updated"`
	NeverUpdated      int `json:"neverUpdated"`
	MissingCreateDate int `json:"missingCreateDate"`
}

// TimeService supplies the current time in the configured location
type TimeService interface {
	Now() time.Time
	Timestamp() string
	Location() *time.Location
}

// TaskService handles task lifecycle operations
type TaskService interface {
	// Task CRUD operations
	CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	UpdateTask(ctx context.Context, id int64, input domain.TaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error

	// Create-date backfill
	SetCreateDate(ctx context.Context, id int64, createDate string) (*domain.Task, error)
}

// SearchService handles linear-scan search and bulk delete operations
type SearchService interface {
	Search(ctx context.Context, opts domain.SearchOptions) ([]domain.Task, error)
	SearchByKeyword(ctx context.Context, keyword string) ([]domain.Task, error)
	SearchByDate(ctx context.Context, date string) ([]domain.Task, error)
	DeleteByCreateDate(ctx context.Context, date string) (int64, error)
}

// ReportingService handles aggregate views over the task list
type ReportingService interface {
	GetSummary(ctx context.Context) (*TaskSummary, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TimeService      TimeService
	TaskService      TaskService
	SearchService    SearchService
	ReportingService ReportingService
}
