package services

import (
	"context"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/repository"
	"task-manager/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          repository.Repository
	timeService   TimeService
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
	merger        *Merger
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo repository.Repository, timeService TimeService) TaskService {
	taskValidator := validation.NewTaskValidator()
	return &taskServiceImpl{
		repo:          repo,
		timeService:   timeService,
		mapper:        domain.NewMapper(),
		taskValidator: taskValidator,
		merger:        NewMerger(taskValidator, timeService),
	}
}

// findTask loads a task, returning nil without error when it does not exist
func (t *taskServiceImpl) findTask(ctx context.Context, id int64) (*domain.Task, error) {
	dbTask, err := t.repo.GetTask(ctx, id)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, nil
		}
		return nil, errors.FromStoreError("get task", err)
	}

	domainTask := t.mapper.Task.FromDatabase(*dbTask)
	return &domainTask, nil
}

// save writes every column of task and returns the stored copy
func (t *taskServiceImpl) save(ctx context.Context, task domain.Task) (*domain.Task, error) {
	dbTask := t.mapper.Task.ToDatabase(task)
	if err := t.repo.UpdateTask(ctx, &dbTask); err != nil {
		return nil, errors.FromStoreError("update task", err)
	}

	domainTask := t.mapper.Task.FromDatabase(dbTask)
	return &domainTask, nil
}

// CreateTask validates input and stores a new task
func (t *taskServiceImpl) CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	task, err := t.merger.NewTask(input)
	if err != nil {
		return nil, err
	}

	dbTask := t.mapper.Task.ToDatabase(task)
	if err := t.repo.CreateTask(ctx, &dbTask); err != nil {
		return nil, errors.FromStoreError("create task", err)
	}

	domainTask := t.mapper.Task.FromDatabase(dbTask)
	return &domainTask, nil
}

// GetTask retrieves a task by its ID
func (t *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, err
	}

	task, err := t.findTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, errors.NewNotFoundError("task", repository.FormatID(id))
	}
	return task, nil
}

// ListTasks returns every task ordered by ID. An empty store yields an empty slice.
func (t *taskServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	dbTasks, err := t.repo.ListTasks(ctx)
	if err != nil {
		return nil, errors.FromStoreError("list tasks", err)
	}
	return t.mapper.Task.FromDatabaseSlice(dbTasks), nil
}

// UpdateTask replaces name and details and refreshes the update date
func (t *taskServiceImpl) UpdateTask(ctx context.Context, id int64, input domain.TaskInput) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, err
	}

	existing, err := t.findTask(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, err := t.merger.MergeUpdate(id, existing, input)
	if err != nil {
		return nil, err
	}
	return t.save(ctx, merged)
}

// SetCreateDate backfills the create date of a task that never had one
func (t *taskServiceImpl) SetCreateDate(ctx context.Context, id int64, createDate string) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, err
	}

	existing, err := t.findTask(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, err := t.merger.BackfillCreateDate(id, existing, createDate)
	if err != nil {
		return nil, err
	}
	return t.save(ctx, merged)
}

// DeleteTask deletes a task by ID
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return err
	}

	if err := t.repo.DeleteTask(ctx, id); err != nil {
		return errors.FromStoreError("delete task", err)
	}
	return nil
}
