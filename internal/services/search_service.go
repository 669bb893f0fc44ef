package services

import (
	"context"
	"strings"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/repository"
	"task-manager/internal/validation"
)

// searchServiceImpl implements the SearchService interface
type searchServiceImpl struct {
	repo          repository.Repository
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
}

// NewSearchService creates a new SearchService instance
func NewSearchService(repo repository.Repository) SearchService {
	return &searchServiceImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidator(),
	}
}

// scan lists every task and keeps the ones match accepts
func (s *searchServiceImpl) scan(ctx context.Context, match func(domain.Task) bool) ([]domain.Task, error) {
	dbTasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, errors.FromStoreError("list tasks", err)
	}

	matched := make([]domain.Task, 0)
	for _, task := range s.mapper.Task.FromDatabaseSlice(dbTasks) {
		if match(task) {
			matched = append(matched, task)
		}
	}
	return matched, nil
}

// Search dispatches to the date or keyword search depending on opts
func (s *searchServiceImpl) Search(ctx context.Context, opts domain.SearchOptions) ([]domain.Task, error) {
	if opts.Date != "" {
		return s.SearchByDate(ctx, opts.Date)
	}
	return s.SearchByKeyword(ctx, opts.Keyword)
}

// SearchByKeyword returns tasks whose name or details contain keyword.
// Tasks with an empty name or details are skipped.
func (s *searchServiceImpl) SearchByKeyword(ctx context.Context, keyword string) ([]domain.Task, error) {
	if err := s.taskValidator.ValidateKeyword(keyword); err != nil {
		return nil, err
	}

	tasks, err := s.scan(ctx, func(task domain.Task) bool {
		if task.Name == "" || task.Details == "" {
			return false
		}
		return strings.Contains(task.Name, keyword) || strings.Contains(task.Details, keyword)
	})
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, errors.NewNotFoundEmptyError("tasks", keyword)
	}
	return tasks, nil
}

// SearchByDate returns tasks created or updated on date (yyyy/MM/dd)
func (s *searchServiceImpl) SearchByDate(ctx context.Context, date string) ([]domain.Task, error) {
	if err := s.taskValidator.ValidateDateString(date, domain.DateLayout); err != nil {
		return nil, err
	}

	tasks, err := s.scan(ctx, func(task domain.Task) bool {
		return strings.Contains(task.CreateDate, date) || strings.Contains(task.UpdateDate, date)
	})
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, errors.NewNotFoundEmptyError("tasks", date)
	}
	return tasks, nil
}

// DeleteByCreateDate removes every task created on date in one store
// transaction and returns how many were removed
func (s *searchServiceImpl) DeleteByCreateDate(ctx context.Context, date string) (int64, error) {
	if err := s.taskValidator.ValidateDateString(date, domain.DateLayout); err != nil {
		return 0, err
	}

	tasks, err := s.scan(ctx, func(task domain.Task) bool {
		return strings.Contains(task.CreateDate, date)
	})
	if err != nil {
		return 0, err
	}
	if len(tasks) == 0 {
		return 0, errors.NewNotFoundEmptyError("tasks", date)
	}

	ids := make([]int64, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}

	deleted, err := s.repo.DeleteTasks(ctx, ids)
	if err != nil {
		return 0, errors.FromStoreError("delete tasks", err)
	}
	logging.Debugf("deleted %d task(s) created on %s: %v", deleted, date, repository.FormatIDs(ids))
	return deleted, nil
}
