// Package memory provides a process-local task store used for development
// and tests.
package memory

import (
	"context"
	stderrors "errors"
	"sort"
	"sync"

	"task-manager/internal/errors"
	"task-manager/internal/repository"
)

var errClosed = stderrors.New("memory store is closed")

// Store keeps tasks in a map guarded by a RWMutex.
type Store struct {
	mu     sync.RWMutex
	tasks  map[int64]*repository.Task
	nextID int64
	closed bool
}

// New returns an empty store.
func New() *Store {
	return &Store{
		tasks:  make(map[int64]*repository.Task),
		nextID: 1,
	}
}

func (s *Store) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return errors.FromStoreError(op, err)
	}
	if s.closed {
		return errors.NewDatabaseError(op, errClosed)
	}
	return nil
}

// CreateTask stores a copy of task and assigns its ID.
func (s *Store) CreateTask(ctx context.Context, task *repository.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "create task"); err != nil {
		return err
	}

	task.ID = s.nextID
	s.nextID++
	s.tasks[task.ID] = task.Clone()
	return nil
}

// GetTask returns a copy of the task with id.
func (s *Store) GetTask(ctx context.Context, id int64) (*repository.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx, "get task"); err != nil {
		return nil, err
	}

	task, ok := s.tasks[id]
	if !ok {
		return nil, errors.NewNotFoundError("task", repository.FormatID(id))
	}
	return task.Clone(), nil
}

// ListTasks returns copies of all tasks ordered by ID.
func (s *Store) ListTasks(ctx context.Context) ([]*repository.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx, "list tasks"); err != nil {
		return nil, err
	}

	out := make([]*repository.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		out = append(out, task.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateTask replaces the stored task with the same ID.
func (s *Store) UpdateTask(ctx context.Context, task *repository.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "update task"); err != nil {
		return err
	}

	if _, ok := s.tasks[task.ID]; !ok {
		return errors.NewNotFoundError("task", repository.FormatID(task.ID))
	}
	s.tasks[task.ID] = task.Clone()
	return nil
}

// DeleteTask removes the task with id.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "delete task"); err != nil {
		return err
	}

	if _, ok := s.tasks[id]; !ok {
		return errors.NewNotFoundError("task", repository.FormatID(id))
	}
	delete(s.tasks, id)
	return nil
}

// DeleteTasks removes every listed task under one lock.
func (s *Store) DeleteTasks(ctx context.Context, ids []int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "delete tasks"); err != nil {
		return 0, err
	}

	var deleted int64
	for _, id := range ids {
		if _, ok := s.tasks[id]; ok {
			delete(s.tasks, id)
			deleted++
		}
	}
	return deleted, nil
}

// Ping reports whether the store is still open.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.check(ctx, "ping")
}

// Close marks the store closed. Later calls fail with a database error.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

var _ repository.Repository = (*Store)(nil)
