package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"task-manager/internal/domain"
	"task-manager/internal/repository"
	"task-manager/internal/repository/memory"
	"task-manager/internal/repository/sqlite"
)

var fixedNow = time.Date(2024, 3, 15, 14, 5, 9, 0, time.UTC)

const fixedStamp = "2024/03/15 14:05:09"

func fixedClock() TimeService {
	return NewTimeServiceWithClock(func() time.Time { return fixedNow }, time.UTC)
}

// steppingClock advances one minute on every call
func steppingClock(start time.Time) TimeService {
	current := start
	return NewTimeServiceWithClock(func() time.Time {
		now := current
		current = current.Add(time.Minute)
		return now
	}, time.UTC)
}

func setupMemoryRepo(t *testing.T) repository.Repository {
	t.Helper()
	repo := memory.New()
	t.Cleanup(func() { repo.Close() })
	return repo
}

func setupSQLiteRepo(t *testing.T) repository.Repository {
	t.Helper()
	repo, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func setupTaskService(t *testing.T) (TaskService, repository.Repository) {
	t.Helper()
	repo := setupMemoryRepo(t)
	return NewTaskService(repo, fixedClock()), repo
}

// seedTasks stores tasks exactly as given and fills in their IDs
func seedTasks(t *testing.T, repo repository.Repository, tasks ...*domain.Task) {
	t.Helper()
	mapper := domain.NewTaskMapper()
	for _, task := range tasks {
		dbTask := mapper.ToDatabase(*task)
		require.NoError(t, repo.CreateTask(context.Background(), &dbTask))
		task.ID = dbTask.ID
	}
}
