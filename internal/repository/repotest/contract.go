// Package repotest holds a behaviour suite every repository.Repository
// implementation is run against.
package repotest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/errors"
	"task-manager/internal/repository"
)

// Factory returns a fresh, empty repository for one subtest.
type Factory func(t *testing.T) repository.Repository

func sample(name string) *repository.Task {
	return &repository.Task{
		Name:       name,
		Details:    "details of " + name,
		CreateDate: "2024/01/02 09:30:00",
		UpdateDate: "0000/00/00 00:00:00",
	}
}

// Run exercises the full Repository contract.
func Run(t *testing.T, newRepo Factory) {
	ctx := context.Background()

	t.Run("create assigns increasing ids", func(t *testing.T) {
		repo := newRepo(t)
		first := sample("first")
		second := sample("second")

		require.NoError(t, repo.CreateTask(ctx, first))
		require.NoError(t, repo.CreateTask(ctx, second))

		assert.Positive(t, first.ID)
		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("get returns stored columns", func(t *testing.T) {
		repo := newRepo(t)
		task := sample("Buy milk")
		require.NoError(t, repo.CreateTask(ctx, task))

		got, err := repo.GetTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task, got)
	})

	t.Run("get missing task is not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetTask(ctx, 9999)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})

	t.Run("list is empty then ordered by id", func(t *testing.T) {
		repo := newRepo(t)

		tasks, err := repo.ListTasks(ctx)
		require.NoError(t, err)
		assert.Empty(t, tasks)

		for _, name := range []string{"c", "a", "b"} {
			require.NoError(t, repo.CreateTask(ctx, sample(name)))
		}

		tasks, err = repo.ListTasks(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, "c", tasks[0].Name)
		assert.Equal(t, "a", tasks[1].Name)
		assert.Equal(t, "b", tasks[2].Name)
	})

	t.Run("update saves every column", func(t *testing.T) {
		repo := newRepo(t)
		task := sample("old")
		require.NoError(t, repo.CreateTask(ctx, task))

		task.Name = "new"
		task.Details = "changed"
		task.UpdateDate = "2024/02/03 10:00:00"
		require.NoError(t, repo.UpdateTask(ctx, task))

		got, err := repo.GetTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task, got)
	})

	t.Run("update missing task is not found", func(t *testing.T) {
		repo := newRepo(t)
		task := sample("ghost")
		task.ID = 4242

		err := repo.UpdateTask(ctx, task)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})

	t.Run("delete removes task", func(t *testing.T) {
		repo := newRepo(t)
		task := sample("doomed")
		require.NoError(t, repo.CreateTask(ctx, task))

		require.NoError(t, repo.DeleteTask(ctx, task.ID))

		_, err := repo.GetTask(ctx, task.ID)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
		err = repo.DeleteTask(ctx, task.ID)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})

	t.Run("batch delete counts removed rows", func(t *testing.T) {
		repo := newRepo(t)
		a, b, c := sample("a"), sample("b"), sample("c")
		for _, task := range []*repository.Task{a, b, c} {
			require.NoError(t, repo.CreateTask(ctx, task))
		}

		deleted, err := repo.DeleteTasks(ctx, []int64{a.ID, c.ID, 987654})
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		tasks, err := repo.ListTasks(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, b.ID, tasks[0].ID)

		deleted, err = repo.DeleteTasks(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, deleted)
	})

	t.Run("returned tasks are detached", func(t *testing.T) {
		repo := newRepo(t)
		task := sample("stable")
		require.NoError(t, repo.CreateTask(ctx, task))

		got, err := repo.GetTask(ctx, task.ID)
		require.NoError(t, err)
		got.Name = "mutated"

		again, err := repo.GetTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "stable", again.Name)
	})

	t.Run("canceled context fails", func(t *testing.T) {
		repo := newRepo(t)
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.ListTasks(canceled)
		assert.Error(t, err)
	})

	t.Run("ping succeeds on open store", func(t *testing.T) {
		repo := newRepo(t)
		assert.NoError(t, repo.Ping(ctx))
	})
}
