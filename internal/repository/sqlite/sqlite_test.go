package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/repository"
	"task-manager/internal/repository/repotest"
)

func setupTestDB(t *testing.T) *repository.SQLRepository {
	t.Helper()
	repo, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepository_Contract(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repository.Repository {
		return setupTestDB(t)
	})
}

func TestNew_FileDatabasePersists(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "nested", "tasks.db")

	repo, err := New(ctx, dbPath)
	require.NoError(t, err)

	task := &repository.Task{
		Name:       "persisted",
		Details:    "on disk",
		CreateDate: "2024/01/02 09:30:00",
		UpdateDate: "0000/00/00 00:00:00",
	}
	require.NoError(t, repo.CreateTask(ctx, task))
	require.NoError(t, repo.Close())

	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Name)
	assert.Equal(t, repository.DialectSQLite, reopened.Dialect())
}

func TestNew_ClosedDatabaseFailsPing(t *testing.T) {
	repo := setupTestDB(t)
	require.NoError(t, repo.DB().Close())

	assert.Error(t, repo.Ping(context.Background()))
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, ensureDir(":memory:"))
	assert.NoError(t, ensureDir("file::memory:?cache=shared"))
	assert.NoError(t, ensureDir("file:"+filepath.Join(dir, "a", "b.db")+"?_pragma=busy_timeout(5000)"))
	assert.DirExists(t, filepath.Join(dir, "a"))
}
