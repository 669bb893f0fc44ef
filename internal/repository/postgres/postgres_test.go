package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"task-manager/internal/repository"
	"task-manager/internal/repository/repotest"
)

func testDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TM_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TM_TEST_POSTGRES_DSN not set (integration test)")
	}
	return dsn
}

func TestPostgresRepository_Contract(t *testing.T) {
	dsn := testDSN(t)

	repotest.Run(t, func(t *testing.T) repository.Repository {
		ctx := context.Background()
		repo, err := New(ctx, dsn, PoolConfig{MaxOpenConns: 4})
		require.NoError(t, err)

		_, err = repo.DB().ExecContext(ctx, "TRUNCATE tasks RESTART IDENTITY")
		require.NoError(t, err)

		t.Cleanup(func() { repo.Close() })
		return repo
	})
}

func TestOpenDB_Unreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := OpenDB(ctx, "postgres://nobody@127.0.0.1:1/none?connect_timeout=1", PoolConfig{})
	require.Error(t, err)
}
