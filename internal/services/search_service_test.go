package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/repository"
)

func seedSearchData(t *testing.T, repo repository.Repository) []*domain.Task {
	t.Helper()
	tasks := []*domain.Task{
		{Name: "Buy milk", Details: "2 bottles", CreateDate: "2024/01/02 09:30:00", UpdateDate: domain.SentinelDate},
		{Name: "Walk dog", Details: "then buy milk too", CreateDate: "2024/01/03 08:00:00", UpdateDate: "2024/01/04 12:00:00"},
		{Name: "Write report", Details: "quarterly", CreateDate: domain.SentinelDate, UpdateDate: "2024/01/02 18:00:00"},
		{Name: "milk tea", Details: "", CreateDate: "2024/01/05 10:00:00", UpdateDate: domain.SentinelDate},
		{Name: "Milk shake", Details: "vanilla", CreateDate: "2024/01/02 23:59:59", UpdateDate: domain.SentinelDate},
	}
	seedTasks(t, repo, tasks...)
	return tasks
}

func names(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Name
	}
	return out
}

func TestSearchService_SearchByKeyword(t *testing.T) {
	tests := []struct {
		name     string
		keyword  string
		expected []string
		errType  *errors.ErrorType
	}{
		{
			name:     "should match name or details and skip empty details",
			keyword:  "milk",
			expected: []string{"Buy milk", "Walk dog"},
		},
		{
			name:     "should be case sensitive",
			keyword:  "Milk",
			expected: []string{"Milk shake"},
		},
		{
			name:     "should match details only",
			keyword:  "quarterly",
			expected: []string{"Write report"},
		},
		{
			name:    "should return not found empty when nothing matches",
			keyword: "coffee",
			errType: errType(errors.ErrorTypeNotFoundEmpty),
		},
		{
			name:    "should reject a blank keyword",
			keyword: "  ",
			errType: errType(errors.ErrorTypeInvalidInput),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := setupMemoryRepo(t)
			seedSearchData(t, repo)
			service := NewSearchService(repo)

			result, err := service.SearchByKeyword(context.Background(), tt.keyword)

			if tt.errType != nil {
				assert.True(t, errors.IsErrorType(err, *tt.errType), "got %v", err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names(result))
		})
	}
}

func TestSearchService_SearchByDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		expected []string
		errType  *errors.ErrorType
	}{
		{
			name:     "should match create or update date",
			date:     "2024/01/02",
			expected: []string{"Buy milk", "Write report", "Milk shake"},
		},
		{
			name:     "should match update date only",
			date:     "2024/01/04",
			expected: []string{"Walk dog"},
		},
		{
			name:    "should return not found empty for a quiet day",
			date:    "2024/02/01",
			errType: errType(errors.ErrorTypeNotFoundEmpty),
		},
		{
			name:    "should reject a date time",
			date:    "2024/01/02 09:30:00",
			errType: errType(errors.ErrorTypeInvalidDateFormat),
		},
		{
			name:    "should reject a dashed date",
			date:    "2024-01-02",
			errType: errType(errors.ErrorTypeInvalidDateFormat),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := setupMemoryRepo(t)
			seedSearchData(t, repo)
			service := NewSearchService(repo)

			result, err := service.SearchByDate(context.Background(), tt.date)

			if tt.errType != nil {
				assert.True(t, errors.IsErrorType(err, *tt.errType), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names(result))
		})
	}
}

func TestSearchService_Search(t *testing.T) {
	repo := setupMemoryRepo(t)
	seedSearchData(t, repo)
	service := NewSearchService(repo)
	ctx := context.Background()

	byDate, err := service.Search(ctx, domain.ByDate("2024/01/05"))
	require.NoError(t, err)
	assert.Equal(t, []string{"milk tea"}, names(byDate))

	byKeyword, err := service.Search(ctx, domain.ByKeyword("dog"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Walk dog"}, names(byKeyword))

	_, err = service.Search(ctx, domain.SearchOptions{})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestSearchService_DeleteByCreateDate(t *testing.T) {
	for _, backend := range []struct {
		name  string
		setup func(t *testing.T) repository.Repository
	}{
		{"memory", setupMemoryRepo},
		{"sqlite", setupSQLiteRepo},
	} {
		t.Run(backend.name, func(t *testing.T) {
			repo := backend.setup(t)
			seedSearchData(t, repo)
			service := NewSearchService(repo)
			ctx := context.Background()

			deleted, err := service.DeleteByCreateDate(ctx, "2024/01/02")
			require.NoError(t, err)
			assert.Equal(t, int64(2), deleted)

			remaining, err := repo.ListTasks(ctx)
			require.NoError(t, err)
			var left []string
			for _, task := range remaining {
				left = append(left, task.Name)
			}
			assert.Equal(t, []string{"Walk dog", "Write report", "milk tea"}, left,
				"update date matches must not be deleted")

			_, err = service.DeleteByCreateDate(ctx, "2024/01/02")
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFoundEmpty))

			_, err = service.DeleteByCreateDate(ctx, "02/01/2024")
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidDateFormat))
		})
	}
}
