package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

func TestTaskService_CreateTask(t *testing.T) {
	tests := []struct {
		name           string
		input          domain.TaskInput
		expectDetails  string
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:          "should create task with valid name",
			input:         domain.TaskInput{Name: "Buy milk", Details: "2 bottles"},
			expectDetails: "2 bottles",
		},
		{
			name:          "should default empty details",
			input:         domain.TaskInput{Name: "Buy milk", Details: ""},
			expectDetails: domain.DefaultDetails,
		},
		{
			name:  "should return invalid name for leading space",
			input: domain.TaskInput{Name: " x"},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidName))
			},
		},
		{
			name:  "should return invalid name for empty name",
			input: domain.TaskInput{Name: ""},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidName))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			service, _ := setupTaskService(t)
			ctx := context.Background()

			// Act
			result, err := service.CreateTask(ctx, tt.input)

			// Assert
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Greater(t, result.ID, int64(0))
			assert.Equal(t, tt.input.Name, result.Name)
			assert.Equal(t, tt.expectDetails, result.Details)
			assert.Equal(t, fixedStamp, result.CreateDate)
			assert.Equal(t, domain.SentinelDate, result.UpdateDate)
		})
	}
}

func TestTaskService_CreateTask_SQLite(t *testing.T) {
	repo := setupSQLiteRepo(t)
	service := NewTaskService(repo, fixedClock())
	ctx := context.Background()

	created, err := service.CreateTask(ctx, domain.TaskInput{Name: "Buy milk"})
	require.NoError(t, err)

	got, err := service.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, domain.DefaultDetails, got.Details)
}

func TestTaskService_GetTask(t *testing.T) {
	service, repo := setupTaskService(t)
	ctx := context.Background()
	existing := &domain.Task{Name: "a", Details: "b", CreateDate: "2024/01/02 09:30:00", UpdateDate: domain.SentinelDate}
	seedTasks(t, repo, existing)

	got, err := service.GetTask(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing, got)

	_, err = service.GetTask(ctx, existing.ID+100)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	_, err = service.GetTask(ctx, 0)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestTaskService_ListTasks(t *testing.T) {
	service, repo := setupTaskService(t)
	ctx := context.Background()

	tasks, err := service.ListTasks(ctx)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)

	seedTasks(t, repo,
		&domain.Task{Name: "one", Details: "d"},
		&domain.Task{Name: "two", Details: "d"},
	)

	tasks, err = service.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "one", tasks[0].Name)
	assert.Equal(t, "two", tasks[1].Name)
}

func TestTaskService_UpdateTask(t *testing.T) {
	tests := []struct {
		name           string
		seed           *domain.Task
		input          domain.TaskInput
		useMissingID   bool
		expected       func(seed *domain.Task) domain.Task
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:  "should update name and details and refresh update date",
			seed:  &domain.Task{Name: "old", Details: "old details", CreateDate: "2024/01/02 09:30:00", UpdateDate: domain.SentinelDate},
			input: domain.TaskInput{Name: "new", Details: "new details"},
			expected: func(seed *domain.Task) domain.Task {
				return domain.Task{ID: seed.ID, Name: "new", Details: "new details", CreateDate: "2024/01/02 09:30:00", UpdateDate: fixedStamp}
			},
		},
		{
			name:  "should keep sentinel create date",
			seed:  &domain.Task{Name: "old", Details: "d", CreateDate: domain.SentinelDate, UpdateDate: domain.SentinelDate},
			input: domain.TaskInput{Name: "new", Details: ""},
			expected: func(seed *domain.Task) domain.Task {
				return domain.Task{ID: seed.ID, Name: "new", Details: domain.DefaultDetails, CreateDate: domain.SentinelDate, UpdateDate: fixedStamp}
			},
		},
		{
			name:         "should return not found for missing task",
			seed:         &domain.Task{Name: "old", Details: "d"},
			input:        domain.TaskInput{Name: "new"},
			useMissingID: true,
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
			},
		},
		{
			name:  "should return invalid name",
			seed:  &domain.Task{Name: "old", Details: "d"},
			input: domain.TaskInput{Name: "   "},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidName))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := setupTaskService(t)
			ctx := context.Background()
			seedTasks(t, repo, tt.seed)

			id := tt.seed.ID
			if tt.useMissingID {
				id += 1000
			}

			result, err := service.UpdateTask(ctx, id, tt.input)

			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Nil(t, result)

				stored, getErr := service.GetTask(ctx, tt.seed.ID)
				require.NoError(t, getErr)
				assert.Equal(t, tt.seed, stored, "failed update must not touch the store")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected(tt.seed), *result)

			stored, err := service.GetTask(ctx, tt.seed.ID)
			require.NoError(t, err)
			assert.Equal(t, result, stored)
		})
	}
}

func TestTaskService_UpdateTask_RefreshesEveryTime(t *testing.T) {
	repo := setupMemoryRepo(t)
	service := NewTaskService(repo, steppingClock(fixedNow))
	ctx := context.Background()

	created, err := service.CreateTask(ctx, domain.TaskInput{Name: "n"})
	require.NoError(t, err)

	first, err := service.UpdateTask(ctx, created.ID, domain.TaskInput{Name: "n1"})
	require.NoError(t, err)
	second, err := service.UpdateTask(ctx, created.ID, domain.TaskInput{Name: "n2"})
	require.NoError(t, err)

	assert.Equal(t, created.CreateDate, first.CreateDate)
	assert.Equal(t, created.CreateDate, second.CreateDate)
	assert.Equal(t, domain.FormatDateTime(fixedNow.Add(time.Minute)), first.UpdateDate)
	assert.Equal(t, domain.FormatDateTime(fixedNow.Add(2*time.Minute)), second.UpdateDate)
}

func TestTaskService_SetCreateDate(t *testing.T) {
	service, repo := setupTaskService(t)
	ctx := context.Background()

	unset := &domain.Task{Name: "unset", Details: "d", CreateDate: domain.SentinelDate, UpdateDate: domain.SentinelDate}
	set := &domain.Task{Name: "set", Details: "d", CreateDate: "2024/01/02 09:30:00", UpdateDate: domain.SentinelDate}
	seedTasks(t, repo, unset, set)

	_, err := service.SetCreateDate(ctx, unset.ID, "2024/13/40 99:00:00")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidDateFormat))

	result, err := service.SetCreateDate(ctx, unset.ID, "2023/05/06 07:08:09")
	require.NoError(t, err)
	assert.Equal(t, "2023/05/06 07:08:09", result.CreateDate)
	assert.Equal(t, fixedStamp, result.UpdateDate)

	_, err = service.SetCreateDate(ctx, unset.ID, "2023/05/06 07:08:10")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotModifiable), "backfill is once only")

	_, err = service.SetCreateDate(ctx, set.ID, "2023/05/06 07:08:09")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotModifiable))

	_, err = service.SetCreateDate(ctx, set.ID+100, "2023/05/06 07:08:09")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestTaskService_DeleteTask(t *testing.T) {
	service, repo := setupTaskService(t)
	ctx := context.Background()
	task := &domain.Task{Name: "doomed", Details: "d"}
	seedTasks(t, repo, task)

	require.NoError(t, service.DeleteTask(ctx, task.ID))

	err := service.DeleteTask(ctx, task.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	err = service.DeleteTask(ctx, -1)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestTaskService_StoreFailure(t *testing.T) {
	service, repo := setupTaskService(t)
	require.NoError(t, repo.Close())

	_, err := service.ListTasks(context.Background())
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))

	_, err = service.GetTask(context.Background(), 1)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))
}
