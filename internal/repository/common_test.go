package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "task-manager/internal/errors"
)

// MockResult implements sql.Result for testing
type MockResult struct {
	lastInsertID int64
	rowsAffected int64
	insertErr    error
	rowsErr      error
}

func (mr *MockResult) LastInsertId() (int64, error) {
	return mr.lastInsertID, mr.insertErr
}

func (mr *MockResult) RowsAffected() (int64, error) {
	return mr.rowsAffected, mr.rowsErr
}

func TestHandleDatabaseError(t *testing.T) {
	originalErr := errors.New("database connection failed")
	result := HandleDatabaseError("test operation", originalErr)

	assert.NotNil(t, result)
	assert.Contains(t, result.Error(), "test operation")
	assert.Contains(t, result.Error(), "database connection failed")
	assert.True(t, apperrors.IsErrorType(result, apperrors.ErrorTypeDatabase))
}

func TestHandleDatabaseError_Deadline(t *testing.T) {
	result := HandleDatabaseError("list tasks", fmt.Errorf("query: %w", context.DeadlineExceeded))
	assert.True(t, apperrors.IsErrorType(result, apperrors.ErrorTypeTimeout))
}

func TestHandleNoRowsError(t *testing.T) {
	tests := []struct {
		name           string
		inputErr       error
		entityType     string
		id             string
		expectNotFound bool
	}{
		{
			name:           "ErrNoRows should return NotFoundError",
			inputErr:       sql.ErrNoRows,
			entityType:     "task",
			id:             "123",
			expectNotFound: true,
		},
		{
			name:           "Other error should return as-is",
			inputErr:       errors.New("some other error"),
			entityType:     "task",
			id:             "123",
			expectNotFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HandleNoRowsError(tt.inputErr, tt.entityType, tt.id)

			if tt.expectNotFound {
				assert.True(t, apperrors.IsErrorType(result, apperrors.ErrorTypeNotFound))
				assert.Contains(t, result.Error(), tt.entityType)
				assert.Contains(t, result.Error(), tt.id)
			} else {
				assert.Equal(t, tt.inputErr, result)
			}
		})
	}
}

func TestValidateRowsAffected(t *testing.T) {
	tests := []struct {
		name        string
		result      sql.Result
		expectError bool
		errType     apperrors.ErrorType
	}{
		{
			name:        "One row affected should succeed",
			result:      &MockResult{rowsAffected: 1},
			expectError: false,
		},
		{
			name:        "Zero rows affected should return NotFound",
			result:      &MockResult{rowsAffected: 0},
			expectError: true,
			errType:     apperrors.ErrorTypeNotFound,
		},
		{
			name:        "RowsAffected failure should return database error",
			result:      &MockResult{rowsErr: errors.New("unsupported")},
			expectError: true,
			errType:     apperrors.ErrorTypeDatabase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRowsAffected(tt.result, "task", "42")
			if !tt.expectError {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.True(t, apperrors.IsErrorType(err, tt.errType))
		})
	}
}

func TestFormatID(t *testing.T) {
	assert.Equal(t, "42", FormatID(42))
	assert.Equal(t, "-1", FormatID(-1))
	assert.Equal(t, []string{"1", "2", "30"}, FormatIDs([]int64{1, 2, 30}))
	assert.Empty(t, FormatIDs(nil))
}
