package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestScanner implements the Scanner interface for testing
type TestScanner struct {
	data []interface{}
	err  error
}

func (ts *TestScanner) Scan(dest ...interface{}) error {
	if ts.err != nil {
		return ts.err
	}

	if len(dest) != len(ts.data) {
		return errors.New("mismatch in number of destinations")
	}

	for i, d := range dest {
		switch v := d.(type) {
		case *int64:
			*v = ts.data[i].(int64)
		case *string:
			*v = ts.data[i].(string)
		}
	}

	return nil
}

// TestRows implements the Rows interface for testing
type TestRows struct {
	rows    [][]interface{}
	current int
	err     error
}

func (tr *TestRows) Next() bool {
	tr.current++
	return tr.current <= len(tr.rows)
}

func (tr *TestRows) Scan(dest ...interface{}) error {
	scanner := &TestScanner{data: tr.rows[tr.current-1]}
	return scanner.Scan(dest...)
}

func (tr *TestRows) Err() error {
	return tr.err
}

func taskRow(id int64, name string) []interface{} {
	return []interface{}{id, name, "details", "2024/01/02 09:30:00", "0000/00/00 00:00:00"}
}

func TestScanTask(t *testing.T) {
	tests := []struct {
		name        string
		scanner     *TestScanner
		expected    *Task
		expectError bool
	}{
		{
			name:    "Valid task",
			scanner: &TestScanner{data: taskRow(1, "Buy milk")},
			expected: &Task{
				ID:         1,
				Name:       "Buy milk",
				Details:    "details",
				CreateDate: "2024/01/02 09:30:00",
				UpdateDate: "0000/00/00 00:00:00",
			},
		},
		{
			name:        "Scan error",
			scanner:     &TestScanner{err: errors.New("scan failed")},
			expectError: true,
		},
		{
			name:        "Column count mismatch",
			scanner:     &TestScanner{data: []interface{}{int64(1), "only name"}},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanTask(tt.scanner)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestScanTasks(t *testing.T) {
	t.Run("Multiple rows", func(t *testing.T) {
		rows := &TestRows{rows: [][]interface{}{taskRow(1, "one"), taskRow(2, "two")}}

		result, err := ScanTasks(rows)
		assert.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Equal(t, "two", result[1].Name)
	})

	t.Run("No rows yields empty non-nil slice", func(t *testing.T) {
		result, err := ScanTasks(&TestRows{})
		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("Iteration error", func(t *testing.T) {
		result, err := ScanTasks(&TestRows{err: errors.New("cursor broken")})
		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestTask_Clone(t *testing.T) {
	original := &Task{ID: 3, Name: "a"}
	c := original.Clone()
	c.Name = "b"

	assert.Equal(t, "a", original.Name)
	assert.Nil(t, (*Task)(nil).Clone())
}
