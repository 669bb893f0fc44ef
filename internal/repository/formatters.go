package repository

import (
	"strconv"
)

// FormatID renders a task ID the way error messages and contexts expect it
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// FormatIDs renders a batch of task IDs for log lines
func FormatIDs(ids []int64) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = FormatID(id)
	}
	return out
}
