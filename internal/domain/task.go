package domain

import (
	"time"
)

const (
	// DateTimeLayout is the wire and storage format of createDate/updateDate (yyyy/MM/dd HH:mm:ss).
	DateTimeLayout = "2006/01/02 15:04:05"
	// DateLayout is the date-only form accepted by date searches (yyyy/MM/dd).
	DateLayout = "2006/01/02"
	// SentinelDate marks a date that has never been set.
	SentinelDate = "0000/00/00 00:00:00"
	// DefaultDetails replaces blank details.
	DefaultDetails = "Non input details..."
)

// Task represents a task in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Details    string `json:"details"`
	CreateDate string `json:"createDate"`
	UpdateDate string `json:"updateDate"`
}

// NewTask creates a Task created at now that has never been updated.
func NewTask(name, details string, now time.Time) Task {
	return Task{
		Name:       name,
		Details:    details,
		CreateDate: FormatDateTime(now),
		UpdateDate: SentinelDate,
	}
}

// HasCreateDate reports whether createDate holds a real timestamp.
func (t Task) HasCreateDate() bool {
	return IsRealDateTime(t.CreateDate)
}

// HasBeenUpdated reports whether updateDate holds a real timestamp.
func (t Task) HasBeenUpdated() bool {
	return IsRealDateTime(t.UpdateDate)
}

// String returns the task name for display purposes.
func (t Task) String() string {
	return t.Name
}

// FormatDateTime renders t in DateTimeLayout.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// IsRealDateTime reports whether s parses as DateTimeLayout. The sentinel
// and the empty string do not.
func IsRealDateTime(s string) bool {
	if s == "" || s == SentinelDate {
		return false
	}
	_, err := time.Parse(DateTimeLayout, s)
	return err == nil
}

// TaskInput is the client payload for create, update and create-date backfill.
type TaskInput struct {
	Name       string `json:"name" example:"Buy milk"`
	Details    string `json:"details" example:"2 bottles"`
	CreateDate string `json:"createDate,omitempty" example:"2024/01/02 09:30:00"`
}
