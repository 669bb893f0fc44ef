package services

import (
	"time"

	"task-manager/internal/domain"
)

// timeServiceImpl implements the TimeService interface
type timeServiceImpl struct {
	now func() time.Time
	loc *time.Location
}

// NewTimeService creates a TimeService backed by the wall clock in loc.
// A nil loc means time.Local.
func NewTimeService(loc *time.Location) TimeService {
	return NewTimeServiceWithClock(time.Now, loc)
}

// NewTimeServiceWithClock creates a TimeService reading from now
func NewTimeServiceWithClock(now func() time.Time, loc *time.Location) TimeService {
	if loc == nil {
		loc = time.Local
	}
	return &timeServiceImpl{now: now, loc: loc}
}

// Now returns the current time in the service location
func (t *timeServiceImpl) Now() time.Time {
	return t.now().In(t.loc)
}

// Timestamp returns Now formatted as yyyy/MM/dd HH:mm:ss
func (t *timeServiceImpl) Timestamp() string {
	return domain.FormatDateTime(t.Now())
}

// Location returns the location timestamps are rendered in
func (t *timeServiceImpl) Location() *time.Location {
	return t.loc
}
