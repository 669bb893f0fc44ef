package repository

// Task is the stored row of the tasks table. Dates are kept as the
// formatted text the API exposes, including the unset sentinel.
type Task struct {
	ID         int64
	Name       string
	Details    string
	CreateDate string
	UpdateDate string
}

// Clone returns a copy detached from the receiver.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
