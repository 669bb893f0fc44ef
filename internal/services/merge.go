package services

import (
	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/repository"
	"task-manager/internal/validation"
)

// Merger turns validated client input into task records ready for storage
type Merger struct {
	validator *validation.TaskValidator
	clock     TimeService
}

// NewMerger creates a Merger stamping records with clock
func NewMerger(validator *validation.TaskValidator, clock TimeService) *Merger {
	return &Merger{validator: validator, clock: clock}
}

// NewTask builds a task created now and never updated
func (m *Merger) NewTask(input domain.TaskInput) (domain.Task, error) {
	input, err := m.validator.ValidateInput(input)
	if err != nil {
		return domain.Task{}, err
	}
	return domain.NewTask(input.Name, input.Details, m.clock.Now()), nil
}

// MergeUpdate applies input to existing. The create date is kept unless it
// was never set, and the update date is refreshed.
func (m *Merger) MergeUpdate(id int64, existing *domain.Task, input domain.TaskInput) (domain.Task, error) {
	if existing == nil {
		return domain.Task{}, errors.NewNotFoundError("task", repository.FormatID(id))
	}

	input, err := m.validator.ValidateInput(input)
	if err != nil {
		return domain.Task{}, err
	}

	merged := *existing
	merged.Name = input.Name
	merged.Details = input.Details
	if merged.CreateDate == "" || merged.CreateDate == domain.SentinelDate {
		merged.CreateDate = domain.SentinelDate
	}
	merged.UpdateDate = m.clock.Timestamp()
	return merged, nil
}

// BackfillCreateDate sets the create date of a task whose create date was
// never set. Checks run in order: missing task, already set, bad format.
func (m *Merger) BackfillCreateDate(id int64, existing *domain.Task, createDate string) (domain.Task, error) {
	if existing == nil {
		return domain.Task{}, errors.NewNotFoundError("task", repository.FormatID(id))
	}
	if existing.HasCreateDate() {
		return domain.Task{}, errors.NewNotModifiableError("createDate", existing.CreateDate)
	}
	if err := m.validator.ValidateDateString(createDate, domain.DateTimeLayout); err != nil {
		return domain.Task{}, err
	}

	merged := *existing
	merged.CreateDate = createDate
	merged.UpdateDate = m.clock.Timestamp()
	return merged, nil
}
