package validation

import (
	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// ValidateName rejects names that are empty, blank, or start with an
// ASCII or full-width space.
func (tv *TaskValidator) ValidateName(name string) error {
	if err := tv.validator.Var("name", name, "required,taskname"); err != nil {
		return errors.NewInvalidNameError(name, err)
	}
	return nil
}

// NormalizeDetails substitutes the fallback text for details that are
// blank or start with a space. Anything else passes through unchanged.
func (tv *TaskValidator) NormalizeDetails(details string) string {
	if !IsNonEmptyString(details) || StartsWithSpace(details) {
		return domain.DefaultDetails
	}
	return details
}

// ValidateDateString fails unless s parses exactly against layout
func (tv *TaskValidator) ValidateDateString(s, layout string) error {
	if !tv.validator.IsValidDateTime(s, layout) {
		ve := NewValidationError()
		ve.AddInvalidFormatError("date", s, errors.DisplayLayout(layout))
		return errors.NewInvalidDateFormatError(s, layout).WithContext("validation", ve)
	}
	return nil
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidTaskID(id) {
		return errors.NewInvalidInputError("id", id, "must be a positive integer")
	}
	return nil
}

// ValidateKeyword rejects blank search keywords
func (tv *TaskValidator) ValidateKeyword(keyword string) error {
	if !tv.validator.IsNonEmptyString(keyword) {
		return errors.NewInvalidInputError("keyword", keyword, "must not be blank")
	}
	return nil
}

// ValidateInput checks the name and returns the input with details normalized
func (tv *TaskValidator) ValidateInput(input domain.TaskInput) (domain.TaskInput, error) {
	if err := tv.ValidateName(input.Name); err != nil {
		return domain.TaskInput{}, err
	}
	input.Details = tv.NormalizeDetails(input.Details)
	return input, nil
}
