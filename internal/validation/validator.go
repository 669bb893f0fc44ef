package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	asciiSpace     = ' '
	fullWidthSpace = '　'
)

// Validator provides common validation utilities on top of go-playground/validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance with the task tags registered
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("taskname", func(fl validator.FieldLevel) bool {
		return IsValidTaskName(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Var validates a single value against tag and reports failures as a
// *ValidationError keyed by field.
func (v *Validator) Var(field string, value interface{}, tag string) error {
	err := v.validate.Var(value, tag)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	return FromValidatorErrors(field, validationErrors)
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return IsNonEmptyString(s)
}

// IsValidDateTime checks that s parses exactly against layout
func (v *Validator) IsValidDateTime(s, layout string) bool {
	return v.validate.Var(s, "datetime="+layout) == nil
}

// IsValidTaskID checks if a task ID is valid (positive)
func (v *Validator) IsValidTaskID(id int64) bool {
	return v.validate.Var(id, "gt=0") == nil
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace.
// U+3000 counts as whitespace.
func IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// StartsWithSpace reports whether s begins with an ASCII or full-width space
func StartsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r == asciiSpace || r == fullWidthSpace
}

// IsValidTaskName checks that a name is non-blank and does not begin with a space
func IsValidTaskName(name string) bool {
	return IsNonEmptyString(name) && !StartsWithSpace(name)
}
