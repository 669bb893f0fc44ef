package validation

import (
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name        string
		errors      []FieldError
		expectError string
	}{
		{"No errors", []FieldError{}, "validation error"},
		{"Single error", []FieldError{{Field: "name", Message: "is required"}}, "validation error for field 'name': is required"},
		{"Multiple errors", []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "date", Message: "has invalid format"},
		}, "multiple validation errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			result := ve.Error()

			if tt.name == "Multiple errors" {
				if !strings.Contains(result, tt.expectError) {
					t.Errorf("ValidationError.Error() = %v, expected to contain %v", result, tt.expectError)
				}
			} else if result != tt.expectError {
				t.Errorf("ValidationError.Error() = %v, expected %v", result, tt.expectError)
			}
		})
	}
}

func TestValidationError_AddErrors(t *testing.T) {
	ve := NewValidationError()
	if ve.HasErrors() {
		t.Fatalf("new ValidationError should have no errors")
	}

	ve.AddRequiredError("name")
	ve.AddInvalidFormatError("date", "2024-01-02", "yyyy/MM/dd")
	ve.AddInvalidValueError("id", 0, "must be a positive integer")
	ve.AddInvalidCharacterError("name", " x")

	if len(ve.Errors) != 4 {
		t.Fatalf("expected 4 errors, got %d", len(ve.Errors))
	}

	expected := []ValidationErrorType{ErrorTypeRequired, ErrorTypeInvalidFormat, ErrorTypeInvalidValue, ErrorTypeInvalidCharacter}
	for i, et := range expected {
		if ve.Errors[i].Type != et {
			t.Errorf("error %d type = %v, expected %v", i, ve.Errors[i].Type, et)
		}
	}

	if got := ve.Errors[1].Message; got != "date has invalid format, expected: yyyy/MM/dd" {
		t.Errorf("unexpected format message: %s", got)
	}

	if !ve.HasErrors() {
		t.Errorf("ValidationError with errors should report HasErrors")
	}
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	ve := NewValidationError()
	if got := ve.GetUserFriendlyMessage(); got != "Input validation failed" {
		t.Errorf("empty message = %q", got)
	}

	ve.AddRequiredError("name")
	if got := ve.GetUserFriendlyMessage(); got != "name is required" {
		t.Errorf("single message = %q", got)
	}

	ve.AddInvalidValueError("id", -1, "must be a positive integer")
	got := ve.GetUserFriendlyMessage()
	if !strings.HasPrefix(got, "Multiple validation errors occurred:") || !strings.Contains(got, "- id has invalid value") {
		t.Errorf("multi message = %q", got)
	}
}
