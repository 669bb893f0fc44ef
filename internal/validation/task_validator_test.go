package validation

import (
	stderrors "errors"
	"testing"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

func TestTaskValidator_ValidateName(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{"Valid name", "Buy milk", false},
		{"Valid Japanese name", "牛乳を買う", false},
		{"Inner spaces", "Buy  milk", false},
		{"Leading tab is not a space", "\tBuy milk", false},
		{"Empty name", "", true},
		{"Whitespace only", "   ", true},
		{"Full-width whitespace only", "　", true},
		{"Leading ASCII space", " x", true},
		{"Leading full-width space", "　x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateName(tt.input)

			if !tt.expectError {
				if err != nil {
					t.Errorf("ValidateName(%q) unexpected error: %v", tt.input, err)
				}
				return
			}

			if !errors.IsErrorType(err, errors.ErrorTypeInvalidName) {
				t.Errorf("ValidateName(%q) expected InvalidName, got %v", tt.input, err)
			}
			var ve *ValidationError
			if !stderrors.As(err, &ve) {
				t.Errorf("ValidateName(%q) should wrap the field errors", tt.input)
			}
		})
	}
}

func TestTaskValidator_NormalizeDetails(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty", "", domain.DefaultDetails},
		{"Single space", " ", domain.DefaultDetails},
		{"Whitespace only", " \t ", domain.DefaultDetails},
		{"Full-width space", "　", domain.DefaultDetails},
		{"Leading space", " two bottles", domain.DefaultDetails},
		{"Leading full-width space", "　two bottles", domain.DefaultDetails},
		{"Plain text", "two bottles", "two bottles"},
		{"Trailing space kept", "two bottles ", "two bottles "},
		{"Multiline kept", "a\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validator.NormalizeDetails(tt.input); got != tt.expected {
				t.Errorf("NormalizeDetails(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTaskValidator_ValidateDateString(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name        string
		input       string
		layout      string
		expectError bool
	}{
		{"Valid date time", "2024/01/02 09:30:00", domain.DateTimeLayout, false},
		{"Valid date", "2024/01/02", domain.DateLayout, false},
		{"Missing seconds", "2024/01/02 09:30", domain.DateTimeLayout, true},
		{"Dashed", "2024-01-02 09:30:00", domain.DateTimeLayout, true},
		{"Trailing text", "2024/01/02 09:30:00Z", domain.DateTimeLayout, true},
		{"Leading space", " 2024/01/02", domain.DateLayout, true},
		{"Sentinel", domain.SentinelDate, domain.DateTimeLayout, true},
		{"Empty", "", domain.DateLayout, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateDateString(tt.input, tt.layout)

			if !tt.expectError {
				if err != nil {
					t.Errorf("ValidateDateString(%q) unexpected error: %v", tt.input, err)
				}
				return
			}

			if !errors.IsErrorType(err, errors.ErrorTypeInvalidDateFormat) {
				t.Errorf("ValidateDateString(%q) expected InvalidDateFormat, got %v", tt.input, err)
			}
		})
	}
}

func TestTaskValidator_ValidateTaskID(t *testing.T) {
	validator := NewTaskValidator()

	if err := validator.ValidateTaskID(1); err != nil {
		t.Errorf("ValidateTaskID(1) unexpected error: %v", err)
	}
	for _, id := range []int64{0, -5} {
		if err := validator.ValidateTaskID(id); !errors.IsErrorType(err, errors.ErrorTypeInvalidInput) {
			t.Errorf("ValidateTaskID(%d) expected InvalidInput, got %v", id, err)
		}
	}
}

func TestTaskValidator_ValidateKeyword(t *testing.T) {
	validator := NewTaskValidator()

	if err := validator.ValidateKeyword("milk"); err != nil {
		t.Errorf("ValidateKeyword(milk) unexpected error: %v", err)
	}
	for _, kw := range []string{"", "  "} {
		if err := validator.ValidateKeyword(kw); !errors.IsErrorType(err, errors.ErrorTypeInvalidInput) {
			t.Errorf("ValidateKeyword(%q) expected InvalidInput, got %v", kw, err)
		}
	}
}

func TestTaskValidator_ValidateInput(t *testing.T) {
	validator := NewTaskValidator()

	got, err := validator.ValidateInput(domain.TaskInput{Name: "Buy milk", Details: ""})
	if err != nil {
		t.Fatalf("ValidateInput unexpected error: %v", err)
	}
	if got.Details != domain.DefaultDetails {
		t.Errorf("ValidateInput details = %q, expected fallback", got.Details)
	}
	if got.Name != "Buy milk" {
		t.Errorf("ValidateInput name = %q", got.Name)
	}

	_, err = validator.ValidateInput(domain.TaskInput{Name: " x"})
	if !errors.IsErrorType(err, errors.ErrorTypeInvalidName) {
		t.Errorf("ValidateInput expected InvalidName, got %v", err)
	}
}
