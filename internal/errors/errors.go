package errors

import (
	"context"
	"errors"
	"fmt"
)

// NewInvalidNameError creates an error for a rejected task name
func NewInvalidNameError(name string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidName,
		Message: "name must not be empty or start with a space",
		Code:    "INVALID_NAME",
		Cause:   cause,
		Context: map[string]interface{}{
			"name": name,
		},
	}
}

// NewInvalidDateFormatError creates an error for a date string that does not match layout
func NewInvalidDateFormatError(value string, layout string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidDateFormat,
		Message: fmt.Sprintf("date %q does not match format %s", value, DisplayLayout(layout)),
		Code:    "INVALID_DATE_FORMAT",
		Context: map[string]interface{}{
			"value":  value,
			"layout": layout,
		},
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewNotFoundEmptyError creates an error for a query that matched nothing
func NewNotFoundEmptyError(resource string, query string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFoundEmpty,
		Message: fmt.Sprintf("no %s matched %q", resource, query),
		Code:    "NOT_FOUND_EMPTY",
		Context: map[string]interface{}{
			"resource": resource,
			"query":    query,
		},
	}
}

// NewNotModifiableError creates an error for a field that can no longer be changed
func NewNotModifiableError(field string, current string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotModifiable,
		Message: fmt.Sprintf("%s is already set to %s and cannot be modified", field, current),
		Code:    "NOT_MODIFIABLE",
		Context: map[string]interface{}{
			"field":   field,
			"current": current,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Code:    "TIMEOUT",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// FromStoreError classifies a failure coming back from the store. AppErrors
// pass through untouched; deadline and cancellation become timeouts.
func FromStoreError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if IsAppError(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewTimeoutError(operation, err)
	}
	return NewDatabaseError(operation, err)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		default:
			if appErr.Type.IsClientError() {
				return appErr.Message
			}
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return !appErr.Type.IsClientError()
	}
	return true
}

// DisplayLayout renders a Go time layout the way clients write it.
func DisplayLayout(layout string) string {
	switch layout {
	case "2006/01/02 15:04:05":
		return "yyyy/MM/dd HH:mm:ss"
	case "2006/01/02":
		return "yyyy/MM/dd"
	default:
		return layout
	}
}
