package cli

import (
	stderrors "errors"
	"fmt"

	"task-manager/internal/config"
	"task-manager/internal/errors"
	"task-manager/internal/repository/migrations"
	"task-manager/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	return fmt.Errorf("failed to %s: %w", operation, eh.HandleSimple(err))
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	var dirtyErr *migrations.DirtyError
	if stderrors.As(err, &dirtyErr) {
		return fmt.Errorf("%s; run 'taskmanager migrate --force' after fixing the cause", dirtyErr.Error())
	}

	var cfgErr *config.ConfigError
	if stderrors.As(err, &cfgErr) {
		return fmt.Errorf("invalid configuration: %s", cfgErr.Error())
	}

	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) && validationErr.HasErrors() {
		return fmt.Errorf("%s", validationErr.GetUserFriendlyMessage())
	}

	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("%s", errors.GetUserMessage(err))
	}

	return err
}

