package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"task-manager/internal/errors"
	"task-manager/internal/logging"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error" example:"name must not be empty or start with a space"`
	Code  string `json:"code" example:"INVALID_NAME"`
}

// DeletedResponse reports how many tasks a bulk delete removed.
type DeletedResponse struct {
	Deleted int64 `json:"deleted" example:"3"`
}

// StatusResponse is returned by the health endpoints.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// StatusFor maps an error onto its HTTP status code.
func StatusFor(err error) int {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch appErr.Type {
	case errors.ErrorTypeInvalidName,
		errors.ErrorTypeInvalidDateFormat,
		errors.ErrorTypeNotModifiable,
		errors.ErrorTypeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrorTypeNotFound, errors.ErrorTypeNotFoundEmpty:
		return http.StatusNotFound
	case errors.ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the JSON error body and logs system failures.
func respondError(c *gin.Context, err error) {
	status := StatusFor(err)

	if errors.ShouldLogError(err) {
		logging.FromContext(c.Request.Context()).Error("request failed",
			"path", c.FullPath(),
			"status", status,
			"error", err,
		)
	}
	_ = c.Error(err)

	message := errors.GetUserMessage(err)
	if !errors.IsAppError(err) {
		message = "An unexpected error occurred. Please try again."
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: message,
		Code:  errors.GetErrorCode(err),
	})
}
