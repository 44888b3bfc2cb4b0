package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/boltayevjahongir/task-manager/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
// NOT_FOUND and ACCESS_DENIED are deliberately distinct so callers can tell
// "does not exist" from "exists, no access".
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	// Not found
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "NOT_FOUND", message
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "NOT_FOUND", message
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, "NOT_FOUND", message

	// Permission errors
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusForbidden, "INVALID_TRANSITION", message
	case errors.Is(err, domain.ErrAccessDenied):
		return http.StatusForbidden, "ACCESS_DENIED", message

	// Concurrent write race
	case errors.Is(err, domain.ErrTaskModified):
		return http.StatusConflict, "CONFLICT", message

	// Authentication errors
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", message
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "INVALID_TOKEN", message
	case errors.Is(err, domain.ErrAccountPending):
		return http.StatusUnauthorized, "ACCOUNT_PENDING", message
	case errors.Is(err, domain.ErrAccountRejected):
		return http.StatusUnauthorized, "ACCOUNT_REJECTED", message

	// Validation errors
	case errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrTitleTooLong),
		errors.Is(err, domain.ErrEmptyFullName),
		errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrEmptyComment),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrUserNotPending),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidPriority),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidPage),
		errors.Is(err, domain.ErrInvalidPerPage),
		errors.Is(err, domain.ErrAssigneeNotApproved):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message

	// Default: internal server error
	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}
