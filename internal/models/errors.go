package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes surfaced to callers. Every recoverable failure maps to one of
// these; anything else is CodeUnexpected.
const (
	CodeReferenceNotFound    = "REFERENCE_NOT_FOUND"
	CodeDuplicateInteraction = "DUPLICATE_INTERACTION"
	CodeInvalidSelfReference = "INVALID_SELF_REFERENCE"
	CodeInvalidArgument      = "INVALID_ARGUMENT"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeUnexpected           = "UNEXPECTED"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewReferenceNotFoundError reports that a target entity or edge is absent.
func NewReferenceNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeReferenceNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewDuplicateInteractionError reports that the edge already exists.
func NewDuplicateInteractionError(message string) *AppError {
	return &AppError{
		Code:    CodeDuplicateInteraction,
		Message: message,
	}
}

// NewSelfReferenceError reports a self-targeting interaction (e.g. self-follow).
func NewSelfReferenceError(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidSelfReference,
		Message: message,
	}
}

// NewValidationError reports a malformed identifier or parameter.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidArgument,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// NewInternalError wraps an unexpected failure. The wrapped error is logged
// but never leaked to the caller.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeUnexpected,
		Message: "Internal server error",
		Err:     err,
	}
}

// ErrorCode returns the AppError code for err, or CodeUnexpected.
func ErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnexpected
}

// StatusForError maps an error to the HTTP status it should be served with.
func StatusForError(err error) int {
	switch ErrorCode(err) {
	case CodeReferenceNotFound:
		return fiber.StatusNotFound
	case CodeDuplicateInteraction:
		return fiber.StatusConflict
	case CodeInvalidSelfReference, CodeInvalidArgument:
		return fiber.StatusBadRequest
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Code == CodeUnexpected {
			// Opaque to the caller; details stay in the logs.
			response.Details = ""
		} else if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
