package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller lacks the permission required for the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates that no authenticated actor was supplied.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal is a generic internal failure that must not leak details to clients.
var ErrInternal = errors.New("internal error")

// ErrStorageFailure is the opaque failure surfaced for persistence problems.
var ErrStorageFailure = errors.New("storage failure")

// AppError wraps a lower level error with an HTTP-ish status code and a message.
// Repositories use it to wrap driver errors.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
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

// Is reports server-side AppErrors as storage failures.
func (e *AppError) Is(target error) bool {
	return target == ErrStorageFailure && e.Code >= http.StatusInternalServerError
}

// ValidationError names the offending field of a rejected input.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation.Error(), e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
