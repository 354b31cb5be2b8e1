package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Satchel error code.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // 400
	ErrValidationFailed ErrorCode = "VALIDATION_FAILED" // 400
	ErrNotFound         ErrorCode = "NOT_FOUND"         // 404
	ErrRateLimited      ErrorCode = "RATE_LIMITED"      // 429
	ErrInternal         ErrorCode = "INTERNAL"          // 500
)

// SatchelError represents a structured error with code, status, and details.
type SatchelError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *SatchelError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// FieldErrors maps a dotted request path (e.g. "basics.destination") to its messages.
type FieldErrors map[string][]string

// Add appends a message for the given field.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *SatchelError {
	return &SatchelError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewValidation creates a 400 error carrying per-field validation messages.
func NewValidation(fields FieldErrors) *SatchelError {
	return &SatchelError{
		Code:    ErrValidationFailed,
		Status:  400,
		Message: "Invalid input",
		Details: map[string]any{"fields": fields},
	}
}

// NewNotFound creates a 404 error for a missing saved list or place.
func NewNotFound(kind, identifier string) *SatchelError {
	return &SatchelError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewRateLimited creates a 429 error for clients over their request budget.
func NewRateLimited() *SatchelError {
	return &SatchelError{
		Code:    ErrRateLimited,
		Status:  429,
		Message: "too many requests",
	}
}

// NewInternal creates a 500 error. The message stays generic; the cause is kept
// in Details for logging only.
func NewInternal(err error) *SatchelError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &SatchelError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
	}
}

// Fields returns the field errors of a validation error, or nil.
func Fields(err error) FieldErrors {
	var sErr *SatchelError
	if !stderrors.As(err, &sErr) || sErr.Code != ErrValidationFailed {
		return nil
	}
	fields, _ := sErr.Details["fields"].(FieldErrors)
	return fields
}

// As returns err as a *SatchelError, wrapping unknown errors as internal.
func As(err error) *SatchelError {
	var sErr *SatchelError
	if stderrors.As(err, &sErr) {
		return sErr
	}
	return NewInternal(err)
}

// Is checks if an error (or anything it wraps) is a SatchelError with the given code.
func Is(err error, code ErrorCode) bool {
	var sErr *SatchelError
	if stderrors.As(err, &sErr) {
		return sErr.Code == code
	}
	return false
}
