package apperrors

import (
	"errors"
	"sort"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// User errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("a user with that username already exists")
)

// Group errors
var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrGroupAlreadyExists = errors.New("group with this slug already exists")
)

// Post errors
var (
	ErrPostNotFound = errors.New("post not found")
)

// IsNotFound reports whether err belongs to the not-found family
func IsNotFound(err error) bool {
	return Is(err, ErrResourceNotFound, ErrUserNotFound, ErrGroupNotFound, ErrPostNotFound)
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// FieldErrors maps a form field name to its messages. The empty key holds
// errors that are not tied to one field.
type FieldErrors map[string][]string

// Add appends a message for field
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Merge copies every message of other into f
func (f FieldErrors) Merge(other FieldErrors) {
	for field, messages := range other {
		f[field] = append(f[field], messages...)
	}
}

// Has reports whether field carries at least one message
func (f FieldErrors) Has(field string) bool {
	return len(f[field]) > 0
}

// ValidationError is returned when submitted form data fails field constraints.
type ValidationError struct {
	Fields FieldErrors
}

// NewValidationError wraps field messages into an error unwrapping to ErrValidationFailed
func NewValidationError(fields FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}

// NewFieldError is a shortcut for a single-field ValidationError
func NewFieldError(field, message string) *ValidationError {
	fields := FieldErrors{}
	fields.Add(field, message)
	return NewValidationError(fields)
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], "; "))
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// AsValidationError extracts field messages from err, if it carries any
func AsValidationError(err error) (FieldErrors, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Fields, true
	}
	return nil, false
}
