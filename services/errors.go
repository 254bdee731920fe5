package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeInternal     ErrorType = "internal"
)

// DomainError represents a structured error with additional context.
// Errors carries the human-readable messages returned to clients on validation failures.
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Errors  []string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError of the same type
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a validation error carrying client-facing messages
func NewValidationError(messages ...string) *DomainError {
	return &DomainError{
		Type:    ErrorTypeValidation,
		Message: "Validation failed",
		Errors:  messages,
	}
}

// Domain error variables

var (
	ErrCourseNotFound = NewDomainError(ErrorTypeNotFound, "course does not exist", nil)
	ErrUserNotFound   = NewDomainError(ErrorTypeNotFound, "user does not exist", nil)

	// ErrAccessDenied is deliberately generic so callers cannot enumerate accounts
	ErrAccessDenied = NewDomainError(ErrorTypeUnauthorized, "Access Denied", nil)

	ErrNotCourseOwner = NewDomainError(ErrorTypeForbidden, "only the course owner can modify this course", nil)
)

// EmailInUseMessage is returned when signing up with an address that already has an account
const EmailInUseMessage = "The email address you entered is already in use"

// Error type checking helper functions

// IsUnauthorizedError checks if an error is an unauthorized error
func IsUnauthorizedError(err error) bool {
	return GetErrorType(err) == ErrorTypeUnauthorized
}

// GetErrorType returns the ErrorType of a domain error, or empty string if not a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return NewDomainError(ErrorTypeInternal, message, err)
}
