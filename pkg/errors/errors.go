package errors

import (
	"fmt"
)

// ErrorType defines different categories of errors
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeInvalidToken ErrorType = "INVALID_TOKEN"
	ErrorTypeUnavailable  ErrorType = "UNAVAILABLE"
	ErrorTypeInternal     ErrorType = "INTERNAL"
)

// AppError is the custom error type for the application
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work
func (e *AppError) Unwrap() error {
	return e.Err
}

// Constructor functions for different error types

// NewValidation creates a validation error
func NewValidation(message string) error {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewNotFound creates a not found error for a missing entity
func NewNotFound(kind, id string) error {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s %q not found", kind, id),
	}
}

// NewForbidden creates a forbidden error for a failed ownership or role check
func NewForbidden(message string) error {
	return &AppError{
		Type:    ErrorTypeForbidden,
		Message: message,
	}
}

// NewInvalidToken creates an error for a malformed continuation token
func NewInvalidToken(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeInvalidToken,
		Message: message,
		Err:     err,
	}
}

// NewUnavailable creates an error for a transient storage failure
func NewUnavailable(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeUnavailable,
		Message: message,
		Err:     err,
	}
}

// NewInternal creates an internal error
func NewInternal(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// If it's already an AppError, preserve the type
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Type:    appErr.Type,
			Message: fmt.Sprintf("%s: %s", message, appErr.Message),
			Err:     appErr.Err,
		}
	}

	// Otherwise, create an internal error
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// Type checking functions

func isType(err error, t ErrorType) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Type == t
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool { return isType(err, ErrorTypeValidation) }

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool { return isType(err, ErrorTypeNotFound) }

// IsForbidden checks if an error is a forbidden error
func IsForbidden(err error) bool { return isType(err, ErrorTypeForbidden) }

// IsInvalidToken checks if an error is an invalid continuation token error
func IsInvalidToken(err error) bool { return isType(err, ErrorTypeInvalidToken) }

// IsUnavailable checks if an error is a transient storage failure
func IsUnavailable(err error) bool { return isType(err, ErrorTypeUnavailable) }

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool { return isType(err, ErrorTypeInternal) }
