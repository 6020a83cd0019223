// Package apperr defines the structured error type surfaced to the user and
// the taxonomy used to classify launcher failures.
package apperr

import (
	"errors"
	"time"
)

// ErrorType categorizes errors for display and handling
type ErrorType string

const (
	// ErrorTypeValidation is bad local input; never reaches the backend
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeLaunch is a rejected play command
	ErrorTypeLaunch ErrorType = "LAUNCH_ERROR"

	// ErrorTypeUpdate is a rejected launcher self-update
	ErrorTypeUpdate ErrorType = "UPDATE_ERROR"

	// ErrorTypeConfig is a branch/version/identity persistence failure
	ErrorTypeConfig ErrorType = "CONFIG_ERROR"

	// ErrorTypeVersionFetch is a failed version catalog fetch
	ErrorTypeVersionFetch ErrorType = "VERSION_FETCH_ERROR"

	// ErrorTypeInstanceLoad is a startup configuration failure
	ErrorTypeInstanceLoad ErrorType = "INSTANCE_LOAD_ERROR"

	// ErrorTypeBackend relays an unsolicited backend-error event
	ErrorTypeBackend ErrorType = "BACKEND_ERROR"
)

// AppError represents a structured error with a user-facing message and the
// underlying technical detail. At most one AppError is active for display
// at a time.
type AppError struct {
	Type      ErrorType `json:"type"`
	Message   string    `json:"message"`
	Technical string    `json:"technical"`
	Timestamp time.Time `json:"timestamp"`
	cause     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the wrapped cause, if any
func (e *AppError) Unwrap() error {
	return e.cause
}

// New creates a new application error without a cause
func New(errType ErrorType, userMessage string) *AppError {
	return &AppError{
		Type:      errType,
		Message:   userMessage,
		Timestamp: time.Now(),
	}
}

// Wrap creates a new application error around an underlying cause. The
// cause's message becomes the technical detail shown on demand.
func Wrap(errType ErrorType, userMessage string, err error) *AppError {
	appErr := New(errType, userMessage)
	if err != nil {
		appErr.Technical = err.Error()
		appErr.cause = err
	}
	return appErr
}

// Validation creates a VALIDATION error
func Validation(message string) *AppError {
	return New(ErrorTypeValidation, message)
}

// Launch creates a LAUNCH_ERROR
func Launch(message string, err error) *AppError {
	return Wrap(ErrorTypeLaunch, message, err)
}

// Update creates an UPDATE_ERROR
func Update(message string, err error) *AppError {
	return Wrap(ErrorTypeUpdate, message, err)
}

// Config creates a CONFIG_ERROR
func Config(message string, err error) *AppError {
	return Wrap(ErrorTypeConfig, message, err)
}

// VersionFetch creates a VERSION_FETCH_ERROR
func VersionFetch(message string, err error) *AppError {
	return Wrap(ErrorTypeVersionFetch, message, err)
}

// InstanceLoad creates an INSTANCE_LOAD_ERROR
func InstanceLoad(message string, err error) *AppError {
	return Wrap(ErrorTypeInstanceLoad, message, err)
}

// Is reports whether err carries the given error type
func Is(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// From extracts an AppError from err, wrapping foreign errors as the given
// fallback type so every failure surfaced to the store is structured.
func From(err error, fallback ErrorType, userMessage string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(fallback, userMessage, err)
}
