package app

import (
	"context"
	"errors"
	"fmt"
)

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// ValidationFailed indicates a required input was missing or invalid.
	ValidationFailed AppErrorType = iota
	// DestinationExists indicates the target directory is already present.
	DestinationExists
	// PromptCancelled indicates the operator aborted an interactive prompt.
	PromptCancelled
	// TemplateFetchFailed indicates template fetching failed.
	TemplateFetchFailed
	// InstallFailed indicates dependency installation failed.
	InstallFailed
	// GitInitFailed indicates repository initialization failed.
	GitInitFailed
	// ConfigInitFailed indicates the configuration file could not be written.
	ConfigInitFailed
)

// String returns a short name for the error type.
func (t AppErrorType) String() string {
	switch t {
	case ValidationFailed:
		return "validation failed"
	case DestinationExists:
		return "destination exists"
	case PromptCancelled:
		return "cancelled"
	case TemplateFetchFailed:
		return "template fetch failed"
	case InstallFailed:
		return "install failed"
	case GitInitFailed:
		return "git init failed"
	case ConfigInitFailed:
		return "config init failed"
	default:
		return "unknown"
	}
}

// ErrPromptCancelled is returned by a Prompter when the operator interrupts input.
var ErrPromptCancelled = errors.New("operation cancelled")

// Exit codes returned by ExitCode.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitCancelled = 130
)

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}

// NewDestinationExistsError creates an error naming the colliding path.
func NewDestinationExistsError(displayPath string) *AppError {
	return NewAppError(DestinationExists, fmt.Sprintf("destination %s already exists", displayPath), nil)
}

// NewCancelledError creates a cancellation error for the named input.
func NewCancelledError(field string) *AppError {
	return NewAppError(PromptCancelled, fmt.Sprintf("%s prompt cancelled", field), ErrPromptCancelled)
}

// NewTemplateFetchError creates a template fetch error.
func NewTemplateFetchError(message string, cause error) *AppError {
	return NewAppError(TemplateFetchFailed, message, cause)
}

// NewInstallError creates an install error.
func NewInstallError(message string, cause error) *AppError {
	return NewAppError(InstallFailed, message, cause)
}

// NewGitInitError creates a git init error.
func NewGitInitError(message string, cause error) *AppError {
	return NewAppError(GitInitFailed, message, cause)
}

// NewConfigInitError creates a config init error.
func NewConfigInitError(message string, cause error) *AppError {
	return NewAppError(ConfigInitFailed, message, cause)
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, errType AppErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == errType
}

// ExitCode maps a run error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrPromptCancelled), errors.Is(err, context.Canceled), IsType(err, PromptCancelled):
		return ExitCancelled
	default:
		return ExitFailure
	}
}
