package config

import (
	"fmt"
	"strings"
)

// ConfigErrorType classifies failures of Load, Save and Validate.
type ConfigErrorType int

const (
	// ConfigNotFound: a file named with --config does not exist.
	ConfigNotFound ConfigErrorType = iota
	// ConfigInvalid: the YAML cannot be read, decoded or written.
	ConfigInvalid
	// ConfigValidationFailed: a key such as registry or git.backend holds a bad value.
	ConfigValidationFailed
)

func (t ConfigErrorType) String() string {
	switch t {
	case ConfigNotFound:
		return "not found"
	case ConfigInvalid:
		return "invalid"
	case ConfigValidationFailed:
		return "validation failed"
	default:
		return "unknown"
	}
}

// ConfigError reports a problem with the ignite configuration file or the
// IGNITE_* overrides layered on it.
type ConfigError struct {
	Type ConfigErrorType
	// Message describes the problem.
	Message string
	// File is the config path; empty when only defaults and env were used.
	File string
	// Field is the dotted key, e.g. "github.timeout" or "templates[0].value".
	Field string
	Cause error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error in ")
	if e.File == "" {
		b.WriteString("<defaults>")
	} else {
		b.WriteString(e.File)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " [field: %s]", e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigErrorWithField reports a bad value for one config key.
func NewConfigErrorWithField(typ ConfigErrorType, file, field, message string) *ConfigError {
	return &ConfigError{Type: typ, File: file, Field: field, Message: message}
}

// NewConfigErrorWithCause wraps a read, decode or write failure.
func NewConfigErrorWithCause(typ ConfigErrorType, file, message string, cause error) *ConfigError {
	return &ConfigError{Type: typ, File: file, Message: message, Cause: cause}
}
