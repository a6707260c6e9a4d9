// Package errors provides error handling utilities.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeMissingField indicates a record lacking a required field
	TypeMissingField Type = "MISSING_FIELD"

	// TypeAmbiguousJoin indicates a message conversation with no RDC counterpart
	TypeAmbiguousJoin Type = "AMBIGUOUS_JOIN"

	// TypeEmptyInput indicates an empty conversation record set
	TypeEmptyInput Type = "EMPTY_INPUT"

	// TypeConfig indicates an invalid rate card or application configuration
	TypeConfig Type = "CONFIG_ERROR"

	// TypeParsing indicates a source parsing error
	TypeParsing Type = "PARSING_ERROR"

	// TypeStorage indicates a run-history storage error
	TypeStorage Type = "STORAGE_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error
type Error struct {
	Type    Type   `json:"type"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// MissingField creates a missing-field error for a dropped record
func MissingField(record, field string) *Error {
	return Newf(TypeMissingField, "%s record missing required field %q", record, field)
}

// AmbiguousJoin creates an error for a message conversation absent from the summary log
func AmbiguousJoin(conversationID string) *Error {
	return Newf(TypeAmbiguousJoin, "conversation %s present in message detail but not in summary", conversationID)
}

// EmptyInput creates an empty-input error
func EmptyInput(message string) *Error {
	return New(TypeEmptyInput, message)
}

// Config creates a configuration error
func Config(message string) *Error {
	return New(TypeConfig, message)
}

// Configf creates a formatted configuration error
func Configf(format string, args ...interface{}) *Error {
	return Newf(TypeConfig, format, args...)
}

// Parsing creates a parsing error
func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

// Storage creates a storage error
func Storage(message string, cause error) *Error {
	return Wrap(TypeStorage, message, cause)
}
