// Package maperr defines the error kinds shared by the domainmap packages.
//
// Every error carries a stable code so callers can match with errors.Is
// regardless of the details attached at the failure site.
package maperr

import (
	"errors"
	"fmt"
)

// Error is a domainmap error with a structured error code.
type Error struct {
	Code    string // Error code (e.g., "DM-KEY-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error with the given code and message.
func New(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *Error) WithDetails(details string) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithDetailsf is WithDetails with a format string.
func (e *Error) WithDetailsf(format string, args ...any) *Error {
	return e.WithDetails(fmt.Sprintf(format, args...))
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *Error) WithCause(cause error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// Code extracts the error code from err, or "" if err is not an *Error.
func Code(err error) string {
	var me *Error
	if errors.As(err, &me) {
		return me.Code
	}
	return ""
}

// Has reports whether err is an *Error with the given code.
// An empty code matches any *Error.
func Has(err error, code string) bool {
	var me *Error
	if !errors.As(err, &me) {
		return false
	}
	return code == "" || me.Code == code
}

var (
	// ErrInvalidArgument indicates an invalid constructor or configuration value.
	ErrInvalidArgument = New("DM-ARG-4000", "invalid argument")

	// ErrIndexOutOfRange indicates a domain index outside [0, N) or a hash
	// sub-field index outside 0..3.
	ErrIndexOutOfRange = New("DM-ARG-4001", "index out of range")

	// ErrKeyNotFound indicates no live entry matches the key.
	ErrKeyNotFound = New("DM-KEY-4040", "key not found")

	// ErrDereferenceAtEnd is the panic value raised when an iterator positioned
	// at the end sentinel is dereferenced.
	ErrDereferenceAtEnd = New("DM-ITER-5000", "iterator dereferenced at end")
)
