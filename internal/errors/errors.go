// Package errors provides coded application errors shared across the service.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Code is a stable, machine-readable error classification.
type Code string

const (
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeUnresolvable Code = "UNRESOLVABLE"
	ErrCodeUnavailable  Code = "UNAVAILABLE"
	ErrCodeConflict     Code = "CONFLICT"
	ErrCodeInternal     Code = "INTERNAL"
)

// Error is a coded error with an optional wrapped cause.
type Error struct {
	ErrCode Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.ErrCode, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.ErrCode, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates a coded error.
func New(code Code, message string) *Error {
	return &Error{ErrCode: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{ErrCode: code, Message: message, Cause: err}
}

// InvalidInput reports a malformed or out-of-range input field.
func InvalidInput(field, message string) *Error {
	return &Error{ErrCode: ErrCodeInvalidInput, Message: fmt.Sprintf("%s: %s", field, message)}
}

// NotFound reports a missing record identified by a stable key.
func NotFound(resource, id string) *Error {
	return &Error{ErrCode: ErrCodeNotFound, Message: fmt.Sprintf("%s %s not found", resource, id)}
}

// Unresolvable reports a reference that cannot be mapped to a stable key.
// Distinct from NotFound: the reference itself is the problem, not the record.
func Unresolvable(reference string) *Error {
	return &Error{ErrCode: ErrCodeUnresolvable, Message: fmt.Sprintf("cannot resolve reference %q", reference)}
}

// GetCode returns the code of err, or ErrCodeInternal for uncoded errors.
func GetCode(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.ErrCode
	}
	return ErrCodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}
