// Package domerrors defines the coded errors the service layer returns to the
// operation dispatcher. Stores return sentinel errors (pkg/platform/sentinel);
// services translate those facts into one of the codes below so transport can
// map them without inspecting error strings.
package domerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for the caller.
type Code string

const (
	// CodeInvalidArgument covers malformed, missing, or out-of-range input.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	// CodeUnexpectedField is raised when a caller supplies a field outside an
	// operation's allow-list, before any per-field validation runs.
	CodeUnexpectedField Code = "UNEXPECTED_FIELD"
	// CodeNotFound means a referenced entity does not exist.
	CodeNotFound Code = "NOT_FOUND"
	// CodePersistence means the store acknowledged a write but reported zero
	// effect. Distinct from NotFound: the document was looked up first.
	CodePersistence Code = "PERSISTENCE_FAILURE"
	// CodeCacheSync means a cache write or delete failed after the store
	// commit. The mutation itself has already committed.
	CodeCacheSync Code = "CACHE_SYNC_FAILURE"
	// CodeInternal covers unexpected infrastructure failures.
	CodeInternal Code = "INTERNAL"
)

// Error carries a code, a caller-facing message, and an optional field name
// for validation failures.
type Error struct {
	Code    Code
	Message string
	Field   string
	cause   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%s): %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error with no underlying cause.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewField builds a validation error naming the offending field.
func NewField(code Code, field, msg string) error {
	return &Error{Code: code, Message: msg, Field: field}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.cause
	}
	return false
}

// CodeOf returns the outermost code on err, or CodeInternal if err carries none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the caller-facing message on the outermost coded error,
// falling back to err.Error() for uncoded errors.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

// FieldOf returns the field name on the outermost coded error, if any.
func FieldOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Field
	}
	return ""
}
