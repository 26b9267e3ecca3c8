package tool

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates an unknown tool name or a target that does not
	// exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the tool arguments failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfirmRequired indicates a destructive operation was attempted
	// without skip_confirm set.
	ErrConfirmRequired = errors.New("confirmation required: set skip_confirm to true to proceed")

	// ErrNotDirectory indicates a path that was expected to be a directory
	// is not one.
	ErrNotDirectory = errors.New("not a directory")

	// ErrTooLarge indicates content exceeded a tool's size limit.
	ErrTooLarge = errors.New("content too large")
)

// InputError reports a specific invalid argument. It unwraps to
// ErrInvalidInput so callers can match either the field or the class.
type InputError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: field %q: %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidInput.
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// Invalidf returns an InputError for the given field with a formatted reason.
func Invalidf(field, format string, v ...any) error {
	return &InputError{Field: field, Reason: fmt.Sprintf(format, v...)}
}
