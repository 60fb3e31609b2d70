package resultset

import (
	"errors"
	"fmt"
)

// FormatError is the fatal decode error: the document held the wrong
// structural token where a start-of-object or start-of-array was
// required. Construction aborts and no partial result set is returned.
type FormatError struct {
	// Expected names the structure that was required, e.g. "object
	// start".
	Expected string

	cause error
}

func (e *FormatError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("resultset: malformed document: expected %s: %v", e.Expected, e.cause)
	}
	return fmt.Sprintf("resultset: malformed document: expected %s", e.Expected)
}

// Unwrap exposes the underlying cursor error.
func (e *FormatError) Unwrap() error {
	return e.cause
}

func formatError(expected string, cause error) *FormatError {
	return &FormatError{Expected: expected, cause: cause}
}

// IsFormatError reports whether err is, or wraps, a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// MissingFieldError is the fatal decode error raised when the configured
// item-list field never appeared before the document's object closed.
type MissingFieldError struct {
	// Field is the document key that was expected to hold the item
	// array.
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("resultset: required field %q missing from document", e.Field)
}

// IsMissingFieldError reports whether err is, or wraps, a
// MissingFieldError.
func IsMissingFieldError(err error) bool {
	var me *MissingFieldError
	return errors.As(err, &me)
}
