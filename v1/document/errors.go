package document

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by Cursor and Builder. Structural mismatches
// carry position detail via UnexpectedTokenError and unwrap to
// ErrUnexpectedToken so callers can match either way.
var (
	// ErrUnexpectedToken is returned when the input holds a different
	// token than the caller demanded.
	ErrUnexpectedToken = errors.New("document: unexpected token")

	// ErrValueWithoutName is returned when a value is written into an
	// object with no preceding Name call.
	ErrValueWithoutName = errors.New("document: value written without a field name")

	// ErrNameOutsideObject is returned when Name is called while the
	// builder is not inside an object.
	ErrNameOutsideObject = errors.New("document: field name outside an object")

	// ErrNameWithoutValue is returned when a field name is left dangling:
	// a second Name call or a container end before its value arrived.
	ErrNameWithoutValue = errors.New("document: field name without a value")

	// ErrEndMismatch is returned when EndObject or EndArray does not
	// match the innermost open container.
	ErrEndMismatch = errors.New("document: mismatched container end")

	// ErrDocumentComplete is returned when a write follows the completed
	// top-level value.
	ErrDocumentComplete = errors.New("document: top-level value already complete")

	// ErrIncomplete is returned by Bytes when containers remain open or
	// nothing was written.
	ErrIncomplete = errors.New("document: incomplete document")
)

// UnexpectedTokenError describes a structural mismatch: the cursor wanted
// one kind of token and the input held another.
type UnexpectedTokenError struct {
	// Want names the expected token, e.g. "object start" or "int".
	Want string

	// Got renders the token that was actually read.
	Got string
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("document: expected %s, got %s", e.Want, e.Got)
}

// Unwrap lets errors.Is(err, ErrUnexpectedToken) match.
func (e *UnexpectedTokenError) Unwrap() error {
	return ErrUnexpectedToken
}
