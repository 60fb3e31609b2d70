package stream

import "errors"

var (
	// ErrStringTooLong is returned when a string or byte field's declared
	// length exceeds the reader's limit, or a written field cannot be
	// represented in a uint32 prefix.
	ErrStringTooLong = errors.New("stream: string field exceeds limit")

	// ErrListTooLong is returned when a declared list length exceeds the
	// reader's limit.
	ErrListTooLong = errors.New("stream: list length exceeds limit")

	// ErrNegativeLength is returned when a negative list length is
	// written.
	ErrNegativeLength = errors.New("stream: negative list length")
)

// Limits bounds the memory a Reader will commit to based on untrusted
// length prefixes.
type Limits struct {
	// MaxStringLen bounds a single string or byte field, in bytes.
	MaxStringLen uint32

	// MaxListLen bounds a declared element count.
	MaxListLen uint32
}

// DefaultLimits are generous enough for any realistic result page while
// still refusing absurd prefixes: 16 MiB per field, one million list
// elements.
func DefaultLimits() Limits {
	return Limits{
		MaxStringLen: 16 << 20,
		MaxListLen:   1 << 20,
	}
}
