package stream

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Reader decodes the fixed-width binary shapes from an io.Reader. It is
// not safe for concurrent use.
type Reader struct {
	r      io.Reader
	limits Limits
	buf    [8]byte
}

// NewReader returns a Reader with DefaultLimits.
func NewReader(r io.Reader) *Reader {
	return NewReaderWithLimits(r, DefaultLimits())
}

// NewReaderWithLimits returns a Reader bounded by limits.
func NewReaderWithLimits(r io.Reader, limits Limits) *Reader {
	return &Reader{r: r, limits: limits}
}

// ReadInt64 reads an 8-byte big-endian integer.
func (r *Reader) ReadInt64() (int64, error) {
	if _, err := io.ReadFull(r.r, r.buf[:8]); err != nil {
		return 0, fmt.Errorf("stream: reading int64: %w", err)
	}
	return int64(binary.BigEndian.Uint64(r.buf[:8])), nil
}

// ReadUint32 reads a 4-byte big-endian unsigned integer.
func (r *Reader) ReadUint32() (uint32, error) {
	if _, err := io.ReadFull(r.r, r.buf[:4]); err != nil {
		return 0, fmt.Errorf("stream: reading uint32: %w", err)
	}
	return binary.BigEndian.Uint32(r.buf[:4]), nil
}

// ReadBytes reads a length-prefixed byte field. The declared length is
// checked against the limit before any allocation.
func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if n > r.limits.MaxStringLen {
		return nil, fmt.Errorf("stream: field of %d bytes: %w", n, ErrStringTooLong)
	}
	p := make([]byte, n)
	if _, err := io.ReadFull(r.r, p); err != nil {
		return nil, fmt.Errorf("stream: reading %d byte field: %w", n, err)
	}
	return p, nil
}

// ReadString reads a length-prefixed string field.
func (r *Reader) ReadString() (string, error) {
	p, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(p), nil
}

// ReadListLength reads a list's element count, checked against the
// limit.
func (r *Reader) ReadListLength() (int, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	if n > r.limits.MaxListLen {
		return 0, fmt.Errorf("stream: list of %d elements: %w", n, ErrListTooLong)
	}
	return int(n), nil
}
