package stream

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Writer encodes the fixed-width binary shapes onto an io.Writer. It is
// not safe for concurrent use.
type Writer struct {
	w   io.Writer
	buf [8]byte
}

// NewWriter returns a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteInt64 writes an 8-byte big-endian integer.
func (w *Writer) WriteInt64(v int64) error {
	binary.BigEndian.PutUint64(w.buf[:8], uint64(v))
	if _, err := w.w.Write(w.buf[:8]); err != nil {
		return fmt.Errorf("stream: writing int64: %w", err)
	}
	return nil
}

// WriteUint32 writes a 4-byte big-endian unsigned integer.
func (w *Writer) WriteUint32(v uint32) error {
	binary.BigEndian.PutUint32(w.buf[:4], v)
	if _, err := w.w.Write(w.buf[:4]); err != nil {
		return fmt.Errorf("stream: writing uint32: %w", err)
	}
	return nil
}

// WriteBytes writes a length-prefixed byte field.
func (w *Writer) WriteBytes(p []byte) error {
	if uint64(len(p)) > math.MaxUint32 {
		return fmt.Errorf("stream: field of %d bytes: %w", len(p), ErrStringTooLong)
	}
	if err := w.WriteUint32(uint32(len(p))); err != nil {
		return err
	}
	if _, err := w.w.Write(p); err != nil {
		return fmt.Errorf("stream: writing %d byte field: %w", len(p), err)
	}
	return nil
}

// WriteString writes a length-prefixed string field.
func (w *Writer) WriteString(s string) error {
	if uint64(len(s)) > math.MaxUint32 {
		return fmt.Errorf("stream: field of %d bytes: %w", len(s), ErrStringTooLong)
	}
	if err := w.WriteUint32(uint32(len(s))); err != nil {
		return err
	}
	if _, err := io.WriteString(w.w, s); err != nil {
		return fmt.Errorf("stream: writing %d byte field: %w", len(s), err)
	}
	return nil
}

// WriteListLength writes a list's element count.
func (w *Writer) WriteListLength(n int) error {
	if n < 0 {
		return ErrNegativeLength
	}
	if uint64(n) > math.MaxUint32 {
		return fmt.Errorf("stream: list of %d elements: %w", n, ErrListTooLong)
	}
	return w.WriteUint32(uint32(n))
}
