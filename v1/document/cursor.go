package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Cursor is a forward-only token cursor over a document. It is a
// single-pass, exclusively owned resource: one decoder consumes it from
// start to finish. Not safe for concurrent use.
type Cursor struct {
	dec *json.Decoder
}

// NewCursor returns a Cursor reading from r.
func NewCursor(r io.Reader) *Cursor {
	dec := json.NewDecoder(r)
	// Integers must not round-trip through float64.
	dec.UseNumber()
	return &Cursor{dec: dec}
}

// NewBytesCursor returns a Cursor over an in-memory document.
func NewBytesCursor(data []byte) *Cursor {
	return NewCursor(bytes.NewReader(data))
}

// Token returns the next raw token. Most callers want the typed helpers
// below instead.
func (c *Cursor) Token() (json.Token, error) {
	return c.dec.Token()
}

// More reports whether the innermost open array or object has another
// element before its closing delimiter.
func (c *Cursor) More() bool {
	return c.dec.More()
}

// ExpectObjectStart consumes the next token and fails unless it opens an
// object.
func (c *Cursor) ExpectObjectStart() error {
	return c.expectDelim('{', "object start")
}

// ExpectObjectEnd consumes the next token and fails unless it closes an
// object.
func (c *Cursor) ExpectObjectEnd() error {
	return c.expectDelim('}', "object end")
}

// ExpectArrayStart consumes the next token and fails unless it opens an
// array.
func (c *Cursor) ExpectArrayStart() error {
	return c.expectDelim('[', "array start")
}

// ExpectArrayEnd consumes the next token and fails unless it closes an
// array.
func (c *Cursor) ExpectArrayEnd() error {
	return c.expectDelim(']', "array end")
}

func (c *Cursor) expectDelim(d rune, want string) error {
	tok, err := c.dec.Token()
	if err != nil {
		return fmt.Errorf("document: reading token: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != json.Delim(d) {
		return &UnexpectedTokenError{Want: want, Got: describeToken(tok)}
	}
	return nil
}

// FieldName reads the next member name of the current object. end is true
// when the object closed instead of yielding another member.
func (c *Cursor) FieldName() (name string, end bool, err error) {
	tok, err := c.dec.Token()
	if err != nil {
		return "", false, fmt.Errorf("document: reading token: %w", err)
	}
	switch t := tok.(type) {
	case string:
		return t, false, nil
	case json.Delim:
		if t == '}' {
			return "", true, nil
		}
	}
	return "", false, &UnexpectedTokenError{Want: "field name or object end", Got: describeToken(tok)}
}

// ReadInt64 consumes the next token as an integer.
func (c *Cursor) ReadInt64() (int64, error) {
	tok, err := c.dec.Token()
	if err != nil {
		return 0, fmt.Errorf("document: reading token: %w", err)
	}
	num, ok := tok.(json.Number)
	if !ok {
		return 0, &UnexpectedTokenError{Want: "int", Got: describeToken(tok)}
	}
	v, err := num.Int64()
	if err != nil {
		return 0, &UnexpectedTokenError{Want: "int", Got: "number " + num.String()}
	}
	return v, nil
}

// ReadFloat64 consumes the next token as a floating point number.
func (c *Cursor) ReadFloat64() (float64, error) {
	tok, err := c.dec.Token()
	if err != nil {
		return 0, fmt.Errorf("document: reading token: %w", err)
	}
	num, ok := tok.(json.Number)
	if !ok {
		return 0, &UnexpectedTokenError{Want: "number", Got: describeToken(tok)}
	}
	v, err := num.Float64()
	if err != nil {
		return 0, &UnexpectedTokenError{Want: "number", Got: "number " + num.String()}
	}
	return v, nil
}

// ReadString consumes the next token as a string.
func (c *Cursor) ReadString() (string, error) {
	tok, err := c.dec.Token()
	if err != nil {
		return "", fmt.Errorf("document: reading token: %w", err)
	}
	s, ok := tok.(string)
	if !ok {
		return "", &UnexpectedTokenError{Want: "string", Got: describeToken(tok)}
	}
	return s, nil
}

// ReadBool consumes the next token as a boolean.
func (c *Cursor) ReadBool() (bool, error) {
	tok, err := c.dec.Token()
	if err != nil {
		return false, fmt.Errorf("document: reading token: %w", err)
	}
	b, ok := tok.(bool)
	if !ok {
		return false, &UnexpectedTokenError{Want: "bool", Got: describeToken(tok)}
	}
	return b, nil
}

// Skip consumes the next value entirely. Scalars cost one token; objects
// and arrays are descended until their delimiters balance.
func (c *Cursor) Skip() error {
	tok, err := c.dec.Token()
	if err != nil {
		return fmt.Errorf("document: reading token: %w", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := c.dec.Token()
		if err != nil {
			return fmt.Errorf("document: skipping subtree: %w", err)
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

func describeToken(tok json.Token) string {
	switch t := tok.(type) {
	case json.Delim:
		return "delimiter " + t.String()
	case string:
		return fmt.Sprintf("string %q", t)
	case json.Number:
		return "number " + t.String()
	case bool:
		return fmt.Sprintf("bool %v", t)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", tok)
	}
}
