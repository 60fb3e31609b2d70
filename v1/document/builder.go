package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type builderFrame struct {
	kind    byte // 'o' for object, 'a' for array
	n       int  // members or elements written so far
	pending bool // object only: a Name awaits its value
}

// Builder writes a document with deterministic key order: keys appear
// exactly in the order the caller emits them. The zero Builder is not
// usable; create one with NewBuilder.
//
// Builder carries a sticky error. The first misuse poisons it, later
// calls become no-ops, and Bytes reports what went wrong. Not safe for
// concurrent use.
type Builder struct {
	buf   bytes.Buffer
	stack []builderFrame
	done  bool
	err   error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// beginValue validates that a value may start here and writes the comma
// separator when one is due. Reports whether the caller may proceed.
func (b *Builder) beginValue() bool {
	if b.err != nil {
		return false
	}
	if len(b.stack) == 0 {
		if b.done {
			b.fail(ErrDocumentComplete)
			return false
		}
		return true
	}
	top := &b.stack[len(b.stack)-1]
	switch top.kind {
	case 'o':
		if !top.pending {
			b.fail(ErrValueWithoutName)
			return false
		}
	case 'a':
		if top.n > 0 {
			b.buf.WriteByte(',')
		}
	}
	return true
}

// endValue records that a value finished in the current context.
func (b *Builder) endValue() {
	if len(b.stack) == 0 {
		b.done = true
		return
	}
	top := &b.stack[len(b.stack)-1]
	switch top.kind {
	case 'o':
		// n was counted when the name was written.
		top.pending = false
	case 'a':
		top.n++
	}
}

// BeginObject opens an object value.
func (b *Builder) BeginObject() {
	if !b.beginValue() {
		return
	}
	b.buf.WriteByte('{')
	b.stack = append(b.stack, builderFrame{kind: 'o'})
}

// EndObject closes the innermost open object.
func (b *Builder) EndObject() {
	if b.err != nil {
		return
	}
	if len(b.stack) == 0 || b.stack[len(b.stack)-1].kind != 'o' {
		b.fail(ErrEndMismatch)
		return
	}
	if b.stack[len(b.stack)-1].pending {
		b.fail(ErrNameWithoutValue)
		return
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.buf.WriteByte('}')
	b.endValue()
}

// BeginArray opens an array value.
func (b *Builder) BeginArray() {
	if !b.beginValue() {
		return
	}
	b.buf.WriteByte('[')
	b.stack = append(b.stack, builderFrame{kind: 'a'})
}

// EndArray closes the innermost open array.
func (b *Builder) EndArray() {
	if b.err != nil {
		return
	}
	if len(b.stack) == 0 || b.stack[len(b.stack)-1].kind != 'a' {
		b.fail(ErrEndMismatch)
		return
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.buf.WriteByte(']')
	b.endValue()
}

// Name emits a member name inside the current object. The next write
// supplies its value.
func (b *Builder) Name(key string) {
	if b.err != nil {
		return
	}
	if len(b.stack) == 0 || b.stack[len(b.stack)-1].kind != 'o' {
		b.fail(ErrNameOutsideObject)
		return
	}
	top := &b.stack[len(b.stack)-1]
	if top.pending {
		b.fail(ErrNameWithoutValue)
		return
	}
	if top.n > 0 {
		b.buf.WriteByte(',')
	}
	b.writeQuoted(key)
	b.buf.WriteByte(':')
	top.pending = true
	top.n++
}

// WriteString emits a string value.
func (b *Builder) WriteString(s string) {
	if !b.beginValue() {
		return
	}
	b.writeQuoted(s)
	b.endValue()
}

// WriteInt64 emits an integer value.
func (b *Builder) WriteInt64(v int64) {
	if !b.beginValue() {
		return
	}
	b.buf.WriteString(strconv.FormatInt(v, 10))
	b.endValue()
}

// WriteFloat64 emits a floating point value. NaN and infinities poison
// the builder, as they have no document representation.
func (b *Builder) WriteFloat64(f float64) {
	if !b.beginValue() {
		return
	}
	data, err := json.Marshal(f)
	if err != nil {
		b.fail(fmt.Errorf("document: encoding float: %w", err))
		return
	}
	b.buf.Write(data)
	b.endValue()
}

// WriteBool emits a boolean value.
func (b *Builder) WriteBool(v bool) {
	if !b.beginValue() {
		return
	}
	b.buf.WriteString(strconv.FormatBool(v))
	b.endValue()
}

// WriteNull emits a null value.
func (b *Builder) WriteNull() {
	if !b.beginValue() {
		return
	}
	b.buf.WriteString("null")
	b.endValue()
}

// WriteRaw emits a pre-rendered value verbatim. The bytes must hold one
// valid document value.
func (b *Builder) WriteRaw(raw json.RawMessage) {
	if !b.beginValue() {
		return
	}
	if !json.Valid(raw) {
		b.fail(fmt.Errorf("document: raw value is not valid JSON"))
		return
	}
	b.buf.Write(raw)
	b.endValue()
}

func (b *Builder) writeQuoted(s string) {
	// json.Marshal cannot fail on a string.
	data, _ := json.Marshal(s)
	b.buf.Write(data)
}

// Err returns the sticky error, if any.
func (b *Builder) Err() error {
	return b.err
}

// Len returns the number of bytes emitted so far.
func (b *Builder) Len() int {
	return b.buf.Len()
}

// Bytes returns the finished document. It fails if a misuse occurred or
// the document is incomplete.
func (b *Builder) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.stack) > 0 || !b.done {
		return nil, ErrIncomplete
	}
	return b.buf.Bytes(), nil
}

// Reset returns the Builder to its empty state, keeping the underlying
// buffer for reuse.
func (b *Builder) Reset() {
	b.buf.Reset()
	b.stack = b.stack[:0]
	b.done = false
	b.err = nil
}
