package resultset

import (
	"fmt"

	"github.com/Aleph-Alpha/searchkit/v1/document"
)

// FromDocument decodes a result set from a document cursor. The cursor
// must be positioned at the start of the result-set object and is
// consumed in a single forward pass; fields may appear in any order.
// Unknown fields are skipped whole and reported to log, which may be
// nil. If the configured list field never appears the decode fails with
// a MissingFieldError; if totalHits is absent or zero it is replaced by
// the decoded item count.
func FromDocument[T any](cur *document.Cursor, fieldName string, codec ItemCodec[T], log Logger) (ResultSet[T], error) {
	return newDocumentParser(cur, fieldName, codec, log).run()
}

type parserState int

const (
	stateExpectStart parserState = iota
	stateFieldLoop
	stateDone
)

// documentParser walks one result-set object. It starts in
// stateExpectStart, loops over fields in stateFieldLoop, and finishes
// the decoded values in stateDone.
type documentParser[T any] struct {
	cur       *document.Cursor
	codec     ItemCodec[T]
	fieldName string
	log       Logger

	state      parserState
	startIndex int64
	totalHits  int64
	relation   Relation
	items      []T
	itemsSet   bool

	handlers map[string]func() error
}

func newDocumentParser[T any](cur *document.Cursor, fieldName string, codec ItemCodec[T], log Logger) *documentParser[T] {
	p := &documentParser[T]{
		cur:       cur,
		codec:     codec,
		fieldName: fieldName,
		log:       log,
		state:     stateExpectStart,
	}
	p.handlers = map[string]func() error{
		fieldStartIndex:       p.readStartIndex,
		fieldTotalHits:        p.readTotalHits,
		fieldTotalHitRelation: p.readRelation,
	}
	// The fixed keys win over a colliding configured list field name.
	if _, taken := p.handlers[fieldName]; !taken {
		p.handlers[fieldName] = p.readItems
	}
	return p
}

func (p *documentParser[T]) run() (ResultSet[T], error) {
	for p.state != stateDone {
		switch p.state {
		case stateExpectStart:
			if err := p.cur.ExpectObjectStart(); err != nil {
				return ResultSet[T]{}, formatError("object start", err)
			}
			p.state = stateFieldLoop
		case stateFieldLoop:
			if err := p.step(); err != nil {
				return ResultSet[T]{}, err
			}
		}
	}
	return p.finish()
}

// step consumes one field, or the closing brace that ends the loop.
func (p *documentParser[T]) step() error {
	name, end, err := p.cur.FieldName()
	if err != nil {
		return fmt.Errorf("resultset: reading field name: %w", err)
	}
	if end {
		p.state = stateDone
		return nil
	}
	if handler, ok := p.handlers[name]; ok {
		return handler()
	}
	return p.skipUnknown(name)
}

func (p *documentParser[T]) readStartIndex() error {
	v, err := p.cur.ReadInt64()
	if err != nil {
		return fmt.Errorf("resultset: field %q: %w", fieldStartIndex, err)
	}
	p.startIndex = v
	return nil
}

func (p *documentParser[T]) readTotalHits() error {
	v, err := p.cur.ReadInt64()
	if err != nil {
		return fmt.Errorf("resultset: field %q: %w", fieldTotalHits, err)
	}
	p.totalHits = v
	return nil
}

func (p *documentParser[T]) readRelation() error {
	tag, err := p.cur.ReadString()
	if err != nil {
		return fmt.Errorf("resultset: field %q: %w", fieldTotalHitRelation, err)
	}
	p.relation = DecodeRelation(tag)
	return nil
}

// readItems decodes the configured list field. An empty array counts as
// a populated list.
func (p *documentParser[T]) readItems() error {
	if err := p.cur.ExpectArrayStart(); err != nil {
		return formatError(fmt.Sprintf("array for field %q", p.fieldName), err)
	}
	items := make([]T, 0)
	for p.cur.More() {
		item, err := p.codec.ParseDocument(p.cur)
		if err != nil {
			return fmt.Errorf("resultset: decoding item %d in %q: %w", len(items), p.fieldName, err)
		}
		items = append(items, item)
	}
	if err := p.cur.ExpectArrayEnd(); err != nil {
		return formatError(fmt.Sprintf("end of array %q", p.fieldName), err)
	}
	p.items = items
	p.itemsSet = true
	return nil
}

// skipUnknown consumes a field this parser does not know, subtree and
// all, and reports it. Decoding continues with the next field.
func (p *documentParser[T]) skipUnknown(name string) error {
	if err := p.cur.Skip(); err != nil {
		return fmt.Errorf("resultset: skipping field %q: %w", name, err)
	}
	if p.log != nil {
		p.log.Warn("skipping unknown field in result set document", nil, map[string]interface{}{
			"field":      name,
			"list_field": p.fieldName,
		})
	}
	return nil
}

func (p *documentParser[T]) finish() (ResultSet[T], error) {
	if !p.itemsSet {
		return ResultSet[T]{}, &MissingFieldError{Field: p.fieldName}
	}
	if p.totalHits == 0 {
		p.totalHits = int64(len(p.items))
	}
	return New(p.startIndex, p.totalHits, p.relation, p.fieldName, p.items), nil
}
