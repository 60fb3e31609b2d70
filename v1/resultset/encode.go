package resultset

import (
	"fmt"

	"github.com/Aleph-Alpha/searchkit/v1/document"
	"github.com/Aleph-Alpha/searchkit/v1/stream"
)

// EncodeDocument writes the result set's document form to b. Keys are
// emitted in the fixed order startIndex, totalHits, totalHitRelation,
// then the configured list field holding the item array. The list field
// name appears only as that key, never as a value.
func (rs ResultSet[T]) EncodeDocument(b *document.Builder, codec ItemCodec[T]) error {
	b.BeginObject()
	b.Name(fieldStartIndex)
	b.WriteInt64(rs.startIndex)
	b.Name(fieldTotalHits)
	b.WriteInt64(rs.totalHits)
	b.Name(fieldTotalHitRelation)
	b.WriteString(rs.totalHitRelation.Tag())
	b.Name(rs.objectListFieldName)
	b.BeginArray()
	for i := range rs.objectList {
		if err := codec.AppendDocument(rs.objectList[i], b); err != nil {
			return fmt.Errorf("resultset: encoding item %d: %w", i, err)
		}
	}
	b.EndArray()
	b.EndObject()
	return b.Err()
}

// EncodeWire writes the result set's binary form to w in the fixed
// order start index, total hits, relation tag, list field name, then
// the length-prefixed item list. Here the field name is an ordinary
// value so FromStream can restore the result set completely.
func (rs ResultSet[T]) EncodeWire(w *stream.Writer, codec ItemCodec[T]) error {
	if err := w.WriteInt64(rs.startIndex); err != nil {
		return fmt.Errorf("resultset: writing start index: %w", err)
	}
	if err := w.WriteInt64(rs.totalHits); err != nil {
		return fmt.Errorf("resultset: writing total hits: %w", err)
	}
	if err := w.WriteString(rs.totalHitRelation.Tag()); err != nil {
		return fmt.Errorf("resultset: writing relation tag: %w", err)
	}
	if err := w.WriteString(rs.objectListFieldName); err != nil {
		return fmt.Errorf("resultset: writing list field name: %w", err)
	}
	if err := w.WriteListLength(len(rs.objectList)); err != nil {
		return fmt.Errorf("resultset: writing list length: %w", err)
	}
	for i := range rs.objectList {
		if err := codec.AppendWire(rs.objectList[i], w); err != nil {
			return fmt.Errorf("resultset: encoding item %d: %w", i, err)
		}
	}
	return nil
}
