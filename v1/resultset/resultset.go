package resultset

import (
	"fmt"

	"github.com/Aleph-Alpha/searchkit/v1/stream"
)

const (
	fieldStartIndex       = "startIndex"
	fieldTotalHits        = "totalHits"
	fieldTotalHitRelation = "totalHitRelation"
)

// ResultSet is one page of an ordered search result. It is immutable
// after construction: every field is set by a constructor and only read
// afterwards.
type ResultSet[T any] struct {
	startIndex          int64
	totalHits           int64
	totalHitRelation    Relation
	objectListFieldName string
	objectList          []T
}

// New assembles a result set directly from its parts. No validation is
// applied; callers own the invariants of what they pass. The items
// slice is retained, not copied.
func New[T any](startIndex, totalHits int64, relation Relation, fieldName string, items []T) ResultSet[T] {
	return ResultSet[T]{
		startIndex:          startIndex,
		totalHits:           totalHits,
		totalHitRelation:    relation,
		objectListFieldName: fieldName,
		objectList:          items,
	}
}

// NewSingle wraps one freshly produced item as a complete single-page
// result: offset zero, exactly one hit.
func NewSingle[T any](fieldName string, item T) ResultSet[T] {
	return New(0, 1, RelationExact, fieldName, []T{item})
}

// FromSearchResponse builds the page at offset from a live engine
// response. Every hit is converted through the codec; a hit that fails
// to convert aborts the whole page. When the engine reported a total
// estimate it is carried over verbatim, otherwise the page is
// self-describing: totalHits is the converted item count and the
// relation is exact.
func FromSearchResponse[T any](offset int64, resp SearchResponse, codec ItemCodec[T], fieldName string) (ResultSet[T], error) {
	hits := resp.Hits()
	items := make([]T, 0, len(hits))
	for i, hit := range hits {
		item, err := codec.ParseHit(hit)
		if err != nil {
			return ResultSet[T]{}, fmt.Errorf("resultset: converting hit %d: %w", i, err)
		}
		items = append(items, item)
	}

	totalHits := int64(len(items))
	relation := RelationExact
	if est, ok := resp.TotalEstimate(); ok {
		totalHits = est.Value
		relation = est.Relation
	}
	return New(offset, totalHits, relation, fieldName, items), nil
}

// FromStream decodes a result set from its binary form: start index,
// total hits, relation tag, list field name, then the length-prefixed
// items, each read by itemReader. Unlike the document form the field
// name travels as an ordinary value on the wire. An unrecognized
// relation tag decodes as at-least.
func FromStream[T any](r *stream.Reader, itemReader WireParser[T]) (ResultSet[T], error) {
	startIndex, err := r.ReadInt64()
	if err != nil {
		return ResultSet[T]{}, fmt.Errorf("resultset: reading start index: %w", err)
	}
	totalHits, err := r.ReadInt64()
	if err != nil {
		return ResultSet[T]{}, fmt.Errorf("resultset: reading total hits: %w", err)
	}
	tag, err := r.ReadString()
	if err != nil {
		return ResultSet[T]{}, fmt.Errorf("resultset: reading relation tag: %w", err)
	}
	fieldName, err := r.ReadString()
	if err != nil {
		return ResultSet[T]{}, fmt.Errorf("resultset: reading list field name: %w", err)
	}
	n, err := r.ReadListLength()
	if err != nil {
		return ResultSet[T]{}, fmt.Errorf("resultset: reading list length: %w", err)
	}
	items := make([]T, 0, n)
	for i := 0; i < n; i++ {
		item, err := itemReader(r)
		if err != nil {
			return ResultSet[T]{}, fmt.Errorf("resultset: decoding item %d of %d: %w", i, n, err)
		}
		items = append(items, item)
	}
	return New(startIndex, totalHits, DecodeRelation(tag), fieldName, items), nil
}

// StartIndex returns the zero-based offset of the page's first item in
// the overall result.
func (rs ResultSet[T]) StartIndex() int64 {
	return rs.startIndex
}

// TotalHits returns the reported number of matches across all pages,
// qualified by TotalHitRelation.
func (rs ResultSet[T]) TotalHits() int64 {
	return rs.totalHits
}

// TotalHitRelation reports whether TotalHits is exact or a lower bound.
func (rs ResultSet[T]) TotalHitRelation() Relation {
	return rs.totalHitRelation
}

// ObjectListFieldName returns the document key under which the item
// list is stored.
func (rs ResultSet[T]) ObjectListFieldName() string {
	return rs.objectListFieldName
}

// Items returns the page's items in result order. The slice is the
// result set's internal storage; callers must not modify it.
func (rs ResultSet[T]) Items() []T {
	return rs.objectList
}

// Len returns the number of items on this page.
func (rs ResultSet[T]) Len() int {
	return len(rs.objectList)
}
