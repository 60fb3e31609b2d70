package resultset

import (
	"github.com/Aleph-Alpha/searchkit/v1/document"
	"github.com/Aleph-Alpha/searchkit/v1/stream"
)

// Hit is one matched record from a search engine response. It is opaque
// to this package; an ItemCodec asserts it to the concrete record type
// of the engine in use.
type Hit any

// TotalEstimate is a search engine's estimate of the total number of
// matches across all pages.
type TotalEstimate struct {
	Value    int64
	Relation Relation
}

// SearchResponse is the view of an engine response that
// FromSearchResponse consumes: the ordered hits of one page and, when
// the engine reported one, an estimate of the total.
type SearchResponse interface {
	// Hits returns the page's matched records in response order.
	Hits() []Hit
	// TotalEstimate returns the engine's total-hit estimate. ok is
	// false when the engine did not report one.
	TotalEstimate() (estimate TotalEstimate, ok bool)
}

// ItemCodec converts items of type T between their three external
// representations. One codec instance serves every construction and
// encoding path of a ResultSet[T].
type ItemCodec[T any] interface {
	// ParseHit converts one matched record from a search response into
	// an item.
	ParseHit(hit Hit) (T, error)
	// ParseDocument reads one item from a cursor positioned at the
	// start of the item's value.
	ParseDocument(cur *document.Cursor) (T, error)
	// AppendDocument writes the item's document form to the builder.
	AppendDocument(item T, b *document.Builder) error
	// AppendWire writes the item's binary form to the writer.
	AppendWire(item T, w *stream.Writer) error
}

// WireParser reads one item from a binary stream. FromStream calls it
// once per list entry.
type WireParser[T any] func(r *stream.Reader) (T, error)
