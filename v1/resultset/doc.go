// Package resultset provides a generic, immutable container for one
// page of an ordered search result, together with codecs that move it
// between a live search response, a streaming document form, and a
// compact binary form.
//
// # Architecture
//
// A ResultSet[T] carries five values: the zero-based start index of the
// page, the reported total number of matches, a Relation qualifying
// that total as exact or a lower bound, the document field name under
// which the item list is stored, and the items themselves. Once built a
// result set is never mutated; every construction path funnels into
// New, which assembles the value without validation.
//
// Five constructors cover the ways a page comes into existence:
//
//   - NewSingle wraps one freshly produced item as a complete
//     single-hit result.
//   - New assembles a result set directly from its parts.
//   - FromSearchResponse converts a live engine response, carrying the
//     engine's total estimate verbatim when present and falling back to
//     the converted item count otherwise.
//   - FromDocument runs the streaming document parser against a
//     document.Cursor.
//   - FromStream decodes the binary form from a stream.Reader.
//
// Item conversion is delegated to an ItemCodec[T], one strategy object
// whose four methods cover parsing an item from a search hit, parsing
// and writing the document form, and writing the wire form. The binary
// read side stays a standalone WireParser[T] so callers can decode
// streams without assembling a full codec.
//
// # Document Form
//
// The document form is a single object whose keys are emitted in the
// fixed order startIndex, totalHits, totalHitRelation, then the
// configured list field holding the item array. On decode, field order
// is free: the parser walks the object in one forward pass and
// dispatches per key. Unknown fields are skipped whole and reported to
// the injected Logger; a missing list field fails the decode with a
// MissingFieldError; a missing or zero totalHits is replaced by the
// item count. The relation tags are "eq" for exact and "gte" for a
// lower bound, and any unrecognized tag decodes silently as a lower
// bound.
//
// The binary form differs in one deliberate way: the list field name is
// written as an ordinary value, because a byte stream has no keys to
// carry it structurally.
//
// # Usage
//
//	codec := eventCodec{}
//	cur := document.NewBytesCursor(payload)
//	page, err := resultset.FromDocument[Event](cur, "events", codec, logClient)
//	if err != nil {
//		if resultset.IsMissingFieldError(err) {
//			// the payload held no "events" array
//		}
//		return err
//	}
//	for _, ev := range page.Items() {
//		process(ev)
//	}
package resultset
