// Package document provides the token-level primitives for reading and
// writing the document-tree interchange form used across searchkit: a
// nested structure of objects, arrays, and scalars rendered as JSON.
//
// Two types make up the package:
//
//   - Cursor: a forward-only token cursor over an input document. It wraps
//     a json.Decoder and adds the structural expectations decoders need:
//     "the next token must open an object", "give me the next field name
//     or tell me the object ended", "skip this whole subtree".
//   - Builder: a deterministic document writer. Keys are emitted exactly
//     in the order the caller writes them, which encoding/json's map
//     marshalling cannot guarantee. Deterministic output is what makes
//     document round trips byte-for-byte reproducible.
//
// # Cursor
//
// A Cursor is single-pass and exclusively owned: hand it to one decoder,
// let that decoder run to completion, then discard it. It is not safe for
// concurrent use.
//
//	cur := document.NewBytesCursor(data)
//	if err := cur.ExpectObjectStart(); err != nil { ... }
//	for {
//	    name, end, err := cur.FieldName()
//	    if err != nil { ... }
//	    if end {
//	        break
//	    }
//	    switch name {
//	    case "startIndex":
//	        v, err := cur.ReadInt64()
//	        ...
//	    default:
//	        _ = cur.Skip()
//	    }
//	}
//
// Numbers are decoded with json.Decoder.UseNumber, so integer fields
// survive undamaged instead of passing through float64.
//
// # Builder
//
// The Builder carries a sticky error: the first misuse (a value written
// into an object without a preceding Name, an EndArray closing an object,
// writes after the top-level value completed) poisons it, every later call
// becomes a no-op, and Bytes returns the error. Item encoders can
// therefore write without checking after every call:
//
//	b := document.NewBuilder()
//	b.BeginObject()
//	b.Name("startIndex")
//	b.WriteInt64(0)
//	b.Name("events")
//	b.BeginArray()
//	b.EndArray()
//	b.EndObject()
//	data, err := b.Bytes()
//
// Builders are plain buffers and cheap to create; Reset makes them
// pool-friendly for hot encode paths.
package document
