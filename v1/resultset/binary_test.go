package resultset

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Aleph-Alpha/searchkit/v1/stream"
)

func TestWireRoundTrip(t *testing.T) {
	items := []testEvent{{ID: "a", Size: 11}, {ID: "b", Size: 22}, {ID: "c", Size: 33}}
	in := New(40, 125, RelationAtLeast, "events", items)

	var buf bytes.Buffer
	if err := in.EncodeWire(stream.NewWriter(&buf), testEventCodec{}); err != nil {
		t.Fatalf("EncodeWire() error = %v", err)
	}

	out, err := FromStream[testEvent](stream.NewReader(&buf), readTestEvent)
	if err != nil {
		t.Fatalf("FromStream() error = %v", err)
	}

	assertResultSet(t, out, 40, 125, RelationAtLeast, "events", items)
}

func TestWireRoundTripEmptyList(t *testing.T) {
	in := New(0, 0, RelationExact, "documents", []testEvent{})

	var buf bytes.Buffer
	if err := in.EncodeWire(stream.NewWriter(&buf), testEventCodec{}); err != nil {
		t.Fatalf("EncodeWire() error = %v", err)
	}

	out, err := FromStream[testEvent](stream.NewReader(&buf), readTestEvent)
	if err != nil {
		t.Fatalf("FromStream() error = %v", err)
	}

	assertResultSet(t, out, 0, 0, RelationExact, "documents", nil)
}

func TestWireFieldNameTravelsAsValue(t *testing.T) {
	in := New(3, 9, RelationExact, "events", []testEvent{{ID: "a", Size: 1}})

	var buf bytes.Buffer
	if err := in.EncodeWire(stream.NewWriter(&buf), testEventCodec{}); err != nil {
		t.Fatalf("EncodeWire() error = %v", err)
	}

	// Walk the raw layout: start index, total hits, relation tag, then
	// the field name as a plain string value.
	r := stream.NewReader(&buf)
	if v, err := r.ReadInt64(); err != nil || v != 3 {
		t.Fatalf("start index on wire = %d, %v; want 3", v, err)
	}
	if v, err := r.ReadInt64(); err != nil || v != 9 {
		t.Fatalf("total hits on wire = %d, %v; want 9", v, err)
	}
	if tag, err := r.ReadString(); err != nil || tag != "eq" {
		t.Fatalf("relation tag on wire = %q, %v; want \"eq\"", tag, err)
	}
	if name, err := r.ReadString(); err != nil || name != "events" {
		t.Fatalf("field name on wire = %q, %v; want \"events\"", name, err)
	}
	if n, err := r.ReadListLength(); err != nil || n != 1 {
		t.Fatalf("list length on wire = %d, %v; want 1", n, err)
	}
}

func TestFromStreamLenientRelationTag(t *testing.T) {
	var buf bytes.Buffer
	w := stream.NewWriter(&buf)
	if err := w.WriteInt64(0); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteInt64(5); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteString("approximately"); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteString("events"); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteListLength(0); err != nil {
		t.Fatal(err)
	}

	out, err := FromStream[testEvent](stream.NewReader(&buf), readTestEvent)
	if err != nil {
		t.Fatalf("FromStream() error = %v", err)
	}
	if out.TotalHitRelation() != RelationAtLeast {
		t.Errorf("unknown tag decoded as %s, want at_least", out.TotalHitRelation())
	}
}

func TestFromStreamTruncated(t *testing.T) {
	in := New(1, 2, RelationExact, "events", []testEvent{{ID: "ab", Size: 7}})

	var buf bytes.Buffer
	if err := in.EncodeWire(stream.NewWriter(&buf), testEventCodec{}); err != nil {
		t.Fatalf("EncodeWire() error = %v", err)
	}
	full := buf.Bytes()

	// Chopping the stream anywhere short of its end must surface an
	// error, never a partial result set.
	for cut := 0; cut < len(full); cut++ {
		_, err := FromStream[testEvent](stream.NewReader(bytes.NewReader(full[:cut])), readTestEvent)
		if err == nil {
			t.Fatalf("FromStream() with %d of %d bytes: error = nil", cut, len(full))
		}
	}
}

func TestEncodeWireItemErrorAborts(t *testing.T) {
	in := New(0, 1, RelationExact, "events", []testEvent{{ID: "a"}})

	var buf bytes.Buffer
	err := in.EncodeWire(stream.NewWriter(&buf), failingCodec{})
	if !errors.Is(err, errConvert) {
		t.Fatalf("EncodeWire() error = %v, want wrapped %v", err, errConvert)
	}
}

func TestFromStreamItemErrorNamesPosition(t *testing.T) {
	in := New(0, 2, RelationExact, "events", []testEvent{{ID: "a", Size: 1}, {ID: "b", Size: 2}})

	var buf bytes.Buffer
	if err := in.EncodeWire(stream.NewWriter(&buf), testEventCodec{}); err != nil {
		t.Fatalf("EncodeWire() error = %v", err)
	}

	calls := 0
	failSecond := func(r *stream.Reader) (testEvent, error) {
		calls++
		if calls == 2 {
			return testEvent{}, errConvert
		}
		return readTestEvent(r)
	}

	_, err := FromStream[testEvent](stream.NewReader(&buf), failSecond)
	if !errors.Is(err, errConvert) {
		t.Fatalf("FromStream() error = %v, want wrapped %v", err, errConvert)
	}
}
