package kafka

import (
	"errors"
	"strings"
	"testing"

	"github.com/Aleph-Alpha/searchkit/v1/document"
	"github.com/Aleph-Alpha/searchkit/v1/resultset"
	"github.com/Aleph-Alpha/searchkit/v1/stream"
)

// pageEvent is the item shape used by the page serializer tests.
type pageEvent struct {
	ID    string
	Score int64
}

type pageEventCodec struct{}

// Only the wire form travels over the broker; the search and document
// form methods are not reachable from these tests.
func (pageEventCodec) ParseHit(resultset.Hit) (pageEvent, error) {
	return pageEvent{}, errors.New("not used")
}

func (pageEventCodec) ParseDocument(*document.Cursor) (pageEvent, error) {
	return pageEvent{}, errors.New("not used")
}

func (pageEventCodec) AppendDocument(pageEvent, *document.Builder) error {
	return errors.New("not used")
}

func (pageEventCodec) AppendWire(ev pageEvent, w *stream.Writer) error {
	if err := w.WriteString(ev.ID); err != nil {
		return err
	}
	return w.WriteInt64(ev.Score)
}

func readPageEvent(r *stream.Reader) (pageEvent, error) {
	id, err := r.ReadString()
	if err != nil {
		return pageEvent{}, err
	}
	score, err := r.ReadInt64()
	if err != nil {
		return pageEvent{}, err
	}
	return pageEvent{ID: id, Score: score}, nil
}

func TestJSONSerializerRoundTrip(t *testing.T) {
	type event struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	serialize := JSONSerializer()
	deserialize := JSONDeserializer()

	body, err := serialize(event{Name: "reindex", Count: 3})
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	var out event
	if err := deserialize(body, &out); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if out.Name != "reindex" || out.Count != 3 {
		t.Errorf("round trip produced %+v", out)
	}
}

func TestBytesSerializerPassthrough(t *testing.T) {
	serialize := BytesSerializer()
	deserialize := BytesDeserializer()

	body, err := serialize([]byte("raw payload"))
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if string(body) != "raw payload" {
		t.Errorf("serialize changed the payload: %q", body)
	}

	var out []byte
	if err := deserialize(body, &out); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if string(out) != "raw payload" {
		t.Errorf("deserialize changed the payload: %q", out)
	}

	// The copy must survive mutation of the source buffer.
	body[0] = 'X'
	if string(out) != "raw payload" {
		t.Errorf("deserialized payload aliases the source buffer")
	}
}

func TestBytesSerializerRejectsWrongTypes(t *testing.T) {
	if _, err := BytesSerializer()("not bytes"); err == nil {
		t.Errorf("expected error for a non-[]byte value")
	}

	var out string
	if err := BytesDeserializer()([]byte("x"), &out); err == nil {
		t.Errorf("expected error for a non-*[]byte target")
	}
}

func TestPageSerializerRoundTrip(t *testing.T) {
	items := []pageEvent{
		{ID: "a", Score: 100},
		{ID: "b", Score: 2000},
		{ID: "c", Score: 0},
	}
	page := resultset.New(20, 512, resultset.RelationExact, "events", items)

	body, err := PageSerializer[pageEvent](pageEventCodec{})(page)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if len(body) == 0 {
		t.Fatalf("serialized page is empty")
	}

	var decoded resultset.ResultSet[pageEvent]
	if err := PageDeserializer(readPageEvent)(body, &decoded); err != nil {
		t.Fatalf("deserialize: %v", err)
	}

	if decoded.StartIndex() != 20 {
		t.Errorf("StartIndex = %d, want 20", decoded.StartIndex())
	}
	if decoded.TotalHits() != 512 {
		t.Errorf("TotalHits = %d, want 512", decoded.TotalHits())
	}
	if decoded.TotalHitRelation() != resultset.RelationExact {
		t.Errorf("TotalHitRelation = %v, want RelationExact", decoded.TotalHitRelation())
	}
	if decoded.ObjectListFieldName() != "events" {
		t.Errorf("ObjectListFieldName = %q, want %q", decoded.ObjectListFieldName(), "events")
	}
	if decoded.Len() != len(items) {
		t.Fatalf("Len = %d, want %d", decoded.Len(), len(items))
	}
	for i, item := range decoded.Items() {
		if item != items[i] {
			t.Errorf("item %d = %+v, want %+v", i, item, items[i])
		}
	}
}

func TestPageSerializerRejectsWrongType(t *testing.T) {
	_, err := PageSerializer[pageEvent](pageEventCodec{})("not a page")
	if err == nil {
		t.Fatalf("expected error for a non-page value")
	}
	if !strings.Contains(err.Error(), "expects resultset.ResultSet") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPageDeserializerRejectsWrongTarget(t *testing.T) {
	var out string
	err := PageDeserializer(readPageEvent)([]byte{}, &out)
	if err == nil {
		t.Fatalf("expected error for a non-page target")
	}
	if !strings.Contains(err.Error(), "expects *resultset.ResultSet") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPageDeserializerTruncated(t *testing.T) {
	page := resultset.New(0, 1, resultset.RelationExact, "events", []pageEvent{{ID: "a", Score: 1}})
	body, err := PageSerializer[pageEvent](pageEventCodec{})(page)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	var decoded resultset.ResultSet[pageEvent]
	err = PageDeserializer(readPageEvent)(body[:len(body)-2], &decoded)
	if err == nil {
		t.Fatalf("expected error for a truncated body")
	}
	if !strings.Contains(err.Error(), "failed to decode page") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSetDefaultSerializersByDataType(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		k := &KafkaClient{cfg: Config{DataType: DataTypeJSON}}
		k.SetDefaultSerializers()

		body, err := k.serializer(map[string]int{"n": 1})
		if err != nil {
			t.Fatalf("serialize: %v", err)
		}
		var out map[string]int
		if err := k.deserializer(body, &out); err != nil {
			t.Fatalf("deserialize: %v", err)
		}
		if out["n"] != 1 {
			t.Errorf("round trip produced %v", out)
		}
	})

	t.Run("Bytes", func(t *testing.T) {
		k := &KafkaClient{cfg: Config{DataType: DataTypeBytes}}
		k.SetDefaultSerializers()

		if _, err := k.serializer("not bytes"); err == nil {
			t.Errorf("bytes serializer accepted a string")
		}
		if _, err := k.serializer([]byte("ok")); err != nil {
			t.Errorf("bytes serializer rejected []byte: %v", err)
		}
	})

	t.Run("EmptyDefaultsToJSON", func(t *testing.T) {
		k := &KafkaClient{}
		k.SetDefaultSerializers()

		body, err := k.serializer(map[string]string{"k": "v"})
		if err != nil {
			t.Fatalf("serialize: %v", err)
		}
		if string(body) != `{"k":"v"}` {
			t.Errorf("serialized body = %s", body)
		}
	})
}
