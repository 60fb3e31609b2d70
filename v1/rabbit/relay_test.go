package rabbit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Aleph-Alpha/searchkit/v1/document"
	"github.com/Aleph-Alpha/searchkit/v1/resultset"
	"github.com/Aleph-Alpha/searchkit/v1/stream"
)

// relayedEvent is the item shape used by the page relay tests.
type relayedEvent struct {
	ID   string
	Size int64
}

type relayedEventCodec struct{}

// Only the wire form travels over the broker; the search and document
// form methods are not reachable from these tests.
func (relayedEventCodec) ParseHit(resultset.Hit) (relayedEvent, error) {
	return relayedEvent{}, errors.New("not used")
}

func (relayedEventCodec) ParseDocument(*document.Cursor) (relayedEvent, error) {
	return relayedEvent{}, errors.New("not used")
}

func (relayedEventCodec) AppendDocument(relayedEvent, *document.Builder) error {
	return errors.New("not used")
}

func (relayedEventCodec) AppendWire(ev relayedEvent, w *stream.Writer) error {
	if err := w.WriteString(ev.ID); err != nil {
		return err
	}
	return w.WriteInt64(ev.Size)
}

func readRelayedEvent(r *stream.Reader) (relayedEvent, error) {
	id, err := r.ReadString()
	if err != nil {
		return relayedEvent{}, err
	}
	size, err := r.ReadInt64()
	if err != nil {
		return relayedEvent{}, err
	}
	return relayedEvent{ID: id, Size: size}, nil
}

// failingEventCodec fails the wire encoding of every item.
type failingEventCodec struct {
	relayedEventCodec
}

func (failingEventCodec) AppendWire(relayedEvent, *stream.Writer) error {
	return errors.New("encode boom")
}

// captureClient records published payloads instead of talking to a
// broker. The embedded interface panics on anything else.
type captureClient struct {
	Client
	published [][]byte
	headers   []map[string]interface{}

	publishErr error
}

func (c *captureClient) Publish(ctx context.Context, msg []byte, headers ...map[string]interface{}) error {
	if c.publishErr != nil {
		return c.publishErr
	}
	c.published = append(c.published, append([]byte(nil), msg...))
	if len(headers) > 0 {
		c.headers = append(c.headers, headers[0])
	} else {
		c.headers = append(c.headers, nil)
	}
	return nil
}

// staticMessage is a delivered message detached from any broker.
type staticMessage struct {
	body []byte
}

func (m *staticMessage) AckMsg() error                  { return nil }
func (m *staticMessage) NackMsg(requeue bool) error     { return nil }
func (m *staticMessage) Body() []byte                   { return m.body }
func (m *staticMessage) Header() map[string]interface{} { return nil }

func TestPublishPageRoundTrip(t *testing.T) {
	capture := &captureClient{}
	items := []relayedEvent{
		{ID: "a", Size: 100},
		{ID: "b", Size: 2000},
		{ID: "c", Size: 0},
	}
	page := resultset.New(40, 1200, resultset.RelationAtLeast, "events", items)

	n, err := PublishPage(context.Background(), capture, page, relayedEventCodec{})
	if err != nil {
		t.Fatalf("PublishPage: %v", err)
	}
	if len(capture.published) != 1 {
		t.Fatalf("expected 1 published message, got %d", len(capture.published))
	}
	if n != int64(len(capture.published[0])) {
		t.Errorf("PublishPage returned %d bytes, published %d", n, len(capture.published[0]))
	}

	restored, err := DecodePage(&staticMessage{body: capture.published[0]}, readRelayedEvent)
	if err != nil {
		t.Fatalf("DecodePage: %v", err)
	}
	if restored.StartIndex() != page.StartIndex() {
		t.Errorf("StartIndex = %d, want %d", restored.StartIndex(), page.StartIndex())
	}
	if restored.TotalHits() != page.TotalHits() {
		t.Errorf("TotalHits = %d, want %d", restored.TotalHits(), page.TotalHits())
	}
	if restored.TotalHitRelation() != page.TotalHitRelation() {
		t.Errorf("TotalHitRelation = %v, want %v", restored.TotalHitRelation(), page.TotalHitRelation())
	}
	if restored.ObjectListFieldName() != page.ObjectListFieldName() {
		t.Errorf("ObjectListFieldName = %q, want %q", restored.ObjectListFieldName(), page.ObjectListFieldName())
	}
	if got := restored.Items(); len(got) != len(items) {
		t.Fatalf("Items length = %d, want %d", len(got), len(items))
	} else {
		for i := range items {
			if got[i] != items[i] {
				t.Errorf("item %d = %+v, want %+v", i, got[i], items[i])
			}
		}
	}
}

func TestPublishPageEmptyPage(t *testing.T) {
	capture := &captureClient{}
	page := resultset.New(0, 0, resultset.RelationExact, "events", []relayedEvent{})

	n, err := PublishPage(context.Background(), capture, page, relayedEventCodec{})
	if err != nil {
		t.Fatalf("PublishPage: %v", err)
	}
	if n <= 0 {
		t.Fatalf("expected header bytes for an empty page, got %d", n)
	}

	restored, err := DecodePage(&staticMessage{body: capture.published[0]}, readRelayedEvent)
	if err != nil {
		t.Fatalf("DecodePage: %v", err)
	}
	if restored.Len() != 0 {
		t.Errorf("Len = %d, want 0", restored.Len())
	}
	if restored.TotalHitRelation() != resultset.RelationExact {
		t.Errorf("TotalHitRelation = %v, want RelationExact", restored.TotalHitRelation())
	}
}

func TestPublishPageHeaders(t *testing.T) {
	capture := &captureClient{}
	page := resultset.NewSingle("events", relayedEvent{ID: "only", Size: 7})

	_, err := PublishPage(context.Background(), capture, page, relayedEventCodec{},
		map[string]interface{}{"query": "q-42"})
	if err != nil {
		t.Fatalf("PublishPage: %v", err)
	}
	if len(capture.headers) != 1 || capture.headers[0] == nil {
		t.Fatal("expected headers to be forwarded")
	}
	if capture.headers[0]["query"] != "q-42" {
		t.Errorf("header query = %v, want q-42", capture.headers[0]["query"])
	}
}

func TestPublishPageEncodeError(t *testing.T) {
	capture := &captureClient{}
	page := resultset.NewSingle("events", relayedEvent{ID: "x", Size: 1})

	_, err := PublishPage(context.Background(), capture, page, failingEventCodec{})
	if err == nil {
		t.Fatal("expected encode error")
	}
	if !strings.Contains(err.Error(), "encode page") {
		t.Errorf("error = %v, want an encode page failure", err)
	}
	if len(capture.published) != 0 {
		t.Errorf("expected no publish after a failed encode, got %d", len(capture.published))
	}
}

func TestPublishPagePublishError(t *testing.T) {
	errBroker := errors.New("broker unavailable")
	capture := &captureClient{publishErr: errBroker}
	page := resultset.NewSingle("events", relayedEvent{ID: "x", Size: 1})

	_, err := PublishPage(context.Background(), capture, page, relayedEventCodec{})
	if !errors.Is(err, errBroker) {
		t.Fatalf("expected the publish error to surface, got %v", err)
	}
}

func TestDecodePageTruncated(t *testing.T) {
	capture := &captureClient{}
	page := resultset.New(0, 3, resultset.RelationExact, "events", []relayedEvent{
		{ID: "a", Size: 1},
		{ID: "b", Size: 2},
		{ID: "c", Size: 3},
	})
	if _, err := PublishPage(context.Background(), capture, page, relayedEventCodec{}); err != nil {
		t.Fatalf("PublishPage: %v", err)
	}

	whole := capture.published[0]
	_, err := DecodePage(&staticMessage{body: whole[:len(whole)-3]}, readRelayedEvent)
	if err == nil {
		t.Fatal("expected decode error for a truncated payload")
	}
	if !strings.Contains(err.Error(), "decode page") {
		t.Errorf("error = %v, want a decode page failure", err)
	}
}

func TestDecodePageEmptyBody(t *testing.T) {
	_, err := DecodePage(&staticMessage{}, readRelayedEvent)
	if err == nil {
		t.Fatal("expected decode error for an empty body")
	}
}
