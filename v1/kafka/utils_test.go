package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Aleph-Alpha/searchkit/v1/resultset"
	"github.com/Aleph-Alpha/searchkit/v1/schema_registry"
)

// testMessage is a consumed message detached from any broker.
type testMessage struct {
	body []byte
}

func (m *testMessage) CommitMsg() error          { return nil }
func (m *testMessage) Body() []byte              { return m.body }
func (m *testMessage) Key() string               { return "" }
func (m *testMessage) Header() map[string]string { return nil }

func TestPublishOnConsumerClient(t *testing.T) {
	client, err := NewClient(consumerConfig())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.GracefulShutdown()

	if err := client.Publish(context.Background(), "key", []byte("x"), nil); !errors.Is(err, ErrNotProducer) {
		t.Errorf("Publish error = %v, want ErrNotProducer", err)
	}
	if err := client.Produce(context.Background(), "key", map[string]int{"n": 1}, nil); !errors.Is(err, ErrNotProducer) {
		t.Errorf("Produce error = %v, want ErrNotProducer", err)
	}
}

func TestProduceWithoutSerializer(t *testing.T) {
	client, err := NewClient(producerConfig())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.GracefulShutdown()

	client.SetSerializer(nil)
	if err := client.Produce(context.Background(), "key", "value", nil); !errors.Is(err, ErrNoSerializer) {
		t.Errorf("Produce error = %v, want ErrNoSerializer", err)
	}

	client.SetDeserializer(nil)
	var out map[string]int
	if err := client.Decode(&testMessage{body: []byte("{}")}, &out); !errors.Is(err, ErrNoDeserializer) {
		t.Errorf("Decode error = %v, want ErrNoDeserializer", err)
	}
}

func TestProduceSerializerError(t *testing.T) {
	client, err := NewClient(producerConfig())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.GracefulShutdown()

	client.SetSerializer(BytesSerializer())
	err = client.Produce(context.Background(), "key", "not bytes", nil)
	if err == nil {
		t.Fatalf("expected serializer error")
	}
	if !strings.Contains(err.Error(), "failed to serialize message") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDecodeWithoutRegistry(t *testing.T) {
	client, err := NewClient(producerConfig())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.GracefulShutdown()

	var out map[string]int
	if err := client.Decode(&testMessage{body: []byte(`{"hits":3}`)}, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out["hits"] != 3 {
		t.Errorf("decoded %v", out)
	}
}

func TestFramingRoundTrip(t *testing.T) {
	registry := newFakeRegistry()

	cfg := producerConfig()
	cfg.Registry = registry
	cfg.SchemaSubject = "pages-value"
	cfg.Schema = schema_registry.PageSchema("events")
	cfg.SchemaType = "JSON"

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.GracefulShutdown()

	client.SetSerializer(PageSerializer[pageEvent](pageEventCodec{}))
	client.SetDeserializer(PageDeserializer(readPageEvent))

	page := resultset.New(40, 1200, resultset.RelationAtLeast, "events", []pageEvent{
		{ID: "a", Score: 100},
		{ID: "b", Score: 2000},
	})

	body, err := client.encodeValue(page)
	if err != nil {
		t.Fatalf("encodeValue: %v", err)
	}

	// The body must carry the registry wire header for the registered
	// schema.
	id, payload, err := schema_registry.DecodeSchemaID(body)
	if err != nil {
		t.Fatalf("DecodeSchemaID: %v", err)
	}
	if id != client.schemaID {
		t.Errorf("framed schema ID = %d, want %d", id, client.schemaID)
	}
	if len(payload) != len(body)-5 {
		t.Errorf("payload length = %d, want %d", len(payload), len(body)-5)
	}

	var decoded resultset.ResultSet[pageEvent]
	if err := client.Decode(&testMessage{body: body}, &decoded); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.StartIndex() != 40 || decoded.TotalHits() != 1200 {
		t.Errorf("decoded page header %d/%d", decoded.StartIndex(), decoded.TotalHits())
	}
	if decoded.TotalHitRelation() != resultset.RelationAtLeast {
		t.Errorf("decoded relation = %v", decoded.TotalHitRelation())
	}
	if decoded.Len() != 2 || decoded.Items()[1].ID != "b" {
		t.Errorf("decoded items %+v", decoded.Items())
	}
}

func TestDecodeUnknownSchema(t *testing.T) {
	registry := newFakeRegistry()

	cfg := producerConfig()
	cfg.Registry = registry
	cfg.SchemaSubject = "pages-value"
	cfg.Schema = schema_registry.PageSchema("events")

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.GracefulShutdown()

	body := schema_registry.Frame(99, []byte("payload"))
	var out []byte
	client.SetDeserializer(BytesDeserializer())

	err = client.Decode(&testMessage{body: body}, &out)
	if err == nil {
		t.Fatalf("expected unknown schema to be rejected")
	}
	if !strings.Contains(err.Error(), "unknown schema 99") {
		t.Errorf("unexpected error: %v", err)
	}
	if !errors.Is(err, schema_registry.ErrSchemaNotFound) {
		t.Errorf("error does not wrap ErrSchemaNotFound: %v", err)
	}
}

func TestDecodeMalformedFrame(t *testing.T) {
	registry := newFakeRegistry()

	cfg := producerConfig()
	cfg.Registry = registry
	cfg.SchemaSubject = "pages-value"
	cfg.Schema = schema_registry.PageSchema("events")

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.GracefulShutdown()

	for name, body := range map[string][]byte{
		"Truncated": {0x0, 0x0},
		"BadMagic":  {0x7, 0x0, 0x0, 0x0, 0x1, 'x'},
	} {
		t.Run(name, func(t *testing.T) {
			var out []byte
			client.SetDeserializer(BytesDeserializer())
			err := client.Decode(&testMessage{body: body}, &out)
			if err == nil {
				t.Fatalf("expected frame error")
			}
			if !strings.Contains(err.Error(), "failed to read schema header") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConsumeOnProducerClient(t *testing.T) {
	client, err := NewClient(producerConfig())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.GracefulShutdown()

	wg := &sync.WaitGroup{}
	msgChan := client.Consume(context.Background(), wg)

	select {
	case _, ok := <-msgChan:
		if ok {
			t.Fatalf("unexpected message from a producer client")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("consume channel did not close")
	}
	wg.Wait()
}

func TestConsumeStopsOnContextCancel(t *testing.T) {
	cfg := consumerConfig()
	// A closed port makes fetch attempts fail fast instead of hanging
	// in a dial.
	cfg.Brokers = []string{"127.0.0.1:1"}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.GracefulShutdown()

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	msgChan := client.Consume(ctx, wg)
	cancel()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-msgChan:
			if !ok {
				wg.Wait()
				return
			}
		case <-deadline:
			t.Fatalf("consume channel did not close after cancel")
		}
	}
}

func TestConsumeStopsOnShutdown(t *testing.T) {
	cfg := consumerConfig()
	cfg.Brokers = []string{"127.0.0.1:1"}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	wg := &sync.WaitGroup{}
	msgChan := client.Consume(context.Background(), wg)
	client.GracefulShutdown()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-msgChan:
			if !ok {
				wg.Wait()
				return
			}
		case <-deadline:
			t.Fatalf("consume channel did not close after shutdown")
		}
	}
}

func TestConsumeParallelClampsWorkers(t *testing.T) {
	client, err := NewClient(producerConfig())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.GracefulShutdown()

	// Zero workers still produces a usable (and here immediately
	// closed) channel.
	wg := &sync.WaitGroup{}
	msgChan := client.ConsumeParallel(context.Background(), wg, 0)

	select {
	case _, ok := <-msgChan:
		if ok {
			t.Fatalf("unexpected message")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("consume channel did not close")
	}
	wg.Wait()
}
