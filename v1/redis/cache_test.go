package redis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Aleph-Alpha/searchkit/v1/document"
	"github.com/Aleph-Alpha/searchkit/v1/resultset"
	"github.com/Aleph-Alpha/searchkit/v1/stream"
)

// cachedEvent is the item shape used by the page cache tests.
type cachedEvent struct {
	ID    string
	Score int64
}

type cachedEventCodec struct{}

// Only the document form reaches the cache; the search and wire form
// methods are not reachable from these tests.
func (cachedEventCodec) ParseHit(resultset.Hit) (cachedEvent, error) {
	return cachedEvent{}, errors.New("not used")
}

func (cachedEventCodec) AppendWire(cachedEvent, *stream.Writer) error {
	return errors.New("not used")
}

func (cachedEventCodec) AppendDocument(ev cachedEvent, b *document.Builder) error {
	b.BeginObject()
	b.Name("id")
	b.WriteString(ev.ID)
	b.Name("score")
	b.WriteInt64(ev.Score)
	b.EndObject()
	return b.Err()
}

func (cachedEventCodec) ParseDocument(cur *document.Cursor) (cachedEvent, error) {
	if err := cur.ExpectObjectStart(); err != nil {
		return cachedEvent{}, err
	}
	var ev cachedEvent
	for {
		name, end, err := cur.FieldName()
		if err != nil {
			return cachedEvent{}, err
		}
		if end {
			return ev, nil
		}
		switch name {
		case "id":
			ev.ID, err = cur.ReadString()
		case "score":
			ev.Score, err = cur.ReadInt64()
		default:
			err = cur.Skip()
		}
		if err != nil {
			return cachedEvent{}, err
		}
	}
}

// failingEventCodec fails the document encoding of every item.
type failingEventCodec struct {
	cachedEventCodec
}

func (failingEventCodec) AppendDocument(cachedEvent, *document.Builder) error {
	return errors.New("encode boom")
}

// clientStub exists so fakeCache can embed the interface without the
// field name colliding with the Client() accessor method.
type clientStub = Client

// fakeCache is an in-memory Client standing in for a Redis server. The
// embedded interface panics on anything the cache surface does not use.
type fakeCache struct {
	clientStub
	values  map[string][]byte
	ttls    map[string]time.Duration
	pageTTL time.Duration

	setErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		values:  make(map[string][]byte),
		ttls:    make(map[string]time.Duration),
		pageTTL: DefaultPageTTL,
	}
}

func (f *fakeCache) PageTTL() time.Duration { return f.pageTTL }

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	payload, ok := value.([]byte)
	if !ok {
		return errors.New("fakeCache: expected []byte value")
	}
	f.values[key] = append([]byte(nil), payload...)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeCache) GetBytes(ctx context.Context, key string) ([]byte, error) {
	payload, ok := f.values[key]
	if !ok {
		return nil, errors.Join(ErrKeyNotFound, errors.New("redis: nil"))
	}
	return payload, nil
}

func TestStoreFetchPageRoundTrip(t *testing.T) {
	cache := newFakeCache()
	items := []cachedEvent{
		{ID: "a", Score: 97},
		{ID: "b", Score: 42},
	}
	page := resultset.New(20, 310, resultset.RelationAtLeast, "events", items)
	key := Fingerprint("documents", "q: storage layout", "20")

	n, err := StorePage(context.Background(), cache, key, page, cachedEventCodec{})
	if err != nil {
		t.Fatalf("StorePage: %v", err)
	}
	if n != int64(len(cache.values[key])) {
		t.Errorf("StorePage returned %d bytes, stored %d", n, len(cache.values[key]))
	}
	if got := cache.ttls[key]; got != DefaultPageTTL {
		t.Errorf("stored with ttl %v, want client default %v", got, DefaultPageTTL)
	}

	restored, err := FetchPage(context.Background(), cache, key, "events", cachedEventCodec{}, nil)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if restored.StartIndex() != 20 || restored.TotalHits() != 310 {
		t.Errorf("restored header {%d, %d}, want {20, 310}", restored.StartIndex(), restored.TotalHits())
	}
	if restored.TotalHitRelation() != resultset.RelationAtLeast {
		t.Errorf("restored relation %v, want at-least", restored.TotalHitRelation())
	}
	if len(restored.Items()) != len(items) {
		t.Fatalf("restored %d items, want %d", len(restored.Items()), len(items))
	}
	for i, ev := range restored.Items() {
		if ev != items[i] {
			t.Errorf("item %d = %+v, want %+v", i, ev, items[i])
		}
	}
}

func TestStorePageExplicitTTL(t *testing.T) {
	cache := newFakeCache()
	page := resultset.NewSingle("events", cachedEvent{ID: "solo", Score: 1})

	if _, err := StorePage(context.Background(), cache, "k", page, cachedEventCodec{}, time.Hour); err != nil {
		t.Fatalf("StorePage: %v", err)
	}
	if got := cache.ttls["k"]; got != time.Hour {
		t.Errorf("stored with ttl %v, want %v", got, time.Hour)
	}
}

func TestStorePageEncodeFailure(t *testing.T) {
	cache := newFakeCache()
	page := resultset.NewSingle("events", cachedEvent{ID: "solo", Score: 1})

	_, err := StorePage(context.Background(), cache, "k", page, failingEventCodec{})
	if err == nil || !strings.Contains(err.Error(), "encode boom") {
		t.Fatalf("StorePage with failing codec = %v, want the codec error", err)
	}
	if len(cache.values) != 0 {
		t.Errorf("failed encode still stored %d values", len(cache.values))
	}
}

func TestStorePageSetFailure(t *testing.T) {
	cache := newFakeCache()
	cache.setErr = errors.New("server gone")
	page := resultset.NewSingle("events", cachedEvent{ID: "solo", Score: 1})

	if _, err := StorePage(context.Background(), cache, "k", page, cachedEventCodec{}); !errors.Is(err, cache.setErr) {
		t.Fatalf("StorePage with failing Set = %v, want the set error", err)
	}
}

func TestFetchPageMiss(t *testing.T) {
	cache := newFakeCache()

	_, err := FetchPage(context.Background(), cache, "absent", "events", cachedEventCodec{}, nil)
	if !IsKeyNotFoundError(err) {
		t.Fatalf("FetchPage on empty cache = %v, want a key-not-found error", err)
	}
}

func TestFetchPageCorruptPayload(t *testing.T) {
	cache := newFakeCache()
	cache.values["bad"] = []byte(`"not an object"`)

	_, err := FetchPage(context.Background(), cache, "bad", "events", cachedEventCodec{}, nil)
	if err == nil {
		t.Fatal("FetchPage on corrupt payload succeeded")
	}
	if IsKeyNotFoundError(err) {
		t.Fatalf("corrupt payload reported as a miss: %v", err)
	}
	if !strings.Contains(err.Error(), "bad") {
		t.Errorf("decode error %q does not name the key", err)
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("documents", "query", "0")
	if a != Fingerprint("documents", "query", "0") {
		t.Error("equal parts produced different fingerprints")
	}
	if !strings.HasPrefix(a, "page:") {
		t.Errorf("fingerprint %q lacks the page: prefix", a)
	}
	if a == Fingerprint("documents", "query", "10") {
		t.Error("different offsets produced the same fingerprint")
	}
	// Length framing keeps part boundaries significant.
	if Fingerprint("ab", "c") == Fingerprint("a", "bc") {
		t.Error("shifted part boundary produced the same fingerprint")
	}
}
