package redis

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/Aleph-Alpha/searchkit/v1/document"
	"github.com/Aleph-Alpha/searchkit/v1/resultset"
)

// Fingerprint derives a stable cache key from the parts that identify a
// query: collection, query text, offset, page size, whatever the caller
// considers identifying. Equal part lists always produce the same key;
// the parts are length-framed before hashing so ("ab", "c") and
// ("a", "bc") fingerprint differently.
func Fingerprint(parts ...string) string {
	h := sha256.New()
	var frame [4]byte
	for _, p := range parts {
		binary.BigEndian.PutUint32(frame[:], uint32(len(p)))
		h.Write(frame[:])
		h.Write([]byte(p))
	}
	return "page:" + hex.EncodeToString(h.Sum(nil))
}

// StorePage caches a result page's document form under the given key.
// Returns the number of bytes stored.
//
// The cached value is the page's canonical document encoding, so it can
// be read back by FetchPage or by any consumer of the document form.
// Without an explicit ttl the client's configured page TTL applies; a
// ttl of 0 caches the page without expiry.
func StorePage[T any](ctx context.Context, c Client, key string, page resultset.ResultSet[T], codec resultset.ItemCodec[T], ttl ...time.Duration) (int64, error) {
	b := document.NewBuilder()
	if err := page.EncodeDocument(b, codec); err != nil {
		return 0, fmt.Errorf("redis: encode page: %w", err)
	}
	payload, err := b.Bytes()
	if err != nil {
		return 0, fmt.Errorf("redis: encode page: %w", err)
	}

	expiry := c.PageTTL()
	if len(ttl) > 0 {
		expiry = ttl[0]
	}
	if err := c.Set(ctx, key, payload, expiry); err != nil {
		return 0, err
	}
	return int64(len(payload)), nil
}

// FetchPage reads a cached page back and decodes its document form.
// fieldName names the item list field the page was written with; log
// receives diagnostics for unknown fields and may be nil.
//
// A cache miss satisfies IsKeyNotFoundError; the caller runs the search
// and refills with StorePage.
func FetchPage[T any](ctx context.Context, c Client, key string, fieldName string, codec resultset.ItemCodec[T], log resultset.Logger) (resultset.ResultSet[T], error) {
	data, err := c.GetBytes(ctx, key)
	if err != nil {
		return resultset.ResultSet[T]{}, err
	}

	page, err := resultset.FromDocument(document.NewBytesCursor(data), fieldName, codec, log)
	if err != nil {
		return resultset.ResultSet[T]{}, fmt.Errorf("redis: decode cached page %q: %w", key, err)
	}
	return page, nil
}
