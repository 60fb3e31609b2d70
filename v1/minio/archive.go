package minio

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Aleph-Alpha/searchkit/v1/document"
	"github.com/Aleph-Alpha/searchkit/v1/resultset"
)

// ArchivePage writes a result page's document form to object storage under
// the given key. Returns the number of bytes stored.
//
// The stored object is the page's canonical document encoding, so it can be
// read back by LoadPage or by any consumer of the document form.
func ArchivePage[T any](ctx context.Context, c Client, objectKey string, page resultset.ResultSet[T], codec resultset.ItemCodec[T]) (int64, error) {
	b := document.NewBuilder()
	if err := page.EncodeDocument(b, codec); err != nil {
		return 0, fmt.Errorf("minio: encode page: %w", err)
	}
	payload, err := b.Bytes()
	if err != nil {
		return 0, fmt.Errorf("minio: encode page: %w", err)
	}

	return c.Put(ctx, objectKey, bytes.NewReader(payload), int64(len(payload)))
}

// LoadPage reads an archived page back from object storage and decodes its
// document form. fieldName names the item list field the page was written
// with; log receives diagnostics for unknown fields and may be nil.
func LoadPage[T any](ctx context.Context, c Client, objectKey string, fieldName string, codec resultset.ItemCodec[T], log resultset.Logger) (resultset.ResultSet[T], error) {
	data, err := c.Get(ctx, objectKey)
	if err != nil {
		return resultset.ResultSet[T]{}, err
	}

	page, err := resultset.FromDocument(document.NewBytesCursor(data), fieldName, codec, log)
	if err != nil {
		return resultset.ResultSet[T]{}, fmt.Errorf("minio: decode page %q: %w", objectKey, err)
	}
	return page, nil
}
