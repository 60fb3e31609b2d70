package rabbit

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Aleph-Alpha/searchkit/v1/resultset"
	"github.com/Aleph-Alpha/searchkit/v1/stream"
)

// PublishPage encodes a result page in its binary form and publishes
// it to the configured exchange. Returns the encoded size in bytes.
//
// The message body is the page's wire encoding, so the consuming side
// restores it with DecodePage. Optional headers travel alongside the
// page as on Publish.
func PublishPage[T any](ctx context.Context, c Client, page resultset.ResultSet[T], codec resultset.ItemCodec[T], headers ...map[string]interface{}) (int64, error) {
	var buf bytes.Buffer
	if err := page.EncodeWire(stream.NewWriter(&buf), codec); err != nil {
		return 0, fmt.Errorf("rabbit: encode page: %w", err)
	}

	if err := c.Publish(ctx, buf.Bytes(), headers...); err != nil {
		return 0, err
	}
	return int64(buf.Len()), nil
}

// DecodePage restores a result page from a consumed message. The
// message body must be a wire-encoded page as produced by PublishPage;
// itemReader decodes each item.
//
// DecodePage does not acknowledge the message. Ack after the page was
// handed off, or nack on a decode error so the broker can dead-letter
// the malformed payload.
func DecodePage[T any](msg Message, itemReader resultset.WireParser[T]) (resultset.ResultSet[T], error) {
	page, err := resultset.FromStream(stream.NewReader(bytes.NewReader(msg.Body())), itemReader)
	if err != nil {
		return resultset.ResultSet[T]{}, fmt.Errorf("rabbit: decode page: %w", err)
	}
	return page, nil
}
