package postgres

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Aleph-Alpha/searchkit/v1/document"
	"github.com/Aleph-Alpha/searchkit/v1/resultset"
	"github.com/Aleph-Alpha/searchkit/v1/stream"
)

// storedDoc is the item shape used by the page store tests.
type storedDoc struct {
	ID    string
	Title string
}

type storedDocCodec struct{}

func (storedDocCodec) ParseHit(hit resultset.Hit) (storedDoc, error) {
	doc, ok := hit.(storedDoc)
	if !ok {
		return storedDoc{}, fmt.Errorf("unexpected hit type %T", hit)
	}
	return doc, nil
}

func (storedDocCodec) ParseDocument(cur *document.Cursor) (storedDoc, error) {
	if err := cur.ExpectObjectStart(); err != nil {
		return storedDoc{}, err
	}
	var doc storedDoc
	for {
		name, end, err := cur.FieldName()
		if err != nil {
			return storedDoc{}, err
		}
		if end {
			return doc, nil
		}
		switch name {
		case "id":
			doc.ID, err = cur.ReadString()
		case "title":
			doc.Title, err = cur.ReadString()
		default:
			err = cur.Skip()
		}
		if err != nil {
			return storedDoc{}, err
		}
	}
}

func (storedDocCodec) AppendDocument(doc storedDoc, b *document.Builder) error {
	b.BeginObject()
	b.Name("id")
	b.WriteString(doc.ID)
	b.Name("title")
	b.WriteString(doc.Title)
	b.EndObject()
	return b.Err()
}

func (storedDocCodec) AppendWire(doc storedDoc, w *stream.Writer) error {
	if err := w.WriteString(doc.ID); err != nil {
		return err
	}
	return w.WriteString(doc.Title)
}

func TestResultPageTableName(t *testing.T) {
	if got := (ResultPage{}).TableName(); got != "result_pages" {
		t.Fatalf("TableName() = %q, want %q", got, "result_pages")
	}
}

// An empty key must be rejected before the client is touched.
func TestPageStoreKeyValidation(t *testing.T) {
	ctx := context.Background()
	page := resultset.New(0, 1, resultset.RelationExact, "documents", []storedDoc{{ID: "a"}})

	if err := SavePage(ctx, nil, "", page, storedDocCodec{}); err == nil || !strings.Contains(err.Error(), "page key") {
		t.Fatalf("SavePage with empty key: err = %v, want page key error", err)
	}
	if _, err := LoadPage(ctx, nil, "", storedDocCodec{}, nil); err == nil || !strings.Contains(err.Error(), "page key") {
		t.Fatalf("LoadPage with empty key: err = %v, want page key error", err)
	}
	if err := DeletePage(ctx, nil, ""); err == nil || !strings.Contains(err.Error(), "page key") {
		t.Fatalf("DeletePage with empty key: err = %v, want page key error", err)
	}
}
