package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"github.com/Aleph-Alpha/searchkit/v1/document"
	"github.com/Aleph-Alpha/searchkit/v1/resultset"
)

// ResultPage is the table row for a persisted result page. The page itself
// is stored in Document using the canonical document encoding, so rows stay
// readable for non-Go consumers. The remaining columns mirror the page
// header for listing and filtering without decoding the blob.
type ResultPage struct {
	Key        string `gorm:"column:page_key;primaryKey;size:512"`
	FieldName  string `gorm:"size:255;not null"`
	StartIndex int64  `gorm:"not null"`
	TotalHits  int64  `gorm:"not null"`
	Relation   string `gorm:"size:8;not null"`
	Document   []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName implements gorm's Tabler interface.
func (ResultPage) TableName() string {
	return "result_pages"
}

// MigratePageStore creates or updates the result_pages table.
// Call once at startup before using the page store functions.
func MigratePageStore(c Client) error {
	if err := c.DB().AutoMigrate(&ResultPage{}); err != nil {
		return fmt.Errorf("failed to migrate result page store: %w", err)
	}
	return nil
}

// SavePage persists a result page under the given key, replacing any page
// stored under the same key. The page is encoded with the codec into its
// document form; the header columns are filled from the page itself.
func SavePage[T any](ctx context.Context, c Client, key string, page resultset.ResultSet[T], codec resultset.ItemCodec[T]) error {
	if key == "" {
		return fmt.Errorf("page key cannot be empty")
	}

	b := document.NewBuilder()
	if err := page.EncodeDocument(b, codec); err != nil {
		return fmt.Errorf("encoding result page %q: %w", key, err)
	}
	payload, err := b.Bytes()
	if err != nil {
		return fmt.Errorf("encoding result page %q: %w", key, err)
	}

	row := ResultPage{
		Key:        key,
		FieldName:  page.ObjectListFieldName(),
		StartIndex: page.StartIndex(),
		TotalHits:  page.TotalHits(),
		Relation:   page.TotalHitRelation().Tag(),
		Document:   payload,
	}

	_, err = c.Query(ctx).OnConflict(clause.OnConflict{
		Columns: []clause.Column{{Name: "page_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"field_name", "start_index", "total_hits", "relation", "document", "updated_at",
		}),
	}).Create(&row)
	if err != nil {
		return fmt.Errorf("saving result page %q: %w", key, err)
	}
	return nil
}

// LoadPage reads the page stored under key and decodes it with the codec.
// The stored row carries its own list field name, so none has to be passed.
// Unlike the CRUD methods, the error is already translated: a missing page
// surfaces as ErrRecordNotFound. Diagnostics from decoding go to log, which
// may be nil.
func LoadPage[T any](ctx context.Context, c Client, key string, codec resultset.ItemCodec[T], log resultset.Logger) (resultset.ResultSet[T], error) {
	var zero resultset.ResultSet[T]
	if key == "" {
		return zero, fmt.Errorf("page key cannot be empty")
	}

	var row ResultPage
	if err := c.First(ctx, &row, "page_key = ?", key); err != nil {
		return zero, TranslateError(err)
	}

	page, err := resultset.FromDocument(document.NewBytesCursor(row.Document), row.FieldName, codec, log)
	if err != nil {
		return zero, fmt.Errorf("decoding result page %q: %w", key, err)
	}
	return page, nil
}

// DeletePage removes the page stored under key. Returns ErrRecordNotFound
// when no page was stored under that key.
func DeletePage(ctx context.Context, c Client, key string) error {
	if key == "" {
		return fmt.Errorf("page key cannot be empty")
	}

	rows, err := c.Delete(ctx, &ResultPage{}, "page_key = ?", key)
	if err != nil {
		return TranslateError(err)
	}
	if rows == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ListPages returns the header rows of all pages whose key starts with
// keyPrefix, ordered by key. An empty prefix lists every page. The Document
// column is left empty; use LoadPage to decode a specific page.
func ListPages(ctx context.Context, c Client, keyPrefix string) ([]ResultPage, error) {
	qb := c.Query(ctx).
		Model(&ResultPage{}).
		Select("page_key, field_name, start_index, total_hits, relation, created_at, updated_at").
		Order("page_key")
	if keyPrefix != "" {
		qb = qb.Where("page_key LIKE ?", keyPrefix+"%")
	}

	var rows []ResultPage
	if err := qb.Find(&rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CountPages returns the number of pages whose key starts with keyPrefix.
// An empty prefix counts every page.
func CountPages(ctx context.Context, c Client, keyPrefix string) (int64, error) {
	var count int64
	var err error
	if keyPrefix == "" {
		err = c.Count(ctx, &ResultPage{}, &count)
	} else {
		err = c.Count(ctx, &ResultPage{}, &count, "page_key LIKE ?", keyPrefix+"%")
	}
	return count, err
}
