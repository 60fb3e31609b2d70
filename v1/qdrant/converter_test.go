package qdrant

import (
	"testing"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/searchkit/v1/vectordb"
)

func TestBuildFilter_NilFilterSet(t *testing.T) {
	result := buildFilter(nil)
	if result != nil {
		t.Errorf("expected nil, got %v", result)
	}
}

func TestBuildFilter_EmptyFilterSet(t *testing.T) {
	filters := &vectordb.FilterSet{}
	result := buildFilter(filters)
	if result != nil {
		t.Errorf("expected nil, got %v", result)
	}
}

func TestBuildFilter_EmptyConditionSet(t *testing.T) {
	filters := &vectordb.FilterSet{
		Must: &vectordb.ConditionSet{
			Conditions: []vectordb.FilterCondition{},
		},
	}
	result := buildFilter(filters)
	if result != nil {
		t.Errorf("expected nil, got %v", result)
	}
}

func TestBuildFilter_MustWithMatchCondition(t *testing.T) {
	filters := vectordb.NewFilterSet(
		vectordb.Must(vectordb.NewMatch("city", "London")),
	)
	result := buildFilter(filters)

	if result == nil {
		t.Fatal("expected filter, got nil")
	}
	if len(result.Must) != 1 {
		t.Errorf("expected 1 Must condition, got %d", len(result.Must))
	}
	if len(result.Should) != 0 {
		t.Errorf("expected 0 Should conditions, got %d", len(result.Should))
	}
	if len(result.MustNot) != 0 {
		t.Errorf("expected 0 MustNot conditions, got %d", len(result.MustNot))
	}
}

func TestBuildFilter_ShouldWithMultipleMatchConditions(t *testing.T) {
	// city = "London" OR city = "Berlin"
	filters := vectordb.NewFilterSet(
		vectordb.Should(
			vectordb.NewMatch("city", "London"),
			vectordb.NewMatch("city", "Berlin"),
		),
	)
	result := buildFilter(filters)

	if result == nil {
		t.Fatal("expected filter, got nil")
	}
	if len(result.Should) != 2 {
		t.Errorf("expected 2 Should conditions, got %d", len(result.Should))
	}
}

func TestBuildFilter_MustNotWithBoolMatch(t *testing.T) {
	filters := vectordb.NewFilterSet(
		vectordb.MustNot(vectordb.NewMatch("archived", true)),
	)
	result := buildFilter(filters)

	if result == nil {
		t.Fatal("expected filter, got nil")
	}
	if len(result.MustNot) != 1 {
		t.Errorf("expected 1 MustNot condition, got %d", len(result.MustNot))
	}
}

func TestBuildFilter_MixedConditionTypes(t *testing.T) {
	// city = "London" AND active = true AND priority = 1
	filters := vectordb.NewFilterSet(
		vectordb.Must(
			vectordb.NewMatch("city", "London"),
			vectordb.NewMatch("active", true),
			vectordb.NewMatch("priority", int64(1)),
		),
	)
	result := buildFilter(filters)

	if result == nil {
		t.Fatal("expected filter, got nil")
	}
	if len(result.Must) != 3 {
		t.Errorf("expected 3 Must conditions, got %d", len(result.Must))
	}
}

func TestBuildFilter_CombinedClauses(t *testing.T) {
	// (city = "London" AND active = true) AND NOT archived
	filters := vectordb.NewFilterSet(
		vectordb.Must(
			vectordb.NewMatch("city", "London"),
			vectordb.NewMatch("active", true),
		),
		vectordb.MustNot(vectordb.NewMatch("archived", true)),
	)
	result := buildFilter(filters)

	if result == nil {
		t.Fatal("expected filter, got nil")
	}
	if len(result.Must) != 2 {
		t.Errorf("expected 2 Must conditions, got %d", len(result.Must))
	}
	if len(result.MustNot) != 1 {
		t.Errorf("expected 1 MustNot condition, got %d", len(result.MustNot))
	}
}

func TestBuildFilter_AllThreeClauses(t *testing.T) {
	// Must AND Should AND MustNot
	filters := vectordb.NewFilterSet(
		vectordb.Must(vectordb.NewMatch("status", "active")),
		vectordb.Should(
			vectordb.NewMatch("city", "London"),
			vectordb.NewMatch("city", "Berlin"),
		),
		vectordb.MustNot(vectordb.NewMatch("deleted", true)),
	)
	result := buildFilter(filters)

	if result == nil {
		t.Fatal("expected filter, got nil")
	}
	if len(result.Must) != 1 {
		t.Errorf("expected 1 Must condition, got %d", len(result.Must))
	}
	if len(result.Should) != 2 {
		t.Errorf("expected 2 Should conditions, got %d", len(result.Should))
	}
	if len(result.MustNot) != 1 {
		t.Errorf("expected 1 MustNot condition, got %d", len(result.MustNot))
	}
}

func TestBuildFilter_TimeRangeCondition(t *testing.T) {
	startTime := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	endTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	filters := vectordb.NewFilterSet(
		vectordb.Must(
			vectordb.NewTimeRange("created_at", vectordb.TimeRange{
				Gte: &startTime,
				Lt:  &endTime,
			}),
		),
	)
	result := buildFilter(filters)

	if result == nil {
		t.Fatal("expected filter, got nil")
	}
	if len(result.Must) != 1 {
		t.Errorf("expected 1 Must condition, got %d", len(result.Must))
	}
}

func TestBuildFilter_TimeRangeAllBounds(t *testing.T) {
	gt := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	gte := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	lt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	lte := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	filters := vectordb.NewFilterSet(
		vectordb.Must(
			vectordb.NewTimeRange("updated_at", vectordb.TimeRange{
				Gt:  &gt,
				Gte: &gte,
				Lt:  &lt,
				Lte: &lte,
			}),
		),
	)
	result := buildFilter(filters)

	if result == nil {
		t.Fatal("expected filter, got nil")
	}
	if len(result.Must) != 1 {
		t.Errorf("expected 1 Must condition, got %d", len(result.Must))
	}
}

func TestBuildFilter_EmptyTimeRange(t *testing.T) {
	filters := vectordb.NewFilterSet(
		vectordb.Must(
			vectordb.NewTimeRange("created_at", vectordb.TimeRange{}), // All nil
		),
	)
	result := buildFilter(filters)

	// Empty TimeRange returns nil condition, so filter should be nil
	if result != nil {
		t.Errorf("expected nil for empty time range, got %v", result)
	}
}

func TestBuildConditions_NilConditionSet(t *testing.T) {
	result := buildConditions(nil)
	if result != nil {
		t.Errorf("expected nil, got %v", result)
	}
}

func TestBuildConditions_FiltersNilConditions(t *testing.T) {
	// Conditions that convert to nothing must be dropped
	cs := &vectordb.ConditionSet{
		Conditions: []vectordb.FilterCondition{
			vectordb.NewMatch("city", "London"),
			vectordb.NewTimeRange("created_at", vectordb.TimeRange{}), // Empty range returns nil
			vectordb.NewMatchAny("status"),                            // Empty value list returns nil
			vectordb.NewMatch("active", true),
		},
	}
	result := buildConditions(cs)

	// Should only have 2 conditions (the two matches)
	if len(result) != 2 {
		t.Errorf("expected 2 conditions (nil ones filtered out), got %d", len(result))
	}
}

// === Per-condition conversion tests ===

func TestConvertMatchCondition_String(t *testing.T) {
	result := convertMatchCondition(vectordb.NewMatch("city", "London"))

	if len(result) != 1 {
		t.Errorf("expected 1 condition, got %d", len(result))
	}
}

func TestConvertMatchCondition_Bool(t *testing.T) {
	result := convertMatchCondition(vectordb.NewMatch("active", true))

	if len(result) != 1 {
		t.Errorf("expected 1 condition, got %d", len(result))
	}
}

func TestConvertMatchCondition_Int(t *testing.T) {
	result := convertMatchCondition(vectordb.NewMatch("priority", 42))

	if len(result) != 1 {
		t.Errorf("expected 1 condition, got %d", len(result))
	}
}

func TestConvertMatchCondition_Int64(t *testing.T) {
	result := convertMatchCondition(vectordb.NewMatch("priority", int64(42)))

	if len(result) != 1 {
		t.Errorf("expected 1 condition, got %d", len(result))
	}
}

func TestConvertMatchCondition_UnsupportedType(t *testing.T) {
	result := convertMatchCondition(vectordb.NewMatch("weird", struct{}{}))

	if result != nil {
		t.Errorf("expected nil for unsupported value type, got %v", result)
	}
}

func TestConvertMatchAnyCondition_Strings(t *testing.T) {
	result := convertMatchAnyCondition(vectordb.NewMatchAny("city", "London", "Berlin", "Paris"))

	if len(result) != 1 {
		t.Errorf("expected 1 condition, got %d", len(result))
	}
}

func TestConvertMatchAnyCondition_Ints(t *testing.T) {
	result := convertMatchAnyCondition(vectordb.NewMatchAny("priority", int64(1), int64(2), int64(3)))

	if len(result) != 1 {
		t.Errorf("expected 1 condition, got %d", len(result))
	}
}

func TestConvertMatchAnyCondition_EmptySlice(t *testing.T) {
	// Empty value list should return nil
	result := convertMatchAnyCondition(vectordb.NewMatchAny("city"))

	if result != nil {
		t.Errorf("expected nil for empty value list, got %v", result)
	}
}

func TestConvertMatchExceptCondition_Strings(t *testing.T) {
	result := convertMatchExceptCondition(vectordb.NewMatchExcept("city", "Paris", "Madrid"))

	if len(result) != 1 {
		t.Errorf("expected 1 condition, got %d", len(result))
	}
}

func TestConvertMatchExceptCondition_Ints(t *testing.T) {
	result := convertMatchExceptCondition(vectordb.NewMatchExcept("priority", int64(0), int64(-1)))

	if len(result) != 1 {
		t.Errorf("expected 1 condition, got %d", len(result))
	}
}

func TestConvertMatchExceptCondition_EmptySlice(t *testing.T) {
	// Empty value list should return nil
	result := convertMatchExceptCondition(vectordb.NewMatchExcept("city"))

	if result != nil {
		t.Errorf("expected nil for empty value list, got %v", result)
	}
}

func TestConvertNumericRangeCondition_Bounds(t *testing.T) {
	minPrice := 100.0
	maxPrice := 500.0
	result := convertNumericRangeCondition(
		vectordb.NewNumericRange("price", vectordb.NumericRange{
			Gte: &minPrice,
			Lte: &maxPrice,
		}),
	)

	if len(result) != 1 {
		t.Errorf("expected 1 condition, got %d", len(result))
	}
}

func TestConvertNumericRangeCondition_EmptyRange(t *testing.T) {
	result := convertNumericRangeCondition(
		vectordb.NewNumericRange("price", vectordb.NumericRange{}), // All nil
	)

	if result != nil {
		t.Errorf("expected nil for empty numeric range, got %v", result)
	}
}

func TestConvertNumericRangeCondition_UserField(t *testing.T) {
	minPrice := 50.0
	result := convertNumericRangeCondition(
		vectordb.NewUserNumericRange("price", vectordb.NumericRange{Gte: &minPrice}),
	)

	if len(result) != 1 {
		t.Errorf("expected 1 condition, got %d", len(result))
	}
}

func TestConvertIsNullCondition(t *testing.T) {
	result := convertIsNullCondition(vectordb.NewIsNull("deleted_at"))

	if len(result) != 1 {
		t.Errorf("expected 1 condition, got %d", len(result))
	}
}

func TestConvertIsEmptyCondition(t *testing.T) {
	result := convertIsEmptyCondition(vectordb.NewIsEmpty("tags"))

	if len(result) != 1 {
		t.Errorf("expected 1 condition, got %d", len(result))
	}
}

func TestConvertCondition_UnknownType(t *testing.T) {
	result := convertCondition(unknownCondition{})

	if result != nil {
		t.Errorf("expected nil for unknown condition type, got %v", result)
	}
}

// unknownCondition exercises the dispatch fallback for condition types this
// adapter has never heard of.
type unknownCondition struct{}

func (unknownCondition) IsFilterCondition() {}

func TestToTimestamp_Nil(t *testing.T) {
	result := toTimestamp(nil)
	if result != nil {
		t.Errorf("expected nil, got %v", result)
	}
}

func TestToTimestamp_ValidTime(t *testing.T) {
	now := time.Now()
	result := toTimestamp(&now)

	if result == nil {
		t.Fatal("expected timestamp, got nil")
	}
	if result.AsTime().Unix() != now.Unix() {
		t.Errorf("timestamp mismatch: expected %v, got %v", now.Unix(), result.AsTime().Unix())
	}
}

// === FieldType Tests ===

func TestResolveFieldKey_InternalField(t *testing.T) {
	key := resolveFieldKey("search_store_id", vectordb.InternalField)
	expected := "search_store_id"
	if key != expected {
		t.Errorf("expected %q, got %q", expected, key)
	}
}

func TestResolveFieldKey_UserField(t *testing.T) {
	key := resolveFieldKey("document_id", vectordb.UserField)
	expected := "custom.document_id"
	if key != expected {
		t.Errorf("expected %q, got %q", expected, key)
	}
}

func TestResolveFieldKey_UserField_PreventDoublePrefix(t *testing.T) {
	// If key already has prefix, don't add again
	key := resolveFieldKey("custom.document_id", vectordb.UserField)
	expected := "custom.document_id"
	if key != expected {
		t.Errorf("expected %q, got %q (double prefix detected)", expected, key)
	}
}

func TestResolveFieldKey_ActualPath(t *testing.T) {
	tests := []struct {
		key       string
		fieldType vectordb.FieldType
		expected  string
	}{
		{"city", vectordb.InternalField, "city"},
		{"city", vectordb.UserField, "custom.city"},
		{"custom.city", vectordb.UserField, "custom.city"}, // No double prefix
	}

	for _, tt := range tests {
		result := resolveFieldKey(tt.key, tt.fieldType)
		if result != tt.expected {
			t.Errorf("resolveFieldKey(%q, %v) = %q, want %q",
				tt.key, tt.fieldType, result, tt.expected)
		}
	}
}

func TestBuildFilter_MixedInternalAndUserFields(t *testing.T) {
	// search_store_id = "store-123" (internal) AND custom.category = "reports" (user)
	filters := vectordb.NewFilterSet(
		vectordb.Must(
			vectordb.NewMatch("search_store_id", "store-123"),
			vectordb.NewUserMatch("category", "reports"),
			vectordb.NewUserMatch("is_published", true),
		),
	)
	result := buildFilter(filters)

	if result == nil {
		t.Fatal("expected filter, got nil")
	}
	if len(result.Must) != 3 {
		t.Errorf("expected 3 Must conditions, got %d", len(result.Must))
	}
}

// === BuildPayload Tests ===

func TestBuildPayload_OnlyInternal(t *testing.T) {
	internal := map[string]any{
		"search_store_id": "store-123",
		"modalities":      []string{"text"},
	}
	payload := BuildPayload(internal, nil)

	if payload["search_store_id"] != "store-123" {
		t.Errorf("expected search_store_id at top-level")
	}
	if _, exists := payload["custom"]; exists {
		t.Errorf("custom should not exist when user is nil")
	}
}

func TestBuildPayload_OnlyUser(t *testing.T) {
	user := map[string]any{
		"document_id": "doc-456",
		"author":      "John",
	}
	payload := BuildPayload(nil, user)

	custom, ok := payload["custom"].(map[string]any)
	if !ok {
		t.Fatal("expected custom field")
	}
	if custom["document_id"] != "doc-456" {
		t.Errorf("expected document_id in custom")
	}
	if custom["author"] != "John" {
		t.Errorf("expected author in custom")
	}
}

func TestBuildPayload_BothInternalAndUser(t *testing.T) {
	internal := map[string]any{
		"search_store_id": "store-123",
	}
	user := map[string]any{
		"document_id": "doc-456",
		"category":    "reports",
	}
	payload := BuildPayload(internal, user)

	// Check internal at top-level
	if payload["search_store_id"] != "store-123" {
		t.Errorf("expected search_store_id at top-level")
	}

	// Check user under custom
	custom, ok := payload["custom"].(map[string]any)
	if !ok {
		t.Fatal("expected custom field")
	}
	if custom["document_id"] != "doc-456" {
		t.Errorf("expected document_id in custom")
	}
	if custom["category"] != "reports" {
		t.Errorf("expected category in custom")
	}
}

func TestBuildPayload_EmptyUser(t *testing.T) {
	internal := map[string]any{
		"search_store_id": "store-123",
	}
	user := map[string]any{} // Empty, not nil
	payload := BuildPayload(internal, user)

	if _, exists := payload["custom"]; exists {
		t.Errorf("custom should not exist when user is empty")
	}
}

// === Result Conversion Tests ===

func TestExtractPointID_Uuid(t *testing.T) {
	id, err := extractPointID(qdrant.NewID("00000000-0000-0000-0000-000000000001"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "00000000-0000-0000-0000-000000000001" {
		t.Errorf("unexpected ID: %q", id)
	}
}

func TestExtractPointID_Num(t *testing.T) {
	id, err := extractPointID(qdrant.NewIDNum(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "42" {
		t.Errorf("expected %q, got %q", "42", id)
	}
}

func TestExtractPointID_Nil(t *testing.T) {
	_, err := extractPointID(nil)
	if err == nil {
		t.Fatal("expected error for nil point ID")
	}
}

func TestConvertPayload_Nil(t *testing.T) {
	if result := convertPayload(nil); result != nil {
		t.Errorf("expected nil, got %v", result)
	}
}

func TestConvertPayload_RoundTrip(t *testing.T) {
	payload := qdrant.NewValueMap(map[string]any{
		"title":   "Test Document",
		"index":   int64(7),
		"score":   0.25,
		"active":  true,
		"tags":    []any{"ml", "ai"},
		"details": map[string]any{"author": "Ada"},
	})

	result := convertPayload(payload)

	if result["title"] != "Test Document" {
		t.Errorf("title mismatch: %v", result["title"])
	}
	if result["index"] != int64(7) {
		t.Errorf("index mismatch: %v", result["index"])
	}
	if result["score"] != 0.25 {
		t.Errorf("score mismatch: %v", result["score"])
	}
	if result["active"] != true {
		t.Errorf("active mismatch: %v", result["active"])
	}

	tags, ok := result["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "ml" || tags[1] != "ai" {
		t.Errorf("tags mismatch: %v", result["tags"])
	}

	details, ok := result["details"].(map[string]any)
	if !ok || details["author"] != "Ada" {
		t.Errorf("details mismatch: %v", result["details"])
	}
}

func TestParseSearchResults(t *testing.T) {
	points := []*qdrant.ScoredPoint{
		{
			Id:      qdrant.NewID("00000000-0000-0000-0000-000000000001"),
			Score:   0.97,
			Payload: qdrant.NewValueMap(map[string]any{"title": "First"}),
		},
		{
			Id:    qdrant.NewIDNum(9),
			Score: 0.42,
		},
	}

	results, err := parseSearchResults("documents", points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].ID != "00000000-0000-0000-0000-000000000001" {
		t.Errorf("unexpected first ID: %q", results[0].ID)
	}
	if results[0].Score != 0.97 {
		t.Errorf("unexpected first score: %v", results[0].Score)
	}
	if results[0].Payload["title"] != "First" {
		t.Errorf("unexpected first payload: %v", results[0].Payload)
	}
	if results[0].CollectionName != "documents" {
		t.Errorf("collection name not set on result: %q", results[0].CollectionName)
	}

	if results[1].ID != "9" {
		t.Errorf("unexpected second ID: %q", results[1].ID)
	}
}

func TestParseSearchResults_NilID(t *testing.T) {
	points := []*qdrant.ScoredPoint{{Score: 0.5}}

	_, err := parseSearchResults("documents", points)
	if err == nil {
		t.Fatal("expected error for point without an ID")
	}
}
