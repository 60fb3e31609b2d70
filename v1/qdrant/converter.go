package qdrant

import (
	"fmt"
	"strings"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/Aleph-Alpha/searchkit/v1/vectordb"
)

// UserPayloadPrefix is the prefix for user-defined metadata fields.
// User fields are stored under "custom." in the Qdrant payload.
const UserPayloadPrefix = "custom"

// BuildPayload creates a Qdrant payload with separated internal and user fields.
// Internal fields are stored at the top level, while user fields are stored under
// the "custom" prefix.
//
// Example:
//
//	payload := qdrant.BuildPayload(
//	    map[string]any{"search_store_id": "store123"},
//	    map[string]any{"document_id": "doc456"},
//	)
//	// Result: {"search_store_id": "store123", "custom": {"document_id": "doc456"}}
func BuildPayload(internal map[string]any, user map[string]any) map[string]any {
	payload := make(map[string]any)

	// Add internal fields at top-level
	for k, v := range internal {
		payload[k] = v
	}

	// Add user fields under "custom" prefix
	if len(user) > 0 {
		payload[UserPayloadPrefix] = user
	}

	return payload
}

// ── Filter Conversion ────────────────────────────────────────────────────────

// buildFilter converts a vectordb.FilterSet to a Qdrant filter.
// Returns nil when the set is nil or contributes no conditions, so the
// query runs unfiltered instead of matching nothing.
func buildFilter(filters *vectordb.FilterSet) *qdrant.Filter {
	if filters == nil {
		return nil
	}

	filter := &qdrant.Filter{}

	if filters.Must != nil {
		filter.Must = buildConditions(filters.Must)
	}
	if filters.Should != nil {
		filter.Should = buildConditions(filters.Should)
	}
	if filters.MustNot != nil {
		filter.MustNot = buildConditions(filters.MustNot)
	}

	// Return nil if no conditions were added
	if len(filter.Must) == 0 && len(filter.Should) == 0 && len(filter.MustNot) == 0 {
		return nil
	}

	return filter
}

// buildConditions converts a vectordb.ConditionSet to Qdrant conditions.
// Conditions that convert to nothing (empty ranges, empty value lists) are
// dropped rather than emitted as empty clauses.
func buildConditions(cs *vectordb.ConditionSet) []*qdrant.Condition {
	if cs == nil {
		return nil
	}

	var conditions []*qdrant.Condition
	for _, c := range cs.Conditions {
		conds := convertCondition(c)
		for _, cond := range conds {
			if cond != nil {
				conditions = append(conditions, cond)
			}
		}
	}
	return conditions
}

// convertCondition converts a single vectordb.FilterCondition to Qdrant conditions.
func convertCondition(c vectordb.FilterCondition) []*qdrant.Condition {
	switch cond := c.(type) {
	case *vectordb.MatchCondition:
		return convertMatchCondition(cond)
	case *vectordb.MatchAnyCondition:
		return convertMatchAnyCondition(cond)
	case *vectordb.MatchExceptCondition:
		return convertMatchExceptCondition(cond)
	case *vectordb.NumericRangeCondition:
		return convertNumericRangeCondition(cond)
	case *vectordb.TimeRangeCondition:
		return convertTimeRangeCondition(cond)
	case *vectordb.IsNullCondition:
		return convertIsNullCondition(cond)
	case *vectordb.IsEmptyCondition:
		return convertIsEmptyCondition(cond)
	default:
		return nil
	}
}

func convertMatchCondition(c *vectordb.MatchCondition) []*qdrant.Condition {
	key := resolveFieldKey(c.Field, c.FieldType)
	switch v := c.Value.(type) {
	case string:
		return []*qdrant.Condition{qdrant.NewMatch(key, v)}
	case bool:
		return []*qdrant.Condition{qdrant.NewMatchBool(key, v)}
	case int:
		return []*qdrant.Condition{qdrant.NewMatchInt(key, int64(v))}
	case int64:
		return []*qdrant.Condition{qdrant.NewMatchInt(key, v)}
	case float64:
		// Handle JSON numbers which are float64 by default
		return []*qdrant.Condition{qdrant.NewMatchInt(key, int64(v))}
	default:
		return nil
	}
}

func convertMatchAnyCondition(c *vectordb.MatchAnyCondition) []*qdrant.Condition {
	if len(c.Values) == 0 {
		return nil
	}
	key := resolveFieldKey(c.Field, c.FieldType)

	// Detect type from first value
	switch c.Values[0].(type) {
	case string:
		strs := make([]string, len(c.Values))
		for i, v := range c.Values {
			if s, ok := v.(string); ok {
				strs[i] = s
			}
		}
		return []*qdrant.Condition{qdrant.NewMatchKeywords(key, strs...)}
	case int, int64, float64:
		ints := make([]int64, len(c.Values))
		for i, v := range c.Values {
			switch n := v.(type) {
			case int:
				ints[i] = int64(n)
			case int64:
				ints[i] = n
			case float64:
				ints[i] = int64(n)
			}
		}
		return []*qdrant.Condition{qdrant.NewMatchInts(key, ints...)}
	}
	return nil
}

func convertMatchExceptCondition(c *vectordb.MatchExceptCondition) []*qdrant.Condition {
	if len(c.Values) == 0 {
		return nil
	}
	key := resolveFieldKey(c.Field, c.FieldType)

	// Detect type from first value
	switch c.Values[0].(type) {
	case string:
		strs := make([]string, len(c.Values))
		for i, v := range c.Values {
			if s, ok := v.(string); ok {
				strs[i] = s
			}
		}
		return []*qdrant.Condition{qdrant.NewMatchExceptKeywords(key, strs...)}
	case int, int64, float64:
		ints := make([]int64, len(c.Values))
		for i, v := range c.Values {
			switch n := v.(type) {
			case int:
				ints[i] = int64(n)
			case int64:
				ints[i] = n
			case float64:
				ints[i] = int64(n)
			}
		}
		return []*qdrant.Condition{qdrant.NewMatchExceptInts(key, ints...)}
	}
	return nil
}

func convertNumericRangeCondition(c *vectordb.NumericRangeCondition) []*qdrant.Condition {
	key := resolveFieldKey(c.Field, c.FieldType)
	rangeFilter := &qdrant.Range{
		Gt:  c.Range.Gt,
		Gte: c.Range.Gte,
		Lt:  c.Range.Lt,
		Lte: c.Range.Lte,
	}

	if rangeFilter.Gt == nil && rangeFilter.Gte == nil &&
		rangeFilter.Lt == nil && rangeFilter.Lte == nil {
		return nil
	}

	return []*qdrant.Condition{qdrant.NewRange(key, rangeFilter)}
}

func convertTimeRangeCondition(c *vectordb.TimeRangeCondition) []*qdrant.Condition {
	key := resolveFieldKey(c.Field, c.FieldType)
	dateRange := &qdrant.DatetimeRange{
		Gt:  toTimestamp(c.Range.Gt),
		Gte: toTimestamp(c.Range.Gte),
		Lt:  toTimestamp(c.Range.Lt),
		Lte: toTimestamp(c.Range.Lte),
	}

	if dateRange.Gt == nil && dateRange.Gte == nil &&
		dateRange.Lt == nil && dateRange.Lte == nil {
		return nil
	}

	return []*qdrant.Condition{qdrant.NewDatetimeRange(key, dateRange)}
}

func convertIsNullCondition(c *vectordb.IsNullCondition) []*qdrant.Condition {
	key := resolveFieldKey(c.Field, c.FieldType)
	return []*qdrant.Condition{qdrant.NewIsNull(key)}
}

func convertIsEmptyCondition(c *vectordb.IsEmptyCondition) []*qdrant.Condition {
	key := resolveFieldKey(c.Field, c.FieldType)
	return []*qdrant.Condition{qdrant.NewIsEmpty(key)}
}

// resolveFieldKey returns the full field path based on FieldType.
// Internal fields: "search_store_id" -> "search_store_id"
// User fields: "document_id" -> "custom.document_id"
func resolveFieldKey(key string, fieldType vectordb.FieldType) string {
	if fieldType == vectordb.UserField {
		if strings.HasPrefix(key, UserPayloadPrefix+".") {
			return key
		}
		return UserPayloadPrefix + "." + key
	}
	return key
}

func toTimestamp(t *time.Time) *timestamppb.Timestamp {
	if t == nil {
		return nil
	}
	return timestamppb.New(*t)
}

// ── Result Conversion ────────────────────────────────────────────────────────

// parseSearchResults converts a Qdrant response to vectordb.SearchResult values.
func parseSearchResults(collectionName string, resp []*qdrant.ScoredPoint) ([]vectordb.SearchResult, error) {
	results := make([]vectordb.SearchResult, 0, len(resp))
	for _, r := range resp {
		id, err := extractPointID(r.Id)
		if err != nil {
			return nil, err
		}

		results = append(results, vectordb.SearchResult{
			ID:             id,
			Score:          r.Score,
			Payload:        convertPayload(r.Payload),
			CollectionName: collectionName,
		})
	}
	return results, nil
}

// extractPointID extracts a string ID from Qdrant's PointId type.
func extractPointID(id *qdrant.PointId) (string, error) {
	if id == nil {
		return "", fmt.Errorf("nil point ID")
	}
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		return fmt.Sprintf("%d", v.Num), nil
	case *qdrant.PointId_Uuid:
		return v.Uuid, nil
	default:
		return "", fmt.Errorf("unexpected PointId type: %T", v)
	}
}

// convertPayload converts Qdrant's protobuf payload to a generic map.
func convertPayload(payload map[string]*qdrant.Value) map[string]any {
	if payload == nil {
		return nil
	}
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		result[k] = extractValue(v)
	}
	return result
}

// extractValue recursively converts a Qdrant Value to a Go native type.
func extractValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_StructValue:
		if val.StructValue == nil {
			return nil
		}
		return convertPayload(val.StructValue.Fields)
	case *qdrant.Value_ListValue:
		if val.ListValue == nil {
			return nil
		}
		items := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			items[i] = extractValue(item)
		}
		return items
	default:
		return nil
	}
}
