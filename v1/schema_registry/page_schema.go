package schema_registry

import "encoding/json"

// PageSchema returns the JSON Schema describing the document form of a
// result page whose object list lives under fieldName: startIndex,
// totalHits, totalHitRelation ("eq" or "gte") and the named item array.
// Item shapes are left open, since they vary per stream.
//
// The output is deterministic for a given fieldName, so registering it
// twice yields the same registry ID.
func PageSchema(fieldName string) string {
	schema := map[string]interface{}{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type":    "object",
		"properties": map[string]interface{}{
			"startIndex":       map[string]interface{}{"type": "integer", "minimum": 0},
			"totalHits":        map[string]interface{}{"type": "integer", "minimum": 0},
			"totalHitRelation": map[string]interface{}{"type": "string", "enum": []string{"eq", "gte"}},
			fieldName:          map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "object"}},
		},
		"required": []string{"startIndex", "totalHits", "totalHitRelation", fieldName},
	}

	// Maps marshal with sorted keys, and none of the values above can
	// fail to encode.
	encoded, _ := json.Marshal(schema)
	return string(encoded)
}

// RegisterPageSchema registers the result-page schema for the subject
// and returns its ID, typically subject "<topic>-value" for pages
// relayed over Kafka.
func RegisterPageSchema(r Registry, subject, fieldName string) (int, error) {
	return r.RegisterSchema(subject, PageSchema(fieldName), "JSON")
}
