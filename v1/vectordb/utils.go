package vectordb

import (
	"encoding/json"
	"fmt"
)

// NewFilterSet assembles a FilterSet from clause helpers.
//
// Example:
//
//	vectordb.NewFilterSet(
//	    vectordb.Must(vectordb.NewMatch("status", "published")),
//	    vectordb.Should(vectordb.NewMatch("tag", "ml"), vectordb.NewMatch("tag", "ai")),
//	)
func NewFilterSet(clauses ...func(*FilterSet)) *FilterSet {
	fs := &FilterSet{}
	for _, clause := range clauses {
		clause(fs)
	}
	return fs
}

// Must builds the AND clause: every condition has to match.
func Must(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.Must = &ConditionSet{Conditions: conditions}
	}
}

// Should builds the OR clause: at least one condition has to match.
func Should(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.Should = &ConditionSet{Conditions: conditions}
	}
}

// MustNot builds the NOT clause: a matching condition excludes the
// document.
func MustNot(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.MustNot = &ConditionSet{Conditions: conditions}
	}
}

// Condition constructors come in pairs: the plain form targets internal
// fields, the User form targets user-defined payload fields. The engine
// binding resolves the two namespaces to its own key layout.

// NewMatch creates an equality condition for internal fields.
func NewMatch(field string, value any) *MatchCondition {
	return &MatchCondition{Field: field, Value: value, FieldType: InternalField}
}

// NewUserMatch creates an equality condition for user-defined fields.
func NewUserMatch(field string, value any) *MatchCondition {
	return &MatchCondition{Field: field, Value: value, FieldType: UserField}
}

// NewMatchAny creates an IN condition for internal fields.
func NewMatchAny(field string, values ...any) *MatchAnyCondition {
	mustBeHomogeneous(values)
	return &MatchAnyCondition{Field: field, Values: values, FieldType: InternalField}
}

// NewUserMatchAny creates an IN condition for user-defined fields.
func NewUserMatchAny(field string, values ...any) *MatchAnyCondition {
	mustBeHomogeneous(values)
	return &MatchAnyCondition{Field: field, Values: values, FieldType: UserField}
}

// NewMatchExcept creates a NOT IN condition for internal fields.
func NewMatchExcept(field string, values ...any) *MatchExceptCondition {
	mustBeHomogeneous(values)
	return &MatchExceptCondition{Field: field, Values: values, FieldType: InternalField}
}

// NewUserMatchExcept creates a NOT IN condition for user-defined fields.
func NewUserMatchExcept(field string, values ...any) *MatchExceptCondition {
	mustBeHomogeneous(values)
	return &MatchExceptCondition{Field: field, Values: values, FieldType: UserField}
}

// NewNumericRange creates a numeric range condition for internal fields.
func NewNumericRange(field string, r NumericRange) *NumericRangeCondition {
	return &NumericRangeCondition{Field: field, Range: r, FieldType: InternalField}
}

// NewUserNumericRange creates a numeric range condition for user-defined fields.
func NewUserNumericRange(field string, r NumericRange) *NumericRangeCondition {
	return &NumericRangeCondition{Field: field, Range: r, FieldType: UserField}
}

// NewTimeRange creates a time range condition for internal fields.
func NewTimeRange(field string, t TimeRange) *TimeRangeCondition {
	return &TimeRangeCondition{Field: field, Range: t, FieldType: InternalField}
}

// NewUserTimeRange creates a time range condition for user-defined fields.
func NewUserTimeRange(field string, t TimeRange) *TimeRangeCondition {
	return &TimeRangeCondition{Field: field, Range: t, FieldType: UserField}
}

// NewIsNull creates an IS NULL condition for internal fields.
func NewIsNull(field string) *IsNullCondition {
	return &IsNullCondition{Field: field, FieldType: InternalField}
}

// NewUserIsNull creates an IS NULL condition for user-defined fields.
func NewUserIsNull(field string) *IsNullCondition {
	return &IsNullCondition{Field: field, FieldType: UserField}
}

// NewIsEmpty creates an IS EMPTY condition for internal fields.
func NewIsEmpty(field string) *IsEmptyCondition {
	return &IsEmptyCondition{Field: field, FieldType: InternalField}
}

// NewUserIsEmpty creates an IS EMPTY condition for user-defined fields.
func NewUserIsEmpty(field string) *IsEmptyCondition {
	return &IsEmptyCondition{Field: field, FieldType: UserField}
}

// MarshalJSON flattens a ConditionSet to the bare condition array.
// FilterCondition is an interface, so the set needs custom marshaling.
func (cs *ConditionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(cs.Conditions)
}

// UnmarshalJSON restores a ConditionSet from a condition array,
// rebuilding each element as its concrete condition type.
func (cs *ConditionSet) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	cs.Conditions = make([]FilterCondition, 0, len(raw))
	for _, r := range raw {
		cond, err := parseCondition(r)
		if err != nil {
			return err
		}
		cs.Conditions = append(cs.Conditions, cond)
	}
	return nil
}

// conditionProbes maps the JSON keys that identify a condition type to
// a decoder for its concrete type. The first probe whose key appears in
// the object wins; the key sets are disjoint.
var conditionProbes = []struct {
	keys   []string
	decode func(data []byte) (FilterCondition, error)
}{
	{[]string{"equalTo"}, func(data []byte) (FilterCondition, error) {
		var c MatchCondition
		return &c, json.Unmarshal(data, &c)
	}},
	{[]string{"anyOf"}, func(data []byte) (FilterCondition, error) {
		var c MatchAnyCondition
		return &c, json.Unmarshal(data, &c)
	}},
	{[]string{"noneOf"}, func(data []byte) (FilterCondition, error) {
		var c MatchExceptCondition
		return &c, json.Unmarshal(data, &c)
	}},
	{[]string{"greaterThan", "greaterThanOrEqualTo", "lessThan", "lessThanOrEqualTo"}, func(data []byte) (FilterCondition, error) {
		var c NumericRangeCondition
		return &c, json.Unmarshal(data, &c)
	}},
	{[]string{"after", "atOrAfter", "before", "atOrBefore"}, func(data []byte) (FilterCondition, error) {
		var c TimeRangeCondition
		return &c, json.Unmarshal(data, &c)
	}},
}

// parseCondition restores one FilterCondition, picking the concrete
// type by the keys the JSON object carries.
func parseCondition(data []byte) (FilterCondition, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	for _, probe := range conditionProbes {
		for _, key := range probe.keys {
			if _, ok := fields[key]; ok {
				cond, err := probe.decode(data)
				if err != nil {
					return nil, err
				}
				return cond, nil
			}
		}
	}
	return nil, fmt.Errorf("unknown filter condition type: %s", string(data))
}

// mustBeHomogeneous panics when the values of a MatchAny/MatchExcept
// mix type categories. Mixed value lists are a programming error, not
// runtime data, so they fail loudly at construction.
func mustBeHomogeneous(values []any) {
	if len(values) <= 1 {
		return
	}

	expected := typeCategory(values[0])
	if expected == "" {
		panic(fmt.Sprintf("vectordb: unsupported value type: %T", values[0]))
	}

	for i, v := range values[1:] {
		actual := typeCategory(v)
		if actual == "" {
			panic(fmt.Sprintf("vectordb: unsupported value type at index %d: %T", i+1, v))
		}
		if actual != expected {
			panic(fmt.Sprintf("vectordb: mixed types not allowed in MatchAny/MatchExcept: expected %s but got %s at index %d", expected, actual, i+1))
		}
	}
}

func typeCategory(value any) string {
	switch value.(type) {
	case string:
		return "string"
	case int, int64, float64:
		return "numeric"
	case bool:
		return "boolean"
	}
	return ""
}
