package resultset

// Relation qualifies how a result set's totalHits relates to the true
// number of matches.
type Relation uint8

const (
	// RelationAtLeast means totalHits is a lower bound on the true
	// count. It is the zero value: a document that never states a
	// relation must not be read as claiming precision.
	RelationAtLeast Relation = iota
	// RelationExact means totalHits is the true count.
	RelationExact
)

const (
	relationTagExact   = "eq"
	relationTagAtLeast = "gte"
)

// Tag returns the two-letter wire tag for the relation.
func (r Relation) Tag() string {
	if r == RelationExact {
		return relationTagExact
	}
	return relationTagAtLeast
}

// String returns a readable name for logs and test output.
func (r Relation) String() string {
	if r == RelationExact {
		return "exact"
	}
	return "at_least"
}

// DecodeRelation maps a wire tag back to its Relation. The mapping is
// total: "eq" yields RelationExact and every other string, including an
// empty or unrecognized one, silently yields RelationAtLeast. An input
// that cannot prove exactness is demoted to a lower bound rather than
// failing the whole decode.
func DecodeRelation(tag string) Relation {
	if tag == relationTagExact {
		return RelationExact
	}
	return RelationAtLeast
}
