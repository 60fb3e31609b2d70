package vectordb

import "github.com/Aleph-Alpha/searchkit/v1/resultset"

// SearchRequest represents a single similarity search query.
// Use with Service.Search() for single or batch queries.
type SearchRequest struct {
	// CollectionName is the target collection to search in
	CollectionName string `json:"collectionName"`

	// Vector is the query embedding to find similar vectors for
	Vector []float32 `json:"vector"`

	// Limit is the maximum number of results to return for this page
	Limit uint64 `json:"limit"`

	// Offset is the number of best-scoring results to skip before the
	// page starts. Used for pagination.
	Offset uint64 `json:"offset,omitempty"`

	// WithTotal asks the engine to additionally report an estimate of
	// the total number of matches across all pages.
	WithTotal bool `json:"withTotal,omitempty"`

	// Filters is optional metadata filtering (AND/OR/NOT logic)
	Filters *FilterSet `json:"filters,omitempty"`
}

// SearchResult represents a single search result with its similarity score.
// This is database-agnostic; the payload is converted to map[string]any.
type SearchResult struct {
	// ID is the unique identifier of the matched point
	ID string `json:"id"`

	// Score is the similarity score (higher = more similar for cosine)
	Score float32 `json:"score"`

	// Payload contains the metadata stored with the vector
	Payload map[string]any `json:"payload"`

	// Vector is the stored embedding (only populated if requested)
	Vector []float32 `json:"vector,omitempty"`

	// CollectionName identifies which collection this result came from
	CollectionName string `json:"collectionName,omitempty"`
}

// SearchResponse is one page of results for a single search request,
// together with the engine's estimate of the total match count when the
// request asked for one.
//
// SearchResponse satisfies resultset.SearchResponse, so a page can be
// handed straight to resultset.FromSearchResponse.
type SearchResponse struct {
	// Results are the matched points in decreasing score order.
	Results []SearchResult `json:"results"`

	// Total is the engine's estimate of the total number of matches
	// across all pages. Nil when the request did not ask for a total.
	Total *resultset.TotalEstimate `json:"total,omitempty"`
}

// Hits returns the page's results as opaque hit records for result-set
// construction.
func (r SearchResponse) Hits() []resultset.Hit {
	hits := make([]resultset.Hit, len(r.Results))
	for i := range r.Results {
		hits[i] = r.Results[i]
	}
	return hits
}

// TotalEstimate returns the engine's total estimate when the request
// asked for one.
func (r SearchResponse) TotalEstimate() (resultset.TotalEstimate, bool) {
	if r.Total == nil {
		return resultset.TotalEstimate{}, false
	}
	return *r.Total, true
}

var _ resultset.SearchResponse = SearchResponse{}

// EmbeddingInput is the input for inserting vectors into a collection.
type EmbeddingInput struct {
	// ID is the unique identifier for this embedding
	ID string `json:"id"`

	// Vector is the dense embedding representation
	Vector []float32 `json:"vector"`

	// Payload is optional metadata to store with the vector
	Payload map[string]any `json:"payload,omitempty"`
}

// Collection contains metadata about a vector collection.
type Collection struct {
	// Name is the unique identifier of the collection
	Name string `json:"name"`

	// Status indicates the operational state (e.g., "Green", "Yellow")
	Status string `json:"status"`

	// VectorSize is the dimension of vectors in this collection
	VectorSize int `json:"vectorSize"`

	// Distance is the similarity metric (e.g., "Cosine", "Dot", "Euclid")
	Distance string `json:"distance"`

	// VectorCount is the number of indexed vectors
	VectorCount uint64 `json:"vectorCount"`

	// PointCount is the number of stored points/documents
	PointCount uint64 `json:"pointCount"`
}
