// Package vectordb provides a database-agnostic abstraction for vector similarity search.
//
// # Overview
//
// This package defines a common interface [Service] that can be implemented
// by different vector database adapters (Qdrant, Weaviate, Pinecone, etc.), allowing
// applications to switch between databases without changing application code.
//
// Search responses carry pagination data: each request names its page
// (Limit, Offset) and can ask for a total-hit estimate, and each
// SearchResponse satisfies resultset.SearchResponse so a page converts
// straight into a result set via resultset.FromSearchResponse.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                    Application Layer                        │
//	│      (uses vectordb.Service - no DB-specific imports)       │
//	└──────────────────────────┬──────────────────────────────────┘
//	                           │
//	                           ▼
//	┌─────────────────────────────────────────────────────────────┐
//	│                     vectordb.Service                        │
//	│          (common interface + DB-agnostic types)             │
//	└──────────────────────────┬──────────────────────────────────┘
//	                           │
//	        ┌──────────────────┼──────────────────┐
//	        ▼                  ▼                  ▼
//	┌───────────────┐  ┌───────────────┐  ┌───────────────┐
//	│ qdrant.Adapter│  │weaviate.Adapter│ │pinecone.Adapter│
//	│  (implements) │  │   (future)     │ │   (future)     │
//	└───────────────┘  └───────────────┘  └───────────────┘
//
// # Benefits
//
//   - Single Source of Truth: Filter types, search interfaces, and result types defined once.
//   - Easy to Add New DBs: Just add a new adapter; consuming projects don't change.
//   - Consistent API: All projects using searchkit get the same interface.
//   - Testability: Mock the interface once, works for all DBs.
//
// # Usage
//
// In your application, depend only on the vectordb interface:
//
//	import (
//	    "github.com/Aleph-Alpha/searchkit/v1/resultset"
//	    "github.com/Aleph-Alpha/searchkit/v1/vectordb"
//	)
//
//	type SearchService struct {
//	    db vectordb.Service
//	}
//
//	func NewSearchService(db vectordb.Service) *SearchService {
//	    return &SearchService{db: db}
//	}
//
//	func (s *SearchService) Page(ctx context.Context, vector []float32, offset uint64) (resultset.ResultSet[Doc], error) {
//	    responses, err := s.db.Search(ctx, vectordb.SearchRequest{
//	        CollectionName: "documents",
//	        Vector:         vector,
//	        Limit:          10,
//	        Offset:         offset,
//	        WithTotal:      true,
//	        Filters: vectordb.NewFilterSet(
//	            vectordb.Must(vectordb.NewMatch("status", "published")),
//	        ),
//	    })
//	    if err != nil {
//	        return resultset.ResultSet[Doc]{}, err
//	    }
//	    return resultset.FromSearchResponse[Doc](int64(offset), responses[0], docCodec{}, "documents")
//	}
//
// # Wire Up with Qdrant
//
// In your main setup:
//
//	import (
//	    "github.com/Aleph-Alpha/searchkit/v1/vectordb"
//	    "github.com/Aleph-Alpha/searchkit/v1/qdrant"
//	)
//
//	func main() {
//	    // Create Qdrant client (with health checks, config, etc.)
//	    qc, _ := qdrant.NewQdrantClient(qdrant.QdrantParams{
//	        Config: &qdrant.Config{Endpoint: "localhost", Port: 6334},
//	    })
//
//	    // Create adapter for DB-agnostic usage
//	    db := qdrant.NewAdapter(qc.Client())
//
//	    // Use in application
//	    svc := NewSearchService(db)
//	    // ...
//	}
//
// # Package Layout
//
//	vectordb/
//	├── interface.go      # Service interface
//	├── types.go          # SearchRequest, SearchResponse, SearchResult, EmbeddingInput, Collection
//	├── filters.go        # FilterSet, FilterCondition, and condition types
//	├── utils.go          # Convenience constructors (New*) and JSON helpers
//	└── doc.go            # This file
//
//	qdrant/                      # Qdrant package (includes adapter)
//	├── client.go                # QdrantClient wrapper
//	├── operations.go            # Adapter - implements Service
//	├── converter.go             # vectordb types → qdrant types
//	└── ...
//
// Future adapters would live in their own packages:
//
//	weaviate/             # (future) Weaviate adapter
//	pinecone/             # (future) Pinecone adapter
//
// # Filter Types
//
// The package provides DB-agnostic filter conditions:
//
//	| Type                  | Description                  | SQL Equivalent                    |
//	|-----------------------|------------------------------|-----------------------------------|
//	| MatchCondition        | Exact value match            | WHERE field = value               |
//	| MatchAnyCondition     | Value in set                 | WHERE field IN (...)              |
//	| MatchExceptCondition  | Value not in set             | WHERE field NOT IN (...)          |
//	| NumericRangeCondition | Numeric range                | WHERE field >= min AND field <= max|
//	| TimeRangeCondition    | Datetime range               | WHERE created_at BETWEEN ...      |
//	| IsNullCondition       | Field is null                | WHERE field IS NULL               |
//	| IsEmptyCondition      | Field is empty/null/missing  | WHERE field IS NULL OR field = '' |
//
// Use convenience constructors for cleaner code:
//
//	// Internal field (top-level in payload)
//	vectordb.NewMatch("status", "published")
//
//	// User-defined field (stored under "custom." prefix)
//	vectordb.NewUserMatch("category", "research")
//
//	// Range conditions with NumericRange/TimeRange structs
//	vectordb.NewNumericRange("price", vectordb.NumericRange{Gte: &min, Lt: &max})
//	vectordb.NewTimeRange("created_at", vectordb.TimeRange{Gte: &start, Lt: &end})
package vectordb
