// Package qdrant provides a modular, dependency-injected client for the Qdrant vector database.
//
// The qdrant package is designed to simplify interaction with Qdrant in Go applications,
// offering a clean, testable abstraction layer for common vector database operations such as
// collection management, embedding insertion, similarity search, and deletion. It integrates
// seamlessly with the fx dependency injection framework and supports builder-style configuration.
//
// # Core Features
//
//   - Managed Qdrant client lifecycle with Fx integration
//   - Config struct supporting environment and YAML loading
//   - Automatic health checks on client initialization
//   - Safe, batched insertion of embeddings with configurable batch size
//   - Concurrent batch search with a bounded number of in-flight queries
//   - Total-hit counting per request for building paginated result sets
//   - Database-agnostic interface via vectordb.Service
//   - Support for payload metadata and rich filter conversion
//
// # VectorDB Interface
//
// [QdrantClient] implements the database-agnostic [vectordb.Service]
// interface directly. Depend on the interface to keep application code
// portable across vector stores:
//
//	import (
//	    "github.com/Aleph-Alpha/searchkit/v1/qdrant"
//	    "github.com/Aleph-Alpha/searchkit/v1/vectordb"
//	)
//
//	client, err := qdrant.NewQdrantClient(qdrant.QdrantParams{
//	    Config: &qdrant.Config{
//	        Endpoint: "localhost",
//	        Port:     6334,
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var db vectordb.Service = client
//
// # Basic Usage
//
//	collectionName := "documents"
//
//	// Ensure collection exists (1536 = embedding dimension)
//	if err := db.EnsureCollection(ctx, collectionName, 1536); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Insert embeddings
//	inputs := []vectordb.EmbeddingInput{
//	    {
//	        ID:      "8b2ea2ab-5a36-4dbe-b00f-eb9f45892931",
//	        Vector:  []float32{0.12, 0.43, 0.85 /* ... */},
//	        Payload: map[string]any{"title": "My Document"},
//	    },
//	}
//	if err := db.Insert(ctx, collectionName, inputs); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Perform similarity search
//	responses, err := db.Search(ctx, vectordb.SearchRequest{
//	    CollectionName: collectionName,
//	    Vector:         queryVector,
//	    Limit:          5,
//	})
//	for _, res := range responses[0].Results {
//	    fmt.Printf("ID=%s Score=%.4f\n", res.ID, res.Score)
//	}
//
// Multiple requests in a single Search call run concurrently, capped at a
// fixed number of in-flight queries. Responses come back in request order.
//
// # Result Pages
//
// A request with WithTotal set (or the SearchWithTotal convenience) also
// runs a filtered count, so the response carries a total-hit estimate and
// can be folded into a paginated result set:
//
//	resp, err := client.SearchWithTotal(ctx, vectordb.SearchRequest{
//	    CollectionName: "documents",
//	    Vector:         queryVector,
//	    Limit:          10,
//	    Offset:         20,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	page, err := resultset.FromSearchResponse(20, resp, codec, "documents")
//	// page.TotalHits() now reflects the count, not just the page length.
//
// Whether the count is exact is controlled by Config.ExactCount: exact
// counts scan the collection and report [resultset.RelationExact], while
// approximate counts come from index statistics and are reported as
// [resultset.RelationAtLeast].
//
// # FX Module Integration
//
// The package exposes an Fx module for automatic dependency injection:
//
//	app := fx.New(
//	    qdrant.FXModule,
//	    // other modules...
//	)
//	app.Run()
//
// The module provides both *QdrantClient and vectordb.Service, and wires an
// optional observability.Observer into every operation.
//
// # Search Results
//
// Search results are returned as [vectordb.SearchResult] structs with public fields:
//
//	type SearchResult struct {
//	    ID             string         // Unique identifier of the matched point
//	    Score          float32        // Similarity score
//	    Payload        map[string]any // Metadata stored with the vector
//	    Vector         []float32      // Stored embedding (if requested)
//	    CollectionName string         // Source collection name
//	}
//
// Access fields directly (no getter methods needed):
//
//	for _, result := range responses[0].Results {
//	    fmt.Println(result.ID, result.Score, result.Payload["title"])
//	}
//
// # Filtering
//
// Filters are defined in the [vectordb] package and support boolean logic (AND, OR, NOT).
// The qdrant client converts these to native Qdrant filters automatically.
//
// Filter Structure:
//
//	type FilterSet struct {
//	    Must    *ConditionSet  // AND - all conditions must match
//	    Should  *ConditionSet  // OR - at least one condition must match
//	    MustNot *ConditionSet  // NOT - none of the conditions should match
//	}
//
// Condition Types (all in vectordb package):
//
//   - MatchCondition: Exact match (string, bool, int64)
//   - MatchAnyCondition: IN operator (match any of values)
//   - MatchExceptCondition: NOT IN operator
//   - NumericRangeCondition: Numeric range filter (gt, gte, lt, lte)
//   - TimeRangeCondition: DateTime range filter
//   - IsNullCondition: Check if field is null
//   - IsEmptyCondition: Check if field is empty, null, or missing
//
// Field Types (Internal vs User):
//
// The package distinguishes between system-managed and user-defined metadata:
//
//	const (
//	    InternalField FieldType = iota  // Top-level: "status"
//	    UserField                        // Prefixed: "custom.document_id"
//	)
//
// User fields are automatically prefixed with "custom." when querying Qdrant.
//
// # Filter Examples Using Convenience Constructors
//
// Basic Filter (Must - AND logic):
//
//	// Filter: city = "London" AND active = true
//	responses, err := db.Search(ctx, vectordb.SearchRequest{
//	    CollectionName: "documents",
//	    Vector:         queryVector,
//	    Limit:          10,
//	    Filters: vectordb.NewFilterSet(
//	        vectordb.Must(
//	            vectordb.NewMatch("city", "London"),
//	            vectordb.NewMatch("active", true),
//	        ),
//	    ),
//	})
//
// OR Conditions (Should):
//
//	// Filter: city = "London" OR city = "Berlin"
//	filters := vectordb.NewFilterSet(
//	    vectordb.Should(
//	        vectordb.NewMatch("city", "London"),
//	        vectordb.NewMatch("city", "Berlin"),
//	    ),
//	)
//
// IN Operator (MatchAny):
//
//	// Filter: city IN ["London", "Berlin", "Paris"]
//	filters := vectordb.NewFilterSet(
//	    vectordb.Must(
//	        vectordb.NewMatchAny("city", "London", "Berlin", "Paris"),
//	    ),
//	)
//
// Numeric Range Filter:
//
//	// Filter: price >= 100 AND price < 500
//	min, max := float64(100), float64(500)
//	filters := vectordb.NewFilterSet(
//	    vectordb.Must(
//	        vectordb.NewNumericRange("price", vectordb.NumericRange{
//	            Gte: &min,
//	            Lt:  &max,
//	        }),
//	    ),
//	)
//
// Time Range Filter:
//
//	// Filter: created_at >= yesterday AND created_at < now
//	now := time.Now()
//	yesterday := now.Add(-24 * time.Hour)
//	filters := vectordb.NewFilterSet(
//	    vectordb.Must(
//	        vectordb.NewTimeRange("created_at", vectordb.TimeRange{
//	            Gte: &yesterday,
//	            Lt:  &now,
//	        }),
//	    ),
//	)
//
// Complex Filter (Combined Clauses):
//
//	// Filter: status = "published" AND (tag = "ml" OR tag = "ai") AND NOT deleted = true
//	filters := vectordb.NewFilterSet(
//	    vectordb.Must(vectordb.NewMatch("status", "published")),
//	    vectordb.Should(
//	        vectordb.NewMatch("tag", "ml"),
//	        vectordb.NewMatch("tag", "ai"),
//	    ),
//	    vectordb.MustNot(vectordb.NewMatch("deleted", true)),
//	)
//
// User-Defined Fields:
//
// For fields stored under the custom prefix, use the User* constructors:
//
//	// Filter on user-defined field: custom.document_id = "doc-123"
//	filters := vectordb.NewFilterSet(
//	    vectordb.Must(
//	        vectordb.NewUserMatch("document_id", "doc-123"),
//	    ),
//	)
//
// # Configuration
//
// Qdrant can be configured via environment variables or YAML:
//
//	QDRANT_ENDPOINT=localhost
//	QDRANT_PORT=6334
//	QDRANT_API_KEY=your-api-key
//	QDRANT_DEFAULT_COLLECTION=documents
//	QDRANT_EXACT_COUNT=true
//
// Requests that leave CollectionName empty fall back to the configured
// default collection.
//
// # Performance Considerations
//
// The Insert method automatically splits large embedding batches into smaller
// upserts (default batch size = 200). This minimizes memory usage and avoids timeouts
// when ingesting large datasets.
//
// Search fans requests out concurrently but never runs more than
// maxConcurrentSearches queries at once, so a large batch cannot saturate
// the Qdrant connection pool.
//
// # Thread Safety
//
// All exported methods on QdrantClient are safe for concurrent use by multiple goroutines.
//
// # Testing
//
// For testing and mocking, depend on the [vectordb.Service] interface:
//
//	type MockVectorDB struct{}
//
//	func (m *MockVectorDB) Search(ctx context.Context, requests ...vectordb.SearchRequest) ([]vectordb.SearchResponse, error) {
//	    return []vectordb.SearchResponse{
//	        {Results: []vectordb.SearchResult{{ID: "doc-1", Score: 0.95, Payload: map[string]any{"title": "Test"}}}},
//	    }, nil
//	}
//
//	// Use in tests:
//	var db vectordb.Service = &MockVectorDB{}
//
// # Package Layout
//
//	qdrant/
//	├── client.go        // Qdrant client wrapper and lifecycle
//	├── operations.go    // vectordb.Service implementation
//	├── converter.go     // vectordb ↔ Qdrant type conversion
//	├── utils.go         // Qdrant-specific helper functions
//	├── configs.go       // Configuration struct
//	└── fx_module.go     // Fx dependency injection module
//
// # Related Packages
//
//   - [vectordb]: Database-agnostic types and interfaces
//   - [resultset]: Paginated result-set container fed by SearchWithTotal
//   - [vectordb.FilterSet]: Filter structures for search queries
//   - [vectordb.SearchResult]: Search result type
//   - [vectordb.EmbeddingInput]: Input type for inserting vectors
package qdrant
