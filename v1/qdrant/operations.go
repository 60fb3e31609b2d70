package qdrant

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/searchkit/v1/observability"
	"github.com/Aleph-Alpha/searchkit/v1/resultset"
	"github.com/Aleph-Alpha/searchkit/v1/vectordb"
)

// QdrantClient implements the database-agnostic search surface.
var _ vectordb.Service = (*QdrantClient)(nil)

// collection resolves the collection for an operation, falling back to the
// configured default when the caller does not name one.
func (c *QdrantClient) collection(name string) string {
	if name == "" {
		return c.cfg.DefaultCollection
	}
	return name
}

// ──────────────────────────────────────────────────────────────
// EnsureCollection
// ──────────────────────────────────────────────────────────────
//
// EnsureCollection verifies if a given collection exists, and creates it if missing.
//
// It's safe to call this multiple times — if the collection already exists,
// the function exits early. This pattern simplifies startup logic for embedding
// services that may bootstrap their own Qdrant collections.
func (c *QdrantClient) EnsureCollection(ctx context.Context, name string, vectorSize uint64) (err error) {
	if name == "" {
		return fmt.Errorf("collection name cannot be empty")
	}
	if vectorSize == 0 {
		return fmt.Errorf("vector size cannot be zero")
	}

	defer observability.ObserveDuration(c.observer, observability.OperationContext{
		Component: "qdrant",
		Operation: "ensure_collection",
		Resource:  name,
	}, time.Now(), &err)

	collections, err := c.api.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] failed to list collections: %w", err)
	}

	if slices.Contains(collections, name) {
		log.Printf("[Qdrant] Collection '%s' already exists", name)
		return nil
	}

	log.Printf("[Qdrant] Collection '%s' not found, creating it...", name)

	req := &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: qdrant.Distance_Cosine, // cosine similarity
		}),
	}

	if err := c.api.CreateCollection(ctx, req); err != nil {
		return fmt.Errorf("[Qdrant] failed to create collection '%s': %w", name, err)
	}

	log.Printf("[Qdrant] Created collection '%s' successfully", name)
	return nil
}

// ──────────────────────────────────────────────────────────────
// Insert
// ──────────────────────────────────────────────────────────────
//
// Insert adds embeddings to a collection.
//
// This method is safe to call for large datasets — it will automatically
// split inserts into smaller chunks (`defaultBatchSize`) and perform
// multiple upserts sequentially.
//
// Logs batch indices and collection name for debugging.
func (c *QdrantClient) Insert(ctx context.Context, collectionName string, inputs []vectordb.EmbeddingInput) (err error) {
	if len(inputs) == 0 {
		return nil
	}

	collectionName = c.collection(collectionName)
	if collectionName == "" {
		return fmt.Errorf("collection name cannot be empty")
	}

	defer observability.ObserveDuration(c.observer, observability.OperationContext{
		Component: "qdrant",
		Operation: "insert",
		Resource:  collectionName,
		Metadata:  map[string]interface{}{"points": len(inputs)},
	}, time.Now(), &err)

	for start := 0; start < len(inputs); start += defaultBatchSize {
		end := start + defaultBatchSize
		if end > len(inputs) {
			end = len(inputs)
		}
		batch := inputs[start:end]

		if err := c.upsertBatch(ctx, collectionName, batch); err != nil {
			return fmt.Errorf("[Qdrant] batch upsert failed at [%d:%d]: %w", start, end, err)
		}
		log.Printf("[Qdrant] Inserted batch [%d:%d] (collection=%s)", start, end, collectionName)
	}

	return nil
}

// ──────────────────────────────────────────────────────────────
// upsertBatch
// ──────────────────────────────────────────────────────────────
//
// upsertBatch sends a single `Upsert` request for a slice of embeddings.
//
// Converts EmbeddingInput structs into Qdrant's `PointStruct` objects and
// triggers a blocking insert (`Wait=true`) to ensure data persistence
// before returning.
func (c *QdrantClient) upsertBatch(ctx context.Context, collectionName string, batch []vectordb.EmbeddingInput) error {
	points := make([]*qdrant.PointStruct, 0, len(batch))
	for _, e := range batch {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(e.ID),
			Vectors: qdrant.NewVectors(e.Vector...),
			Payload: qdrant.NewValueMap(e.Payload),
		})
	}

	wait := true
	req := &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points:         points,
		Wait:           &wait,
	}

	if _, err := c.api.Upsert(ctx, req); err != nil {
		return fmt.Errorf("[Qdrant] upsert failed: %w", err)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────
// Search
// ──────────────────────────────────────────────────────────────
//
// Search runs one similarity query per request and returns the responses in
// request order. Requests run concurrently, capped at maxConcurrentSearches
// in-flight queries; the first failure cancels the rest of the batch.
//
// A request with WithTotal set additionally runs a filtered count so its
// response carries a total-hit estimate alongside the page of results.
//
// Example:
//
//	responses, err := client.Search(ctx,
//	    vectordb.SearchRequest{CollectionName: "docs", Vector: vec1, Limit: 10},
//	    vectordb.SearchRequest{CollectionName: "docs", Vector: vec2, Limit: 5, Offset: 5, WithTotal: true},
//	)
//	// responses[0] = first request's page
//	// responses[1] = second request's page, with responses[1].Total set
func (c *QdrantClient) Search(ctx context.Context, requests ...vectordb.SearchRequest) ([]vectordb.SearchResponse, error) {
	if len(requests) == 0 {
		return nil, fmt.Errorf("at least one search request is required")
	}

	// Resolve and validate every request before spending any query.
	resolved := make([]vectordb.SearchRequest, len(requests))
	for i, searchReq := range requests {
		searchReq.CollectionName = c.collection(searchReq.CollectionName)
		if err := validateSearchInput(searchReq.CollectionName, searchReq.Vector, searchReq.Limit); err != nil {
			return nil, fmt.Errorf("request [%d]: %w", i, err)
		}
		resolved[i] = searchReq
	}

	responses := make([]vectordb.SearchResponse, len(resolved))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSearches)
	for i, searchReq := range resolved {
		g.Go(func() error {
			resp, err := c.searchOne(gctx, searchReq)
			if err != nil {
				return fmt.Errorf("request [%d]: %w", i, err)
			}
			responses[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return responses, nil
}

// searchOne executes a single similarity query and, when requested, the
// accompanying total-hit count.
func (c *QdrantClient) searchOne(ctx context.Context, searchReq vectordb.SearchRequest) (resp vectordb.SearchResponse, err error) {
	defer observability.ObserveDuration(c.observer, observability.OperationContext{
		Component: "qdrant",
		Operation: "search",
		Resource:  searchReq.CollectionName,
	}, time.Now(), &err)

	limit := searchReq.Limit
	filter := buildFilter(searchReq.Filters)

	req := &qdrant.QueryPoints{
		CollectionName: searchReq.CollectionName,
		Query:          qdrant.NewQuery(searchReq.Vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
		Filter:         filter,
	}
	if searchReq.Offset > 0 {
		offset := searchReq.Offset
		req.Offset = &offset
	}

	points, err := c.api.Query(ctx, req)
	if err != nil {
		return vectordb.SearchResponse{}, fmt.Errorf("[Qdrant] search failed: %w", err)
	}

	results, err := parseSearchResults(searchReq.CollectionName, points)
	if err != nil {
		return vectordb.SearchResponse{}, err
	}
	resp = vectordb.SearchResponse{Results: results}

	if searchReq.WithTotal {
		total, err := c.countTotal(ctx, searchReq.CollectionName, filter)
		if err != nil {
			return vectordb.SearchResponse{}, err
		}
		resp.Total = total
	}

	log.Printf("[Qdrant] Search returned %d results (collection=%s)", len(results), searchReq.CollectionName)
	return resp, nil
}

// countTotal runs a filtered count for the collection. With exact counting
// enabled the result is the precise number of matching points; otherwise
// Qdrant answers from index statistics and the value is a lower bound.
func (c *QdrantClient) countTotal(ctx context.Context, collectionName string, filter *qdrant.Filter) (*resultset.TotalEstimate, error) {
	exact := c.cfg.ExactCount
	count, err := c.api.Count(ctx, &qdrant.CountPoints{
		CollectionName: collectionName,
		Filter:         filter,
		Exact:          &exact,
	})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] count failed: %w", err)
	}

	relation := resultset.RelationAtLeast
	if exact {
		relation = resultset.RelationExact
	}

	return &resultset.TotalEstimate{Value: int64(count), Relation: relation}, nil
}

// ──────────────────────────────────────────────────────────────
// SearchWithTotal
// ──────────────────────────────────────────────────────────────
//
// SearchWithTotal runs a single search with the total-hit estimate enabled,
// regardless of the request's WithTotal flag. The returned response feeds
// directly into resultset.FromSearchResponse:
//
//	resp, err := client.SearchWithTotal(ctx, request)
//	if err != nil {
//	    return err
//	}
//	page, err := resultset.FromSearchResponse(int64(request.Offset), resp, codec, "documents")
func (c *QdrantClient) SearchWithTotal(ctx context.Context, request vectordb.SearchRequest) (vectordb.SearchResponse, error) {
	request.WithTotal = true

	responses, err := c.Search(ctx, request)
	if err != nil {
		return vectordb.SearchResponse{}, err
	}
	return responses[0], nil
}

// ──────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────
//
// Delete removes embeddings from a collection by their IDs.
//
// It constructs a `DeletePoints` request containing a list of `PointId`s,
// waits synchronously for completion, and logs the operation status.
func (c *QdrantClient) Delete(ctx context.Context, collection string, ids []string) (err error) {
	if len(ids) == 0 {
		return nil
	}

	collection = c.collection(collection)
	if collection == "" {
		return fmt.Errorf("collection name cannot be empty")
	}

	defer observability.ObserveDuration(c.observer, observability.OperationContext{
		Component: "qdrant",
		Operation: "delete",
		Resource:  collection,
		Metadata:  map[string]interface{}{"points": len(ids)},
	}, time.Now(), &err)

	qdrantIDs := make([]*qdrant.PointId, 0, len(ids))
	for _, id := range ids {
		qdrantIDs = append(qdrantIDs, qdrant.NewID(id))
	}

	wait := true
	req := &qdrant.DeletePoints{
		CollectionName: collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{Ids: qdrantIDs},
			},
		},
		Wait: &wait,
	}

	resp, err := c.api.Delete(ctx, req)
	if err != nil {
		return fmt.Errorf("[Qdrant] delete failed: %w", err)
	}

	log.Printf("[Qdrant] Delete completed (status=%s, collection=%s)",
		resp.Status.String(), collection)
	return nil
}

// ──────────────────────────────────────────────────────────────
// GetCollection
// ──────────────────────────────────────────────────────────────
//
// GetCollection retrieves detailed metadata about a specific collection
// from the connected Qdrant instance.
//
// It returns a high-level, decoupled `vectordb.Collection` struct containing
// core details such as:
//   • Collection name
//   • Status (e.g., "Green", "Yellow")
//   • Total vectors and points
//   • Vector size (embedding dimension)
//   • Distance metric (e.g., "Cosine", "Dot", "Euclid")
//
// This abstraction intentionally hides Qdrant SDK internals (`qdrant.CollectionInfo`)
// so that the application layer remains independent of Qdrant's client library.
func (c *QdrantClient) GetCollection(ctx context.Context, name string) (*vectordb.Collection, error) {
	if c.api == nil {
		return nil, fmt.Errorf("[Qdrant] client not initialized")
	}

	if name == "" {
		return nil, fmt.Errorf("collection name cannot be empty")
	}

	info, err := c.api.GetCollectionInfo(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to get collection '%s': %w", name, err)
	}

	size, distance := extractVectorDetails(info)

	collection := &vectordb.Collection{
		Name:        name,
		Status:      info.Status.String(),
		VectorCount: derefUint64(info.IndexedVectorsCount),
		PointCount:  derefUint64(info.PointsCount),
		VectorSize:  size,
		Distance:    distance,
	}

	return collection, nil
}

// ──────────────────────────────────────────────────────────────
// ListCollections
// ──────────────────────────────────────────────────────────────
//
// ListCollections retrieves all existing collections from Qdrant and returns
// their names as a string slice. This can be extended to preload metadata
// using GetCollection for each name if needed.
func (c *QdrantClient) ListCollections(ctx context.Context) ([]string, error) {
	if c.api == nil {
		return nil, fmt.Errorf("[Qdrant] client not initialized")
	}

	names, err := c.api.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to list collections: %w", err)
	}

	log.Printf("[Qdrant] Found %d collections", len(names))
	return names, nil
}
