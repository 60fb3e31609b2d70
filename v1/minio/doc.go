// Package minio provides a managed client for MinIO and S3-compatible
// object storage, plus helpers for archiving result pages in their
// document form.
//
// # Core Features
//
//   - Bucket-scoped object operations (Put, Get, Delete, List) with
//     optional key prefixing
//   - Presigned upload and download URLs for handing objects to clients
//     without sharing credentials
//   - Result-page archival: ArchivePage and LoadPage store and restore
//     pages through their canonical document encoding
//   - Automatic reconnection with health monitoring, the active client is
//     swapped atomically so in-flight operations never see a torn state
//   - Buffer pooling for object reads, with size limits and usage counters
//   - Error translation from storage response codes to stable package
//     errors with retry categories
//
// # Basic Usage
//
//	cfg := minio.DefaultConfig()
//	cfg.Connection.Endpoint = "localhost:9000"
//	cfg.Connection.AccessKeyID = "minioadmin"
//	cfg.Connection.SecretAccessKey = "minioadmin"
//	cfg.Connection.BucketName = "search-pages"
//	cfg.Connection.AccessBucketCreation = true
//
//	client, err := minio.NewClient(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.GracefulShutdown()
//
//	n, err := client.Put(ctx, "reports/2026/08.json", reader, size)
//	data, err := client.Get(ctx, "reports/2026/08.json")
//
// # Archiving Result Pages
//
// Pages produced by the resultset package can be stored and restored
// without the caller touching the document encoding:
//
//	page, err := resultset.FromSearchResponse(0, resp, codec, "documents")
//	if err != nil { ... }
//
//	_, err = minio.ArchivePage(ctx, client, "pages/query-42/0", page, codec)
//
//	restored, err := minio.LoadPage(ctx, client, "pages/query-42/0",
//	    "documents", codec, nil)
//
// The stored object is the page's document form, so anything that reads the
// document encoding (other services, offline tooling) can consume archived
// pages directly.
//
// # FX Module Integration
//
//	app := fx.New(
//	    fx.Provide(func() minio.Config {
//	        cfg := minio.DefaultConfig()
//	        cfg.Connection.BucketName = "search-pages"
//	        return cfg
//	    }),
//	    minio.FXModule,
//	    fx.Invoke(func(store minio.Client) {
//	        // store is ready to use
//	    }),
//	)
//
// The module provides the Client interface and starts the connection
// monitor and reconnection goroutines on application start; on stop it
// shuts them down and releases pooled buffers.
//
// # Error Handling
//
// Operations translate storage errors into package sentinels:
//
//	data, err := client.Get(ctx, key)
//	if minio.IsObjectNotFoundError(err) {
//	    // treat as cache miss
//	}
//
// GetErrorCategory and IsRetryableError classify errors for retry loops:
// timeouts and connection failures are transient, missing objects and
// denied credentials are not.
//
// # Resource Management
//
// Object reads go through a bounded buffer pool. GetBufferPoolStats exposes
// pool usage for monitoring; CleanupResources releases pooled buffers under
// memory pressure. GracefulShutdown stops the monitor goroutines and cleans
// up, and is safe to call more than once.
//
// # Related Packages
//
//   - [github.com/Aleph-Alpha/searchkit/v1/resultset]: the pages this
//     package archives
//   - [github.com/Aleph-Alpha/searchkit/v1/document]: the encoding stored
//     objects use
//   - [github.com/Aleph-Alpha/searchkit/v1/observability]: the observer
//     contract operation reports follow
package minio
