// Package redis provides the decoded-page cache: result pages that were
// already parsed once are stored in Redis under a query fingerprint so
// repeated searches can skip the engine round trip.
//
// Pages are cached in their document form, the same bytes the archive
// and page stores use, so a cached page decodes through the ordinary
// document parsing path and any consumer of the document form can read
// the cached value directly.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Client interface: the key-value surface the cache needs
//   - RedisClient struct: concrete implementation over go-redis
//   - NewClient / NewClusterClient / NewFailoverClient constructors
//   - FX module: provides both *RedisClient and Client for dependency injection
//
// Core features:
//   - Standalone, cluster and sentinel deployments behind one client type
//   - Key prefixing so one Redis database can serve several components
//   - Per-page TTL with a configured default
//   - TLS with CA and client-certificate support
//   - Error translation into package sentinels with retry categories
//   - Optional observer hooks for per-operation metrics
//
// # Caching pages
//
// StorePage and FetchPage are the cache surface; everything else exists
// to serve them. The key is a fingerprint of whatever identifies the
// query, derived with Fingerprint:
//
//	key := redis.Fingerprint("documents", query, strconv.FormatInt(offset, 10))
//
//	if _, err := redis.StorePage(ctx, client, key, page, codec); err != nil {
//		log.Printf("WARN: page not cached: %v", err)
//	}
//
//	cached, err := redis.FetchPage(ctx, client, key, "events", codec, nil)
//	if redis.IsKeyNotFoundError(err) {
//		// cache miss, run the search
//	}
//
// Invalidation is Delete on the same keys; there is no partial update,
// a page is replaced wholesale or expires.
//
// # Usage
//
//	client, err := redis.NewClient(redis.Config{
//		Host: "localhost",
//		Port: 6379,
//		Cache: redis.CacheConfig{
//			KeyPrefix: "searchkit",
//			PageTTL:   10 * time.Minute,
//		},
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// With fx:
//
//	app := fx.New(
//		redis.FXModule,
//		fx.Provide(func() redis.Config { return loadRedisConfig() }),
//	)
package redis
