package redis

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Compile-time check that RedisClient satisfies Client.
var _ Client = (*RedisClient)(nil)

// Ping checks if the Redis server is reachable and responsive.
func (r *RedisClient) Ping(ctx context.Context) error {
	err := r.client.Ping(ctx).Err()
	return r.TranslateError(err)
}

// PoolStats returns connection pool statistics for monitoring.
func (r *RedisClient) PoolStats() *redis.PoolStats {
	return r.client.PoolStats()
}

// Get retrieves the value associated with the given key. A missing key
// satisfies IsKeyNotFoundError.
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()

	result, err := r.client.Get(ctx, r.key(key)).Result()
	err = r.TranslateError(err)
	r.observeOperation("get", key, "", time.Since(start), err, int64(len(result)), nil)
	return result, err
}

// GetBytes retrieves the raw bytes stored under the given key. This is
// the read path for cached pages. A missing key satisfies
// IsKeyNotFoundError.
func (r *RedisClient) GetBytes(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()

	result, err := r.client.Get(ctx, r.key(key)).Bytes()
	err = r.TranslateError(err)
	r.observeOperation("get", key, "", time.Since(start), err, int64(len(result)), nil)
	return result, err
}

// Set stores the value under the given key with a TTL. A ttl of 0 makes
// the key permanent.
func (r *RedisClient) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	start := time.Now()

	err := r.TranslateError(r.client.Set(ctx, r.key(key), value, ttl).Err())
	metadata := map[string]interface{}{}
	if ttl > 0 {
		metadata["ttl"] = ttl.String()
	}
	r.observeOperation("set", key, "", time.Since(start), err, valueSize(value), metadata)
	return err
}

// SetNX stores the value only if the key does not exist yet. Returns
// true if the key was set. Useful as a single-flight guard so only one
// searcher fills a missing page.
func (r *RedisClient) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	start := time.Now()

	wasSet, err := r.client.SetNX(ctx, r.key(key), value, ttl).Result()
	err = r.TranslateError(err)
	metadata := map[string]interface{}{"was_set": wasSet}
	if ttl > 0 {
		metadata["ttl"] = ttl.String()
	}
	r.observeOperation("setnx", key, "", time.Since(start), err, valueSize(value), metadata)
	return wasSet, err
}

// Delete removes one or more keys. Returns the number of keys that were
// removed. Deleting a cached page is its invalidation.
func (r *RedisClient) Delete(ctx context.Context, keys ...string) (int64, error) {
	start := time.Now()

	removed, err := r.client.Del(ctx, r.keys(keys)...).Result()
	err = r.TranslateError(err)
	r.observeOperation("delete", firstKey(keys), "", time.Since(start), err, removed, map[string]interface{}{
		"key_count": len(keys),
	})
	return removed, err
}

// Exists reports how many of the given keys exist.
func (r *RedisClient) Exists(ctx context.Context, keys ...string) (int64, error) {
	start := time.Now()

	count, err := r.client.Exists(ctx, r.keys(keys)...).Result()
	err = r.TranslateError(err)
	r.observeOperation("exists", firstKey(keys), "", time.Since(start), err, count, nil)
	return count, err
}

// Expire sets a new TTL on an existing key. Returns false when the key
// does not exist.
func (r *RedisClient) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	start := time.Now()

	ok, err := r.client.Expire(ctx, r.key(key), ttl).Result()
	err = r.TranslateError(err)
	r.observeOperation("expire", key, "", time.Since(start), err, 0, map[string]interface{}{
		"ttl": ttl.String(),
	})
	return ok, err
}

// TTL returns the remaining time-to-live of a key. The driver reports
// -1 for a key without expiry and -2 for a missing key.
func (r *RedisClient) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := r.client.TTL(ctx, r.key(key)).Result()
	return ttl, r.TranslateError(err)
}

// Keys lists the keys matching the glob pattern, with the configured
// prefix stripped so results can be passed back to Get. KEYS walks the
// whole keyspace; reserve it for diagnostics and tests.
func (r *RedisClient) Keys(ctx context.Context, pattern string) ([]string, error) {
	start := time.Now()

	found, err := r.client.Keys(ctx, r.key(pattern)).Result()
	err = r.TranslateError(err)
	for i, k := range found {
		found[i] = strings.TrimPrefix(k, r.prefix)
	}
	r.observeOperation("keys", pattern, "", time.Since(start), err, int64(len(found)), nil)
	return found, err
}

// keys applies the configured prefix to a batch of caller keys.
func (r *RedisClient) keys(ks []string) []string {
	if r.prefix == "" {
		return ks
	}
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = r.key(k)
	}
	return out
}

func firstKey(keys []string) string {
	if len(keys) > 0 {
		return keys[0]
	}
	return ""
}

// valueSize reports the payload size for observation where it is
// cheaply known.
func valueSize(value interface{}) int64 {
	switch v := value.(type) {
	case []byte:
		return int64(len(v))
	case string:
		return int64(len(v))
	default:
		return 0
	}
}
