package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the key-value surface the page cache needs. It is
// deliberately small: keys carry document-encoded pages and nothing
// else, so the rich data-structure surface of Redis stays behind
// Client() for the rare caller that needs it.
//
// All keys are namespaced under the configured key prefix; callers pass
// bare keys and get bare keys back.
//
// This interface is implemented by the concrete *RedisClient type.
type Client interface {
	// Connection and lifecycle
	Ping(ctx context.Context) error
	PoolStats() *redis.PoolStats
	Client() redis.UniversalClient
	Close() error

	// PageTTL returns the configured default time-to-live for cached
	// pages.
	PageTTL() time.Duration

	// Value operations
	Get(ctx context.Context, key string) (string, error)
	GetBytes(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)

	// Key operations
	Delete(ctx context.Context, keys ...string) (int64, error)
	Exists(ctx context.Context, keys ...string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	Keys(ctx context.Context, pattern string) ([]string, error)
}

// Logger is the duck-typed logging interface this package accepts. It
// matches the logger client's method set so that client can be injected
// directly.
type Logger interface {
	Error(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}
