package redis

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/searchkit/v1/observability"
)

// FXModule is an fx module that provides the Redis page cache for a
// standalone deployment.
//
// The module provides both the concrete *RedisClient (for lifecycle
// management) and the Client interface (for application code).
//
// Usage:
//
//	app := fx.New(
//	    redis.FXModule,
//	    fx.Provide(func() redis.Config { return loadRedisConfig() }),
//	)
var FXModule = fx.Module("redis",
	fx.Provide(
		NewClientWithDI,
		fx.Annotate(
			ProvideClient,
			fx.As(new(Client)),
		),
	),
	fx.Invoke(RegisterRedisLifecycle),
)

// ProvideClient wraps the concrete *RedisClient and returns it as the
// Client interface, so applications depend on the interface rather than
// the concrete type.
func ProvideClient(r *RedisClient) Client {
	return r
}

// RedisParams groups the dependencies needed to create the page cache
// via dependency injection.
type RedisParams struct {
	fx.In

	Config Config

	// Observer receives per-operation reports. Optional; without one
	// the client stays silent.
	Observer observability.Observer `optional:"true"`

	// Logger receives lifecycle warnings. Optional.
	Logger Logger `optional:"true"`
}

// NewClientWithDI creates a standalone page-cache client using
// dependency injection, attaching the optional observer and logger when
// present.
func NewClientWithDI(p RedisParams) (*RedisClient, error) {
	client, err := NewClient(p.Config)
	if err != nil {
		return nil, err
	}
	return attach(client, p.Observer, p.Logger), nil
}

// ClusterFXModule is the FXModule counterpart for Redis Cluster
// deployments. It consumes a ClusterConfig.
var ClusterFXModule = fx.Module("redis-cluster",
	fx.Provide(
		NewClusterClientWithDI,
		fx.Annotate(
			ProvideClient,
			fx.As(new(Client)),
		),
	),
	fx.Invoke(RegisterRedisLifecycle),
)

// ClusterRedisParams groups the dependencies for a cluster page cache.
type ClusterRedisParams struct {
	fx.In

	Config   ClusterConfig
	Observer observability.Observer `optional:"true"`
	Logger   Logger                 `optional:"true"`
}

// NewClusterClientWithDI creates a cluster page-cache client using
// dependency injection.
func NewClusterClientWithDI(p ClusterRedisParams) (*RedisClient, error) {
	client, err := NewClusterClient(p.Config)
	if err != nil {
		return nil, err
	}
	return attach(client, p.Observer, p.Logger), nil
}

// FailoverFXModule is the FXModule counterpart for Redis Sentinel
// deployments. It consumes a FailoverConfig.
var FailoverFXModule = fx.Module("redis-failover",
	fx.Provide(
		NewFailoverClientWithDI,
		fx.Annotate(
			ProvideClient,
			fx.As(new(Client)),
		),
	),
	fx.Invoke(RegisterRedisLifecycle),
)

// FailoverRedisParams groups the dependencies for a sentinel page
// cache.
type FailoverRedisParams struct {
	fx.In

	Config   FailoverConfig
	Observer observability.Observer `optional:"true"`
	Logger   Logger                 `optional:"true"`
}

// NewFailoverClientWithDI creates a sentinel page-cache client using
// dependency injection.
func NewFailoverClientWithDI(p FailoverRedisParams) (*RedisClient, error) {
	client, err := NewFailoverClient(p.Config)
	if err != nil {
		return nil, err
	}
	return attach(client, p.Observer, p.Logger), nil
}

func attach(client *RedisClient, observer observability.Observer, logger Logger) *RedisClient {
	if observer != nil {
		client = client.WithObserver(observer)
	}
	if logger != nil {
		client = client.WithLogger(logger)
	}
	return client
}

// RedisLifecycleParams groups the dependencies needed for lifecycle
// management of the page cache.
type RedisLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *RedisClient
}

// RegisterRedisLifecycle registers lifecycle hooks for the page cache.
// On start it pings the server so a misconfigured cache fails the
// application early; on stop it closes the client.
func RegisterRedisLifecycle(p RedisLifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := p.Client.Ping(ctx); err != nil {
				log.Printf("WARN: Failed to ping Redis on startup: %v", err)
				return err
			}
			log.Println("INFO: Redis page cache started and healthy")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return p.Client.Close()
		},
	})
}
