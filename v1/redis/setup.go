package redis

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Aleph-Alpha/searchkit/v1/observability"
)

// RedisClient is the page cache over a Redis deployment. It wraps a
// go-redis universal client with key prefixing, error translation and
// observer hooks.
//
// The underlying connection is never swapped after construction; the
// driver pools and reconnects internally, so the client needs no lock.
//
// RedisClient implements the Client interface.
type RedisClient struct {
	client redis.UniversalClient

	// cache holds the page-cache settings with defaults applied.
	cache CacheConfig

	// prefix is the key namespace, "<KeyPrefix>:" or empty.
	prefix string

	logger   Logger
	observer observability.Observer
}

// NewClient creates a page-cache client for a standalone Redis
// instance.
//
// Example:
//
//	client, err := redis.NewClient(redis.Config{
//		Host: "localhost",
//		Port: 6379,
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
func NewClient(cfg Config) (*RedisClient, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	cfg.Tuning.applyDefaults()
	cfg.Cache.applyDefaults()

	tlsConfig, err := createTLSConfig(cfg.TLS, cfg.Host)
	if err != nil {
		return nil, err
	}

	t := cfg.Tuning
	client := redis.NewClient(&redis.Options{
		Addr:            fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Username:        cfg.Username,
		Password:        cfg.Password,
		DB:              cfg.DB,
		PoolSize:        t.PoolSize,
		MinIdleConns:    t.MinIdleConns,
		ConnMaxLifetime: t.MaxConnAge,
		PoolTimeout:     t.PoolTimeout,
		ConnMaxIdleTime: t.IdleTimeout,
		MaxRetries:      t.MaxRetries,
		MinRetryBackoff: t.MinRetryBackoff,
		MaxRetryBackoff: t.MaxRetryBackoff,
		DialTimeout:     t.DialTimeout,
		ReadTimeout:     t.ReadTimeout,
		WriteTimeout:    t.WriteTimeout,
		TLSConfig:       tlsConfig,
	})

	log.Println("INFO: Redis page cache initialized")
	return newRedisClient(client, cfg.Cache), nil
}

// NewClusterClient creates a page-cache client for a Redis Cluster
// deployment.
func NewClusterClient(cfg ClusterConfig) (*RedisClient, error) {
	if cfg.MaxRedirects == 0 {
		cfg.MaxRedirects = DefaultClusterMaxRedirects
	}
	cfg.Tuning.applyDefaults()
	cfg.Cache.applyDefaults()

	tlsConfig, err := createTLSConfig(cfg.TLS, "")
	if err != nil {
		return nil, err
	}

	t := cfg.Tuning
	client := redis.NewClusterClient(&redis.ClusterOptions{
		Addrs:           cfg.Addrs,
		Username:        cfg.Username,
		Password:        cfg.Password,
		MaxRedirects:    cfg.MaxRedirects,
		ReadOnly:        cfg.ReadOnly,
		RouteByLatency:  cfg.RouteByLatency,
		RouteRandomly:   cfg.RouteRandomly,
		PoolSize:        t.PoolSize,
		MinIdleConns:    t.MinIdleConns,
		ConnMaxLifetime: t.MaxConnAge,
		PoolTimeout:     t.PoolTimeout,
		ConnMaxIdleTime: t.IdleTimeout,
		MaxRetries:      t.MaxRetries,
		MinRetryBackoff: t.MinRetryBackoff,
		MaxRetryBackoff: t.MaxRetryBackoff,
		DialTimeout:     t.DialTimeout,
		ReadTimeout:     t.ReadTimeout,
		WriteTimeout:    t.WriteTimeout,
		TLSConfig:       tlsConfig,
	})

	log.Println("INFO: Redis Cluster page cache initialized")
	return newRedisClient(client, cfg.Cache), nil
}

// NewFailoverClient creates a page-cache client for a Redis Sentinel
// deployment.
func NewFailoverClient(cfg FailoverConfig) (*RedisClient, error) {
	cfg.Tuning.applyDefaults()
	cfg.Cache.applyDefaults()

	tlsConfig, err := createTLSConfig(cfg.TLS, "")
	if err != nil {
		return nil, err
	}

	t := cfg.Tuning
	client := redis.NewFailoverClient(&redis.FailoverOptions{
		MasterName:       cfg.MasterName,
		SentinelAddrs:    cfg.SentinelAddrs,
		SentinelUsername: cfg.SentinelUsername,
		SentinelPassword: cfg.SentinelPassword,
		Username:         cfg.Username,
		Password:         cfg.Password,
		DB:               cfg.DB,
		ReplicaOnly:      cfg.ReplicaOnly,
		PoolSize:         t.PoolSize,
		MinIdleConns:     t.MinIdleConns,
		ConnMaxLifetime:  t.MaxConnAge,
		PoolTimeout:      t.PoolTimeout,
		ConnMaxIdleTime:  t.IdleTimeout,
		MaxRetries:       t.MaxRetries,
		MinRetryBackoff:  t.MinRetryBackoff,
		MaxRetryBackoff:  t.MaxRetryBackoff,
		DialTimeout:      t.DialTimeout,
		ReadTimeout:      t.ReadTimeout,
		WriteTimeout:     t.WriteTimeout,
		TLSConfig:        tlsConfig,
	})

	log.Println("INFO: Redis Sentinel page cache initialized")
	return newRedisClient(client, cfg.Cache), nil
}

func newRedisClient(client redis.UniversalClient, cache CacheConfig) *RedisClient {
	prefix := ""
	if cache.KeyPrefix != "" {
		prefix = cache.KeyPrefix + ":"
	}
	return &RedisClient{
		client: client,
		cache:  cache,
		prefix: prefix,
	}
}

// createTLSConfig builds a *tls.Config from the TLS section. Returns
// nil when TLS is disabled.
func createTLSConfig(cfg TLSConfig, defaultServerName string) (*tls.Config, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	if cfg.ServerName != "" {
		tlsConfig.ServerName = cfg.ServerName
	} else if defaultServerName != "" {
		tlsConfig.ServerName = defaultServerName
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert")
		}
		tlsConfig.RootCAs = caCertPool
	}

	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// key applies the configured prefix to a caller key.
func (r *RedisClient) key(k string) string {
	return r.prefix + k
}

// Client returns the underlying go-redis client for operations beyond
// the cache surface. Keys used through it are not prefixed.
func (r *RedisClient) Client() redis.UniversalClient {
	return r.client
}

// PageTTL returns the configured default time-to-live for cached pages.
func (r *RedisClient) PageTTL() time.Duration {
	return r.cache.PageTTL
}

// Close closes the client and releases its connections.
func (r *RedisClient) Close() error {
	log.Println("INFO: Closing Redis page cache")

	if err := r.client.Close(); err != nil {
		r.logWarn("failed to close Redis client", err)
		return err
	}
	return nil
}

// WithObserver sets the observer for this client and returns the client
// for method chaining. The observer receives one report per cache
// operation.
func (r *RedisClient) WithObserver(observer observability.Observer) *RedisClient {
	r.observer = observer
	return r
}

// WithLogger sets the logger for this client and returns the client for
// method chaining. Without one, warnings fall back to the standard
// logger.
func (r *RedisClient) WithLogger(logger Logger) *RedisClient {
	r.logger = logger
	return r
}

func (r *RedisClient) logWarn(msg string, err error) {
	if r.logger != nil {
		r.logger.Warn(msg, err)
		return
	}
	log.Printf("WARN: %s: %v", msg, err)
}
