package redis

import "time"

// Config defines the configuration for a standalone Redis instance.
type Config struct {
	// Host is the Redis server hostname or IP address.
	// Default: "localhost"
	Host string

	// Port is the Redis server port.
	// Default: 6379
	Port int

	// Username is the Redis username for ACL authentication (Redis 6.0+).
	// Leave empty for no username-based authentication.
	Username string

	// Password is the Redis password. Leave empty for no authentication.
	Password string

	// DB is the Redis database number to use.
	// Default: 0
	DB int

	// Cache holds the page-cache settings.
	Cache CacheConfig

	// Tuning holds connection pool and retry settings.
	Tuning TuningConfig

	// TLS contains TLS/SSL configuration.
	TLS TLSConfig
}

// ClusterConfig defines the configuration for Redis Cluster mode.
type ClusterConfig struct {
	// Addrs is a seed list of cluster nodes,
	// e.g. []string{"localhost:7000", "localhost:7001"}.
	Addrs []string

	// Username is the Redis username for ACL authentication (Redis 6.0+).
	Username string

	// Password is the Redis password.
	Password string

	// MaxRedirects is the maximum number of retries for MOVED/ASK
	// redirects.
	// Default: 3
	MaxRedirects int

	// ReadOnly enables reading from replicas.
	ReadOnly bool

	// RouteByLatency routes read-only commands to the closest node.
	// Implies ReadOnly.
	RouteByLatency bool

	// RouteRandomly routes read-only commands to a random node.
	// Implies ReadOnly.
	RouteRandomly bool

	// Cache holds the page-cache settings.
	Cache CacheConfig

	// Tuning holds connection pool and retry settings (per node).
	Tuning TuningConfig

	// TLS contains TLS/SSL configuration.
	TLS TLSConfig
}

// FailoverConfig defines the configuration for Redis Sentinel mode.
type FailoverConfig struct {
	// MasterName is the master's name as configured in Sentinel.
	MasterName string

	// SentinelAddrs is the list of Sentinel node addresses,
	// e.g. []string{"localhost:26379", "localhost:26380"}.
	SentinelAddrs []string

	// SentinelUsername is the username for Sentinel authentication.
	SentinelUsername string

	// SentinelPassword is the password for Sentinel authentication.
	SentinelPassword string

	// Username is the Redis username for ACL authentication (Redis 6.0+).
	Username string

	// Password is the Redis password.
	Password string

	// DB is the Redis database number to use.
	// Default: 0
	DB int

	// ReplicaOnly routes read-only commands to replica nodes.
	ReplicaOnly bool

	// Cache holds the page-cache settings.
	Cache CacheConfig

	// Tuning holds connection pool and retry settings.
	Tuning TuningConfig

	// TLS contains TLS/SSL configuration.
	TLS TLSConfig
}

// CacheConfig holds the settings of the page cache itself, shared by
// all three deployment modes.
type CacheConfig struct {
	// KeyPrefix is prepended (with a ":" separator) to every key this
	// client touches, separating the cache's keyspace from other users
	// of the same database. Empty means no prefix.
	KeyPrefix string

	// PageTTL is the default time-to-live for cached pages. StorePage
	// uses it when the caller does not pass an explicit TTL.
	// Default: 5 minutes
	PageTTL time.Duration
}

// TuningConfig holds connection pool and retry settings, shared by all
// three deployment modes. Zero values defer to the defaults below or,
// where noted, to the driver's own defaults.
type TuningConfig struct {
	// PoolSize is the maximum number of socket connections.
	// Default: 10 per CPU (driver default)
	PoolSize int

	// MinIdleConns is the minimum number of idle connections to keep.
	MinIdleConns int

	// MaxConnAge closes connections older than this. Zero means no
	// maximum age.
	MaxConnAge time.Duration

	// PoolTimeout is how long to wait for a connection from the pool.
	// Default: ReadTimeout + 1 second (driver default)
	PoolTimeout time.Duration

	// IdleTimeout closes connections idle for longer than this.
	// Default: 5 minutes
	IdleTimeout time.Duration

	// MaxRetries is the number of command retries before giving up.
	// Default: 3. Set to -1 to disable retries.
	MaxRetries int

	// MinRetryBackoff is the minimum backoff between retries.
	// Default: 8 milliseconds
	MinRetryBackoff time.Duration

	// MaxRetryBackoff is the maximum backoff between retries.
	// Default: 512 milliseconds
	MaxRetryBackoff time.Duration

	// DialTimeout is the timeout for establishing new connections.
	// Default: 5 seconds
	DialTimeout time.Duration

	// ReadTimeout is the timeout for socket reads.
	// Default: 3 seconds
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for socket writes.
	// Default: ReadTimeout (driver default)
	WriteTimeout time.Duration
}

// TLSConfig contains TLS/SSL configuration parameters.
type TLSConfig struct {
	// Enabled determines whether to use TLS for the connection.
	Enabled bool

	// CACertPath is the file path to the CA certificate for verifying
	// the server.
	CACertPath string

	// ClientCertPath is the file path to the client certificate.
	ClientCertPath string

	// ClientKeyPath is the file path to the client certificate's key.
	ClientKeyPath string

	// InsecureSkipVerify skips verification of the server certificate.
	// WARNING: only for testing.
	InsecureSkipVerify bool

	// ServerName overrides the hostname used for certificate
	// verification. If empty, the connection host is used.
	ServerName string
}

// Default values for configuration.
const (
	DefaultHost                = "localhost"
	DefaultPort                = 6379
	DefaultPageTTL             = 5 * time.Minute
	DefaultIdleTimeout         = 5 * time.Minute
	DefaultMaxRetries          = 3
	DefaultMinRetryBackoff     = 8 * time.Millisecond
	DefaultMaxRetryBackoff     = 512 * time.Millisecond
	DefaultDialTimeout         = 5 * time.Second
	DefaultReadTimeout         = 3 * time.Second
	DefaultClusterMaxRedirects = 3
)

// applyDefaults fills the zero fields of a TuningConfig.
func (t *TuningConfig) applyDefaults() {
	if t.MaxRetries == 0 {
		t.MaxRetries = DefaultMaxRetries
	}
	if t.MinRetryBackoff == 0 {
		t.MinRetryBackoff = DefaultMinRetryBackoff
	}
	if t.MaxRetryBackoff == 0 {
		t.MaxRetryBackoff = DefaultMaxRetryBackoff
	}
	if t.DialTimeout == 0 {
		t.DialTimeout = DefaultDialTimeout
	}
	if t.ReadTimeout == 0 {
		t.ReadTimeout = DefaultReadTimeout
	}
	if t.IdleTimeout == 0 {
		t.IdleTimeout = DefaultIdleTimeout
	}
}

// applyDefaults fills the zero fields of a CacheConfig.
func (c *CacheConfig) applyDefaults() {
	if c.PageTTL == 0 {
		c.PageTTL = DefaultPageTTL
	}
}
