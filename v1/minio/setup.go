package minio

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Aleph-Alpha/searchkit/v1/observability"
)

// connectionHealthCheckInterval is how often the connection monitor probes
// the storage endpoint.
const connectionHealthCheckInterval = 30 * time.Second

// MinioClient wraps the standard MinIO client with connection management,
// reconnection handling, and buffer pooling for object reads.
type MinioClient struct {
	// client is stored in an atomic pointer so it can be swapped during
	// reconnection without racing with concurrent operations.
	client atomic.Pointer[minio.Client]

	// cfg holds the configuration for this client instance
	cfg Config

	// observer provides optional observability hooks for tracking operations
	observer observability.Observer

	// logger provides optional context-aware logging capabilities
	logger Logger

	// shutdownSignal is used to signal the connection monitor to stop
	shutdownSignal chan struct{}

	// reconnectSignal is used to trigger reconnection attempts
	reconnectSignal chan error

	// bufferPool manages reusable byte buffers to reduce allocations on reads
	bufferPool *BufferPool

	closeShutdownOnce sync.Once
}

// BufferPoolConfig contains configuration for the buffer pool
type BufferPoolConfig struct {
	// MaxBufferSize is the maximum size a buffer can grow to before being discarded
	MaxBufferSize int
	// MaxPoolSize is the maximum number of buffers to keep in the pool
	MaxPoolSize int
	// InitialBufferSize is the initial size for new buffers
	InitialBufferSize int
}

// DefaultBufferPoolConfig returns the default buffer pool configuration
func DefaultBufferPoolConfig() BufferPoolConfig {
	return BufferPoolConfig{
		MaxBufferSize:     32 * 1024 * 1024, // 32MB max buffer size
		MaxPoolSize:       100,              // Max 100 buffers in pool
		InitialBufferSize: 64 * 1024,        // 64KB initial size
	}
}

// BufferPool is a pool of bytes.Buffers with size limits and usage counters.
// Limiting buffer size and pool capacity keeps oversized buffers from
// accumulating.
type BufferPool struct {
	pool   sync.Pool
	config BufferPoolConfig

	poolSize              int64
	totalBuffersCreated   int64
	totalBuffersReused    int64
	totalBuffersDiscarded int64

	// mu protects pool replacement during Cleanup
	mu sync.RWMutex
}

// NewBufferPool creates a BufferPool with the default configuration.
func NewBufferPool() *BufferPool {
	return NewBufferPoolWithConfig(DefaultBufferPoolConfig())
}

// NewBufferPoolWithConfig creates a BufferPool with custom limits.
func NewBufferPoolWithConfig(config BufferPoolConfig) *BufferPool {
	bp := &BufferPool{
		config: config,
	}

	bp.pool = sync.Pool{
		New: func() interface{} {
			atomic.AddInt64(&bp.totalBuffersCreated, 1)
			return bytes.NewBuffer(make([]byte, 0, bp.config.InitialBufferSize))
		},
	}

	return bp
}

// Get returns a reset buffer from the pool, allocating one if none is available.
func (bp *BufferPool) Get() *bytes.Buffer {
	buf := bp.pool.Get().(*bytes.Buffer)
	buf.Reset()
	atomic.AddInt64(&bp.totalBuffersReused, 1)
	return buf
}

// Put returns a buffer to the pool for future reuse. Buffers over the size
// limit and buffers beyond pool capacity are discarded.
func (bp *BufferPool) Put(b *bytes.Buffer) {
	if b == nil {
		return
	}

	if b.Cap() > bp.config.MaxBufferSize {
		atomic.AddInt64(&bp.totalBuffersDiscarded, 1)
		return
	}

	bp.mu.RLock()
	currentSize := atomic.LoadInt64(&bp.poolSize)
	bp.mu.RUnlock()

	if currentSize >= int64(bp.config.MaxPoolSize) {
		atomic.AddInt64(&bp.totalBuffersDiscarded, 1)
		return
	}

	b.Reset()
	bp.pool.Put(b)
	atomic.AddInt64(&bp.poolSize, 1)
}

// BufferPoolStats describes buffer pool usage for monitoring and debugging.
type BufferPoolStats struct {
	// CurrentPoolSize is the current number of buffers in the pool
	CurrentPoolSize int64 `json:"currentPoolSize"`
	// TotalBuffersCreated is the total number of buffers created since start
	TotalBuffersCreated int64 `json:"totalBuffersCreated"`
	// TotalBuffersReused is the total number of buffer reuses
	TotalBuffersReused int64 `json:"totalBuffersReused"`
	// TotalBuffersDiscarded is the total number of buffers discarded due to limits
	TotalBuffersDiscarded int64 `json:"totalBuffersDiscarded"`
	// MaxBufferSize is the maximum allowed buffer size
	MaxBufferSize int `json:"maxBufferSize"`
	// MaxPoolSize is the maximum allowed pool size
	MaxPoolSize int `json:"maxPoolSize"`
	// ReuseRatio is the ratio of reused buffers to created buffers
	ReuseRatio float64 `json:"reuseRatio"`
}

// GetStats returns current buffer pool statistics.
func (bp *BufferPool) GetStats() BufferPoolStats {
	bp.mu.RLock()
	defer bp.mu.RUnlock()

	created := atomic.LoadInt64(&bp.totalBuffersCreated)
	reused := atomic.LoadInt64(&bp.totalBuffersReused)
	discarded := atomic.LoadInt64(&bp.totalBuffersDiscarded)
	poolSize := atomic.LoadInt64(&bp.poolSize)

	var reuseRatio float64
	if created > 0 {
		reuseRatio = float64(reused) / float64(created)
	}

	return BufferPoolStats{
		CurrentPoolSize:       poolSize,
		TotalBuffersCreated:   created,
		TotalBuffersReused:    reused,
		TotalBuffersDiscarded: discarded,
		MaxBufferSize:         bp.config.MaxBufferSize,
		MaxPoolSize:           bp.config.MaxPoolSize,
		ReuseRatio:            reuseRatio,
	}
}

// Cleanup releases all pooled buffers. Useful during shutdown or under
// memory pressure.
func (bp *BufferPool) Cleanup() {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	bp.pool = sync.Pool{
		New: func() interface{} {
			atomic.AddInt64(&bp.totalBuffersCreated, 1)
			return bytes.NewBuffer(make([]byte, 0, bp.config.InitialBufferSize))
		},
	}

	atomic.StoreInt64(&bp.poolSize, 0)

	runtime.GC()
}

// NewClient creates and validates a new MinIO client. It establishes the
// connection, validates it, and ensures the configured bucket exists.
//
// Example:
//
//	client, err := minio.NewClient(config)
//	if err != nil {
//	    return fmt.Errorf("failed to initialize MinIO client: %w", err)
//	}
//
//	// Optionally attach logger and observer
//	client = client.
//	    WithLogger(myLogger).
//	    WithObserver(myObserver)
//
//	defer client.GracefulShutdown()
func NewClient(config Config) (*MinioClient, error) {
	client, err := connectToMinio(config)
	if err != nil {
		return nil, err
	}

	minioClient := &MinioClient{
		cfg:             config,
		observer:        nil, // No observer by default
		logger:          nil, // No logger by default
		shutdownSignal:  make(chan struct{}),
		reconnectSignal: make(chan error, 1),
		bufferPool:      NewBufferPool(),
	}
	minioClient.client.Store(client)

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := minioClient.validateConnection(timeoutCtx); err != nil {
		return nil, err
	}
	if err := minioClient.ensureBucketExists(timeoutCtx); err != nil {
		return nil, err
	}

	return minioClient, nil
}

// monitorConnection periodically checks the MinIO connection and signals the
// retry goroutine when the health check fails. Runs until the shutdown signal
// or context cancellation.
func (m *MinioClient) monitorConnection(ctx context.Context) {
	ticker := time.NewTicker(connectionHealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := m.validateConnection(checkCtx)
			cancel()

			if err != nil {
				m.logError(ctx, "MinIO connection health check failed", map[string]interface{}{
					"endpoint": m.cfg.Connection.Endpoint,
					"error":    err.Error(),
				})

				select {
				case m.reconnectSignal <- err: // Non-blocking send
				default: // Channel already has a pending reconnect signal
				}
			}

		case <-m.shutdownSignal:
			return

		case <-ctx.Done():
			return
		}
	}
}

// retryConnection reestablishes the connection when the monitor reports
// issues. Runs until the shutdown signal or context cancellation.
func (m *MinioClient) retryConnection(ctx context.Context) {
outerLoop:
	for {
		select {
		case <-m.shutdownSignal:
			m.logInfo(ctx, "Stopping MinIO connection retry loop due to shutdown signal", nil)
			return

		case <-ctx.Done():
			m.logInfo(ctx, "Stopping MinIO connection retry loop due to context cancellation", nil)
			return

		case err, ok := <-m.reconnectSignal:
			if !ok {
				return
			}
			m.logWarn(ctx, "MinIO connection issue detected, attempting reconnection", map[string]interface{}{
				"endpoint": m.cfg.Connection.Endpoint,
				"error":    err.Error(),
			})

		reconnectLoop:
			for {
				select {
				case <-m.shutdownSignal:
					return

				case <-ctx.Done():
					return

				default:
					ctxReconnect, cancel := context.WithTimeout(context.Background(), 10*time.Second)

					newClient, err := connectToMinio(m.cfg)
					if err != nil {
						cancel()
						m.logError(ctx, "MinIO reconnection failed", map[string]interface{}{
							"endpoint":      m.cfg.Connection.Endpoint,
							"will_retry_in": "1s",
							"error":         err.Error(),
						})
						time.Sleep(time.Second)
						continue reconnectLoop
					}

					// Validate the new connection before swapping pointers.
					// Bucket-scoped validation avoids requiring ListAllMyBuckets permissions.
					if bucket := m.cfg.Connection.BucketName; bucket != "" {
						_, err = newClient.BucketExists(ctxReconnect, bucket)
					} else {
						_, err = newClient.ListBuckets(ctxReconnect)
					}
					if err != nil {
						cancel()
						m.logError(ctx, "MinIO connection validation failed", map[string]interface{}{
							"error": err.Error(),
						})
						time.Sleep(time.Second)
						continue reconnectLoop
					}

					oldClient := m.client.Load()
					m.client.Store(newClient)

					// Verify bucket existence after reconnection
					err = m.ensureBucketExists(ctxReconnect)
					cancel()

					if err != nil {
						// Revert to the previous client to avoid leaving
						// the instance in a broken state.
						m.client.Store(oldClient)
						m.logError(ctx, "Failed to verify bucket after reconnection", map[string]interface{}{
							"error": err.Error(),
						})
						time.Sleep(time.Second)
						continue reconnectLoop
					}

					m.logInfo(ctx, "Successfully reconnected to MinIO", map[string]interface{}{
						"endpoint": m.cfg.Connection.Endpoint,
						"bucket":   m.cfg.Connection.BucketName,
					})
					continue outerLoop
				}
			}
		}
	}
}

// connectToMinio creates a new MinIO client from the connection settings.
func connectToMinio(cfg Config) (*minio.Client, error) {
	if cfg.Connection.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint cannot be empty")
	}

	client, err := minio.New(cfg.Connection.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Connection.AccessKeyID, cfg.Connection.SecretAccessKey, ""),
		Secure: cfg.Connection.UseSSL,
		Region: cfg.Connection.Region,
	})

	if err != nil {
		return nil, err
	}
	return client, nil
}

// validateConnection performs a simple operation to validate connectivity.
func (m *MinioClient) validateConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	c := m.client.Load()
	if c == nil {
		return ErrConnectionFailed
	}

	// Prefer bucket-scoped validation so credentials do not need ListAllMyBuckets.
	if bucket := m.cfg.Connection.BucketName; bucket != "" {
		_, err := c.BucketExists(ctx, bucket)
		return err
	}

	// Fallback: if no bucket configured, validate by listing buckets.
	_, err := c.ListBuckets(ctx)
	return err
}

// ensureBucketExists checks if the configured bucket exists and creates it
// when bucket creation is allowed.
func (m *MinioClient) ensureBucketExists(ctx context.Context) error {
	bucketName := m.cfg.Connection.BucketName
	if bucketName == "" {
		return fmt.Errorf("bucket name is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	c := m.client.Load()
	if c == nil {
		return ErrConnectionFailed
	}

	exists, err := c.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists, bucket: %v, err: %w", bucketName, err)
	}

	if !exists && m.cfg.Connection.AccessBucketCreation {
		m.logInfo(ctx, "Bucket does not exist, creating it", map[string]interface{}{
			"bucket": bucketName,
			"region": m.cfg.Connection.Region,
		})

		err = c.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{
			Region: m.cfg.Connection.Region,
		})

		if err != nil {
			return err
		}

		m.logInfo(ctx, "Successfully created bucket", map[string]interface{}{
			"bucket": bucketName,
		})
	} else if !exists {
		return fmt.Errorf("bucket does not exist, please create it manually")
	}

	return nil
}

// objectKey applies the configured key prefix.
func (m *MinioClient) objectKey(key string) string {
	if m.cfg.KeyPrefix == "" {
		return key
	}
	return strings.TrimSuffix(m.cfg.KeyPrefix, "/") + "/" + strings.TrimPrefix(key, "/")
}

// trimObjectKey strips the configured key prefix from a stored key, so List
// returns keys in the same form callers pass to Get.
func (m *MinioClient) trimObjectKey(key string) string {
	if m.cfg.KeyPrefix == "" {
		return key
	}
	return strings.TrimPrefix(key, strings.TrimSuffix(m.cfg.KeyPrefix, "/")+"/")
}

// GetBufferPoolStats returns buffer pool statistics for monitoring buffer
// efficiency.
func (m *MinioClient) GetBufferPoolStats() BufferPoolStats {
	if m.bufferPool == nil {
		return BufferPoolStats{}
	}
	return m.bufferPool.GetStats()
}

// CleanupResources releases pooled buffers and forces garbage collection.
func (m *MinioClient) CleanupResources() {
	if m.bufferPool != nil {
		m.bufferPool.Cleanup()
	}

	runtime.GC()
}

// GracefulShutdown stops the connection monitor goroutines and releases
// pooled resources. Safe to call more than once.
func (m *MinioClient) GracefulShutdown() {
	m.closeShutdownOnce.Do(func() {
		close(m.shutdownSignal)
	})
	m.CleanupResources()
}

// WithObserver attaches an observer for operation tracking and returns the
// client for chaining. When using FX the observer is injected via
// NewClientWithDI instead.
func (m *MinioClient) WithObserver(observer observability.Observer) *MinioClient {
	m.observer = observer
	return m
}

// WithLogger attaches a logger for lifecycle and connection-monitor events
// and returns the client for chaining. When using FX the logger is injected
// via NewClientWithDI instead.
func (m *MinioClient) WithLogger(logger Logger) *MinioClient {
	m.logger = logger
	return m
}

// logInfo logs an informational message using the configured logger if available.
func (m *MinioClient) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.InfoWithContext(ctx, msg, nil, fields)
	}
	// Silently skip if no logger configured
}

// logWarn logs a warning message using the configured logger if available.
func (m *MinioClient) logWarn(ctx context.Context, msg string, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.WarnWithContext(ctx, msg, nil, fields)
	}
	// Silently skip if no logger configured
}

// logError logs an error message using the configured logger if available.
// Only used for errors in background goroutines that can't be returned.
func (m *MinioClient) logError(ctx context.Context, msg string, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.ErrorWithContext(ctx, msg, nil, fields)
	}
	// Silently skip if no logger configured
}
