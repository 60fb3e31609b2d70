package postgres

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	// healthCheckInterval is how often MonitorConnection pings the database.
	healthCheckInterval = 10 * time.Second

	// healthCheckTimeout bounds a single ping.
	healthCheckTimeout = 5 * time.Second

	// reconnectBackoff is the pause between failed reconnection attempts.
	reconnectBackoff = time.Second
)

// Default pool parameters applied when ConnectionDetails is left zero.
const (
	defaultMaxOpenConns    = 50
	defaultMaxIdleConns    = 25
	defaultConnMaxLifetime = time.Minute
)

// Postgres wraps gorm.DB with connection monitoring, automatic reconnection,
// and the standardized operations of the Client interface.
//
// Concurrency: the active *gorm.DB is held in an atomic pointer so it can be
// swapped during reconnection without blocking in-flight operations. Readers
// always snapshot the pointer; they never observe a half-replaced connection.
type Postgres struct {
	cfg             Config
	client          atomic.Pointer[gorm.DB]
	shutdownSignal  chan struct{}
	retryChanSignal chan error

	closeRetryChanOnce sync.Once
	closeShutdownOnce  sync.Once
}

// NewPostgres connects to PostgreSQL and returns a ready Postgres instance.
// The initial connection is mandatory: if it cannot be established the
// constructor fails instead of handing back a client that cannot serve.
//
// Returns the concrete type; use the Client interface (or the fx module)
// when you want to depend on an abstraction.
func NewPostgres(cfg Config) (*Postgres, error) {
	conn, err := connectToPostgres(cfg)
	if err != nil {
		return nil, fmt.Errorf("error in connecting to postgres after all retries: %w", err)
	}

	pg := &Postgres{
		cfg:             cfg,
		shutdownSignal:  make(chan struct{}),
		retryChanSignal: make(chan error, 1),
	}
	pg.client.Store(conn)
	return pg, nil
}

// connectToPostgres opens a GORM connection from the configuration and
// applies the pool parameters. GORM's error translation is enabled so that
// driver-level constraint violations surface as gorm.Err* values.
func connectToPostgres(cfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Connection.Host,
		cfg.Connection.Port,
		cfg.Connection.User,
		cfg.Connection.Password,
		cfg.Connection.DbName,
		cfg.Connection.SSLMode)

	database, err := gorm.Open(
		postgres.Open(dsn),
		&gorm.Config{
			TranslateError: true,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get PostgreSQL database instance: %w", err)
	}

	maxOpen := cfg.ConnectionDetails.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = defaultMaxOpenConns
	}
	maxIdle := cfg.ConnectionDetails.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = defaultMaxIdleConns
	}
	maxLifetime := cfg.ConnectionDetails.ConnMaxLifetime
	if maxLifetime == 0 {
		maxLifetime = defaultConnMaxLifetime
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(maxLifetime)

	log.Println("INFO: Successfully connected to PostgreSQL database")

	return database, nil
}

// RetryConnection re-establishes the database connection whenever a failure
// is reported on the retry channel. It runs as a goroutine, usually started
// by the fx lifecycle. The outer loop waits for failure signals; the inner
// loop retries until a connection succeeds, then swaps it into the atomic
// pointer for all subsequent operations.
func (p *Postgres) RetryConnection(ctx context.Context) {
outerLoop:
	for {
		select {
		case <-p.shutdownSignal:
			log.Println("INFO: Stopping RetryConnection loop due to shutdown signal")
			return
		case <-ctx.Done():
			return
		case <-p.retryChanSignal:
		innerLoop:
			for {
				select {
				case <-p.shutdownSignal:
					return
				case <-ctx.Done():
					return
				default:
					newConn, err := connectToPostgres(p.cfg)
					if err != nil {
						log.Printf("ERROR: PostgreSQL reconnection failed: %v", err)
						time.Sleep(reconnectBackoff)
						continue innerLoop
					}
					p.client.Store(newConn)
					log.Println("INFO: Successfully reconnected to PostgreSQL database")
					continue outerLoop
				}
			}
		}
	}
}

// MonitorConnection periodically pings the database and notifies the
// RetryConnection goroutine when the connection looks dead. The send on the
// retry channel is non-blocking: one pending failure is enough.
func (p *Postgres) MonitorConnection(ctx context.Context) {
	defer p.closeRetryChanOnce.Do(func() {
		close(p.retryChanSignal)
	})

	ticker := time.NewTicker(healthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.shutdownSignal:
			log.Println("INFO: Stopping MonitorConnection loop due to shutdown signal")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.healthCheck(); err != nil {
				select {
				case p.retryChanSignal <- err:
				default:
				}
			}
		}
	}
}

// healthCheck snapshots the current connection and pings it with a bounded
// timeout. No lock is held while pinging.
func (p *Postgres) healthCheck() error {
	dbConn := p.DB()
	if dbConn == nil {
		return fmt.Errorf("database client is not initialized")
	}

	sqlDB, err := dbConn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance during health check: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed during health check: %w", err)
	}

	return nil
}

// GracefulShutdown stops the monitoring goroutines and closes the underlying
// connection pool. Safe to call more than once; the fx lifecycle calls it on
// application stop.
func (p *Postgres) GracefulShutdown() error {
	p.closeShutdownOnce.Do(func() {
		close(p.shutdownSignal)
	})

	p.closeRetryChanOnce.Do(func() {
		close(p.retryChanSignal)
	})

	dbConn := p.DB()
	if dbConn == nil {
		return nil
	}

	sqlDB, err := dbConn.DB()
	if err != nil {
		return nil
	}

	return sqlDB.Close()
}
