package rabbit

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/searchkit/v1/observability"
)

// FXModule registers the RabbitMQ client with the fx dependency
// injection framework.
//
// The module provides:
//  1. *RabbitClient (concrete type) for direct use
//  2. Client interface for dependency injection
//  3. Lifecycle management for the reconnection loop and shutdown
//
// Usage:
//
//	app := fx.New(
//	    rabbit.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("rabbit",
	fx.Provide(
		NewClientWithDI, // Provides *RabbitClient
		// Also provide the Client interface
		fx.Annotate(
			func(r *RabbitClient) Client { return r },
			fx.As(new(Client)),
		),
	),
	fx.Invoke(RegisterRabbitLifecycle),
)

// RabbitParams groups the dependencies needed to create the client.
// Logger and Observer are optional; when absent the client logs
// through the standard logger and skips operation observation.
type RabbitParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI creates the RabbitMQ client for the fx container and
// attaches the optional logger and observer when the graph provides
// them.
//
// Example usage with fx:
//
//	app := fx.New(
//	    rabbit.FXModule,
//	    logger.FXModule, // Optional: provides the logger
//	    fx.Provide(
//	        func() rabbit.Config {
//	            return loadRabbitConfig()
//	        },
//	        func(metrics *metrics.Client) observability.Observer {
//	            return &MyObserver{metrics: metrics} // Optional observer
//	        },
//	    ),
//	)
func NewClientWithDI(params RabbitParams) (*RabbitClient, error) {
	client, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}

	if params.Logger != nil {
		client = client.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		client = client.WithObserver(params.Observer)
	}

	return client, nil
}

// RabbitLifecycleParams groups the dependencies for lifecycle
// management.
type RabbitLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *RabbitClient
	Config    Config
}

// RegisterRabbitLifecycle ties the client to the fx lifecycle: on
// start it launches the reconnection loop, on stop it shuts the client
// down and waits for the loop to exit. The loop is bound to the
// client's shutdown signal rather than the start context, which fx
// cancels once startup completes.
func RegisterRabbitLifecycle(params RabbitLifecycleParams) {
	wg := &sync.WaitGroup{}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			wg.Add(1)

			go func(cfg Config) {
				defer wg.Done()
				params.Client.RetryConnection(cfg)
			}(params.Config)

			return nil
		},
		OnStop: func(ctx context.Context) error {
			params.Client.GracefulShutdown()
			wg.Wait()
			return nil
		},
	})
}

// GracefulShutdown closes the channel and connection cleanly. It first
// signals all background loops and consumers to stop, then closes the
// AMQP resources under the lock. Close errors are logged, not
// returned; nothing can act on them this late.
func (rb *RabbitClient) GracefulShutdown() {
	rb.closeShutdownOnce.Do(func() {
		if rb.shutdownSignal != nil {
			close(rb.shutdownSignal)
		}
	})

	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.logInfo(context.Background(), "Shutting down RabbitMQ client", nil)

	if rb.Channel != nil {
		if err := rb.Channel.Close(); err != nil {
			rb.logWarn(context.Background(), "Failed to close rabbit channel", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	if rb.conn != nil && !rb.conn.IsClosed() {
		if err := rb.conn.Close(); err != nil {
			rb.logWarn(context.Background(), "Failed to close rabbit connection", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

// GetChannel returns the underlying AMQP channel for direct operations
// the Client interface does not cover.
func (rb *RabbitClient) GetChannel() *amqp.Channel {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.Channel
}
