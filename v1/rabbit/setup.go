package rabbit

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Aleph-Alpha/searchkit/v1/observability"
)

// RabbitClient is a RabbitMQ client for relaying binary result pages
// between services. It manages the connection and channel, reconnects
// automatically when the broker drops, and exposes publish and consume
// operations on the configured topology.
type RabbitClient struct {
	// cfg stores the configuration for this client
	cfg Config

	// Channel is the active AMQP channel used for publishing and
	// consuming. It is exposed for direct AMQP operations; prefer
	// GetChannel while the reconnection loop is running.
	Channel *amqp.Channel

	// conn is the underlying AMQP connection to the RabbitMQ server
	conn *amqp.Connection

	// logger receives lifecycle and background-loop events when set
	logger Logger

	// observer receives one OperationContext per publish and consume
	observer observability.Observer

	// mu guards conn and Channel across reconnection swaps
	mu sync.RWMutex

	// shutdownSignal is closed when the client is shutting down
	shutdownSignal chan struct{}

	closeShutdownOnce sync.Once
}

// NewClient connects to RabbitMQ with the provided configuration and
// sets up the channel topology. The returned client publishes and
// consumes on the configured exchange and queue; run RetryConnection in
// a goroutine (or use the FX module) to keep the connection alive.
//
// Example:
//
//	client, err := rabbit.NewClient(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.GracefulShutdown()
func NewClient(config Config) (*RabbitClient, error) {
	con, err := newConnection(config)
	if err != nil {
		log.Printf("ERROR: error in connecting to rabbit: %v", err)
		return nil, err
	}

	ch, err := connectToChannel(con, config)
	if ch == nil || err != nil {
		log.Printf("ERROR: error in declaring channel: %v", err)
		return nil, err
	}

	return &RabbitClient{
		cfg:            config,
		conn:           con,
		Channel:        ch,
		shutdownSignal: make(chan struct{}),
	}, nil
}

// connectToChannel opens a channel on the connection and sets up the
// configured topology. Publishers get a bare channel with publisher
// confirms enabled; consumers additionally get the exchange, queue and
// binding declared, plus the dead-letter topology when configured.
func connectToChannel(rb *amqp.Connection, cfg Config) (*amqp.Channel, error) {
	ch, err := rb.Channel()
	if err != nil {
		log.Printf("ERROR: error in creating channel: %v", err)
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	if err = ch.Confirm(false); err != nil {
		log.Printf("ERROR: error in enabling publisher confirms: %v", err)
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	if !cfg.Channel.IsConsumer {
		return ch, nil
	}

	err = ch.ExchangeDeclare(
		cfg.Channel.ExchangeName,
		cfg.Channel.ExchangeType,
		true,  // Durable
		false, // AutoDelete
		false, // Internal
		false, // NoWait
		nil,   // Arguments
	)
	if err != nil {
		log.Printf("ERROR: error in declaring exchange: %v", err)
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	// Dead-letter topology first, so the main queue can reference it.
	queueArgs := amqp.Table{}
	if cfg.DeadLetter.ExchangeName != "" && cfg.DeadLetter.Ttl > 0 {
		err = ch.ExchangeDeclare(
			cfg.DeadLetter.ExchangeName,
			"direct",
			true,  // Durable
			false, // AutoDelete
			false, // Internal
			false, // NoWait
			nil,   // Arguments
		)
		if err != nil {
			log.Printf("ERROR: error in declaring dead letter exchange: %v", err)
			return nil, fmt.Errorf("failed to declare dead letter exchange: %w", err)
		}

		_, err = ch.QueueDeclare(
			cfg.DeadLetter.QueueName,
			true,  // Durable
			false, // AutoDelete
			false, // Exclusive
			false, // NoWait
			nil,   // Arguments
		)
		if err != nil {
			log.Printf("ERROR: error in declaring dead letter queue: %v", err)
			return nil, fmt.Errorf("failed to declare dead letter queue: %w", err)
		}

		err = ch.QueueBind(
			cfg.DeadLetter.QueueName,
			cfg.DeadLetter.RoutingKey,
			cfg.DeadLetter.ExchangeName,
			false, // NoWait
			nil,   // Arguments
		)
		if err != nil {
			log.Printf("ERROR: error in binding dead letter queue: %v", err)
			return nil, fmt.Errorf("failed to bind dead letter queue: %w", err)
		}

		queueArgs = amqp.Table{
			"x-dead-letter-exchange":    cfg.DeadLetter.ExchangeName,
			"x-dead-letter-routing-key": cfg.DeadLetter.RoutingKey,
			"x-message-ttl":             cfg.DeadLetter.Ttl * 1000, // seconds to milliseconds
		}
	}

	_, err = ch.QueueDeclare(
		cfg.Channel.QueueName,
		true,      // Durable
		false,     // AutoDelete
		false,     // Exclusive
		false,     // NoWait
		queueArgs, // Arguments including dead letter config
	)
	if err != nil {
		log.Printf("ERROR: error in declaring queue: %v", err)
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = ch.QueueBind(
		cfg.Channel.QueueName,
		cfg.Channel.RoutingKey,
		cfg.Channel.ExchangeName,
		false, // NoWait
		nil,   // Arguments
	)
	if err != nil {
		log.Printf("ERROR: error in binding queue: %v", err)
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	if cfg.Channel.PrefetchCount > 0 {
		err = ch.Qos(cfg.Channel.PrefetchCount, 0, false)
		if err != nil {
			log.Printf("ERROR: error in setting QoS: %v", err)
			return nil, fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	return ch, nil
}

// DeclareQueue declares a durable queue and binds it to the configured
// exchange under routingKey. Use it to add relay queues beyond the one
// declared at connect time, for example one queue per page stream.
// Requires a named exchange in the configuration; the default exchange
// cannot be bound to.
func (rb *RabbitClient) DeclareQueue(queueName, routingKey string) error {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	if _, err := rb.Channel.QueueDeclare(
		queueName,
		true,  // Durable
		false, // AutoDelete
		false, // Exclusive
		false, // NoWait
		nil,   // Arguments
	); err != nil {
		return fmt.Errorf("failed to declare queue %q: %w", queueName, err)
	}

	if err := rb.Channel.QueueBind(
		queueName,
		routingKey,
		rb.cfg.Channel.ExchangeName,
		false, // NoWait
		nil,   // Arguments
	); err != nil {
		return fmt.Errorf("failed to bind queue %q: %w", queueName, err)
	}

	return nil
}

// RetryConnection watches the connection and re-establishes it when it
// drops, swapping in a fresh connection and channel under the lock.
// Run it in a goroutine; it exits when GracefulShutdown closes the
// shutdown signal, and closes the signal itself if it ever returns
// early so consumers stop too.
func (rb *RabbitClient) RetryConnection(cfg Config) {
	defer rb.closeShutdownOnce.Do(func() {
		close(rb.shutdownSignal)
	})

	delay := time.Duration(cfg.Channel.DelayToReconnect) * time.Millisecond
	if delay <= 0 {
		delay = time.Second
	}

outerLoop:
	for {
		rb.mu.RLock()
		conn := rb.conn
		rb.mu.RUnlock()

		errChan := make(chan *amqp.Error, 1)
		conn.NotifyClose(errChan)

		select {
		case <-rb.shutdownSignal:
			rb.logInfo(context.Background(), "Stopping RetryConnection loop due to shutdown signal", nil)
			return

		case err := <-errChan:
			fields := map[string]interface{}{}
			if err != nil {
				fields["error"] = err.Error()
			}
			rb.logWarn(context.Background(), "RabbitMQ connection closed, retrying...", fields)

		reconnectLoop:
			for {
				select {
				case <-rb.shutdownSignal:
					rb.logInfo(context.Background(), "Stopping RetryConnection loop due to shutdown signal", nil)
					return
				default:
					newConn, err := newConnection(cfg)
					if err != nil {
						rb.logError(context.Background(), "RabbitMQ reconnection failed", map[string]interface{}{
							"error": err.Error(),
						})
						time.Sleep(delay)
						continue reconnectLoop
					}

					rb.mu.Lock()
					rb.conn = newConn
					if rb.Channel != nil {
						_ = rb.Channel.Close()
					}
					rb.Channel, err = connectToChannel(newConn, cfg)
					rb.mu.Unlock()

					if err != nil {
						rb.logError(context.Background(), "Failed to re-establish RabbitMQ channel", map[string]interface{}{
							"error": err.Error(),
						})
						time.Sleep(delay)
						continue reconnectLoop
					}

					rb.logInfo(context.Background(), "Successfully reconnected to RabbitMQ", nil)
					continue outerLoop
				}
			}
		}
	}
}

// newConnection dials the RabbitMQ server. Three modes are supported:
// plain AMQP, TLS with server verification only, and mutual TLS with a
// client certificate. All modes use a 2-second heartbeat so a dead
// connection is noticed within a few seconds.
func newConnection(cfg Config) (*amqp.Connection, error) {
	scheme := "amqp"
	if cfg.Connection.IsSSLEnabled {
		scheme = "amqps"
	}
	hostURL := fmt.Sprintf("%s://%v:%v@%v:%v", scheme,
		cfg.Connection.User, cfg.Connection.Password,
		cfg.Connection.Host, cfg.Connection.Port)

	amqpCfg := amqp.Config{Heartbeat: 2 * time.Second}

	if cfg.Connection.IsSSLEnabled && cfg.Connection.UseCert {
		caCert, err := os.ReadFile(cfg.Connection.CACertPath)
		if err != nil {
			log.Printf("ERROR: failed to read CA cert: %v", err)
			return nil, err
		}
		caCertPool := x509.NewCertPool()
		caCertPool.AppendCertsFromPEM(caCert)

		cert, err := tls.LoadX509KeyPair(cfg.Connection.ClientCertPath, cfg.Connection.ClientKeyPath)
		if err != nil {
			log.Printf("ERROR: failed to load client cert: %v", err)
			return nil, err
		}

		amqpCfg.TLSClientConfig = &tls.Config{
			RootCAs:      caCertPool,
			Certificates: []tls.Certificate{cert},
			ServerName:   cfg.Connection.ServerName,
		}
	}

	conn, err := amqp.DialConfig(hostURL, amqpCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Rabbit: %w", err)
	}

	log.Println("INFO: Connected to Rabbit")
	return conn, nil
}
