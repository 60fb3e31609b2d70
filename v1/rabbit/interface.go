package rabbit

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Client is the high-level interface for relaying messages through
// RabbitMQ. It abstracts connection management, topology setup and
// publish/consume operations.
//
// Implemented by *RabbitClient. The generic page helpers PublishPage
// and DecodePage build on this interface.
type Client interface {
	// Publisher operations

	// Publish sends a message to the configured exchange under the
	// configured routing key, with optional AMQP headers.
	Publish(ctx context.Context, msg []byte, headers ...map[string]interface{}) error

	// Consumer operations

	// Consume starts consuming from the configured queue. The returned
	// channel closes when ctx is canceled or the client shuts down.
	Consume(ctx context.Context, wg *sync.WaitGroup) <-chan Message

	// ConsumeQueue starts consuming from the named queue, typically one
	// declared earlier with DeclareQueue.
	ConsumeQueue(ctx context.Context, wg *sync.WaitGroup, queueName string) <-chan Message

	// ConsumeDLQ starts consuming from the configured dead-letter queue.
	ConsumeDLQ(ctx context.Context, wg *sync.WaitGroup) <-chan Message

	// Topology

	// DeclareQueue declares a durable queue and binds it to the
	// configured exchange under routingKey.
	DeclareQueue(queueName, routingKey string) error

	// Connection management

	// RetryConnection watches the connection and reconnects on failure.
	// Run it in a goroutine; it exits on shutdown.
	RetryConnection(cfg Config)

	// Error translation

	// TranslateError converts AMQP and transport errors into the
	// package's standardized errors.
	TranslateError(err error) error

	// GetErrorCategory classifies an error by the kind of failure.
	GetErrorCategory(err error) ErrorCategory

	// IsRetryableError reports whether the operation can be retried.
	IsRetryableError(err error) bool

	// IsPermanentError reports whether retrying is pointless without a
	// config or topology change.
	IsPermanentError(err error) bool

	// IsConnectionError reports whether the reconnection loop will
	// repair the failure.
	IsConnectionError(err error) bool

	// Lifecycle

	// GracefulShutdown closes the channel and connection cleanly and
	// stops all background loops.
	GracefulShutdown()

	// GetChannel returns the underlying AMQP channel for operations the
	// interface does not cover.
	GetChannel() *amqp.Channel
}

// Message is one consumed delivery. It exposes the payload and the
// acknowledgment decision; every message must be acked or nacked.
type Message interface {
	// AckMsg acknowledges the message, removing it from the queue.
	AckMsg() error

	// NackMsg rejects the message. With requeue it is redelivered,
	// without it is discarded or dead-lettered.
	NackMsg(requeue bool) error

	// Body returns the message payload.
	Body() []byte

	// Header returns the AMQP headers the message was published with.
	Header() map[string]interface{}
}

var _ Client = (*RabbitClient)(nil)
var _ Message = (*ConsumerMessage)(nil)
