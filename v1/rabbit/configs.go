package rabbit

import "context"

// Config is the top-level configuration for the RabbitMQ client. It
// covers the broker connection, the channel topology (exchange, queue,
// binding) and optional dead-letter handling for pages that could not
// be processed.
type Config struct {
	// Connection contains the settings needed to reach the RabbitMQ server.
	Connection Connection

	// Channel configures the exchange, queue and routing used for
	// publishing and consuming.
	Channel Channel

	// DeadLetter configures the dead-letter exchange and queue used for
	// messages that are rejected or expire.
	DeadLetter DeadLetter
}

// Connection contains the parameters needed to establish a connection
// to a RabbitMQ server, including authentication and TLS settings.
type Connection struct {
	// Host is the RabbitMQ server hostname or IP address.
	Host string

	// Port is the RabbitMQ server port (typically 5672 plain, 5671 TLS).
	Port uint

	// User is the RabbitMQ username.
	User string

	// Password is the RabbitMQ password.
	Password string

	// IsSSLEnabled switches the connection to the amqps protocol.
	IsSSLEnabled bool

	// UseCert enables mutual TLS: the client certificate below is
	// presented to the server. Requires IsSSLEnabled.
	UseCert bool

	// CACertPath is the file path to the CA certificate used to verify
	// the server when UseCert is set.
	CACertPath string

	// ClientCertPath is the file path to the client certificate.
	ClientCertPath string

	// ClientKeyPath is the file path to the client certificate's key.
	ClientKeyPath string

	// ServerName is the name checked against the server certificate.
	// It must match a CN or SAN in that certificate.
	ServerName string
}

// Channel configures the AMQP channel topology: which exchange to
// publish to, which queue to consume from, and how they are bound.
type Channel struct {
	// ExchangeName is the exchange to publish to or bind queues against.
	ExchangeName string

	// ExchangeType defines the exchange routing behavior.
	// Common values: "direct", "fanout", "topic", "headers".
	ExchangeType string

	// RoutingKey routes messages from the exchange to bound queues. Its
	// meaning depends on the exchange type; fanout exchanges ignore it.
	RoutingKey string

	// QueueName is the queue declared and consumed from when IsConsumer
	// is set.
	QueueName string

	// DelayToReconnect is the pause between reconnection attempts in
	// milliseconds. Zero means one second.
	DelayToReconnect int

	// PrefetchCount caps the number of unacknowledged deliveries per
	// consumer. Zero means no limit.
	PrefetchCount int

	// IsConsumer controls whether this client declares the exchange,
	// queue and binding at connect time. Publishers that rely on
	// existing topology leave it false.
	IsConsumer bool

	// ContentType is the MIME type stamped on published messages.
	// Binary page relays use "application/octet-stream".
	ContentType string
}

// DeadLetter configures dead-letter handling. Messages that are
// rejected without requeue, or that outlive the TTL, are rerouted to
// the dead-letter exchange and land on its queue for inspection.
type DeadLetter struct {
	// ExchangeName is the dead-letter exchange. Empty disables
	// dead-lettering.
	ExchangeName string

	// QueueName is the queue bound to the dead-letter exchange.
	QueueName string

	// RoutingKey is the key used when dead-lettering. It may differ
	// from the original routing key.
	RoutingKey string

	// Ttl is the time-to-live of messages on the main queue in seconds.
	// Messages older than this are dead-lettered. Zero disables the TTL
	// and with it the dead-letter setup.
	Ttl int
}

// Logger matches the v1/logger client so that one can be attached
// directly. Only background and lifecycle events are logged; errors
// returned to the caller are not.
type Logger interface {
	// InfoWithContext logs an informational message with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error message with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
