package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Aleph-Alpha/searchkit/v1/schema_registry"
)

// Default values applied by NewClient for settings left at their zero
// value.
const (
	// DefaultMinBytes is the minimum batch size the consumer waits for.
	// One byte keeps page delivery latency low on quiet topics.
	DefaultMinBytes = 1

	// DefaultMaxBytes is the maximum batch size the consumer accepts.
	DefaultMaxBytes = 10 << 20

	// DefaultMaxWait caps how long the consumer waits for MinBytes.
	DefaultMaxWait = 500 * time.Millisecond

	// DefaultCommitInterval is the flush interval used when auto-commit
	// is enabled.
	DefaultCommitInterval = time.Second

	// DefaultStartOffset makes new consumer groups start from the oldest
	// retained message.
	DefaultStartOffset = kafka.FirstOffset

	// DefaultPartition means no fixed partition assignment; use a
	// consumer group or partition zero instead.
	DefaultPartition = -1

	// DefaultRequiredAcks waits for all in-sync replicas before a
	// produce call returns. Pages are not cheap to recompute, so the
	// default favors durability over latency.
	DefaultRequiredAcks = -1

	// DefaultBatchSize is the number of messages buffered per partition
	// in async mode.
	DefaultBatchSize = 100

	// DefaultBatchTimeout flushes incomplete async batches.
	DefaultBatchTimeout = time.Second

	// DefaultMaxAttempts is how often a produce is retried before the
	// error is returned.
	DefaultMaxAttempts = 10

	// DefaultWriteTimeout bounds a single produce round trip.
	DefaultWriteTimeout = 10 * time.Second
)

// Config is the top-level configuration for the Kafka client. A client
// is either a producer or a consumer for a single topic; services that
// need both sides create two clients.
type Config struct {
	// Brokers lists the bootstrap broker addresses, host:port.
	Brokers []string

	// Topic is the topic written to or read from.
	Topic string

	// GroupID assigns the consumer to a consumer group. Empty means the
	// reader consumes a single partition without group coordination.
	GroupID string

	// IsConsumer selects the consumer side. When false the client holds
	// a writer, when true a reader.
	IsConsumer bool

	// DataType selects the default serializer pair: "json" (also the
	// empty value) or "bytes". Page topics install their serializers
	// explicitly via SetSerializer and SetDeserializer instead.
	DataType string

	// MinBytes is the minimum batch size the reader waits for.
	MinBytes int

	// MaxBytes is the maximum batch size the reader accepts. Must hold
	// the largest page published to the topic.
	MaxBytes int

	// MaxWait caps how long the reader waits for MinBytes to accumulate.
	MaxWait time.Duration

	// EnableAutoCommit makes the reader flush offsets on an interval
	// instead of synchronously on every CommitMsg.
	EnableAutoCommit bool

	// CommitInterval is the offset flush interval when EnableAutoCommit
	// is set.
	CommitInterval time.Duration

	// StartOffset is where a new consumer group starts when no committed
	// offset exists: kafka.FirstOffset or kafka.LastOffset.
	StartOffset int64

	// Partition pins a group-less reader to one partition. Leave zero
	// (or -1) for the default assignment. Cannot be combined with
	// GroupID.
	Partition int

	// RequiredAcks is the number of replica acknowledgments a produce
	// waits for: 0 none, 1 leader, -1 all.
	RequiredAcks int

	// Async makes produce calls return before the broker acknowledges,
	// batching messages by BatchSize and BatchTimeout. Errors surface
	// through the error logger only.
	Async bool

	// BatchSize is the async batch size.
	BatchSize int

	// BatchTimeout flushes incomplete async batches.
	BatchTimeout time.Duration

	// MaxAttempts is the produce retry limit.
	MaxAttempts int

	// WriteTimeout bounds a single produce round trip.
	WriteTimeout time.Duration

	// CompressionCodec compresses produced batches: "gzip", "snappy",
	// "lz4" or "zstd". Empty disables compression.
	CompressionCodec string

	// TLS configures transport encryption towards the brokers.
	TLS TLSConfig

	// SASL configures broker authentication.
	SASL SASLConfig

	// Registry enables schema-registry framing: produced bodies are
	// prefixed with the Confluent wire header carrying the schema ID,
	// and Decode strips and verifies it. Nil disables framing.
	Registry schema_registry.Registry

	// SchemaSubject is the registry subject the schema is registered
	// under, conventionally "<topic>-value". Required with Registry.
	SchemaSubject string

	// Schema is the schema text registered under SchemaSubject. Page
	// topics use schema_registry.PageSchema. Required with Registry.
	Schema string

	// SchemaType is the registry schema type: "AVRO" (the registry
	// default), "JSON" or "PROTOBUF".
	SchemaType string

	// Logger receives internal driver errors and lifecycle events. When
	// nil the standard log package is used.
	Logger Logger

	// ErrorLogger is a plain printf-style fallback for driver errors,
	// consulted only when Logger is nil.
	ErrorLogger func(msg string, args ...interface{})
}

// TLSConfig configures transport encryption for the broker
// connections.
type TLSConfig struct {
	// Enabled switches the dialer to TLS.
	Enabled bool

	// CACertPath is the file path to the CA certificate used to verify
	// the brokers.
	CACertPath string

	// ClientCertPath is the file path to the client certificate for
	// mutual TLS.
	ClientCertPath string

	// ClientKeyPath is the file path to the client certificate's key.
	ClientKeyPath string

	// InsecureSkipVerify disables server certificate verification.
	InsecureSkipVerify bool
}

// SASLConfig configures broker authentication.
type SASLConfig struct {
	// Enabled turns SASL authentication on.
	Enabled bool

	// Mechanism selects the SASL mechanism: "PLAIN", "SCRAM-SHA-256" or
	// "SCRAM-SHA-512".
	Mechanism string

	// Username is the SASL username.
	Username string

	// Password is the SASL password.
	Password string
}

// Logger matches the v1/logger client so that one can be attached
// directly. Driver errors arrive without a context, so they are logged
// against the background context.
type Logger interface {
	// InfoWithContext logs an informational message with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error message with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
