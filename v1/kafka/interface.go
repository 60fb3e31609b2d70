package kafka

import (
	"context"
	"sync"
)

// Client is the high-level interface for relaying messages through
// Kafka. A client serves one topic as either producer or consumer;
// the serializer pair decides how values map to message bodies.
//
// Implemented by *KafkaClient.
type Client interface {
	// Producer operations

	// Publish sends an already encoded message body under the given key,
	// with optional record headers.
	Publish(ctx context.Context, key string, message []byte, headers map[string]string) error

	// Produce serializes the value with the installed serializer, frames
	// it when a schema registry is configured, and publishes the result.
	Produce(ctx context.Context, key string, value interface{}, headers map[string]string) error

	// Consumer operations

	// Consume starts consuming from the configured topic. The returned
	// channel closes when ctx is canceled or the client shuts down.
	Consume(ctx context.Context, wg *sync.WaitGroup) <-chan Message

	// ConsumeParallel behaves like Consume with the given number of
	// fetch workers feeding the channel.
	ConsumeParallel(ctx context.Context, wg *sync.WaitGroup, workers int) <-chan Message

	// Decode turns a consumed message body back into a value, stripping
	// and verifying the registry frame when one is configured.
	Decode(msg Message, target interface{}) error

	// Serialization

	// SetSerializer installs the serializer used by Produce.
	SetSerializer(s Serializer)

	// SetDeserializer installs the deserializer used by Decode.
	SetDeserializer(d Deserializer)

	// Lifecycle

	// GracefulShutdown closes the writer and reader cleanly and stops
	// all fetch workers.
	GracefulShutdown()
}

// Message is one consumed record. It exposes the payload, key and
// headers, and the offset commit decision.
type Message interface {
	// CommitMsg commits the message offset for the consumer group.
	CommitMsg() error

	// Body returns the message payload.
	Body() []byte

	// Key returns the message key.
	Key() string

	// Header returns the record headers the message was published with.
	Header() map[string]string
}

var _ Client = (*KafkaClient)(nil)
var _ Message = (*ConsumerMessage)(nil)
