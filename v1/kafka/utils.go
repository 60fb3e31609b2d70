package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Aleph-Alpha/searchkit/v1/schema_registry"
)

// Misuse errors returned by the publish and decode paths.
var (
	// ErrNotProducer is returned when Publish or Produce is called on a
	// client configured with IsConsumer.
	ErrNotProducer = errors.New("kafka client is configured as a consumer")

	// ErrNoSerializer is returned by Produce when no serializer is
	// installed.
	ErrNoSerializer = errors.New("no serializer installed")

	// ErrNoDeserializer is returned by Decode when no deserializer is
	// installed.
	ErrNoDeserializer = errors.New("no deserializer installed")
)

// ConsumerMessage implements the Message interface and wraps a fetched
// Kafka message together with the reader needed to commit it.
type ConsumerMessage struct {
	msg    kafka.Message
	reader *kafka.Reader
}

// Publish sends an already encoded message body to the configured
// topic. The key selects the partition, so pages of one query stay
// ordered when the key is the query fingerprint. Safe for concurrent
// use and honors context cancellation.
//
// The optional headers travel as Kafka record headers. They carry
// application metadata and, with v1/tracer, trace context across the
// broker:
//
//	traceHeaders := tracerClient.GetCarrier(ctx)
//	err := client.Publish(ctx, query, payload, traceHeaders)
//
// The consumer side reads them back with Message.Header.
func (k *KafkaClient) Publish(ctx context.Context, key string, message []byte, headers map[string]string) error {
	start := time.Now()
	var publishErr error
	msgSize := int64(len(message))

	defer func() {
		k.observeOperation("produce", k.cfg.Topic, "", time.Since(start), publishErr, msgSize)
	}()

	k.mu.RLock()
	writer := k.writer
	k.mu.RUnlock()

	if writer == nil {
		publishErr = ErrNotProducer
		return publishErr
	}

	kafkaHeaders := make([]kafka.Header, 0, len(headers))
	for name, value := range headers {
		kafkaHeaders = append(kafkaHeaders, kafka.Header{Key: name, Value: []byte(value)})
	}

	publishErr = writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(key),
		Value:   message,
		Headers: kafkaHeaders,
	})
	if publishErr != nil {
		publishErr = fmt.Errorf("failed to publish message: %w", publishErr)
		return publishErr
	}
	return nil
}

// Produce serializes the value with the installed serializer and
// publishes the result. When a schema registry is configured the body
// is additionally framed with the registered schema ID.
//
// For page topics install PageSerializer first; then each produce call
// relays one result page:
//
//	client.SetSerializer(kafka.PageSerializer[Document](documentCodec{}))
//	err := client.Produce(ctx, query, page, traceHeaders)
func (k *KafkaClient) Produce(ctx context.Context, key string, value interface{}, headers map[string]string) error {
	body, err := k.encodeValue(value)
	if err != nil {
		return err
	}
	return k.Publish(ctx, key, body, headers)
}

// encodeValue runs the serializer and, when framing is active,
// prepends the registry wire header.
func (k *KafkaClient) encodeValue(value interface{}) ([]byte, error) {
	k.mu.RLock()
	serializer := k.serializer
	k.mu.RUnlock()

	if serializer == nil {
		return nil, ErrNoSerializer
	}
	body, err := serializer(value)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize message: %w", err)
	}
	if k.cfg.Registry != nil {
		body = schema_registry.Frame(k.schemaID, body)
	}
	return body, nil
}

// Decode turns a consumed message body back into a value using the
// installed deserializer. When a schema registry is configured the
// wire header is stripped first and the schema ID is verified against
// the registry, so bodies written under an unknown schema fail here
// instead of producing garbage.
//
//	var page resultset.ResultSet[Document]
//	if err := client.Decode(msg, &page); err != nil {
//		_ = msg.CommitMsg() // poison message, drop it
//		continue
//	}
func (k *KafkaClient) Decode(msg Message, target interface{}) error {
	k.mu.RLock()
	deserializer := k.deserializer
	k.mu.RUnlock()

	if deserializer == nil {
		return ErrNoDeserializer
	}

	body := msg.Body()
	if k.cfg.Registry != nil {
		id, payload, err := schema_registry.DecodeSchemaID(body)
		if err != nil {
			return fmt.Errorf("failed to read schema header: %w", err)
		}
		if _, err := k.cfg.Registry.GetSchemaByID(id); err != nil {
			return fmt.Errorf("message carries unknown schema %d: %w", id, err)
		}
		body = payload
	}

	if err := deserializer(body, target); err != nil {
		return fmt.Errorf("failed to deserialize message: %w", err)
	}
	return nil
}

// Consume starts consuming messages from the configured topic. The
// returned channel delivers one Message per record until ctx is
// canceled or the client shuts down; processed messages are committed
// via CommitMsg.
//
// Example:
//
//	wg := &sync.WaitGroup{}
//	msgChan := client.Consume(ctx, wg)
//	for msg := range msgChan {
//	    var page resultset.ResultSet[Document]
//	    if err := client.Decode(msg, &page); err != nil {
//	        continue
//	    }
//	    // process the page...
//	    _ = msg.CommitMsg()
//	}
func (k *KafkaClient) Consume(ctx context.Context, wg *sync.WaitGroup) <-chan Message {
	return k.consume(ctx, wg, 1)
}

// ConsumeParallel behaves like Consume with the given number of fetch
// workers feeding the channel. Ordering across messages is lost, so it
// suits topics where pages of different queries are independent.
func (k *KafkaClient) ConsumeParallel(ctx context.Context, wg *sync.WaitGroup, workers int) <-chan Message {
	if workers < 1 {
		workers = 1
	}
	return k.consume(ctx, wg, workers)
}

// consume runs the given number of fetch workers onto one buffered
// channel. The channel is closed when the last worker stops.
func (k *KafkaClient) consume(ctx context.Context, wg *sync.WaitGroup, workers int) <-chan Message {
	outChan := make(chan Message, 100)
	consumeCtx, cancel := context.WithCancel(ctx)

	// Fetching must also stop on client shutdown, not only on context
	// cancellation.
	go func() {
		select {
		case <-k.shutdownSignal:
			cancel()
		case <-consumeCtx.Done():
		}
	}()

	workerWg := &sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		workerWg.Add(1)
		go func() {
			defer wg.Done()
			defer workerWg.Done()
			k.fetchLoop(consumeCtx, outChan)
		}()
	}

	go func() {
		workerWg.Wait()
		cancel()
		close(outChan)
	}()

	return outChan
}

// fetchLoop fetches messages until the context is canceled or the
// reader is closed. Fetch errors other than cancellation are logged
// and retried; the reader reconnects internally.
func (k *KafkaClient) fetchLoop(ctx context.Context, outChan chan<- Message) {
	k.mu.RLock()
	reader := k.reader
	k.mu.RUnlock()

	if reader == nil {
		k.logError(ctx, "Consume called on a producer client", map[string]interface{}{
			"topic": k.cfg.Topic,
		})
		return
	}

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				k.logInfo(ctx, "Stopping consumer due to context cancellation", map[string]interface{}{
					"topic": k.cfg.Topic,
				})
				return
			}
			if errors.Is(err, io.EOF) {
				// The reader was closed by GracefulShutdown.
				k.logInfo(ctx, "Stopping consumer due to shutdown", map[string]interface{}{
					"topic": k.cfg.Topic,
				})
				return
			}
			k.logError(ctx, "Failed to fetch message", map[string]interface{}{
				"topic": k.cfg.Topic,
				"error": err.Error(),
			})
			select {
			case <-ctx.Done():
				return
			case <-time.After(100 * time.Millisecond):
				continue
			}
		}

		// Records are pulled in batches by the reader, so there is no
		// per-message latency to report.
		k.observeOperation("consume", k.cfg.Topic, k.cfg.GroupID, 0, nil, int64(len(msg.Value)))

		select {
		case outChan <- &ConsumerMessage{msg: msg, reader: reader}:
		case <-ctx.Done():
			return
		}
	}
}

// CommitMsg commits the message offset, telling the broker this
// consumer group is done with it. Without a consumer group there is
// nothing to commit and the driver reports an error.
func (m *ConsumerMessage) CommitMsg() error {
	return m.reader.CommitMessages(context.Background(), m.msg)
}

// Body returns the message payload.
func (m *ConsumerMessage) Body() []byte {
	return m.msg.Value
}

// Key returns the message key, the query fingerprint on page topics.
func (m *ConsumerMessage) Key() string {
	return string(m.msg.Key)
}

// Header returns the record headers the message was published with.
// Publishers use them for application metadata and trace propagation;
// see Publish.
func (m *ConsumerMessage) Header() map[string]string {
	headers := make(map[string]string, len(m.msg.Headers))
	for _, h := range m.msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	return headers
}
