package rabbit

import (
	"context"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConsumerMessage implements the Message interface and wraps an AMQP
// delivery, giving access to the payload and acknowledgment methods.
type ConsumerMessage struct {
	body     []byte
	delivery *amqp.Delivery
}

// consumeQueue consumes messages from the named queue onto a buffered
// channel. The returned channel is closed when consumption stops due
// to context cancellation or shutdown. When the broker closes the
// delivery stream the loop re-establishes the consumer, which pairs
// with RetryConnection swapping in a fresh channel.
func (rb *RabbitClient) consumeQueue(ctx context.Context, wg *sync.WaitGroup, queueName string) <-chan Message {
	outChan := make(chan Message, 100)

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(outChan)
	outerLoop:
		for {
			select {
			case <-rb.shutdownSignal:
				rb.logInfo(ctx, "Stopping consumer due to shutdown signal", map[string]interface{}{
					"queue": queueName,
				})
				return
			case <-ctx.Done():
				rb.logInfo(ctx, "Stopping consumer due to context cancellation", map[string]interface{}{
					"queue": queueName,
					"error": ctx.Err().Error(),
				})
				return
			default:
				rb.mu.RLock()
				msgs, err := rb.Channel.Consume(
					queueName,
					"",    // consumer
					false, // autoAck
					false, // exclusive
					false, // noLocal
					false, // noWait
					nil,   // args
				)
				rb.mu.RUnlock()

				if err != nil {
					rb.logError(ctx, "Failed to establish consumer", map[string]interface{}{
						"queue": queueName,
						"error": err.Error(),
					})
					time.Sleep(100 * time.Millisecond)
					continue
				}

				for {
					select {
					case <-ctx.Done():
						rb.logInfo(ctx, "Stopping consumer due to context cancellation", map[string]interface{}{
							"queue": queueName,
							"error": ctx.Err().Error(),
						})
						return
					case <-rb.shutdownSignal:
						rb.logInfo(ctx, "Stopping consumer due to shutdown signal", map[string]interface{}{
							"queue": queueName,
						})
						return
					case msg, ok := <-msgs:
						if !ok {
							continue outerLoop
						}

						// Deliveries are pushed by the broker, so there is
						// no per-message latency to report.
						rb.observeOperation("consume", queueName, "", 0, nil, int64(len(msg.Body)))

						select {
						case outChan <- &ConsumerMessage{body: msg.Body, delivery: &msg}:
						case <-ctx.Done():
							return
						case <-rb.shutdownSignal:
							return
						}
					}
				}
			}
		}
	}()
	return outChan
}

// Consume starts consuming messages from the queue named in the
// configuration. The returned channel delivers one Message per
// delivery until ctx is canceled or the client shuts down; messages
// must be acknowledged via AckMsg or NackMsg.
//
// Example:
//
//	wg := &sync.WaitGroup{}
//	msgChan := client.Consume(ctx, wg)
//	for msg := range msgChan {
//	    page, err := rabbit.DecodePage(msg, parseDoc)
//	    if err != nil {
//	        _ = msg.NackMsg(false)
//	        continue
//	    }
//	    // process the page...
//	    _ = msg.AckMsg()
//	}
func (rb *RabbitClient) Consume(ctx context.Context, wg *sync.WaitGroup) <-chan Message {
	return rb.consumeQueue(ctx, wg, rb.cfg.Channel.QueueName)
}

// ConsumeQueue consumes from an arbitrary queue, typically one set up
// earlier with DeclareQueue. Behaves exactly like Consume otherwise.
func (rb *RabbitClient) ConsumeQueue(ctx context.Context, wg *sync.WaitGroup, queueName string) <-chan Message {
	return rb.consumeQueue(ctx, wg, queueName)
}

// ConsumeDLQ consumes messages from the configured dead-letter queue,
// for reprocessing or inspecting messages that failed on the main
// queue.
func (rb *RabbitClient) ConsumeDLQ(ctx context.Context, wg *sync.WaitGroup) <-chan Message {
	return rb.consumeQueue(ctx, wg, rb.cfg.DeadLetter.QueueName)
}

// Publish sends a message to the configured exchange under the
// configured routing key. Safe for concurrent use and honors context
// cancellation.
//
// The optional headers travel as AMQP message headers. They carry
// application metadata and, with v1/tracer, trace context across the
// broker:
//
//	traceHeaders := tracerClient.GetCarrier(ctx)
//	err := client.Publish(ctx, payload, traceHeaders)
//
// The consumer side reads them back with Message.Header.
func (rb *RabbitClient) Publish(ctx context.Context, msg []byte, headers ...map[string]interface{}) error {
	start := time.Now()
	var publishErr error
	msgSize := int64(len(msg))

	defer func() {
		rb.observeOperation("produce", rb.cfg.Channel.ExchangeName, rb.cfg.Channel.RoutingKey, time.Since(start), publishErr, msgSize)
	}()

	var header map[string]interface{}
	if len(headers) > 0 {
		header = headers[0]
	}

	rb.mu.RLock()
	defer rb.mu.RUnlock()

	publishErr = rb.Channel.PublishWithContext(ctx,
		rb.cfg.Channel.ExchangeName,
		rb.cfg.Channel.RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			Headers:     header,
			ContentType: rb.cfg.Channel.ContentType,
			Body:        msg,
		},
	)
	return publishErr
}

// AckMsg acknowledges the message, telling RabbitMQ it was processed
// and can be dropped from the queue.
func (rb *ConsumerMessage) AckMsg() error {
	return rb.delivery.Ack(false)
}

// NackMsg rejects the message. With requeue the message is returned to
// the queue for redelivery; without it the message is discarded, or
// dead-lettered when the queue has a dead-letter exchange.
func (rb *ConsumerMessage) NackMsg(requeue bool) error {
	return rb.delivery.Nack(false, requeue)
}

// Body returns the message payload.
func (rb *ConsumerMessage) Body() []byte {
	return rb.body
}

// Header returns the AMQP headers the message was published with.
// Publishers use them for application metadata and trace propagation;
// see Publish.
func (rb *ConsumerMessage) Header() map[string]interface{} {
	return rb.delivery.Headers
}
