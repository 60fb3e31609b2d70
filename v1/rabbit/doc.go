// Package rabbit relays binary result pages and other messages over
// RabbitMQ. It wraps connection management, channel topology and
// publish/consume loops behind a small interface, so services can hand
// pages to one another without touching AMQP details.
//
// # Core Features
//
//   - Connection management with automatic reconnection
//   - Publisher confirms enabled on every channel
//   - Page relay helpers framing the wire codec: PublishPage and
//     DecodePage move whole resultset.ResultSet values through a queue
//   - Queue declaration beyond the configured topology via DeclareQueue
//   - Dead-letter exchange and queue support with message TTL
//   - Error translation from AMQP reply codes and transport failures
//     into standardized errors
//   - Optional observability hooks and context-aware logging
//
// # Basic Usage
//
//	client, err := rabbit.NewClient(rabbit.Config{
//		Connection: rabbit.Connection{
//			Host:     "localhost",
//			Port:     5672,
//			User:     "guest",
//			Password: "guest",
//		},
//		Channel: rabbit.Channel{
//			ExchangeName: "pages",
//			ExchangeType: "direct",
//			RoutingKey:   "search.results",
//			QueueName:    "search-results",
//			IsConsumer:   true,
//			ContentType:  "application/octet-stream",
//		},
//	})
//	if err != nil {
//		return err
//	}
//	defer client.GracefulShutdown()
//
//	// Optionally attach a logger and an observer.
//	client = client.
//		WithLogger(log).
//		WithObserver(obs)
//
// Run RetryConnection in a goroutine (the FX module does this) to keep
// the connection alive across broker restarts.
//
// # Relaying Result Pages
//
// PublishPage writes a page's binary form as the message body;
// DecodePage restores it on the consuming side. The item codec is the
// same one used everywhere else in this module:
//
//	page := resultset.New(0, 2, resultset.RelationExact, "documents", docs)
//	n, err := rabbit.PublishPage(ctx, client, page, docCodec)
//
//	msgs := client.Consume(ctx, wg)
//	for msg := range msgs {
//		page, err := rabbit.DecodePage(msg, parseDoc)
//		if err != nil {
//			_ = msg.NackMsg(false) // dead-letter the malformed payload
//			continue
//		}
//		// hand the page off...
//		_ = msg.AckMsg()
//	}
//
// Additional relay queues, for example one per page stream, are
// declared and consumed at runtime:
//
//	if err := client.DeclareQueue("stream-7", "stream.7"); err != nil {
//		return err
//	}
//	msgs := client.ConsumeQueue(ctx, wg, "stream-7")
//
// # Dead Letter Queue
//
// With DeadLetter configured, messages that are nacked without requeue
// or that outlive the TTL land on the dead-letter queue:
//
//	dlqChan := client.ConsumeDLQ(ctx, wg)
//	for msg := range dlqChan {
//		// inspect or replay the failed message
//		_ = msg.AckMsg()
//	}
//
// # Error Handling
//
// TranslateError converts AMQP reply codes and socket failures into
// standardized errors, and the classifier helpers answer the retry
// question directly:
//
//	if err := client.Publish(ctx, payload); err != nil {
//		if client.IsConnectionError(err) {
//			// the reconnection loop will repair this; retry later
//		}
//		return client.TranslateError(err)
//	}
//
// # Observability
//
// An attached observer receives one OperationContext per operation.
// Publishes report as "produce" with the exchange as Resource, the
// routing key as SubResource and the publish latency as Duration.
// Consumes report as "consume" with the queue as Resource and a zero
// Duration, since deliveries are pushed by the broker. Both carry the
// payload size.
//
// # Logging
//
// The Logger interface matches v1/logger, so its client can be
// attached directly. Logging covers background work only: connection
// lifecycle, reconnection attempts and consumer shutdown. Errors
// returned to the caller are never logged, avoiding duplicates.
// Without a logger those events fall back to the standard logger.
//
// # Tracing Across the Broker
//
// Message headers carry trace context end to end. Extract the carrier
// before publishing and restore it on the consuming side:
//
//	traceHeaders := tracerClient.GetCarrier(ctx)
//	err := client.Publish(ctx, payload, traceHeaders)
//
//	for msg := range msgs {
//		ctx = tracerClient.SetCarrierOnContext(ctx, msg.Header())
//		ctx, span := tracerClient.StartSpan(ctx, "process-page")
//		// ...
//		span.End()
//	}
//
// # FX Module Integration
//
//	app := fx.New(
//	    logger.FXModule, // Optional: provides the logger
//	    rabbit.FXModule, // Provides *RabbitClient and rabbit.Client
//	    fx.Provide(
//	        func() rabbit.Config { return loadRabbitConfig() },
//	    ),
//	    fx.Invoke(func(client rabbit.Client) {
//	        // ...
//	    }),
//	)
//	app.Run()
//
// The module starts the reconnection loop on startup and shuts the
// client down cleanly on stop. A Logger or observability.Observer in
// the graph is attached automatically; both are optional.
//
// # Related Packages
//
//   - v1/resultset: the page container relayed by this package
//   - v1/stream: the binary codec framing the message bodies
//   - v1/kafka: the same relay surface over Kafka
//   - v1/minio: archives pages in their document form instead
package rabbit
