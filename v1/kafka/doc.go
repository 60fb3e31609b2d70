// Package kafka relays search result pages and other messages over
// Apache Kafka.
//
// The package wraps the segmentio/kafka-go driver behind the same
// produce/consume surface the rabbit package offers, adding a
// serializer layer so callers hand over values instead of encoded
// bodies. Pages travel in the binary wire form of the resultset
// package; keyed by query fingerprint they stay ordered per query
// while partitions spread the load.
//
// # Core Features
//
//   - Producer and consumer clients for a topic, with consumer group
//     support
//   - Pluggable serialization with JSON defaults and binary page
//     serializers
//   - Optional schema-registry framing of message bodies
//   - TLS and SASL (PLAIN, SCRAM-SHA-256, SCRAM-SHA-512) broker
//     connections
//   - Compression (gzip, snappy, lz4, zstd) for produced batches
//   - Integration with the logger package for driver errors
//   - Distributed tracing support via record headers
//
// # Basic Usage
//
//	import (
//		"context"
//		"sync"
//
//		"github.com/Aleph-Alpha/searchkit/v1/kafka"
//	)
//
//	// Create a producer
//	producer, err := kafka.NewClient(kafka.Config{
//		Brokers: []string{"localhost:9092"},
//		Topic:   "pages",
//	})
//	if err != nil {
//		return err
//	}
//	defer producer.GracefulShutdown()
//
//	// Publish a raw message
//	err = producer.Publish(ctx, "key", []byte(`{"id": "123"}`), nil)
//
//	// Create a consumer
//	consumer, err := kafka.NewClient(kafka.Config{
//		Brokers:    []string{"localhost:9092"},
//		Topic:      "pages",
//		GroupID:    "page-indexer",
//		IsConsumer: true,
//	})
//	if err != nil {
//		return err
//	}
//	defer consumer.GracefulShutdown()
//
//	wg := &sync.WaitGroup{}
//	msgChan := consumer.Consume(ctx, wg)
//	for msg := range msgChan {
//		// Process the message...
//
//		if err := msg.CommitMsg(); err != nil {
//			log.ErrorWithContext(ctx, "Failed to commit message", err)
//		}
//	}
//
// # Relaying Result Pages
//
// Page topics install the binary page serializers and then produce and
// decode whole result pages:
//
//	producer.SetSerializer(kafka.PageSerializer[Document](documentCodec{}))
//
//	page := resultset.New(0, 1200, resultset.RelationAtLeast, "documents", docs)
//	err := producer.Produce(ctx, queryFingerprint, page, nil)
//
//	consumer.SetDeserializer(kafka.PageDeserializer(readDocument))
//	for msg := range consumer.Consume(ctx, wg) {
//		var page resultset.ResultSet[Document]
//		if err := consumer.Decode(msg, &page); err != nil {
//			_ = msg.CommitMsg() // poison message, drop it
//			continue
//		}
//		// index the page...
//		_ = msg.CommitMsg()
//	}
//
// # Schema Registry Framing
//
// With a schema registry configured, produced bodies carry the
// Confluent wire header and Decode verifies the schema ID before
// deserializing. The schema is registered at client construction:
//
//	client, err := kafka.NewClient(kafka.Config{
//		Brokers:       []string{"localhost:9092"},
//		Topic:         "pages",
//		Registry:      registry,
//		SchemaSubject: "pages-value",
//		Schema:        schema_registry.PageSchema("documents"),
//		SchemaType:    "JSON",
//	})
//
// # High-Throughput Consumption
//
// For high-volume topics, ConsumeParallel fetches with several workers
// feeding one channel. Cross-message ordering is lost:
//
//	msgChan := consumer.ConsumeParallel(ctx, wg, 5)
//	for msg := range msgChan {
//		processMessage(msg)
//		_ = msg.CommitMsg()
//	}
//
// # Distributed Tracing
//
// Trace context propagates through record headers, pairing with the
// tracer package on both sides of the broker.
//
// Producer side:
//
//	traceHeaders := tracerClient.GetCarrier(ctx)
//	err := producer.Produce(ctx, key, page, traceHeaders)
//
// Consumer side:
//
//	for msg := range consumer.Consume(ctx, wg) {
//		ctx := tracerClient.SetCarrierOnContext(ctx, msg.Header())
//		ctx, span := tracerClient.StartSpan(ctx, "process-page")
//		// process...
//		span.End()
//	}
//
// # FX Module Integration
//
// This package provides a fx module for easy integration:
//
//	app := fx.New(
//		kafka.FXModule,
//		schema_registry.FXModule, // Optional: enables framing
//		logger.FXModule,          // Optional: provides the logger
//		fx.Provide(func() kafka.Config { return loadKafkaConfig() }),
//	)
//	app.Run()
//
// The registry from the graph is adopted only when the config names a
// SchemaSubject; driver errors use the logger when one is available.
//
// # Thread Safety
//
// All methods on KafkaClient are safe for concurrent use by multiple
// goroutines. GracefulShutdown may be called more than once; only the
// first call does the work.
//
// # Related Packages
//
//   - v1/resultset: the pages this package relays
//   - v1/schema_registry: schema registration and wire framing
//   - v1/rabbit: the AMQP counterpart of this package
package kafka
