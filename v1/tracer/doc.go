// Package tracer provides distributed tracing functionality using OpenTelemetry.
//
// The tracer package offers a simplified interface for implementing distributed tracing
// in Go applications. It abstracts away the complexity of OpenTelemetry to provide
// a clean, easy-to-use API for creating and managing trace spans.
//
// Core Features:
//   - Simple span creation and management
//   - Error recording and status tracking
//   - Customizable span attributes
//   - Cross-service trace context propagation
//   - Integration with OpenTelemetry backends
//
// Basic Usage:
//
//	import (
//		"context"
//		"github.com/Aleph-Alpha/searchkit/v1/tracer"
//		"github.com/Aleph-Alpha/searchkit/v1/logger"
//	)
//
//	// Create a logger
//	log := logger.NewLoggerClient(logger.Config{Level: "info"})
//
//	// Create a tracer
//	tracerClient := tracer.NewClient(tracer.Config{
//		ServiceName:  "search-store",
//		AppEnv:       "development",
//		EnableExport: true,
//	}, log)
//
//	// Create a span
//	ctx, span := tracerClient.StartSpan(ctx, "search-page")
//	defer span.End()
//
//	// Add attributes to the span
//	tracerClient.SetAttributes(span, map[string]interface{}{
//		"collection": "documents",
//		"offset":     40,
//	})
//
//	// Record errors
//	if err != nil {
//		tracerClient.RecordErrorOnSpan(span, err)
//		return nil, err
//	}
//
// Distributed Tracing Across Services:
//
//	// In the sending service
//	ctx, span := tracerClient.StartSpan(ctx, "publish-page")
//	defer span.End()
//
//	// Extract trace context for an outgoing message
//	headers := tracerClient.GetCarrier(ctx)
//	publish(ctx, payload, headers)
//
//	// In the receiving service
//	func handleDelivery(d Delivery) {
//		// Restore the upstream trace context
//		ctx := tracerClient.SetCarrierOnContext(context.Background(), d.Headers)
//
//		// Create a child span in this service
//		ctx, span := tracerClient.StartSpan(ctx, "consume-page")
//		defer span.End()
//		// ...
//	}
//
// FX Module Integration:
//
// This package provides an fx module for easy integration:
//
//	app := fx.New(
//		logger.FXModule,
//		tracer.FXModule,
//		// ... other modules
//	)
//	app.Run()
//
// Best Practices:
//
//   - Create spans for significant operations in your code
//   - Always defer span.End() immediately after creating a span
//   - Use descriptive span names that identify the operation
//   - Add relevant attributes to provide context
//   - Record errors when operations fail
//   - Ensure trace context is properly propagated between services
//
// Thread Safety:
//
// All methods on the Tracer type and Span interface are safe for concurrent use
// by multiple goroutines.
package tracer
