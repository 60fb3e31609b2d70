// Package metrics provides Prometheus-based monitoring and metrics collection
// functionality for Go applications.
//
// The metrics package is designed to provide a standardized observability
// approach with features such as configurable HTTP endpoints for metrics exposure,
// automatic runtime instrumentation, and integration with the Fx dependency
// injection framework for easy incorporation into Aleph Alpha services.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: Defines the contract for metrics operations
//   - Metrics struct: Concrete implementation of the MetricsCollector interface
//   - NewMetrics constructor: Returns *Metrics (concrete type)
//   - OperationObserver: Prometheus-backed observability.Observer for the
//     client packages in this repository
//   - FX module: Provides *Metrics, the observer, and lifecycle wiring
//
// Core Features:
//   - Exposes a configurable /metrics endpoint for Prometheus scraping
//   - Integration with go.uber.org/fx for automatic lifecycle management
//   - Automatic registration of Go runtime and process-level metrics
//   - Support for custom metric registration (counters, gauges, histograms)
//   - Optional namespace and service name labelling for multi-service observability
//   - Graceful startup and shutdown via Fx lifecycle hooks
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create metrics directly:
//
//	import "github.com/Aleph-Alpha/searchkit/v1/metrics"
//
//	// Create a new metrics server (returns concrete *Metrics)
//	cfg := metrics.Config{
//		Address:                ":9090",
//		EnableDefaultCollectors: true,
//		ServiceName:             "search-store",
//	}
//
//	m := metrics.NewMetrics(cfg)
//	go m.Server.ListenAndServe()
//
//	// Use built-in metrics
//	m.IncrementSearches("success")
//	defer m.RecordSearchDuration(time.Now(), "documents")
//
// # Operation Observer
//
// Every client package in this repository reports finished operations to an
// injected observability.Observer. OperationObserver is the Prometheus
// implementation of that contract:
//
//	m := metrics.NewMetrics(cfg)
//	observer := metrics.NewOperationObserver(m)
//
//	qdrantClient, err := qdrant.NewClient(qdrantCfg)
//	if err != nil {
//		return err
//	}
//	qdrantClient.WithObserver(observer)
//
// Operations then appear as operations_total, operation_duration_seconds and
// operation_payload_bytes, labelled by component and operation.
//
// # FX Module Integration
//
// For production applications using Uber's fx, use the FXModule which provides
// both the concrete type and the observer binding:
//
//	import (
//		"go.uber.org/fx"
//		"github.com/Aleph-Alpha/searchkit/v1/metrics"
//		"github.com/Aleph-Alpha/searchkit/v1/logger"
//	)
//
//	app := fx.New(
//		logger.FXModule,  // Provides the logger client
//		metrics.FXModule, // Provides *Metrics and observability.Observer
//		fx.Provide(func() metrics.Config {
//			return metrics.Config{
//				Address:                ":9090",
//				EnableDefaultCollectors: true,
//				ServiceName:             "search-store",
//			}
//		}),
//		fx.Invoke(func(m *metrics.Metrics) {
//			// Use concrete type directly
//			m.IncrementSearches("success")
//		}),
//	)
//	app.Run()
//
// # Type Aliases in Consumer Code
//
// To simplify your code and make it metrics-agnostic, use type aliases:
//
//	package myapp
//
//	import kitMetrics "github.com/Aleph-Alpha/searchkit/v1/metrics"
//
//	// Use type alias to reference searchkit's interface
//	type MetricsCollector = kitMetrics.MetricsCollector
//
//	// Now use MetricsCollector throughout your codebase
//	func MyFunction(metrics MetricsCollector) {
//		metrics.IncrementSearches("success")
//	}
//
// This eliminates the need for adapters and allows you to switch implementations
// by only changing the alias definition.
//
// # Configuration
//
// The metrics server can be configured via environment variables:
//
//	METRICS_ADDRESS=:9090                      # Port and address for /metrics endpoint
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true     # Enable runtime and process metrics
//	METRICS_NAMESPACE=searchkit                # Optional prefix for all metric names
//	METRICS_SERVICE_NAME=search-store          # Adds service label to all metrics
//
// # Default Collectors
//
// When EnableDefaultCollectors is true, the package automatically registers
// the following collectors:
//   - Go runtime metrics (goroutines, GC stats, heap usage)
//   - Process metrics (CPU time, memory, file descriptors)
//
// These metrics provide deep visibility into service performance and stability.
//
// # Custom Metrics
//
// Applications can register additional Prometheus metrics using the exposed
// Registry. For example:
//
//	requestDuration := prometheus.NewHistogramVec(
//	    prometheus.HistogramOpts{
//	        Name:    "http_request_duration_seconds",
//	        Help:    "Histogram of request latencies.",
//	        Buckets: prometheus.DefBuckets,
//	    },
//	    []string{"method", "route"},
//	)
//	m.Registry.MustRegister(requestDuration)
//
// # Performance Considerations
//
// The metrics server runs in a separate HTTP handler and is lightweight.
// Default collectors use minimal resources, but avoid unnecessary high-cardinality
// metrics or unbounded label values to maintain good performance.
//
// # Thread Safety
//
// All methods on the Metrics struct and Prometheus collectors are safe for
// concurrent use by multiple goroutines.
//
// # Observability
//
// Exposed metrics can be visualized in Prometheus, Grafana, or any compatible
// monitoring system to provide insights into service health, latency, and
// resource utilization.
package metrics
