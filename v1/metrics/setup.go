package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing application metrics.
//
// This structure provides the components needed to register metrics collectors
// and serve them via the /metrics HTTP endpoint for Prometheus scraping.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each service maintains its own isolated registry to prevent metric name collisions.
	Registry *prometheus.Registry

	// namespace is prepended to every metric name registered through this
	// instance.
	namespace string

	// Core built-in metrics
	searchesTotal  *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	pageItemsGauge *prometheus.GaugeVec
}

// NewMetrics initializes and returns a new instance of the Metrics struct.
// It sets up a dedicated Prometheus registry, registers default system collectors,
// wraps all metrics with a constant `service` label, and creates an HTTP server
// exposing the /metrics endpoint.
//
// Parameters:
//   - cfg: Configuration for the metrics server, including listening address,
//     service name, and whether to enable default collectors.
//
// Returns:
//   - *Metrics: A configured Metrics instance ready for lifecycle management
//     and Fx module integration.
//
// The setup includes:
//   - A dedicated Prometheus registry for the service
//   - Automatic registration of Go, process, and build info collectors
//   - A global "service" label applied to all metrics for easier aggregation
//   - An HTTP server exposing the metrics endpoint
//
// Example:
//
//	cfg := metrics.Config{
//	    Address:              ":9090",
//	    ServiceName:           "document-index",
//	    EnableDefaultCollectors: true,
//	}
//	metricsInstance := metrics.NewMetrics(cfg)
//	go metricsInstance.Server.ListenAndServe()
//
// Access metrics at: http://localhost:9090/metrics
func NewMetrics(cfg Config) *Metrics {
	// Create a new isolated Prometheus registry for this service.
	// This avoids metric collisions when multiple services run in the same process.
	registry := prometheus.NewRegistry()

	// Wrap the registry with a constant label for consistent observability.
	// All metrics emitted by this service will automatically include the label:
	//   service="<cfg.ServiceName>"
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	// Initialize the metrics struct
	m := &Metrics{
		Registry:  registry,
		namespace: cfg.Namespace,
	}

	// Define default metrics using helpers
	m.searchesTotal = createCounterVec(m.namespace, "searches_total", "Total number of search requests by status", []string{"status"})
	m.searchDuration = createHistogramVec(m.namespace, "search_duration_seconds", "Duration of search requests in seconds", []string{"collection"}, prometheus.DefBuckets)
	m.pageItemsGauge = createGaugeVec(m.namespace, "result_page_items", "Item count of the most recent result page per list field", []string{"field"})

	// Register the metrics
	wrappedRegistry.MustRegister(
		m.searchesTotal,
		m.searchDuration,
		m.pageItemsGauge,
	)

	// Register standard collectors if enabled.
	// These provide essential runtime metrics for Go processes:
	//   - GoCollector: Memory usage, goroutines, GC stats
	//   - ProcessCollector: CPU, file descriptors, memory stats
	//   - BuildInfoCollector: Binary version/build info
	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	// Create an HTTP handler that serves metrics from the registry.
	// The handler exposes metrics at /metrics for Prometheus scraping.
	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	// Configure the HTTP server for exposing metrics.
	server := &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}

	// Return the fully configured metrics instance.
	m.Server = server
	return m
}
