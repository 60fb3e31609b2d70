package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IncrementSearches increments the search counter with a given status label.
// Example: metrics.IncrementSearches("success")
func (m *Metrics) IncrementSearches(status string) {
	m.searchesTotal.WithLabelValues(status).Inc()
}

// RecordSearchDuration records the duration (in seconds) of a search against
// a collection. Example: defer metrics.RecordSearchDuration(time.Now(), "documents")
func (m *Metrics) RecordSearchDuration(start time.Time, collection string) {
	duration := time.Since(start).Seconds()
	m.searchDuration.WithLabelValues(collection).Observe(duration)
}

// ObservePageItems sets the page item gauge for a given list field.
// Example: metrics.ObservePageItems(20, "events")
func (m *Metrics) ObservePageItems(count float64, field string) {
	m.pageItemsGauge.WithLabelValues(field).Set(count)
}

// CreateCounter creates a new CounterVec metric and registers it.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(m.namespace, name, help, labels)
	m.Registry.MustRegister(counter)
	return counter
}

// CreateHistogram creates a new HistogramVec metric and registers it.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(m.namespace, name, help, labels, buckets)
	m.Registry.MustRegister(hist)
	return hist
}

// CreateGauge creates a new GaugeVec metric and registers it.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := createGaugeVec(m.namespace, name, help, labels)
	m.Registry.MustRegister(gauge)
	return gauge
}

// createCounterVec defines a new CounterVec with standard options.
// Used internally by NewMetrics to maintain consistency.
func createCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

// createHistogramVec defines a new HistogramVec with configurable buckets.
// Used internally by NewMetrics for latency tracking.
func createHistogramVec(namespace, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}

// createGaugeVec defines a new GaugeVec safely for resource monitoring.
// Used internally by NewMetrics to track resource utilization.
func createGaugeVec(namespace, name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}
