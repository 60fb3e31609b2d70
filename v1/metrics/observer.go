package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aleph-Alpha/searchkit/v1/observability"
)

// OperationObserver exports every observed client operation as Prometheus
// metrics. It implements observability.Observer, so it can be injected into
// any client in this repository via the client's WithObserver option.
//
// Three metrics are maintained per component and operation:
//   - operations_total counts operations, labelled by outcome
//   - operation_duration_seconds tracks latency
//   - operation_payload_bytes tracks payload sizes where the operation
//     reported one
type OperationObserver struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	payload    *prometheus.HistogramVec
}

// NewOperationObserver creates an OperationObserver whose metrics are
// registered on the given Metrics instance.
func NewOperationObserver(m *Metrics) *OperationObserver {
	return &OperationObserver{
		operations: m.CreateCounter(
			"operations_total",
			"Total number of observed client operations",
			[]string{"component", "operation", "status"},
		),
		duration: m.CreateHistogram(
			"operation_duration_seconds",
			"Duration of observed client operations in seconds",
			[]string{"component", "operation"},
			prometheus.DefBuckets,
		),
		payload: m.CreateHistogram(
			"operation_payload_bytes",
			"Payload size of observed client operations in bytes",
			[]string{"component", "operation"},
			prometheus.ExponentialBuckets(64, 4, 10),
		),
	}
}

// ObserveOperation records one finished operation.
func (o *OperationObserver) ObserveOperation(ctx observability.OperationContext) {
	status := "success"
	if ctx.Error != nil {
		status = "error"
	}
	o.operations.WithLabelValues(ctx.Component, ctx.Operation, status).Inc()
	o.duration.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())
	if ctx.Size > 0 {
		o.payload.WithLabelValues(ctx.Component, ctx.Operation).Observe(float64(ctx.Size))
	}
}

var _ observability.Observer = (*OperationObserver)(nil)
