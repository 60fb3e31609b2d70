package rabbit

import (
	"context"
	"log"
	"time"

	"github.com/Aleph-Alpha/searchkit/v1/observability"
)

// WithObserver attaches an observer that is notified of every publish
// and consume operation. Returns the client for chaining.
func (rb *RabbitClient) WithObserver(observer observability.Observer) *RabbitClient {
	rb.observer = observer
	return rb
}

// WithLogger attaches a logger for lifecycle and background-loop
// events. Returns the client for chaining.
func (rb *RabbitClient) WithLogger(logger Logger) *RabbitClient {
	rb.logger = logger
	return rb
}

// observeOperation notifies the observer about an operation if one is
// configured. Tracks publish and consume operations for metrics and
// tracing.
func (rb *RabbitClient) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64) {
	if rb.observer != nil {
		rb.observer.ObserveOperation(observability.OperationContext{
			Component:   "rabbit",
			Operation:   operation,
			Resource:    resource,
			SubResource: subResource,
			Duration:    duration,
			Error:       err,
			Size:        size,
			Metadata:    nil,
		})
	}
}

// logInfo forwards to the attached logger, or to the standard logger
// when none is attached so connection lifecycle events stay visible.
func (rb *RabbitClient) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if rb.logger != nil {
		rb.logger.InfoWithContext(ctx, msg, nil, fields)
		return
	}
	if fields != nil {
		log.Printf("INFO: %s %v", msg, fields)
		return
	}
	log.Printf("INFO: %s", msg)
}

// logWarn is the warning-level counterpart of logInfo.
func (rb *RabbitClient) logWarn(ctx context.Context, msg string, fields map[string]interface{}) {
	if rb.logger != nil {
		rb.logger.WarnWithContext(ctx, msg, nil, fields)
		return
	}
	if fields != nil {
		log.Printf("WARNING: %s %v", msg, fields)
		return
	}
	log.Printf("WARNING: %s", msg)
}

// logError is the error-level counterpart of logInfo. The failure
// itself travels in fields, matching how the background loops report.
func (rb *RabbitClient) logError(ctx context.Context, msg string, fields map[string]interface{}) {
	if rb.logger != nil {
		rb.logger.ErrorWithContext(ctx, msg, nil, fields)
		return
	}
	if fields != nil {
		log.Printf("ERROR: %s %v", msg, fields)
		return
	}
	log.Printf("ERROR: %s", msg)
}
