package kafka

import (
	"context"
	"log"
	"time"

	"github.com/Aleph-Alpha/searchkit/v1/observability"
)

// observeOperation notifies the observer about an operation if one is
// configured. Tracks produce and consume operations for metrics and
// tracing.
func (k *KafkaClient) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64) {
	if k.observer != nil {
		k.observer.ObserveOperation(observability.OperationContext{
			Component:   "kafka",
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

// logInfo forwards to the configured logger, or to the standard logger
// when none is configured so consumer lifecycle events stay visible.
// Unlike most clients the logger lives in the Config, because the
// driver's error logger captures it at writer and reader creation.
func (k *KafkaClient) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if k.cfg.Logger != nil {
		k.cfg.Logger.InfoWithContext(ctx, msg, nil, fields)
		return
	}
	if fields != nil {
		log.Printf("INFO: %s %v", msg, fields)
		return
	}
	log.Printf("INFO: %s", msg)
}

// logWarn is the warning-level counterpart of logInfo.
func (k *KafkaClient) logWarn(ctx context.Context, msg string, fields map[string]interface{}) {
	if k.cfg.Logger != nil {
		k.cfg.Logger.WarnWithContext(ctx, msg, nil, fields)
		return
	}
	if fields != nil {
		log.Printf("WARNING: %s %v", msg, fields)
		return
	}
	log.Printf("WARNING: %s", msg)
}

// logError is the error-level counterpart of logInfo. The failure
// itself travels in fields, matching how the fetch loop reports.
func (k *KafkaClient) logError(ctx context.Context, msg string, fields map[string]interface{}) {
	if k.cfg.Logger != nil {
		k.cfg.Logger.ErrorWithContext(ctx, msg, nil, fields)
		return
	}
	if fields != nil {
		log.Printf("ERROR: %s %v", msg, fields)
		return
	}
	log.Printf("ERROR: %s", msg)
}
