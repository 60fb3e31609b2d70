package redis

import (
	"time"

	"github.com/Aleph-Alpha/searchkit/v1/observability"
)

// observeOperation notifies the observer about an operation if one is
// configured.
//
// Notes:
//   - resource: the caller's (unprefixed) key or pattern
//   - subResource: additional context such as a field name
func (r *RedisClient) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if r == nil || r.observer == nil {
		return
	}

	r.observer.ObserveOperation(observability.OperationContext{
		Component:   "redis",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}
