package observability

import "time"

// OperationContext captures a single completed operation as reported by a
// searchkit client. Fields that do not apply to an operation are left at
// their zero value.
type OperationContext struct {
	// Component identifies the reporting client, e.g. "qdrant", "rabbit",
	// "resultset".
	Component string

	// Operation is the verb that was executed, e.g. "search", "publish",
	// "decode_document".
	Operation string

	// Resource is the primary object of the operation: a collection,
	// queue, topic, bucket, table, or key.
	Resource string

	// SubResource narrows Resource where useful: an object key inside a
	// bucket, a routing key on an exchange, a field name inside a
	// document.
	SubResource string

	// Duration is the wall-clock time the operation took.
	Duration time.Duration

	// Error is the error the operation returned, or nil on success.
	Error error

	// Size is the payload size in bytes where the operation has one
	// (message bodies, encoded documents, object sizes). Zero when
	// unknown.
	Size int64

	// Metadata carries component-specific extras that do not fit the
	// fields above. May be nil.
	Metadata map[string]interface{}
}

// Observer receives completed operations from searchkit clients.
//
// Implementations must be safe for concurrent use; clients call
// ObserveOperation from whatever goroutine performed the work and never
// serialize around it. Implementations should also return quickly: the
// call sits on the client's request path.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// NoopObserver is an Observer that discards everything. It exists so
// call sites can hold a non-nil Observer unconditionally.
type NoopObserver struct{}

// ObserveOperation implements Observer.
func (NoopObserver) ObserveOperation(ctx OperationContext) {}

// ObserveDuration is a small helper for the common report-at-defer shape:
//
//	defer observability.ObserveDuration(obs, observability.OperationContext{
//	    Component: "minio",
//	    Operation: "put_object",
//	    Resource:  bucket,
//	}, time.Now(), &err)
//
// It fills Duration from start and Error from *errp at call time, then
// forwards to obs. A nil obs or nil errp is tolerated.
func ObserveDuration(obs Observer, ctx OperationContext, start time.Time, errp *error) {
	if obs == nil {
		return
	}
	ctx.Duration = time.Since(start)
	if errp != nil {
		ctx.Error = *errp
	}
	obs.ObserveOperation(ctx)
}
