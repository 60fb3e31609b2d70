// Package observability defines the minimal contract between searchkit
// clients and whatever metrics, tracing, or audit backend an application
// plugs in.
//
// Every client in this library (qdrant, rabbit, kafka, minio, postgres,
// redis, and the result-set codecs themselves) reports its operations
// through a single hook: the Observer interface. A client that has no
// observer attached skips reporting entirely, so observation is always
// opt-in and never on the hot path unless requested.
//
// # Architecture
//
// The package is deliberately dependency-free. Concrete observers live
// elsewhere: v1/metrics ships a Prometheus-backed Observer, and
// applications are free to implement their own (for example to feed spans
// into v1/tracer, or to fan out to several backends).
//
// Clients attach an observer with their WithObserver builder method:
//
//	client, err := qdrant.NewClient(cfg)
//	if err != nil {
//	    return err
//	}
//	client = client.WithObserver(metricsObserver)
//
// # Operation Context
//
// Each reported operation carries an OperationContext describing what
// happened: which component, which operation, on which resource, how long
// it took, how large the payload was, and whether it failed. Components
// fill the fields they can; absent values stay zero.
package observability
