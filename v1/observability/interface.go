// Package observability defines the Observer hook that trek components call
// when an operation such as a span export completes.
//
// Components work without an observer. When one is attached, it receives one
// OperationContext per operation and may turn it into metrics, logs or both:
//
//	type MetricsObserver struct{ exports *prometheus.CounterVec }
//
//	func (o *MetricsObserver) ObserveOperation(ctx observability.OperationContext) {
//		status := "success"
//		if ctx.Error != nil {
//			status = "error"
//		}
//		o.exports.WithLabelValues(ctx.Component, ctx.Operation, status).Inc()
//	}
//
// Observer implementations must be safe for concurrent use; export
// completions are reported from whichever goroutine completed them.
package observability

import "time"

// Observer receives notifications about completed operations.
type Observer interface {
	// ObserveOperation is called when an operation completes.
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes one completed operation.
type OperationContext struct {
	// Component identifies the package that performed the operation.
	// Examples: "processor", "kafka", "rabbit", "minio", "postgres"
	Component string

	// Operation describes what was done.
	// Examples: "export", "flush", "shutdown"
	Operation string

	// Resource is the primary resource, e.g. a span name, topic or bucket.
	Resource string

	// SubResource adds detail such as an object key or routing key.
	SubResource string

	// Duration is the time from initiation to completion.
	Duration time.Duration

	// Error is the failure cause, nil on success.
	Error error

	// Size is the amount of data involved (spans, bytes), when known.
	Size int64

	// Metadata carries optional extra context.
	Metadata map[string]interface{}
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}
