package metrics

import "github.com/Aleph-Alpha/trek/v1/observability"

// PendingCounter reports how many exports are in flight. *processor.Processor
// implements it.
type PendingCounter interface {
	PendingExports() int
}

// MetricsCollector turns component notifications into Prometheus metrics.
//
// This interface is implemented by the concrete *Metrics type.
type MetricsCollector interface {
	observability.Observer

	// TrackPending exposes the value of p as the pending exports gauge.
	TrackPending(p PendingCounter) error
}
