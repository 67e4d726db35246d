package processor

import (
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Aleph-Alpha/trek/v1/observability"
)

// observeExport notifies the observer about a finished export if one is configured.
func (p *Processor) observeExport(s sdktrace.ReadOnlySpan, duration time.Duration, err error) {
	if p.observer == nil {
		return
	}
	p.observer.ObserveOperation(observability.OperationContext{
		Component:   "processor",
		Operation:   "export",
		Resource:    s.Name(),
		SubResource: s.SpanContext().SpanID().String(),
		Duration:    duration,
		Error:       err,
		Size:        1,
	})
}
