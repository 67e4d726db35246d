package rabbit

import (
	"time"

	"github.com/Aleph-Alpha/trek/v1/observability"
)

// observeOperation notifies the observer about an operation if one is configured.
func (e *Exporter) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64) {
	if e.observer != nil {
		e.observer.ObserveOperation(observability.OperationContext{
			Component:   "rabbit",
			Operation:   operation,
			Resource:    resource,
			SubResource: subResource,
			Duration:    duration,
			Error:       err,
			Size:        size,
		})
	}
}
