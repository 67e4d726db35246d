package postgres

import (
	"time"

	"github.com/Aleph-Alpha/trek/v1/observability"
	"github.com/Aleph-Alpha/trek/v1/spanrecord"
)

// observeOperation notifies the observer about an operation if one is configured.
//
// Notes:
//   - resource: span table
//   - subResource: name of the first span in the batch
//   - size: number of rows
func (e *Exporter) observeOperation(operation, subResource string, duration time.Duration, err error, size int64) {
	if e == nil || e.observer == nil {
		return
	}

	e.observer.ObserveOperation(observability.OperationContext{
		Component:   "postgres",
		Operation:   operation,
		Resource:    spanrecord.Record{}.TableName(),
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
	})
}
