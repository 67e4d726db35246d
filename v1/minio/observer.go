package minio

import (
	"time"

	"github.com/Aleph-Alpha/trek/v1/observability"
)

// observeOperation notifies the observer about an operation if one is configured.
//
// Notes:
//   - resource: bucket name
//   - subResource: object key
func (e *Exporter) observeOperation(operation, subResource string, duration time.Duration, err error, size int64) {
	if e == nil || e.observer == nil {
		return
	}

	e.observer.ObserveOperation(observability.OperationContext{
		Component:   "minio",
		Operation:   operation,
		Resource:    e.cfg.Connection.BucketName,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
	})
}
