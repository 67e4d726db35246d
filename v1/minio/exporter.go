package minio

import (
	"bytes"
	"context"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Aleph-Alpha/trek/v1/processor"
	"github.com/Aleph-Alpha/trek/v1/result"
)

var _ processor.Exporter = (*Exporter)(nil)

// Export uploads each span as its own object on a background goroutine.
// When MaxConcurrentUploads uploads are already running, the span fails with
// ErrTooManyUploads rather than waiting for a slot.
func (e *Exporter) Export(spans []sdktrace.ReadOnlySpan) *result.Result {
	results := make([]*result.Result, 0, len(spans))
	for _, s := range spans {
		results = append(results, e.upload(s))
	}
	if len(results) == 1 {
		return results[0]
	}
	return result.All(results...)
}

func (e *Exporter) upload(s sdktrace.ReadOnlySpan) *result.Result {
	payload, err := e.encoder.Encode(s)
	if err != nil {
		return result.Failure(err)
	}
	key := e.ObjectKey(s)
	sc := s.SpanContext()
	opts := minio.PutObjectOptions{
		ContentType: e.encoder.ContentType(),
		UserMetadata: map[string]string{
			"trace-id":  sc.TraceID().String(),
			"span-id":   sc.SpanID().String(),
			"span-name": s.Name(),
		},
	}

	res := result.New()
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return result.Failure(ErrClosed)
	}

	started := e.uploads.TryGo(func() error {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), e.cfg.UploadTimeout)
		defer cancel()

		_, err := e.client.PutObject(ctx, e.cfg.Connection.BucketName, key,
			bytes.NewReader(payload), int64(len(payload)), opts)
		e.observeOperation("put", key, time.Since(start), err, int64(len(payload)))
		res.Complete(err)
		return nil
	})
	if !started {
		return result.Failure(ErrTooManyUploads)
	}
	return e.inflight.Track(res)
}

// ObjectKey returns the key a span is stored under:
// <prefix>/<yyyy>/<mm>/<dd>/<trace id>/<span id><ext>, dated by the span's
// end time in UTC.
func (e *Exporter) ObjectKey(s sdktrace.ReadOnlySpan) string {
	end := s.EndTime()
	if end.IsZero() {
		end = s.StartTime()
	}
	sc := s.SpanContext()
	return path.Join(
		e.cfg.ObjectPrefix,
		end.UTC().Format("2006/01/02"),
		sc.TraceID().String(),
		sc.SpanID().String()+e.encoder.Extension(),
	)
}

// Flush completes once every upload started so far has finished.
func (e *Exporter) Flush() *result.Result {
	return e.inflight.Settled()
}

// Shutdown stops admitting uploads and waits for the running ones. The MinIO
// client holds no connection of its own, so nothing else is released.
func (e *Exporter) Shutdown() *result.Result {
	e.shutdownOnce.Do(func() {
		e.mu.Lock()
		e.closed = true
		e.mu.Unlock()

		if e.logger != nil {
			e.logger.Info("shutting down MinIO span exporter", nil, map[string]interface{}{
				"pending_uploads": e.inflight.Len(),
			})
		}
		e.shutdown = result.Go(e.uploads.Wait)
	})
	return e.shutdown
}
