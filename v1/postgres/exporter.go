package postgres

import (
	"context"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Aleph-Alpha/trek/v1/processor"
	"github.com/Aleph-Alpha/trek/v1/result"
	"github.com/Aleph-Alpha/trek/v1/spanrecord"
)

var _ processor.Exporter = (*Exporter)(nil)

// Export inserts the batch with a single statement on a background goroutine.
// Spans already stored are skipped without failing the result.
func (e *Exporter) Export(spans []sdktrace.ReadOnlySpan) *result.Result {
	if len(spans) == 0 {
		return result.Success()
	}
	records := make([]spanrecord.Record, 0, len(spans))
	for _, s := range spans {
		records = append(records, spanrecord.FromSpan(s))
	}

	res := result.New()
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return result.Failure(ErrClosed)
	}

	started := e.writes.TryGo(func() error {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), e.cfg.WriteTimeout)
		defer cancel()

		err := e.writer.Insert(ctx, records)
		e.observeOperation("insert", records[0].Name, time.Since(start), err, int64(len(records)))
		res.Complete(err)
		return nil
	})
	if !started {
		return result.Failure(ErrTooManyWrites)
	}
	return e.inflight.Track(res)
}

// Flush completes once every insert started so far has finished.
func (e *Exporter) Flush() *result.Result {
	return e.inflight.Settled()
}

// Shutdown stops admitting inserts, waits for the running ones, stops the
// connection monitor and closes the database.
func (e *Exporter) Shutdown() *result.Result {
	e.shutdownOnce.Do(func() {
		e.mu.Lock()
		e.closed = true
		e.mu.Unlock()
		close(e.shutdownSignal)

		if e.logger != nil {
			e.logger.Info("shutting down Postgres span exporter", nil, map[string]interface{}{
				"pending_writes": e.inflight.Len(),
			})
		}
		e.shutdown = result.Go(func() error {
			_ = e.writes.Wait()
			db := e.client.Swap(nil)
			if db == nil {
				return nil
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
	})
	return e.shutdown
}
