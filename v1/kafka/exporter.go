package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Aleph-Alpha/trek/v1/processor"
	"github.com/Aleph-Alpha/trek/v1/result"
)

var _ processor.Exporter = (*Exporter)(nil)

// delivery travels with a message through the writer.
type delivery struct {
	res      *result.Result
	spanName string
	queued   time.Time
}

// Export encodes each span and hands it to the async writer, keyed by trace
// id so that the spans of one trace land in one partition. The result
// completes when the writer reports the delivery of every message.
func (e *Exporter) Export(spans []sdktrace.ReadOnlySpan) *result.Result {
	if e.closed.Load() {
		return result.Failure(ErrClosed)
	}

	msgs := make([]kafka.Message, 0, len(spans))
	results := make([]*result.Result, 0, len(spans))
	for _, s := range spans {
		value, err := e.encoder.Encode(s)
		if err != nil {
			results = append(results, result.Failure(err))
			continue
		}

		sc := s.SpanContext()
		res := e.inflight.Track(result.New())
		results = append(results, res)
		msgs = append(msgs, kafka.Message{
			Key:   []byte(sc.TraceID().String()),
			Value: value,
			Headers: []kafka.Header{
				{Key: "content-type", Value: []byte(e.encoder.ContentType())},
				{Key: "span_id", Value: []byte(sc.SpanID().String())},
				{Key: "span_name", Value: []byte(s.Name())},
			},
			WriterData: &delivery{res: res, spanName: s.Name(), queued: time.Now()},
		})
	}

	if len(msgs) > 0 {
		// Async writers only return errors for messages they did not accept.
		if err := e.writer.WriteMessages(context.Background(), msgs...); err != nil {
			e.onCompletion(msgs, fmt.Errorf("failed to enqueue span: %w", err))
		}
	}

	if len(results) == 1 {
		return results[0]
	}
	return result.All(results...)
}

// onCompletion is the writer's completion callback.
func (e *Exporter) onCompletion(messages []kafka.Message, err error) {
	for _, m := range messages {
		d, ok := m.WriterData.(*delivery)
		if !ok {
			continue
		}
		if d.res.Complete(err) {
			e.observeOperation("produce", e.cfg.Topic, d.spanName, time.Since(d.queued), err, int64(len(m.Value)))
		}
	}
}

// Flush completes once every message handed to the writer so far has been
// delivered or has failed.
func (e *Exporter) Flush() *result.Result {
	return e.inflight.Settled()
}

// Shutdown stops accepting spans and closes the writer, which delivers the
// buffered messages first. Messages the writer never reported on fail with
// ErrClosed. Later calls return the result of the first.
func (e *Exporter) Shutdown() *result.Result {
	e.shutdownOnce.Do(func() {
		e.closed.Store(true)
		e.shutdown = result.Go(func() error {
			err := e.writer.Close()
			for _, res := range e.inflight.Snapshot() {
				res.Fail(ErrClosed)
			}
			return err
		})
	})
	return e.shutdown
}
