package rabbit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/multierr"

	"github.com/Aleph-Alpha/trek/v1/processor"
	"github.com/Aleph-Alpha/trek/v1/result"
)

// MessageType is set as the AMQP type of every published span.
const MessageType = "trek.span"

var _ processor.Exporter = (*Exporter)(nil)

// Export publishes each span on a background goroutine. The returned result
// completes when the broker has confirmed every message, and fails if any
// message was nacked, not confirmed within ConfirmTimeout, or not published.
func (e *Exporter) Export(spans []sdktrace.ReadOnlySpan) *result.Result {
	if e.closed.Load() {
		return result.Failure(ErrClosed)
	}

	results := make([]*result.Result, 0, len(spans))
	for _, s := range spans {
		results = append(results, e.publishSpan(s))
	}
	if len(results) == 1 {
		return results[0]
	}
	return result.All(results...)
}

func (e *Exporter) publishSpan(s sdktrace.ReadOnlySpan) *result.Result {
	body, err := e.encoder.Encode(s)
	if err != nil {
		return result.Failure(err)
	}

	sc := s.SpanContext()
	msg := amqp.Publishing{
		ContentType:  e.encoder.ContentType(),
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now(),
		Type:         MessageType,
		Headers: amqp.Table{
			"trace_id":  sc.TraceID().String(),
			"span_id":   sc.SpanID().String(),
			"span_name": s.Name(),
		},
		Body: body,
	}

	return e.inflight.Track(result.Go(func() error {
		start := time.Now()
		err := e.publishAndConfirm(msg)
		e.observeOperation("publish", e.cfg.Channel.ExchangeName, e.cfg.Channel.RoutingKey, time.Since(start), err, int64(len(body)))
		return err
	}))
}

func (e *Exporter) publishAndConfirm(msg amqp.Publishing) error {
	e.mu.RLock()
	pub := e.pub
	e.mu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.PublishTimeout)
	defer cancel()
	conf, err := pub.Publish(ctx, e.cfg.Channel.ExchangeName, e.cfg.Channel.RoutingKey, msg)
	if err != nil {
		return fmt.Errorf("failed to publish span: %w", err)
	}

	waitCtx, waitCancel := context.WithTimeout(context.Background(), e.cfg.ConfirmTimeout)
	defer waitCancel()
	acked, err := conf.WaitContext(waitCtx)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrConfirmTimeout
	case err != nil:
		return fmt.Errorf("failed to wait for confirm: %w", err)
	case !acked:
		return ErrNacked
	}
	return nil
}

// Flush completes once every message published so far has been confirmed
// or has failed.
func (e *Exporter) Flush() *result.Result {
	return e.inflight.Settled()
}

// Shutdown stops accepting spans, waits for outstanding confirms and closes
// the channel and connection. Later calls return the result of the first.
func (e *Exporter) Shutdown() *result.Result {
	e.shutdownOnce.Do(func() {
		e.closed.Store(true)
		close(e.shutdownSignal)
		e.logInfo("shutting down RabbitMQ span exporter", map[string]interface{}{
			"pending_publishes": e.inflight.Len(),
		})
		e.shutdown = result.Then(e.Flush(), func() *result.Result {
			return result.Go(e.closeConnection)
		})
	})
	return e.shutdown
}

func (e *Exporter) closeConnection() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var errs error
	if e.pub != nil {
		errs = multierr.Append(errs, e.pub.Close())
	}
	if e.conn != nil && !e.conn.IsClosed() {
		errs = multierr.Append(errs, e.conn.Close())
	}
	return errs
}
