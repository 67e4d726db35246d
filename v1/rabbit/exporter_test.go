package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/trek/v1/observability"
	"github.com/Aleph-Alpha/trek/v1/spanrecord"
)

// fakeConfirmation is completed by the test.
type fakeConfirmation struct {
	acked chan bool
}

func (c *fakeConfirmation) WaitContext(ctx context.Context) (bool, error) {
	select {
	case ok := <-c.acked:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

type fakePublisher struct {
	mu         sync.Mutex
	published  []amqp.Publishing
	confirms   []*fakeConfirmation
	publishErr error
	closed     int
	ack        *bool
}

func (p *fakePublisher) Publish(_ context.Context, _, _ string, msg amqp.Publishing) (confirmation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.publishErr != nil {
		return nil, p.publishErr
	}
	p.published = append(p.published, msg)
	c := &fakeConfirmation{acked: make(chan bool, 1)}
	if p.ack != nil {
		c.acked <- *p.ack
	}
	p.confirms = append(p.confirms, c)
	return c, nil
}

func (p *fakePublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed++
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

func (p *fakePublisher) confirm(i int, ok bool) {
	p.mu.Lock()
	c := p.confirms[i]
	p.mu.Unlock()
	c.acked <- ok
}

type recordingObserver struct {
	mu  sync.Mutex
	ops []observability.OperationContext
}

func (o *recordingObserver) ObserveOperation(ctx observability.OperationContext) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, ctx)
}

func (o *recordingObserver) operations() []observability.OperationContext {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]observability.OperationContext{}, o.ops...)
}

func testExporter(t *testing.T, pub publisher) *Exporter {
	t.Helper()
	enc, err := spanrecord.NewEncoder(spanrecord.EncodingJSON)
	require.NoError(t, err)
	cfg := Config{Channel: Channel{ExchangeName: "spans"}, ConfirmTimeout: 200 * time.Millisecond}.withDefaults()
	return newExporter(cfg, enc, pub)
}

func testSpan(t *testing.T) sdktrace.ReadOnlySpan {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	return tracetest.SpanStub{
		Name: "fetch",
		SpanContext: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    traceID,
			SpanID:     spanID,
			TraceFlags: trace.FlagsSampled,
		}),
		StartTime: time.Unix(0, 1000),
		EndTime:   time.Unix(0, 1500),
	}.Snapshot()
}

func wait(t *testing.T, r interface{ Wait(context.Context) error }) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.Wait(ctx)
}

func TestExporter_ExportCompletesOnAck(t *testing.T) {
	t.Parallel()
	pub := &fakePublisher{}
	obs := &recordingObserver{}
	exp := testExporter(t, pub).WithObserver(obs)

	res := exp.Export([]sdktrace.ReadOnlySpan{testSpan(t)})
	require.Eventually(t, func() bool { return pub.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, res.IsDone())

	pub.confirm(0, true)
	require.NoError(t, wait(t, res))

	msg := pub.published[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, MessageType, msg.Type)
	assert.NotEmpty(t, msg.MessageId)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", msg.Headers["trace_id"])
	assert.Equal(t, "fetch", msg.Headers["span_name"])

	var rec spanrecord.Record
	require.NoError(t, json.Unmarshal(msg.Body, &rec))
	assert.Equal(t, "00f067aa0ba902b7", rec.SpanID)

	ops := obs.operations()
	require.Len(t, ops, 1)
	assert.Equal(t, "rabbit", ops[0].Component)
	assert.Equal(t, "publish", ops[0].Operation)
	assert.Equal(t, "spans", ops[0].Resource)
	assert.Equal(t, DefaultRoutingKey, ops[0].SubResource)
	assert.EqualValues(t, len(msg.Body), ops[0].Size)
}

func TestExporter_ExportFailsOnNack(t *testing.T) {
	t.Parallel()
	nack := false
	exp := testExporter(t, &fakePublisher{ack: &nack})

	err := wait(t, exp.Export([]sdktrace.ReadOnlySpan{testSpan(t)}))

	assert.ErrorIs(t, err, ErrNacked)
}

func TestExporter_ExportFailsWithoutConfirm(t *testing.T) {
	t.Parallel()
	exp := testExporter(t, &fakePublisher{})

	err := wait(t, exp.Export([]sdktrace.ReadOnlySpan{testSpan(t)}))

	assert.ErrorIs(t, err, ErrConfirmTimeout)
}

func TestExporter_ExportFailsWhenPublishFails(t *testing.T) {
	t.Parallel()
	cause := errors.New("channel/connection is not open")
	exp := testExporter(t, &fakePublisher{publishErr: cause})

	err := wait(t, exp.Export([]sdktrace.ReadOnlySpan{testSpan(t)}))

	assert.ErrorIs(t, err, cause)
}

func TestExporter_ExportMultipleSpans(t *testing.T) {
	t.Parallel()
	ack := true
	pub := &fakePublisher{ack: &ack}
	exp := testExporter(t, pub)
	span := testSpan(t)

	require.NoError(t, wait(t, exp.Export([]sdktrace.ReadOnlySpan{span, span, span})))
	assert.Equal(t, 3, pub.count())
}

func TestExporter_FlushWaitsForConfirms(t *testing.T) {
	t.Parallel()
	pub := &fakePublisher{}
	exp := testExporter(t, pub)

	res := exp.Export([]sdktrace.ReadOnlySpan{testSpan(t)})
	require.Eventually(t, func() bool { return pub.count() == 1 }, time.Second, 5*time.Millisecond)
	flushed := exp.Flush()
	assert.False(t, flushed.IsDone())

	pub.confirm(0, true)

	require.NoError(t, wait(t, flushed))
	assert.True(t, res.IsSuccess())
}

func TestExporter_ShutdownClosesOnceAndRejectsExports(t *testing.T) {
	t.Parallel()
	ack := true
	pub := &fakePublisher{ack: &ack}
	exp := testExporter(t, pub)

	require.NoError(t, wait(t, exp.Export([]sdktrace.ReadOnlySpan{testSpan(t)})))
	first := exp.Shutdown()
	second := exp.Shutdown()

	require.NoError(t, wait(t, first))
	assert.Same(t, first, second)
	assert.Equal(t, 1, pub.closed)

	assert.ErrorIs(t, exp.Export([]sdktrace.ReadOnlySpan{testSpan(t)}).Err(), ErrClosed)
}

func TestExporter_RetryConnectionWithoutConnectionReturns(t *testing.T) {
	t.Parallel()
	exp := testExporter(t, &fakePublisher{})

	done := make(chan struct{})
	go func() {
		exp.RetryConnection()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RetryConnection did not return")
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	t.Parallel()

	cfg := Config{}.withDefaults()

	assert.Equal(t, DefaultExchangeType, cfg.Channel.ExchangeType)
	assert.Equal(t, DefaultRoutingKey, cfg.Channel.RoutingKey)
	assert.Equal(t, DefaultConfirmTimeout, cfg.ConfirmTimeout)
	assert.Equal(t, DefaultPublishTimeout, cfg.PublishTimeout)
	assert.Equal(t, DefaultDelayToReconnect, cfg.Connection.DelayToReconnect)
}
