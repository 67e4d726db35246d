package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap/zapcore"

	"github.com/Aleph-Alpha/trek/v1/logexporter"
	"github.com/Aleph-Alpha/trek/v1/logger"
	"github.com/Aleph-Alpha/trek/v1/observability"
	"github.com/Aleph-Alpha/trek/v1/processor"
)

type pendingStub int

func (p pendingStub) PendingExports() int { return int(p) }

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestObserveOperation_CountsByStatus(t *testing.T) {
	t.Parallel()
	m := NewMetrics(Config{})

	m.ObserveOperation(observability.OperationContext{Component: "kafka", Operation: "write", Duration: 20 * time.Millisecond, Size: 512})
	m.ObserveOperation(observability.OperationContext{Component: "kafka", Operation: "write", Duration: 10 * time.Millisecond, Size: 256})
	m.ObserveOperation(observability.OperationContext{Component: "kafka", Operation: "write", Error: errors.New("leader not available")})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("kafka", "write", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("kafka", "write", "error")))
	assert.Equal(t, 768.0, testutil.ToFloat64(m.operationSize.WithLabelValues("kafka", "write")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.operationDuration))
}

func TestNewMetrics_ServesNamespacedMetricsWithServiceLabel(t *testing.T) {
	t.Parallel()
	m := NewMetrics(Config{ServiceName: "checkout"})
	require.NoError(t, m.TrackPending(pendingStub(3)))

	m.ObserveOperation(observability.OperationContext{Component: "processor", Operation: "export"})
	body := scrape(t, m)

	assert.Contains(t, body, `trek_span_operations_total{component="processor",operation="export",service="checkout",status="success"} 1`)
	assert.Contains(t, body, `trek_span_exports_pending{service="checkout"} 3`)
	assert.NotContains(t, body, "go_goroutines")
}

func TestNewMetrics_DefaultCollectors(t *testing.T) {
	t.Parallel()
	m := NewMetrics(Config{EnableDefaultCollectors: true, Namespace: "spans"})

	m.ObserveOperation(observability.OperationContext{Component: "minio", Operation: "put"})
	body := scrape(t, m)

	assert.Contains(t, body, "go_goroutines")
	assert.Contains(t, body, "spans_span_operations_total")
}

func TestTrackPending_OnlyOnce(t *testing.T) {
	t.Parallel()
	m := NewMetrics(Config{})

	require.NoError(t, m.TrackPending(pendingStub(1)))
	assert.ErrorIs(t, m.TrackPending(pendingStub(2)), ErrAlreadyTracking)
}

func TestConfig_WithDefaults(t *testing.T) {
	t.Parallel()

	cfg := Config{}.withDefaults()

	assert.Equal(t, DefaultMetricsAddress, cfg.Address)
	assert.Equal(t, DefaultNamespace, cfg.Namespace)
	assert.NotEmpty(t, cfg.DurationBuckets)
}

func TestFXModule_ObservesProcessor(t *testing.T) {
	var m *Metrics
	var observer observability.Observer
	var proc *processor.Processor

	app := fxtest.New(t,
		fx.Provide(
			func() Config { return Config{Address: "127.0.0.1:0"} },
			func() processor.Config { return processor.Config{} },
			func() *logger.LoggerClient {
				return logger.NewLoggerClientWithHandlers(logger.Config{Level: logger.Info}, zapcore.AddSync(io.Discard))
			},
			func(l *logger.LoggerClient) logger.Logger { return l },
			func(l *logger.LoggerClient) processor.Exporter { return logexporter.NewExporter(l) },
		),
		processor.FXModule,
		FXModule,
		ProcessorGauge,
		fx.Populate(&m, &observer, &proc),
	)
	app.RequireStart()

	assert.Same(t, m, observer)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, proc.ForceFlush(ctx))
	assert.Contains(t, scrape(t, m), "trek_span_exports_pending 0")

	app.RequireStop()
}
