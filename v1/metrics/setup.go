package metrics

import (
	"errors"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ErrAlreadyTracking is returned when TrackPending is called a second time.
var ErrAlreadyTracking = errors.New("metrics: pending exports gauge already registered")

// Metrics holds the Prometheus registry, the span export metrics and the HTTP
// server exposing them.
type Metrics struct {
	// Server serves the registry on /metrics.
	Server *http.Server

	// Registry is isolated per instance so that several instances can live
	// in one process.
	Registry *prometheus.Registry

	cfg        Config
	registerer prometheus.Registerer

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	operationSize     *prometheus.CounterVec

	pendingOnce sync.Once
}

var _ MetricsCollector = (*Metrics)(nil)

// NewMetrics creates the registry, registers the span export metrics and,
// when enabled, the default Go collectors. The server is not started.
func NewMetrics(cfg Config) *Metrics {
	cfg = cfg.withDefaults()
	registry := prometheus.NewRegistry()

	var registerer prometheus.Registerer = registry
	if cfg.ServiceName != "" {
		registerer = prometheus.WrapRegistererWith(
			prometheus.Labels{"service": cfg.ServiceName},
			registry,
		)
	}

	m := &Metrics{
		Registry:   registry,
		cfg:        cfg,
		registerer: registerer,
	}

	m.operationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Name:      "span_operations_total",
		Help:      "Completed span export operations by component, operation and status.",
	}, []string{"component", "operation", "status"})
	m.operationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Name:      "span_operation_duration_seconds",
		Help:      "Duration of span export operations in seconds.",
		Buckets:   cfg.DurationBuckets,
	}, []string{"component", "operation"})
	m.operationSize = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Name:      "span_operation_size_total",
		Help:      "Sum of the sizes reported by span export operations (bytes or rows, depending on the component).",
	}, []string{"component", "operation"})

	registerer.MustRegister(m.operationsTotal, m.operationDuration, m.operationSize)

	if cfg.EnableDefaultCollectors {
		registerer.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: mux,
	}
	return m
}

// TrackPending registers a gauge that reads p.PendingExports on every scrape.
// Only one source can be tracked.
func (m *Metrics) TrackPending(p PendingCounter) error {
	err := ErrAlreadyTracking
	m.pendingOnce.Do(func() {
		err = m.registerer.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: m.cfg.Namespace,
			Name:      "span_exports_pending",
			Help:      "Span exports started by the processor that have not completed yet.",
		}, func() float64 {
			return float64(p.PendingExports())
		}))
	})
	return err
}
