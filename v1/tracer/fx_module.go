package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/trek/v1/logger"
	"github.com/Aleph-Alpha/trek/v1/processor"
)

// FXModule provides the *Tracer built around the application's
// *processor.Processor and shuts its provider down when the application stops.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.ExporterFXModule, // or kafka.FXModule, minio.FXModule, ...
//	    processor.FXModule,
//	    tracer.FXModule,
//	    fx.Provide(func() tracer.Config { return tracer.Config{ServiceName: "checkout"} }),
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// ExporterFXModule provides the OTLP or stdout backend selected by
// Config.Exporter as the processor.Exporter.
var ExporterFXModule = fx.Module("tracer-exporter",
	fx.Provide(
		func(cfg Config) (processor.Exporter, error) {
			return NewExporter(context.Background(), cfg)
		},
	),
)

// TracerParams groups the dependencies needed to create the Tracer.
type TracerParams struct {
	fx.In

	Config    Config
	Processor *processor.Processor
}

// NewClientWithDI creates the Tracer from injected dependencies.
func NewClientWithDI(params TracerParams) (*Tracer, error) {
	return NewClient(params.Config, params.Processor)
}

// TracerLifecycleParams groups the dependencies of RegisterTracerLifecycle.
type TracerLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Tracer    *Tracer
	Logger    logger.Logger `optional:"true"`
}

// RegisterTracerLifecycle shuts the tracer provider down on stop, which
// flushes and shuts down the trek processor.
func RegisterTracerLifecycle(params TracerLifecycleParams) {
	t, log := params.Tracer, params.Logger
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if log != nil {
				log.Info("shutting down tracer...", nil)
			}
			return t.Shutdown(ctx)
		},
	})
}
