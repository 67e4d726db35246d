package kafka

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/trek/v1/logger"
	"github.com/Aleph-Alpha/trek/v1/observability"
	"github.com/Aleph-Alpha/trek/v1/processor"
)

// FXModule provides the Kafka span exporter as the processor.Exporter.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    kafka.FXModule,
//	    processor.FXModule,
//	    fx.Provide(func() kafka.Config { return loadKafkaConfig() }),
//	)
var FXModule = fx.Module("kafka",
	fx.Provide(
		NewExporterWithDI,
		func(e *Exporter) processor.Exporter { return e },
	),
	fx.Invoke(RegisterKafkaLifecycle),
)

// KafkaParams groups the dependencies needed to create the exporter.
type KafkaParams struct {
	fx.In

	Config   Config
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewExporterWithDI creates the exporter from injected dependencies. The
// injected logger receives the writer's internal errors unless the config
// already carries one.
func NewExporterWithDI(params KafkaParams) (*Exporter, error) {
	cfg := params.Config
	if cfg.Logger == nil && params.Logger != nil {
		cfg.Logger = params.Logger
	}
	e, err := NewExporter(cfg)
	if err != nil {
		return nil, err
	}
	if params.Observer != nil {
		e.WithObserver(params.Observer)
	}
	return e, nil
}

// RegisterKafkaLifecycle shuts the exporter down when the application stops.
func RegisterKafkaLifecycle(lc fx.Lifecycle, e *Exporter) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return e.Shutdown().Wait(ctx)
		},
	})
}
