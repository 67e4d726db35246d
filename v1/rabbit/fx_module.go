package rabbit

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/trek/v1/logger"
	"github.com/Aleph-Alpha/trek/v1/observability"
	"github.com/Aleph-Alpha/trek/v1/processor"
)

// FXModule provides the RabbitMQ span exporter as the processor.Exporter and
// keeps its connection alive for the lifetime of the application.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    rabbit.FXModule,
//	    processor.FXModule,
//	    fx.Provide(func() rabbit.Config { return loadRabbitConfig() }),
//	)
var FXModule = fx.Module("rabbit",
	fx.Provide(
		NewExporterWithDI,
		func(e *Exporter) processor.Exporter { return e },
	),
	fx.Invoke(RegisterRabbitLifecycle),
)

// RabbitParams groups the dependencies needed to create the exporter.
type RabbitParams struct {
	fx.In

	Config   Config
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewExporterWithDI creates the exporter and injects the optional logger and observer.
func NewExporterWithDI(params RabbitParams) (*Exporter, error) {
	e, err := NewExporter(params.Config)
	if err != nil {
		return nil, err
	}
	if params.Logger != nil {
		e.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		e.WithObserver(params.Observer)
	}
	return e, nil
}

// RegisterRabbitLifecycle starts the reconnect loop on start and shuts the
// exporter down on stop.
func RegisterRabbitLifecycle(lc fx.Lifecycle, e *Exporter) {
	wg := &sync.WaitGroup{}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				e.RetryConnection()
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			err := e.Shutdown().Wait(ctx)
			wg.Wait()
			return err
		},
	})
}
