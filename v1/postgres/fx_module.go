package postgres

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/trek/v1/logger"
	"github.com/Aleph-Alpha/trek/v1/observability"
	"github.com/Aleph-Alpha/trek/v1/processor"
)

// FXModule provides the Postgres span exporter as the processor.Exporter and
// runs its connection monitor for the lifetime of the application.
var FXModule = fx.Module("postgres",
	fx.Provide(
		NewExporterWithDI,
		func(e *Exporter) processor.Exporter { return e },
	),
	fx.Invoke(RegisterPostgresLifecycle),
)

// PostgresParams groups the dependencies needed to create the exporter.
type PostgresParams struct {
	fx.In

	Config   Config
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewExporterWithDI creates the exporter and injects the optional logger and observer.
func NewExporterWithDI(params PostgresParams) (*Exporter, error) {
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

// RegisterPostgresLifecycle starts the health check and reconnection loops
// on start and shuts the exporter down on stop.
func RegisterPostgresLifecycle(lc fx.Lifecycle, e *Exporter) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// The start context ends with OnStart; the loops stop on Shutdown.
			go e.MonitorConnection(context.Background())
			go e.RetryConnection(context.Background())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown().Wait(ctx)
		},
	})
}
