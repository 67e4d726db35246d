// Package postgres provides a span exporter that stores finished spans as
// rows of the trek_spans table using GORM.
//
// Rows are spanrecord.Record values keyed by (trace_id, span_id). Inserts use
// ON CONFLICT DO NOTHING, so exporting the same span twice leaves one row.
// Set Config.AutoMigrate to create the table on start.
//
// Inserts run on an errgroup limited to MaxConcurrentWrites; when the limit is
// reached the span fails with ErrTooManyWrites instead of blocking OnEnd.
//
// The connection is held in an atomic pointer. MonitorConnection pings the
// database every HealthCheckInterval and RetryConnection swaps in a fresh
// connection after a failed ping. FXModule runs both loops.
//
// Basic usage:
//
//	exp, err := postgres.NewExporter(postgres.Config{
//		Connection: postgres.Connection{
//			Host:     "localhost",
//			Port:     "5432",
//			User:     "postgres",
//			Password: "secret",
//			DbName:   "traces",
//		},
//		AutoMigrate: true,
//	})
//	if err != nil {
//		return err
//	}
//	proc, err := processor.NewProcessor(processor.Config{}, exp, log)
package postgres
