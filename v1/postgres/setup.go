package postgres

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Aleph-Alpha/trek/v1/logger"
	"github.com/Aleph-Alpha/trek/v1/observability"
	"github.com/Aleph-Alpha/trek/v1/result"
	"github.com/Aleph-Alpha/trek/v1/spanrecord"
)

// Exporter inserts every exported span as a row of the trek_spans table.
//
// Concurrency: the active *gorm.DB is stored in an atomic pointer and can be
// swapped during reconnection without blocking writers.
type Exporter struct {
	cfg      Config
	client   atomic.Pointer[gorm.DB]
	writer   recordWriter
	observer observability.Observer
	logger   logger.Logger

	writes   *errgroup.Group
	inflight result.Tracker

	// mu orders admission of new writes against Shutdown.
	mu     sync.RWMutex
	closed bool

	shutdownSignal  chan struct{}
	retryChanSignal chan error
	shutdownOnce    sync.Once
	shutdown        *result.Result
}

// NewExporter connects to Postgres and, when AutoMigrate is set, creates the
// span table.
func NewExporter(cfg Config) (*Exporter, error) {
	cfg = cfg.withDefaults()
	conn, err := connectToPostgres(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := conn.AutoMigrate(&spanrecord.Record{}); err != nil {
			return nil, fmt.Errorf("failed to migrate span table: %w", err)
		}
	}

	e := newExporter(cfg, nil)
	e.client.Store(conn)
	e.writer = gormWriter{db: e.DB}
	return e, nil
}

func newExporter(cfg Config, writer recordWriter) *Exporter {
	writes := &errgroup.Group{}
	writes.SetLimit(cfg.MaxConcurrentWrites)
	return &Exporter{
		cfg:             cfg,
		writer:          writer,
		writes:          writes,
		shutdownSignal:  make(chan struct{}),
		retryChanSignal: make(chan error, 1),
	}
}

// WithObserver attaches an observer that is notified once per insert.
func (e *Exporter) WithObserver(observer observability.Observer) *Exporter {
	e.observer = observer
	return e
}

// WithLogger sets the logger used for connection events.
func (e *Exporter) WithLogger(log logger.Logger) *Exporter {
	e.logger = log
	return e
}

// DB returns the current connection, or nil when not connected.
func (e *Exporter) DB() *gorm.DB {
	return e.client.Load()
}

// connectToPostgres opens a gorm connection and configures its pool.
func connectToPostgres(cfg Config) (*gorm.DB, error) {
	database, err := gorm.Open(
		postgres.Open(cfg.Connection.dsn()),
		&gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgresSQL database: %w", err)
	}

	databaseInstance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get PostgresSQL database instance: %w", err)
	}

	maxOpen := cfg.ConnectionDetails.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 50
	}
	maxIdle := cfg.ConnectionDetails.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 25
	}
	maxLifetime := cfg.ConnectionDetails.ConnMaxLifetime
	if maxLifetime == 0 {
		maxLifetime = 1 * time.Minute
	}

	databaseInstance.SetMaxOpenConns(maxOpen)
	databaseInstance.SetMaxIdleConns(maxIdle)
	databaseInstance.SetConnMaxLifetime(maxLifetime)

	return database, nil
}

// RetryConnection reconnects whenever MonitorConnection reports a failed
// health check. It returns after Shutdown or when ctx ends.
func (e *Exporter) RetryConnection(ctx context.Context) {
outerLoop:
	for {
		select {
		case <-e.shutdownSignal:
			return
		case <-ctx.Done():
			return
		case err := <-e.retryChanSignal:
			e.logWarn("Postgres health check failed, reconnecting", err)
		innerLoop:
			for {
				select {
				case <-e.shutdownSignal:
					return
				case <-ctx.Done():
					return
				default:
					newConn, err := connectToPostgres(e.cfg)
					if err != nil {
						e.logWarn("Postgres reconnection failed", err)
						time.Sleep(time.Second)
						continue innerLoop
					}
					if old := e.client.Swap(newConn); old != nil {
						if sqlDB, err := old.DB(); err == nil {
							_ = sqlDB.Close()
						}
					}
					e.logInfo("reconnected to Postgres")
					continue outerLoop
				}
			}
		}
	}
}

// MonitorConnection checks the connection every HealthCheckInterval and
// signals RetryConnection when a check fails.
func (e *Exporter) MonitorConnection(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.HealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.shutdownSignal:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := e.healthCheck(); err != nil {
				select {
				case e.retryChanSignal <- err:
				default:
				}
			}
		}
	}
}

func (e *Exporter) healthCheck() error {
	dbConn := e.DB()
	if dbConn == nil {
		return ErrNotConnected
	}

	db, err := dbConn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance during health check: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed during health check: %w", err)
	}
	return nil
}

func (e *Exporter) logInfo(msg string) {
	if e.logger != nil {
		e.logger.Info(msg, nil)
	}
}

func (e *Exporter) logWarn(msg string, err error) {
	if e.logger != nil {
		e.logger.Warn(msg, err)
	}
}
