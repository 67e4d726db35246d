package rabbit

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Aleph-Alpha/trek/v1/logger"
	"github.com/Aleph-Alpha/trek/v1/observability"
	"github.com/Aleph-Alpha/trek/v1/result"
	"github.com/Aleph-Alpha/trek/v1/spanrecord"
)

// Exporter publishes every exported span as one message to a RabbitMQ
// exchange and completes the export when the broker confirms the message.
type Exporter struct {
	cfg      Config
	encoder  spanrecord.Encoder
	logger   logger.Logger
	observer observability.Observer

	// mu protects conn and pub, which are replaced on reconnect
	mu   sync.RWMutex
	conn *amqp.Connection
	pub  publisher

	inflight result.Tracker
	closed   atomic.Bool

	// shutdownSignal is closed when the exporter is being shut down
	shutdownSignal chan struct{}
	shutdownOnce   sync.Once
	shutdown       *result.Result
}

// NewExporter connects to RabbitMQ, enables publisher confirms and, if
// configured, declares the exchange and queue.
//
// Example:
//
//	exp, err := rabbit.NewExporter(rabbit.Config{
//	    Connection: rabbit.Connection{Host: "localhost", Port: 5672, User: "guest", Password: "guest"},
//	    Channel:    rabbit.Channel{ExchangeName: "spans", DeclareTopology: true},
//	})
//	if err != nil {
//	    return err
//	}
//	go exp.RetryConnection()
//	defer exp.Shutdown()
func NewExporter(cfg Config) (*Exporter, error) {
	cfg = cfg.withDefaults()
	enc, err := spanrecord.NewEncoder(cfg.Encoding)
	if err != nil {
		return nil, err
	}

	conn, err := newConnection(cfg)
	if err != nil {
		return nil, err
	}

	ch, err := connectToChannel(conn, cfg)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	e := newExporter(cfg, enc, channelPublisher{ch: ch})
	e.conn = conn
	return e, nil
}

func newExporter(cfg Config, enc spanrecord.Encoder, pub publisher) *Exporter {
	return &Exporter{
		cfg:            cfg,
		encoder:        enc,
		pub:            pub,
		shutdownSignal: make(chan struct{}),
	}
}

// WithLogger sets the logger used for connection events.
func (e *Exporter) WithLogger(log logger.Logger) *Exporter {
	e.logger = log
	return e
}

// WithObserver attaches an observer that is notified once per published span.
func (e *Exporter) WithObserver(observer observability.Observer) *Exporter {
	e.observer = observer
	return e
}

// connectToChannel opens a channel in confirm mode and declares the
// configured topology.
func connectToChannel(conn *amqp.Connection, cfg Config) (*amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	if !cfg.Channel.DeclareTopology {
		return ch, nil
	}

	err = ch.ExchangeDeclare(
		cfg.Channel.ExchangeName,
		cfg.Channel.ExchangeType,
		true,  // Durable
		false, // AutoDelete
		false, // Internal
		false, // NoWait
		nil,   // Arguments
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	if cfg.Channel.QueueName == "" {
		return ch, nil
	}

	_, err = ch.QueueDeclare(
		cfg.Channel.QueueName,
		true,  // Durable
		false, // AutoDelete
		false, // Exclusive
		false, // NoWait
		nil,   // Arguments
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = ch.QueueBind(
		cfg.Channel.QueueName,
		cfg.Channel.RoutingKey,
		cfg.Channel.ExchangeName,
		false, // NoWait
		nil,   // Arguments
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	return ch, nil
}

// RetryConnection watches the connection and re-establishes it, together
// with the confirm channel, whenever it is lost. It returns after Shutdown.
// Run it in its own goroutine.
func (e *Exporter) RetryConnection() {
	for {
		e.mu.RLock()
		conn := e.conn
		e.mu.RUnlock()
		if conn == nil {
			return
		}

		errChan := conn.NotifyClose(make(chan *amqp.Error, 1))

		select {
		case <-e.shutdownSignal:
			return
		case amqpErr := <-errChan:
			if e.closed.Load() {
				return
			}
			var err error
			if amqpErr != nil {
				err = amqpErr
			}
			e.logWarn("RabbitMQ connection closed, reconnecting", err, nil)
			if !e.reconnect() {
				return
			}
		}
	}
}

// reconnect dials until it succeeds or the exporter shuts down.
func (e *Exporter) reconnect() bool {
	for {
		select {
		case <-e.shutdownSignal:
			return false
		default:
		}

		conn, err := newConnection(e.cfg)
		if err != nil {
			e.logWarn("RabbitMQ reconnection failed", err, nil)
			time.Sleep(e.cfg.Connection.DelayToReconnect)
			continue
		}

		ch, err := connectToChannel(conn, e.cfg)
		if err != nil {
			_ = conn.Close()
			e.logWarn("failed to re-establish RabbitMQ channel", err, nil)
			time.Sleep(e.cfg.Connection.DelayToReconnect)
			continue
		}

		e.mu.Lock()
		e.conn = conn
		e.pub = channelPublisher{ch: ch}
		e.mu.Unlock()

		e.logInfo("reconnected to RabbitMQ", nil)
		return true
	}
}

// newConnection dials the broker over plain AMQP, AMQPS, or AMQPS with a
// client certificate. All connections use a 2-second heartbeat.
func newConnection(cfg Config) (*amqp.Connection, error) {
	c := cfg.Connection
	scheme := "amqp"
	amqpCfg := amqp.Config{Heartbeat: 2 * time.Second}

	if c.IsSSLEnabled {
		scheme = "amqps"
		if c.UseCert {
			tlsConfig, err := createTLSConfig(c)
			if err != nil {
				return nil, err
			}
			amqpCfg.TLSClientConfig = tlsConfig
		}
	}

	hostURL := fmt.Sprintf("%s://%v:%v@%v:%v", scheme, c.User, c.Password, c.Host, c.Port)
	conn, err := amqp.DialConfig(hostURL, amqpCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	return conn, nil
}

func createTLSConfig(c Connection) (*tls.Config, error) {
	caCert, err := os.ReadFile(c.CACertPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA cert: %w", err)
	}
	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("failed to parse CA cert")
	}

	cert, err := tls.LoadX509KeyPair(c.ClientCertPath, c.ClientKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load client cert: %w", err)
	}

	return &tls.Config{
		RootCAs:      caCertPool,
		Certificates: []tls.Certificate{cert},
		ServerName:   c.ServerName,
	}, nil
}

func (e *Exporter) logInfo(msg string, fields map[string]interface{}) {
	if e.logger != nil {
		e.logger.Info(msg, nil, fields)
	}
}

func (e *Exporter) logWarn(msg string, err error, fields map[string]interface{}) {
	if e.logger != nil {
		e.logger.Warn(msg, err, fields)
	}
}
