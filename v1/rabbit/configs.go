package rabbit

import (
	"time"

	"github.com/Aleph-Alpha/trek/v1/spanrecord"
)

const (
	// DefaultExchangeType is used when Channel.ExchangeType is empty.
	DefaultExchangeType = "topic"

	// DefaultRoutingKey is used when Channel.RoutingKey is empty.
	DefaultRoutingKey = "trek.spans"

	// DefaultConfirmTimeout bounds the wait for a broker confirm.
	DefaultConfirmTimeout = 10 * time.Second

	// DefaultPublishTimeout bounds a single publish call.
	DefaultPublishTimeout = 5 * time.Second

	// DefaultDelayToReconnect is the pause between reconnection attempts.
	DefaultDelayToReconnect = time.Second
)

// Config defines the configuration of the RabbitMQ span exporter.
type Config struct {
	// Connection contains the settings needed to establish a connection to the RabbitMQ server
	Connection Connection `yaml:"connection"`

	// Channel contains configuration for the exchange and queue spans are published to
	Channel Channel `yaml:"channel"`

	// Encoding selects the message body format. Defaults to JSON records.
	Encoding spanrecord.Encoding `yaml:"encoding" envconfig:"RABBITMQ_ENCODING"`

	// PublishTimeout bounds a single publish call
	PublishTimeout time.Duration `yaml:"publish_timeout" envconfig:"RABBITMQ_PUBLISH_TIMEOUT"`

	// ConfirmTimeout bounds the wait for the broker to confirm a message.
	// A message that is not confirmed in time fails its export.
	ConfirmTimeout time.Duration `yaml:"confirm_timeout" envconfig:"RABBITMQ_CONFIRM_TIMEOUT"`
}

// Connection contains the configuration parameters needed to establish
// a connection to a RabbitMQ server, including authentication and TLS settings.
type Connection struct {
	// Host is the RabbitMQ server hostname or IP address
	Host string `yaml:"host" envconfig:"RABBITMQ_HOST"`

	// Port is the RabbitMQ server port (typically 5672 for non-SSL, 5671 for SSL)
	Port uint `yaml:"port" envconfig:"RABBITMQ_PORT"`

	User     string `yaml:"user" envconfig:"RABBITMQ_USER"`
	Password string `yaml:"password" envconfig:"RABBITMQ_PASSWORD"`

	// IsSSLEnabled determines whether to use SSL/TLS for the connection
	IsSSLEnabled bool `yaml:"is_ssl_enabled" envconfig:"RABBITMQ_SSL_ENABLED"`

	// UseCert enables client certificate authentication. Requires IsSSLEnabled.
	UseCert bool `yaml:"use_cert" envconfig:"RABBITMQ_USE_CERT"`

	CACertPath     string `yaml:"ca_cert_path" envconfig:"RABBITMQ_CA_CERT_PATH"`
	ClientCertPath string `yaml:"client_cert_path" envconfig:"RABBITMQ_CLIENT_CERT_PATH"`
	ClientKeyPath  string `yaml:"client_key_path" envconfig:"RABBITMQ_CLIENT_KEY_PATH"`

	// ServerName is the server name to use for TLS verification
	ServerName string `yaml:"server_name" envconfig:"RABBITMQ_SERVER_NAME"`

	// DelayToReconnect is the pause between reconnection attempts
	DelayToReconnect time.Duration `yaml:"delay_to_reconnect" envconfig:"RABBITMQ_DELAY_TO_RECONNECT"`
}

// Channel configures where spans are published.
type Channel struct {
	// ExchangeName is the exchange spans are published to
	ExchangeName string `yaml:"exchange_name" envconfig:"RABBITMQ_EXCHANGE_NAME"`

	// ExchangeType defines the routing behavior of the exchange
	// Common values: "direct", "fanout", "topic", "headers"
	ExchangeType string `yaml:"exchange_type" envconfig:"RABBITMQ_EXCHANGE_TYPE"`

	// RoutingKey is attached to every published span
	RoutingKey string `yaml:"routing_key" envconfig:"RABBITMQ_ROUTING_KEY"`

	// QueueName, when set together with DeclareTopology, is declared and bound
	// to the exchange so that spans are retained before a consumer attaches.
	QueueName string `yaml:"queue_name" envconfig:"RABBITMQ_QUEUE_NAME"`

	// DeclareTopology declares the exchange (and queue) on connect.
	// Leave false when the topology is managed elsewhere.
	DeclareTopology bool `yaml:"declare_topology" envconfig:"RABBITMQ_DECLARE_TOPOLOGY"`
}

func (c Config) withDefaults() Config {
	if c.Channel.ExchangeType == "" {
		c.Channel.ExchangeType = DefaultExchangeType
	}
	if c.Channel.RoutingKey == "" {
		c.Channel.RoutingKey = DefaultRoutingKey
	}
	if c.PublishTimeout <= 0 {
		c.PublishTimeout = DefaultPublishTimeout
	}
	if c.ConfirmTimeout <= 0 {
		c.ConfirmTimeout = DefaultConfirmTimeout
	}
	if c.Connection.DelayToReconnect <= 0 {
		c.Connection.DelayToReconnect = DefaultDelayToReconnect
	}
	return c
}
