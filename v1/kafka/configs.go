package kafka

import (
	"time"

	"github.com/Aleph-Alpha/trek/v1/logger"
	"github.com/Aleph-Alpha/trek/v1/spanrecord"
)

const (
	// DefaultTopic is used when Config.Topic is empty.
	DefaultTopic = "trek-spans"

	// DefaultRequiredAcks waits for the leader only.
	DefaultRequiredAcks = 1

	// DefaultBatchSize is the number of messages buffered before a batch is sent.
	DefaultBatchSize = 100

	// DefaultBatchTimeout is the longest a message waits for its batch to fill.
	DefaultBatchTimeout = 100 * time.Millisecond

	// DefaultMaxAttempts is the number of delivery attempts per batch.
	DefaultMaxAttempts = 3

	// DefaultWriteTimeout bounds a single produce request.
	DefaultWriteTimeout = 10 * time.Second
)

// Config defines the configuration of the Kafka span exporter.
type Config struct {
	// Brokers is the list of bootstrap broker addresses
	Brokers []string `yaml:"brokers" envconfig:"KAFKA_BROKERS"`

	// Topic receives one message per span, keyed by trace id
	Topic string `yaml:"topic" envconfig:"KAFKA_TOPIC"`

	// Encoding selects the message value format. Defaults to JSON records.
	Encoding spanrecord.Encoding `yaml:"encoding" envconfig:"KAFKA_ENCODING"`

	// RequiredAcks: 0 none, 1 leader, -1 all in-sync replicas
	RequiredAcks int `yaml:"required_acks" envconfig:"KAFKA_REQUIRED_ACKS"`

	BatchSize    int           `yaml:"batch_size" envconfig:"KAFKA_BATCH_SIZE"`
	BatchTimeout time.Duration `yaml:"batch_timeout" envconfig:"KAFKA_BATCH_TIMEOUT"`
	MaxAttempts  int           `yaml:"max_attempts" envconfig:"KAFKA_MAX_ATTEMPTS"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"KAFKA_WRITE_TIMEOUT"`

	// CompressionCodec is one of "gzip", "snappy", "lz4", "zstd" or empty
	CompressionCodec string `yaml:"compression_codec" envconfig:"KAFKA_COMPRESSION_CODEC"`

	TLS  TLSConfig  `yaml:"tls"`
	SASL SASLConfig `yaml:"sasl"`

	// Logger receives the writer's internal errors. Optional.
	Logger logger.Logger `yaml:"-" envconfig:"-"`
}

// TLSConfig configures TLS towards the brokers.
type TLSConfig struct {
	Enabled            bool   `yaml:"enabled" envconfig:"KAFKA_TLS_ENABLED"`
	CACertPath         string `yaml:"ca_cert_path" envconfig:"KAFKA_TLS_CA_CERT_PATH"`
	ClientCertPath     string `yaml:"client_cert_path" envconfig:"KAFKA_TLS_CLIENT_CERT_PATH"`
	ClientKeyPath      string `yaml:"client_key_path" envconfig:"KAFKA_TLS_CLIENT_KEY_PATH"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify" envconfig:"KAFKA_TLS_INSECURE_SKIP_VERIFY"`
}

// SASLConfig configures SASL authentication.
type SASLConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"KAFKA_SASL_ENABLED"`

	// Mechanism is one of "PLAIN", "SCRAM-SHA-256" or "SCRAM-SHA-512"
	Mechanism string `yaml:"mechanism" envconfig:"KAFKA_SASL_MECHANISM"`
	Username  string `yaml:"username" envconfig:"KAFKA_SASL_USERNAME"`
	Password  string `yaml:"password" envconfig:"KAFKA_SASL_PASSWORD"`
}

func (c Config) withDefaults() Config {
	if c.Topic == "" {
		c.Topic = DefaultTopic
	}
	if c.RequiredAcks == 0 {
		c.RequiredAcks = DefaultRequiredAcks
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.BatchTimeout == 0 {
		c.BatchTimeout = DefaultBatchTimeout
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	return c
}
