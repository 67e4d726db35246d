package postgres

import "time"

const (
	// DefaultMaxConcurrentWrites bounds the inserts in flight at once.
	DefaultMaxConcurrentWrites = 16

	// DefaultWriteTimeout bounds a single insert.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultHealthCheckInterval is the pause between connection health checks.
	DefaultHealthCheckInterval = 10 * time.Second
)

// Config defines the configuration of the Postgres span exporter.
type Config struct {
	Connection        Connection        `yaml:"connection"`
	ConnectionDetails ConnectionDetails `yaml:"connection_details"`

	// AutoMigrate creates or updates the span table on start
	AutoMigrate bool `yaml:"auto_migrate" envconfig:"POSTGRES_AUTO_MIGRATE"`

	// MaxConcurrentWrites bounds the inserts in flight. Spans exported while
	// the limit is reached fail with ErrTooManyWrites instead of waiting.
	MaxConcurrentWrites int `yaml:"max_concurrent_writes" envconfig:"POSTGRES_MAX_CONCURRENT_WRITES"`

	// WriteTimeout bounds a single insert
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"POSTGRES_WRITE_TIMEOUT"`

	// HealthCheckInterval is the pause between connection health checks
	HealthCheckInterval time.Duration `yaml:"health_check_interval" envconfig:"POSTGRES_HEALTH_CHECK_INTERVAL"`
}

// Connection holds the parameters of the connection string.
type Connection struct {
	Host     string `yaml:"host" envconfig:"POSTGRES_HOST"`
	Port     string `yaml:"port" envconfig:"POSTGRES_PORT"`
	User     string `yaml:"user" envconfig:"POSTGRES_USER"`
	Password string `yaml:"password" envconfig:"POSTGRES_PASSWORD"`
	DbName   string `yaml:"db_name" envconfig:"POSTGRES_DB_NAME"`
	SSLMode  string `yaml:"ssl_mode" envconfig:"POSTGRES_SSL_MODE"`
}

// ConnectionDetails configures the connection pool. Zero values select
// 50 open connections, 25 idle connections and a one minute lifetime.
type ConnectionDetails struct {
	MaxOpenConns    int           `yaml:"max_open_conns" envconfig:"POSTGRES_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" envconfig:"POSTGRES_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"POSTGRES_CONN_MAX_LIFETIME"`
}

func (c Config) withDefaults() Config {
	if c.MaxConcurrentWrites <= 0 {
		c.MaxConcurrentWrites = DefaultMaxConcurrentWrites
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.HealthCheckInterval <= 0 {
		c.HealthCheckInterval = DefaultHealthCheckInterval
	}
	if c.Connection.SSLMode == "" {
		c.Connection.SSLMode = "disable"
	}
	return c
}

func (c Connection) dsn() string {
	return "host=" + c.Host + " port=" + c.Port + " user=" + c.User +
		" password=" + c.Password + " dbname=" + c.DbName + " sslmode=" + c.SSLMode
}
