package tracer

import "time"

// Backend names accepted by Config.Exporter.
const (
	ExporterOTLP   = "otlp"
	ExporterStdout = "stdout"
)

// DefaultExportTimeout bounds one call into an OTLP or stdout exporter.
const DefaultExportTimeout = 10 * time.Second

// Config defines the tracer provider and the OTel-native export backends.
type Config struct {
	// ServiceName is set as the service.name resource attribute
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv is set as the deployment.environment resource attribute
	AppEnv string `yaml:"app_env" envconfig:"APP_ENV"`

	// Exporter selects the backend built by NewExporter: "otlp" or "stdout".
	Exporter string `yaml:"exporter" envconfig:"TRACER_EXPORTER"`

	// OTLP configures the OTLP/HTTP backend. Empty fields fall back to the
	// OTEL_EXPORTER_OTLP_* environment variables read by otlptracehttp.
	OTLP OTLPConfig `yaml:"otlp"`

	// PrettyPrint indents the output of the stdout backend
	PrettyPrint bool `yaml:"pretty_print" envconfig:"TRACER_PRETTY_PRINT"`

	// ExportTimeout bounds a single export, flush or shutdown call
	ExportTimeout time.Duration `yaml:"export_timeout" envconfig:"TRACER_EXPORT_TIMEOUT"`
}

// OTLPConfig configures the OTLP/HTTP client.
type OTLPConfig struct {
	Endpoint string            `yaml:"endpoint" envconfig:"TRACER_OTLP_ENDPOINT"`
	URLPath  string            `yaml:"url_path" envconfig:"TRACER_OTLP_URL_PATH"`
	Insecure bool              `yaml:"insecure" envconfig:"TRACER_OTLP_INSECURE"`
	Headers  map[string]string `yaml:"headers" envconfig:"TRACER_OTLP_HEADERS"`
	Gzip     bool              `yaml:"gzip" envconfig:"TRACER_OTLP_GZIP"`
}

func (c Config) withDefaults() Config {
	if c.ExportTimeout <= 0 {
		c.ExportTimeout = DefaultExportTimeout
	}
	if c.Exporter == "" {
		c.Exporter = ExporterOTLP
	}
	return c
}
