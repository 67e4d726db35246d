package metrics

// DefaultMetricsAddress is the listen address used when none is configured.
const DefaultMetricsAddress = ":9090"

// DefaultNamespace prefixes every metric registered by this package.
const DefaultNamespace = "trek"

// Config defines the configuration of the Prometheus metrics server.
type Config struct {
	// Address is where the /metrics endpoint listens, e.g. ":9090" or
	// "127.0.0.1:9100".
	//
	// Default: ":9090"
	Address string `yaml:"address" envconfig:"METRICS_ADDRESS"`

	// EnableDefaultCollectors registers the Go runtime, process and build
	// info collectors.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" envconfig:"METRICS_ENABLE_DEFAULT_COLLECTORS"`

	// Namespace prefixes all metric names.
	//
	// Default: "trek", giving e.g. trek_span_operations_total
	Namespace string `yaml:"namespace" envconfig:"METRICS_NAMESPACE"`

	// ServiceName is added as a constant "service" label to every metric.
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME"`

	// DurationBuckets overrides the histogram buckets, in seconds.
	DurationBuckets []float64 `yaml:"duration_buckets" envconfig:"METRICS_DURATION_BUCKETS"`
}

func (c Config) withDefaults() Config {
	if c.Address == "" {
		c.Address = DefaultMetricsAddress
	}
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if len(c.DurationBuckets) == 0 {
		c.DurationBuckets = []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5, 10}
	}
	return c
}
