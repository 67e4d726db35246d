package logger

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// DefaultOutputPath is used when Config.OutputPaths is empty.
const DefaultOutputPath = "stderr"

// Config defines the logger configuration.
type Config struct {
	// Level is one of Debug, Info, Warning or Error.
	// 1. production -> INFO
	// 2. development -> DEBUG
	// else -> INFO
	Level string `yaml:"level" envconfig:"ZAP_LOGGER_LEVEL"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name" envconfig:"LOGGER_SERVICE_NAME"`

	// OutputPaths lists the destinations entries are written to. Each entry is
	// a path understood by zap.Open ("stderr", "stdout", a file path or a
	// registered sink URL). Every destination becomes one flushable handler.
	//
	// Default: ["stderr"]
	OutputPaths []string `yaml:"output_paths" envconfig:"LOGGER_OUTPUT_PATHS"`

	// CallerSkip is the number of stack frames to skip when reporting the
	// caller. Default 1 works for direct usage of this package.
	CallerSkip int `yaml:"caller_skip" envconfig:"LOGGER_CALLER_SKIP"`
}
