package processor

// Config controls which spans the processor hands to its exporter.
type Config struct {
	// ExportUnsampled disables the sampling filter. By default only spans
	// whose sampled flag is set are exported; recorded-but-unsampled spans
	// are still logged on start but dropped on end.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "export_unsampled" key
	//   - Environment variable TREK_EXPORT_UNSAMPLED
	//
	// Default: false
	ExportUnsampled bool `yaml:"export_unsampled" envconfig:"TREK_EXPORT_UNSAMPLED"`
}
