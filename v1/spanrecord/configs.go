package spanrecord

// Encoding selects the payload format produced by an Encoder.
type Encoding string

const (
	// EncodingJSON encodes a span as a JSON Record.
	EncodingJSON Encoding = "json"

	// EncodingProtobuf encodes a span as an OTLP TracesData protobuf message.
	EncodingProtobuf Encoding = "protobuf"

	// DefaultEncoding is used when no encoding is configured.
	DefaultEncoding = EncodingJSON
)
