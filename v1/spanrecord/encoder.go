package spanrecord

import (
	"encoding/json"
	"fmt"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/protobuf/proto"
)

// Encoder serializes spans into payloads of one Encoding.
type Encoder struct {
	encoding Encoding
}

// NewEncoder returns an Encoder for enc. An empty enc selects DefaultEncoding.
func NewEncoder(enc Encoding) (Encoder, error) {
	if enc == "" {
		enc = DefaultEncoding
	}
	switch enc {
	case EncodingJSON, EncodingProtobuf:
		return Encoder{encoding: enc}, nil
	default:
		return Encoder{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
	}
}

// Encoding returns the encoding this Encoder produces.
func (e Encoder) Encoding() Encoding {
	return e.encoding
}

// ContentType returns the MIME type of the payloads.
func (e Encoder) ContentType() string {
	if e.encoding == EncodingProtobuf {
		return "application/x-protobuf"
	}
	return "application/json"
}

// Extension returns the file extension used for payloads stored as objects.
func (e Encoder) Extension() string {
	if e.encoding == EncodingProtobuf {
		return ".pb"
	}
	return ".json"
}

// Encode serializes s.
func (e Encoder) Encode(s sdktrace.ReadOnlySpan) ([]byte, error) {
	var (
		payload []byte
		err     error
	)
	switch e.encoding {
	case EncodingProtobuf:
		payload, err = proto.Marshal(ToTracesData(s))
	default:
		payload, err = json.Marshal(FromSpan(s))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return payload, nil
}
