// Package spanrecord converts finished spans into the representations the
// backend exporters ship: a flat Record (JSON documents, database rows) and
// OTLP protobuf TracesData.
//
// An Encoder turns a span into a payload in the configured Encoding:
//
//	enc, err := spanrecord.NewEncoder(spanrecord.EncodingProtobuf)
//	if err != nil {
//	    return err
//	}
//	payload, err := enc.Encode(span)
//	// payload is an OTLP TracesData message with enc.ContentType()
package spanrecord
