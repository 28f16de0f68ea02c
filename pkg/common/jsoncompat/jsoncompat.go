// Package jsoncompat hides the JSON codec behind a build tag so callers do
// not depend on a concrete implementation.
package jsoncompat

// Decoder reads JSON values from a stream.
type Decoder interface {
	Decode(v any) error
}

// Encoder writes JSON values to a stream.
type Encoder interface {
	Encode(v any) error
}
