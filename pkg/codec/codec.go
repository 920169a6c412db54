package codec

// Codec serializes and deserializes payloads, metadata and replies to and
// from transport bytes. The core bus is codec-agnostic; it only ever calls
// through this interface.
type Codec interface {
	// Encode serializes v to bytes. It returns the empty byte slice when v
	// is the zero value of event.Empty.
	Encode(v any) ([]byte, error)

	// Decode deserializes data into v, which must be a non-nil pointer. It
	// leaves *v at its zero value when data is empty.
	Decode(data []byte, v any) error

	// ParseHeaders coerces a string-keyed transport header map into v,
	// which must be a non-nil pointer to a metadata value.
	ParseHeaders(headers map[string]string, v any) error

	// EncodeHeaders is ParseHeaders' inverse: it flattens a metadata value
	// into a string-keyed transport header map. It returns the empty map
	// for the zero value of event.Empty.
	EncodeHeaders(v any) (map[string]string, error)
}
