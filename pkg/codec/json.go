package codec

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// JSONCodec encodes values as JSON, special-casing the empty payload as the
// zero-length byte string rather than the two-byte JSON literal "{}".
type JSONCodec struct{}

// NewJSONCodec returns the default codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

func isEmptyType(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Struct && t.NumField() == 0
}

// Encode returns b"" for the zero value of an empty struct type (the
// event.Empty convention), otherwise the JSON encoding of v.
func (c *JSONCodec) Encode(v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if rv.IsValid() && isEmptyType(rv.Type()) {
		return []byte{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: encode: %w", err)
	}
	return data, nil
}

// Decode leaves *v untouched (already its zero value) when data is empty,
// otherwise unmarshals data into v.
func (c *JSONCodec) Decode(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("codec: decode: %w", err)
	}
	return nil
}

// ParseHeaders coerces a string-keyed header map into v by round-tripping
// it through JSON. An empty header map against an empty metadata type is a
// no-op, matching Decode's empty-bytes behavior.
func (c *JSONCodec) ParseHeaders(headers map[string]string, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr {
		return fmt.Errorf("codec: ParseHeaders: v must be a pointer, got %T", v)
	}
	if len(headers) == 0 && isEmptyType(rv.Elem().Type()) {
		return nil
	}
	data, err := json.Marshal(headers)
	if err != nil {
		return fmt.Errorf("codec: ParseHeaders: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("codec: ParseHeaders: %w", err)
	}
	return nil
}

// EncodeHeaders flattens v's top-level JSON fields into string values. A
// field that is itself a JSON string is unwrapped to its raw text;
// anything else (numbers, nested objects) is carried as its JSON text.
func (c *JSONCodec) EncodeHeaders(v any) (map[string]string, error) {
	rv := reflect.ValueOf(v)
	if rv.IsValid() && isEmptyType(rv.Type()) {
		return map[string]string{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: EncodeHeaders: %w", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("codec: EncodeHeaders: metadata must encode to a JSON object: %w", err)
	}
	out := make(map[string]string, len(raw))
	for k, rm := range raw {
		var s string
		if err := json.Unmarshal(rm, &s); err == nil {
			out[k] = s
		} else {
			out[k] = string(rm)
		}
	}
	return out, nil
}
