package keyed

import (
	"fmt"
	"slices"
)

// MapDecoder is a Decoder over map[string]any.
type MapDecoder struct {
	m    map[string]any
	path []string
}

// NewDecoder wraps a decoded document. The document must be a keyed
// container.
func NewDecoder(doc any) (*MapDecoder, error) {
	m, ok := asMap(doc)
	if !ok {
		return nil, fmt.Errorf("%w: expected keyed container, found %T", ErrTypeMismatch, doc)
	}

	return &MapDecoder{m: m}, nil
}

func (d *MapDecoder) Contains(key string) bool {
	_, ok := d.m[key]
	return ok
}

func (d *MapDecoder) DecodeNil(key string) (bool, error) {
	v, ok := d.m[key]
	if !ok {
		return false, decodeError(d, key, ErrKeyNotFound, "")
	}

	return v == nil, nil
}

func (d *MapDecoder) Nested(key string) (Decoder, error) {
	v, ok := d.m[key]
	if !ok {
		return nil, decodeError(d, key, ErrKeyNotFound, "")
	}

	if v == nil {
		return nil, decodeError(d, key, ErrValueNotFound, "")
	}

	m, ok := asMap(v)
	if !ok {
		return nil, decodeError(d, key, ErrTypeMismatch, fmt.Sprintf("expected keyed container, found %T", v))
	}

	return &MapDecoder{m: m, path: append(slices.Clone(d.path), key)}, nil
}

func (d *MapDecoder) Value(key string) (any, error) {
	v, ok := d.m[key]
	if !ok {
		return nil, decodeError(d, key, ErrKeyNotFound, "")
	}

	return v, nil
}

func (d *MapDecoder) Path() []string {
	return slices.Clone(d.path)
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}

		return out, true
	default:
		return nil, false
	}
}

// MapEncoder is an Encoder building a map[string]any. Nested scopes are
// stored in their parent as soon as they are requested.
type MapEncoder struct {
	m map[string]any
}

// NewEncoder returns an empty encoder.
func NewEncoder() *MapEncoder {
	return &MapEncoder{m: map[string]any{}}
}

func (e *MapEncoder) Nested(key string) Encoder {
	if m, ok := e.m[key].(map[string]any); ok {
		return &MapEncoder{m: m}
	}

	child := map[string]any{}
	e.m[key] = child

	return &MapEncoder{m: child}
}

// Encode stores v. Only scalars, nil, []any and map[string]any are accepted.
func (e *MapEncoder) Encode(key string, v any) error {
	switch v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		[]any, map[string]any:
	default:
		return fmt.Errorf("encoding %q: %w: %T", key, ErrUnsupportedValue, v)
	}

	e.m[key] = v

	return nil
}

// Map returns the document built so far.
func (e *MapEncoder) Map() map[string]any {
	return e.m
}
