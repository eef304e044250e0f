package keyed

// Decode reads a required value. Absent and null keys both fail.
func Decode[T any](d Decoder, key string) (T, error) {
	var zero T

	v, err := d.Value(key)
	if err != nil {
		return zero, err
	}

	if v == nil {
		return zero, decodeError(d, key, ErrValueNotFound, "")
	}

	t, err := As[T](v)
	if err != nil {
		return zero, decodeError(d, key, err, "")
	}

	return t, nil
}

// DecodeIfPresent reads an optional value. Absent and null keys yield nil;
// a present value of the wrong type still fails.
func DecodeIfPresent[T any](d Decoder, key string) (*T, error) {
	if d == nil || Classify(d, key) != Present {
		return nil, nil
	}

	t, err := Decode[T](d, key)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// DecodeOr reads an optional value, substituting fallback when the key is
// absent or null.
func DecodeOr[T any](d Decoder, key string, fallback T) (T, error) {
	p, err := DecodeIfPresent[T](d, key)
	if err != nil || p == nil {
		return fallback, err
	}

	return *p, nil
}

// DecodePtrOr is DecodeOr for nilable fields.
func DecodePtrOr[T any](d Decoder, key string, fallback T) (*T, error) {
	p, err := DecodeIfPresent[T](d, key)
	if err != nil {
		return nil, err
	}

	if p == nil {
		return Ptr(fallback), nil
	}

	return p, nil
}

// Probe opens an optional nested scope. A nil parent, an absent key and a
// null value all yield a nil Decoder without error.
func Probe(parent Decoder, key string) (Decoder, error) {
	if parent == nil || Classify(parent, key) != Present {
		return nil, nil
	}

	return parent.Nested(key)
}

// EncodeIfPresent writes *v unless v is nil.
func EncodeIfPresent[T any](e Encoder, key string, v *T) error {
	if v == nil {
		return nil
	}

	return e.Encode(key, *v)
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
