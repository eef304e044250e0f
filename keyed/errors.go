package keyed

import (
	"errors"
	"strings"
)

var (
	// ErrKeyNotFound reports a required key absent from its container.
	ErrKeyNotFound = errors.New("key not found")
	// ErrValueNotFound reports a required key holding null.
	ErrValueNotFound = errors.New("value not found")
	// ErrTypeMismatch reports a present value of the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrUnsupportedValue reports a value an encoder cannot store.
	ErrUnsupportedValue = errors.New("unsupported value")
)

// DecodeError locates a decode failure inside the document.
type DecodeError struct {
	// Path are the keys of the container holding Key.
	Path   []string
	Key    string
	Err    error
	Detail string
}

func (e *DecodeError) Error() string {
	loc := strings.Join(append(append([]string{}, e.Path...), e.Key), ".")

	msg := "decoding " + loc + ": " + e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}

	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeError(d Decoder, key string, err error, detail string) error {
	return &DecodeError{Path: d.Path(), Key: key, Err: err, Detail: detail}
}
