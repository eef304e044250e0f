// Package keyed is the generic keyed-container abstraction decode and encode
// plans run against.
//
// A Decoder reads one level of a nested keyed structure; a nested scope is
// reached with Nested. An Encoder writes one level; Nested commits the
// nested scope immediately, before anything is written below it.
//
// MapDecoder and MapEncoder implement both sides over map[string]any, and
// ParseJSON / ParseYAML adapt raw documents. The generic helpers (Decode,
// DecodeIfPresent, DecodeOr, Probe, ...) are what generated code calls.
package keyed

// Decoder reads values from one level of a keyed container.
type Decoder interface {
	// Contains reports whether key is present, null or not.
	Contains(key string) bool
	// DecodeNil reports whether the value at key is null.
	// It fails with ErrKeyNotFound when key is absent.
	DecodeNil(key string) (bool, error)
	// Nested opens the keyed container stored at key.
	Nested(key string) (Decoder, error)
	// Value returns the raw value stored at key.
	Value(key string) (any, error)
	// Path returns the keys leading to this container.
	Path() []string
}

// Encoder writes values into one level of a keyed container.
type Encoder interface {
	// Nested returns the container stored at key, creating it if needed.
	Nested(key string) Encoder
	// Encode stores v at key.
	Encode(key string, v any) error
}

// Presence classifies a key inside a container.
type Presence int

const (
	// Missing - the key is absent.
	Missing Presence = iota
	// Null - the key is present with a null value.
	Null
	// Present - the key holds a non-null value.
	Present
)

// String returns a human-readable presence.
func (p Presence) String() string {
	switch p {
	case Missing:
		return "missing"
	case Null:
		return "null"
	case Present:
		return "present"
	default:
		return "unknown"
	}
}

// Classify reports the presence of key in d.
func Classify(d Decoder, key string) Presence {
	if !d.Contains(key) {
		return Missing
	}

	isNil, err := d.DecodeNil(key)
	if err != nil {
		return Missing
	}

	if isNil {
		return Null
	}

	return Present
}
