package keyed

import (
	"fmt"
	"math"
)

// Kind is the value category a field type name resolves to.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
)

var kindNames = map[string]Kind{
	"any":     KindAny,
	"string":  KindString,
	"int":     KindInt,
	"float64": KindFloat,
	"bool":    KindBool,
}

// KindOf resolves a field type name. Only the names listed in TypeNames
// are known.
func KindOf(typeName string) (Kind, bool) {
	k, ok := kindNames[typeName]
	return k, ok
}

// TypeNames lists the field type names KindOf accepts.
func TypeNames() []string {
	return []string{"string", "int", "float64", "bool", "any"}
}

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float64"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Convert coerces a decoded document value to k.
// Integral floats convert to int, and ints widen to float64, because JSON
// documents carry every number as float64 and YAML ones as int.
func Convert(v any, k Kind) (any, error) {
	if k == KindAny {
		return v, nil
	}

	switch k {
	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case KindInt:
		if i, ok := toInt(v); ok {
			return i, nil
		}
	case KindFloat:
		if f, ok := toFloat(v); ok {
			return f, nil
		}
	}

	return nil, fmt.Errorf("%w: expected %s, found %T", ErrTypeMismatch, k, v)
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		if uint64(n) > math.MaxInt {
			return 0, false
		}

		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}

		return int(n), true
	case float32:
		return toInt(float64(n))
	case float64:
		// float64(math.MaxInt) rounds up to 2^63, itself out of range.
		if n != math.Trunc(n) || n < math.MinInt || n >= math.MaxInt {
			return 0, false
		}

		return int(n), true
	}

	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}

	if i, ok := toInt(v); ok {
		return float64(i), true
	}

	return 0, false
}

func kindFor[T any]() Kind {
	var zero T

	switch any(zero).(type) {
	case string:
		return KindString
	case int:
		return KindInt
	case float64:
		return KindFloat
	case bool:
		return KindBool
	default:
		return KindAny
	}
}

// As converts v to T using the same coercions as Convert.
func As[T any](v any) (T, error) {
	var zero T

	if t, ok := v.(T); ok {
		return t, nil
	}

	k := kindFor[T]()
	if k == KindAny {
		if v == nil {
			return zero, nil
		}

		return zero, fmt.Errorf("%w: expected %T, found %T", ErrTypeMismatch, zero, v)
	}

	c, err := Convert(v, k)
	if err != nil {
		return zero, err
	}

	t, ok := c.(T)
	if !ok {
		return zero, fmt.Errorf("%w: expected %T, found %T", ErrTypeMismatch, zero, v)
	}

	return t, nil
}
