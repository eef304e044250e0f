package field

import (
	"fmt"

	"pathcodec/internal/common"
)

// PolicyKind is the closed set of absence policies a field can carry.
type PolicyKind int

const (
	// PolicyRequired - absence anywhere along the path is a decode failure.
	PolicyRequired PolicyKind = iota
	// PolicyOptional - optional field without default, falls back to nil.
	PolicyOptional
	// PolicyImplicit - implicitly unwrapped optional without default, falls back to nil.
	PolicyImplicit
	// PolicyDefaulted - field with a default substituted on absence.
	PolicyDefaulted
)

// String returns a human-readable policy name.
func (k PolicyKind) String() string {
	switch k {
	case PolicyRequired:
		return "required"
	case PolicyOptional:
		return "optional"
	case PolicyImplicit:
		return "implicit"
	case PolicyDefaulted:
		return "defaulted"
	default:
		return common.UnknownStr
	}
}

// Wrap describes how the declared value type is wrapped.
type Wrap int

const (
	// WrapNone - plain value type, never nil.
	WrapNone Wrap = iota
	// WrapOptional - optional value type.
	WrapOptional
	// WrapImplicit - implicitly unwrapped optional value type.
	WrapImplicit
)

// String returns a human-readable wrap name.
func (w Wrap) String() string {
	switch w {
	case WrapNone:
		return "none"
	case WrapOptional:
		return "optional"
	case WrapImplicit:
		return "implicit"
	default:
		return common.UnknownStr
	}
}

// Policy is the absence policy of a field. Use the constructors to build one;
// the zero value is Required.
type Policy struct {
	kind  PolicyKind
	wrap  Wrap
	value any
}

// Required returns the policy of a field that must be present.
func Required() Policy {
	return Policy{kind: PolicyRequired}
}

// Optional returns the policy of an optional field without default.
func Optional() Policy {
	return Policy{kind: PolicyOptional, wrap: WrapOptional}
}

// Implicit returns the policy of an implicitly unwrapped optional field without default.
func Implicit() Policy {
	return Policy{kind: PolicyImplicit, wrap: WrapImplicit}
}

// Defaulted returns the policy of a field whose absence resolves to value.
// wrap records whether the declared type itself is optional.
func Defaulted(value any, wrap Wrap) Policy {
	return Policy{kind: PolicyDefaulted, wrap: wrap, value: value}
}

// Flags are the raw front end attributes of a field.
type Flags struct {
	Optional   bool
	Implicit   bool
	HasDefault bool
	Default    any
}

// NewPolicy normalizes raw front end flags into a Policy.
// A default wins over optionality; implicit wins over optional.
func NewPolicy(f Flags) Policy {
	wrap := WrapNone
	switch {
	case f.Implicit:
		wrap = WrapImplicit
	case f.Optional:
		wrap = WrapOptional
	}

	if f.HasDefault {
		return Defaulted(f.Default, wrap)
	}

	switch wrap {
	case WrapImplicit:
		return Implicit()
	case WrapOptional:
		return Optional()
	default:
		return Required()
	}
}

// Kind returns the policy case.
func (p Policy) Kind() PolicyKind { return p.kind }

// Wrap returns how the declared type is wrapped.
func (p Policy) Wrap() Wrap { return p.wrap }

// Fallback returns the value substituted on absence, and false when absence
// is a failure.
func (p Policy) Fallback() (any, bool) {
	switch p.kind {
	case PolicyOptional, PolicyImplicit:
		return nil, true
	case PolicyDefaulted:
		return p.value, true
	default:
		return nil, false
	}
}

// Default returns the declared default value, if any.
func (p Policy) Default() (any, bool) {
	if p.kind != PolicyDefaulted {
		return nil, false
	}

	return p.value, true
}

// IsRequired reports whether absence is fatal.
func (p Policy) IsRequired() bool {
	return p.kind == PolicyRequired
}

// Nilable reports whether the field value may be nil.
func (p Policy) Nilable() bool {
	return p.wrap != WrapNone
}

// String returns a compact representation, e.g. "defaulted(some)".
func (p Policy) String() string {
	if p.kind == PolicyDefaulted {
		if p.wrap != WrapNone {
			return fmt.Sprintf("%s(%v,%s)", p.kind, p.value, p.wrap)
		}

		return fmt.Sprintf("%s(%v)", p.kind, p.value)
	}

	return p.kind.String()
}
