package plan

import (
	"pathcodec/internal/common"
	"pathcodec/internal/field"
	"pathcodec/internal/presence"
	"pathcodec/internal/tree"
)

// TypeKind tells how the enclosing type is initialized.
type TypeKind int

const (
	// KindValue - value type; gets a synthesized initializer with default parameters.
	KindValue TypeKind = iota
	// KindReference - reference type; needs a mandatory decode initializer and
	// encode method override pair, no default parameters.
	KindReference
)

// String returns a human-readable type kind.
func (k TypeKind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindReference:
		return "reference"
	default:
		return common.UnknownStr
	}
}

// ParseTypeKind parses "value" or "reference"; empty means value.
func ParseTypeKind(s string) (TypeKind, bool) {
	switch s {
	case "", "value":
		return KindValue, true
	case "reference":
		return KindReference, true
	default:
		return KindValue, false
	}
}

// TypeSpec is the front end input for one declared type.
type TypeSpec struct {
	Name   string
	Kind   TypeKind
	Fields []field.Descriptor
}

// Plan is the synthesis result for one type.
type Plan struct {
	// Type is the declared type name.
	Type string
	Kind TypeKind
	// Fields are the descriptors in declared order.
	Fields []field.Descriptor
	// Tree is the merged path tree; read-only.
	Tree *tree.Tree
	// Presence holds the requirement of every tree node.
	Presence presence.Annotations
	// Keys maps every leaf and scope to its wire-level key.
	Keys tree.KeyTable
	// Decode is the ordered decode operation sequence.
	Decode []Op
	// Encode is the ordered encode operation sequence.
	Encode []Op
	// Initializer describes how the type is constructed.
	Initializer Initializer
}

//go:generate go tool stringer -type=OpKind -trimprefix=Op -output=op_string.go

// OpKind identifies a plan operation.
type OpKind int

const (
	_ OpKind = iota // zero value is invalid

	// OpOpenScope opens a scope unconditionally; failure aborts decoding.
	OpOpenScope
	// OpProbeAbsence tests a scope for absence or null before opening it.
	OpProbeAbsence
	// OpIfPresent starts the block executed when Scope is present.
	OpIfPresent
	// OpElse starts the block executed when Scope is absent.
	OpElse
	// OpEndIf closes the block of Scope.
	OpEndIf
	// OpDecodeInto decodes Field from Key inside Scope.
	OpDecodeInto
	// OpAssignFallback assigns the Fallback of Field without decoding.
	OpAssignFallback
	// OpOpenWriteScope opens a nested scope for writing.
	OpOpenWriteScope
	// OpWriteField writes Field to Key inside Scope.
	OpWriteField
)

// Mode tells how a leaf operation treats absence.
type Mode int

const (
	// ModeRequired - decode fails on absence; encode always writes.
	ModeRequired Mode = iota
	// ModeIfPresent - decode falls back on absence; encode writes only non-nil values.
	ModeIfPresent
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeRequired:
		return "required"
	case ModeIfPresent:
		return "if_present"
	default:
		return common.UnknownStr
	}
}

// Op is a single plan operation. Which fields are meaningful depends on Kind:
//   - scope ops (OpOpenScope, OpProbeAbsence, OpOpenWriteScope): Scope, Parent, Key
//   - block ops (OpIfPresent, OpElse, OpEndIf): Scope
//   - leaf ops (OpDecodeInto, OpWriteField): Scope, Key, Field, Mode, Fallback
//   - OpAssignFallback: Field, Fallback
type Op struct {
	Kind   OpKind
	Scope  tree.NodeID
	Parent tree.NodeID
	Key    string
	Field  string
	Mode   Mode
	// Fallback is the value used when the field is absent (ModeIfPresent only).
	Fallback any
}

// IsBlock reports whether the op is a block marker.
func (o Op) IsBlock() bool {
	return o.Kind == OpIfPresent || o.Kind == OpElse || o.Kind == OpEndIf
}

// Initializer describes the construction of the declared type.
type Initializer struct {
	// Synthesized is true when a memberwise initializer with default
	// parameters is produced (value types).
	Synthesized bool
	// RequiresOverride is true when a mandatory decode initializer and encode
	// method pair must be produced instead (reference types).
	RequiresOverride bool
	// Params mirror the fields in declared order.
	Params []Param
}

// Param is one initializer parameter.
type Param struct {
	Name    string
	Type    string
	Nilable bool
	// HasDefault is set when the parameter can be omitted; Default is then the
	// declared default, or nil for nilable fields without one.
	HasDefault bool
	Default    any
}
