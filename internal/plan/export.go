package plan

import (
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"pathcodec/internal/tree"
)

// ExportFile is the serialized form of a set of plans, used for golden
// files and the CLI "plan" command.
type ExportFile struct {
	Version string         `yaml:"version" json:"version"`
	Plans   []ExportedPlan `yaml:"plans" json:"plans"`
}

// ExportedPlan is the serialized form of one plan. Scopes are referenced by
// their key table name, the root by ".".
type ExportedPlan struct {
	Type        string           `yaml:"type" json:"type"`
	Kind        string           `yaml:"kind" json:"kind"`
	Keys        []ExportedKey    `yaml:"keys" json:"keys"`
	Decode      []ExportedOp     `yaml:"decode" json:"decode"`
	Encode      []ExportedOp     `yaml:"encode" json:"encode"`
	Initializer ExportedInitInfo `yaml:"initializer" json:"initializer"`
}

// ExportedKey is one key table entry.
type ExportedKey struct {
	Name string `yaml:"name" json:"name"`
	Key  string `yaml:"key" json:"key"`
	Kind string `yaml:"kind" json:"kind"`
}

// ExportedOp is one operation.
type ExportedOp struct {
	Op       string `yaml:"op" json:"op"`
	Scope    string `yaml:"scope,omitempty" json:"scope,omitempty"`
	Parent   string `yaml:"parent,omitempty" json:"parent,omitempty"`
	Key      string `yaml:"key,omitempty" json:"key,omitempty"`
	Field    string `yaml:"field,omitempty" json:"field,omitempty"`
	Mode     string `yaml:"mode,omitempty" json:"mode,omitempty"`
	Fallback *Value `yaml:"fallback,omitempty" json:"fallback,omitempty"`
}

// ExportedInitInfo describes the initializer.
type ExportedInitInfo struct {
	Synthesized      bool            `yaml:"synthesized" json:"synthesized"`
	RequiresOverride bool            `yaml:"requires_override" json:"requires_override"`
	Params           []ExportedParam `yaml:"params,omitempty" json:"params,omitempty"`
}

// ExportedParam is one initializer parameter.
type ExportedParam struct {
	Name    string `yaml:"name" json:"name"`
	Type    string `yaml:"type" json:"type"`
	Nilable bool   `yaml:"nilable,omitempty" json:"nilable,omitempty"`
	Default *Value `yaml:"default,omitempty" json:"default,omitempty"`
}

// Value wraps a literal so that a nil literal is still serialized as null.
type Value struct {
	V any
}

// MarshalYAML implements yaml.Marshaler.
func (v *Value) MarshalYAML() (any, error) {
	return v.V, nil
}

// MarshalJSON implements json.Marshaler.
func (v *Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.V)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(n *yaml.Node) error {
	return n.Decode(&v.V)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &v.V)
}

// Export converts plans into their serialized form.
func Export(plans ...*Plan) ExportFile {
	out := ExportFile{Version: "1", Plans: make([]ExportedPlan, 0, len(plans))}

	for _, p := range plans {
		out.Plans = append(out.Plans, exportPlan(p))
	}

	return out
}

// ExportYAML serializes plans as YAML.
func ExportYAML(plans ...*Plan) ([]byte, error) {
	return yaml.Marshal(Export(plans...))
}

// ExportJSON serializes plans as indented JSON.
func ExportJSON(plans ...*Plan) ([]byte, error) {
	return json.MarshalIndent(Export(plans...), "", "  ")
}

func exportPlan(p *Plan) ExportedPlan {
	ep := ExportedPlan{
		Type: p.Type,
		Kind: p.Kind.String(),
		Initializer: ExportedInitInfo{
			Synthesized:      p.Initializer.Synthesized,
			RequiresOverride: p.Initializer.RequiresOverride,
		},
	}

	for _, e := range p.Keys.Entries() {
		ep.Keys = append(ep.Keys, ExportedKey{Name: e.Name, Key: e.Key, Kind: e.Kind.String()})
	}

	for _, op := range p.Decode {
		ep.Decode = append(ep.Decode, p.exportOp(op))
	}

	for _, op := range p.Encode {
		ep.Encode = append(ep.Encode, p.exportOp(op))
	}

	for _, prm := range p.Initializer.Params {
		xp := ExportedParam{Name: prm.Name, Type: prm.Type, Nilable: prm.Nilable}
		if prm.HasDefault {
			xp.Default = &Value{V: prm.Default}
		}

		ep.Initializer.Params = append(ep.Initializer.Params, xp)
	}

	return ep
}

func (p *Plan) exportOp(op Op) ExportedOp {
	xo := ExportedOp{Op: op.Kind.String(), Scope: p.ScopeName(op.Scope)}

	switch op.Kind {
	case OpOpenScope, OpProbeAbsence, OpOpenWriteScope:
		if op.Parent != tree.None {
			xo.Parent = p.ScopeName(op.Parent)
		}

		xo.Key = op.Key
	case OpDecodeInto, OpWriteField:
		xo.Key = op.Key
		xo.Field = op.Field
		xo.Mode = op.Mode.String()

		if op.Kind == OpDecodeInto && op.Mode == ModeIfPresent {
			xo.Fallback = &Value{V: op.Fallback}
		}
	case OpAssignFallback:
		xo.Field = op.Field
		xo.Fallback = &Value{V: op.Fallback}
	}

	return xo
}
