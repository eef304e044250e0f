package plan

import (
	"errors"
	"fmt"

	"github.com/hengadev/errsx"

	"pathcodec/internal/common"
	"pathcodec/internal/presence"
	"pathcodec/internal/tree"
)

// Synthesize builds the path tree of spec, annotates it and produces both
// operation sequences.
func Synthesize(spec TypeSpec) (*Plan, error) {
	if spec.Name == "" {
		return nil, errors.New("type without name")
	}

	t, err := tree.Build(spec.Fields)
	if err != nil {
		return nil, fmt.Errorf("building path tree of %s: %w", spec.Name, err)
	}

	a, err := presence.Plan(t)
	if err != nil {
		return nil, fmt.Errorf("planning presence of %s: %w", spec.Name, err)
	}

	p := &Plan{
		Type:        spec.Name,
		Kind:        spec.Kind,
		Fields:      t.Fields(),
		Tree:        t,
		Presence:    a,
		Keys:        t.Keys(),
		Decode:      Decode(t, a),
		Encode:      Encode(t),
		Initializer: NewInitializer(spec),
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validating plan of %s: %w", spec.Name, err)
	}

	return p, nil
}

// SynthesizeAll synthesizes every spec. A failing type does not stop the
// others; failures are returned as a *common.ErrorMap keyed by type name.
func SynthesizeAll(specs []TypeSpec) ([]*Plan, error) {
	var errs errsx.Map

	plans := make([]*Plan, 0, len(specs))
	seen := make(map[string]struct{}, len(specs))

	for _, spec := range specs {
		if _, ok := seen[spec.Name]; ok {
			errs.Set(spec.Name, fmt.Errorf("duplicate type %q", spec.Name))
			continue
		}

		seen[spec.Name] = struct{}{}

		p, err := Synthesize(spec)
		if err != nil {
			errs.Set(spec.Name, err)
			continue
		}

		plans = append(plans, p)
	}

	return plans, common.BatchError(errs)
}

// NewInitializer derives the initializer of spec.
func NewInitializer(spec TypeSpec) Initializer {
	out := Initializer{
		Synthesized:      spec.Kind == KindValue,
		RequiresOverride: spec.Kind == KindReference,
		Params:           make([]Param, 0, len(spec.Fields)),
	}

	for _, f := range spec.Fields {
		p := Param{Name: f.Name, Type: f.Type, Nilable: f.Policy.Nilable()}

		if out.Synthesized {
			if def, ok := f.Policy.Default(); ok {
				p.HasDefault, p.Default = true, def
			} else if p.Nilable {
				p.HasDefault = true
			}
		}

		out.Params = append(out.Params, p)
	}

	return out
}

// Field returns the descriptor index of the named field, or -1.
func (p *Plan) Field(name string) int {
	for i, f := range p.Fields {
		if f.Name == name {
			return i
		}
	}

	return -1
}

// ScopeName returns the key table name of a scope, "." for the root.
func (p *Plan) ScopeName(id tree.NodeID) string {
	if id == tree.Root {
		return "."
	}

	return p.Keys.Name(id)
}
