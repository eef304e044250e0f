package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the root of a schema file.
type File struct {
	// Version is the schema format version; only "1" is supported.
	Version string `yaml:"version"`
	// Package is the Go package generated code is placed in.
	Package string `yaml:"package,omitempty"`
	Types   []Type `yaml:"types"`
}

// Type declares one keyed type.
type Type struct {
	Name string `yaml:"name"`
	// Kind is "value" (default) or "reference".
	Kind   string  `yaml:"kind,omitempty"`
	Fields []Field `yaml:"fields"`
}

// Field declares one field of a type.
type Field struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	// Path locates the field; omitted means a single segment named after
	// the field.
	Path     Path `yaml:"path,omitempty"`
	Optional bool `yaml:"optional,omitempty"`
	Implicit bool `yaml:"implicit,omitempty"`
	// Default is kept as a node so that an explicit null stays
	// distinguishable from no default at all.
	Default yaml.Node `yaml:"default,omitempty"`
}

// HasDefault reports whether the field declares a default.
func (f *Field) HasDefault() bool {
	return f.Default.Kind != 0
}

// NullDefault reports an explicit "default: null".
func (f *Field) NullDefault() bool {
	return f.HasDefault() && f.Default.ShortTag() == "!!null"
}

// DefaultValue decodes the declared default, nil if there is none.
func (f *Field) DefaultValue() (any, error) {
	if !f.HasDefault() {
		return nil, nil
	}

	var v any
	if err := f.Default.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding default of %s: %w", f.Name, err)
	}

	return v, nil
}

// Path is a list of key segments. In YAML it is either a dotted string
// ("deeply.nested.key") or a list of segments, which allows keys holding
// dots.
type Path []string

// UnmarshalYAML accepts either a dotted string or a list of strings.
func (p *Path) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}

		if s == "" {
			*p = Path{}
			return nil
		}

		*p = strings.Split(s, ".")

		return nil

	case yaml.SequenceNode:
		var segs []string
		if err := node.Decode(&segs); err != nil {
			return err
		}

		if segs == nil {
			segs = []string{}
		}

		*p = segs

		return nil

	default:
		return fmt.Errorf("line %d: expected string or list path, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML writes the dotted form unless a segment contains a dot.
func (p Path) MarshalYAML() (any, error) {
	for _, seg := range p {
		if strings.Contains(seg, ".") {
			return []string(p), nil
		}
	}

	return p.String(), nil
}

// String returns the dotted path.
func (p Path) String() string {
	return strings.Join(p, ".")
}
