package field

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyPath reports a descriptor without path segments.
var ErrEmptyPath = errors.New("empty path")

// Descriptor is the normalized description of a single declared field.
// Identity is Name.
type Descriptor struct {
	// Name is the declared field name.
	Name string
	// Path locates the value inside nested keyed structure, outermost first.
	Path []string
	// Type is the value type name (e.g. "string", "int").
	Type string
	// Policy describes the behavior on absence.
	Policy Policy
}

// New is a shorthand building a descriptor for a dotted path ("a.b.c").
func New(name, path, typ string, policy Policy) Descriptor {
	return Descriptor{
		Name:   name,
		Path:   strings.Split(path, "."),
		Type:   typ,
		Policy: policy,
	}
}

// Key returns the wire-level key of the field, the last path segment.
func (d Descriptor) Key() string {
	if len(d.Path) == 0 {
		return ""
	}

	return d.Path[len(d.Path)-1]
}

// Scope returns the segments of the enclosing scopes, without the key.
func (d Descriptor) Scope() []string {
	if len(d.Path) == 0 {
		return nil
	}

	return d.Path[:len(d.Path)-1]
}

// IsTopLevel reports whether the field lives directly in the root scope.
func (d Descriptor) IsTopLevel() bool {
	return len(d.Path) == 1
}

// PathString returns the dotted path.
func (d Descriptor) PathString() string {
	return strings.Join(d.Path, ".")
}

// Validate checks the descriptor shape.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return errors.New("field without name")
	}

	if len(d.Path) == 0 {
		return fmt.Errorf("field %q: %w", d.Name, ErrEmptyPath)
	}

	for i, seg := range d.Path {
		if seg == "" {
			return fmt.Errorf("field %q: empty segment at position %d", d.Name, i)
		}
	}

	return nil
}

// String returns a compact representation, e.g. "value@deeply.nested.key:string required".
func (d Descriptor) String() string {
	return fmt.Sprintf("%s@%s:%s %s", d.Name, d.PathString(), d.Type, d.Policy)
}
