package schema

import (
	"fmt"

	"pathcodec/internal/field"
	"pathcodec/internal/plan"
	"pathcodec/keyed"
)

// TypeSpecs converts a validated schema file into synthesis input, in
// declaration order. It fails on the first type that cannot be converted;
// run Validate first for a complete report.
func TypeSpecs(f *File) ([]plan.TypeSpec, error) {
	specs := make([]plan.TypeSpec, 0, len(f.Types))

	for i := range f.Types {
		spec, err := toTypeSpec(&f.Types[i])
		if err != nil {
			return nil, err
		}

		specs = append(specs, spec)
	}

	return specs, nil
}

func toTypeSpec(t *Type) (plan.TypeSpec, error) {
	kind, ok := plan.ParseTypeKind(t.Kind)
	if !ok {
		return plan.TypeSpec{}, fmt.Errorf("type %s: invalid kind %q", t.Name, t.Kind)
	}

	spec := plan.TypeSpec{
		Name:   t.Name,
		Kind:   kind,
		Fields: make([]field.Descriptor, 0, len(t.Fields)),
	}

	for i := range t.Fields {
		d, err := toDescriptor(&t.Fields[i])
		if err != nil {
			return plan.TypeSpec{}, fmt.Errorf("type %s: %w", t.Name, err)
		}

		spec.Fields = append(spec.Fields, d)
	}

	return spec, nil
}

func toDescriptor(fl *Field) (field.Descriptor, error) {
	flags := field.Flags{
		Optional:   fl.Optional,
		Implicit:   fl.Implicit,
		HasDefault: fl.HasDefault(),
	}

	if flags.HasDefault {
		kind, ok := keyed.KindOf(fl.Type)
		if !ok {
			return field.Descriptor{}, fmt.Errorf("field %s: unknown type %q", fl.Name, fl.Type)
		}

		v, err := convertDefault(fl, kind)
		if err != nil {
			return field.Descriptor{}, err
		}

		flags.Default = v
	}

	return field.Descriptor{
		Name:   fl.Name,
		Path:   append([]string(nil), fl.Path...),
		Type:   fl.Type,
		Policy: field.NewPolicy(flags),
	}, nil
}
