package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"strings"

	"github.com/hengadev/errsx"
	"gopkg.in/yaml.v3"

	"pathcodec/internal/common"
	"pathcodec/internal/schema"
)

// TagKey is the struct tag key and directive prefix read by Extract.
const TagKey = "pathcodec"

// DirectiveReference marks a struct as a reference type:
//
//	//pathcodec:reference
const DirectiveReference = "reference"

const (
	optImplicit = "implicit"
	optDefault  = "default="
)

// Tag is a parsed pathcodec struct tag:
//
//	`pathcodec:"deeply.nested.key,implicit,default=some"`
//
// default takes the rest of the tag, commas included, so it comes last.
type Tag struct {
	// Path is nil when the tag names none; the json name is used then.
	Path     schema.Path
	Implicit bool
	Default  *string
}

// ParseTag parses the value of a pathcodec struct tag.
func ParseTag(s string) (Tag, error) {
	var tag Tag

	path, opts, _ := strings.Cut(s, ",")
	if path != "" {
		tag.Path = strings.Split(path, ".")
	}

	for opts != "" {
		if v, ok := strings.CutPrefix(opts, optDefault); ok {
			tag.Default = &v
			break
		}

		var opt string
		opt, opts, _ = strings.Cut(opts, ",")

		switch opt {
		case optImplicit:
			tag.Implicit = true
		case "":
		default:
			return Tag{}, fmt.Errorf("unknown tag option %q", opt)
		}
	}

	return tag, nil
}

// Extract builds a schema from the structs of the loaded packages having at
// least one pathcodec-tagged field. Types keep declaration order; the
// schema package is the name of the first package. Failures are returned as
// a *common.ErrorMap keyed by type.
func Extract(graph *TypeGraph) (*schema.File, error) {
	f := &schema.File{Version: "1", Package: schema.DefaultPackage}

	var errs errsx.Map

	for i, path := range graph.Order {
		pkg := graph.Packages[path]
		if i == 0 {
			f.Package = pkg.Name
		}

		for _, id := range pkg.Types {
			t, ok, err := extractType(graph.GetType(id))
			if err != nil {
				errs.Set(id.String(), err)
				continue
			}

			if ok {
				f.Types = append(f.Types, t)
			}
		}
	}

	if err := common.BatchError(errs); err != nil {
		return nil, err
	}

	return f, nil
}

func extractType(info *TypeInfo) (schema.Type, bool, error) {
	if info == nil || info.Kind != TypeKindStruct {
		return schema.Type{}, false, nil
	}

	t := schema.Type{Name: info.ID.Name}
	if info.HasDirective(DirectiveReference) {
		t.Kind = DirectiveReference
	}

	var errs []error

	for i := range info.Fields {
		fi := &info.Fields[i]

		raw, ok := fi.CodecTag()
		if !ok {
			continue
		}

		if fi.Embedded {
			errs = append(errs, fmt.Errorf("field %s: embedded fields cannot be coded", fi.Name))
			continue
		}

		fl, err := extractField(fi, raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("field %s: %w", fi.Name, err))
			continue
		}

		t.Fields = append(t.Fields, fl)
	}

	if len(errs) > 0 {
		return schema.Type{}, false, errors.Join(errs...)
	}

	return t, len(t.Fields) > 0, nil
}

func extractField(fi *FieldInfo, raw string) (schema.Field, error) {
	tag, err := ParseTag(raw)
	if err != nil {
		return schema.Field{}, err
	}

	typ := fi.Type
	nilable := typ.Kind == TypeKindPointer

	if nilable {
		typ = typ.ElemType
	}

	base, err := baseTypeName(typ)
	if err != nil {
		return schema.Field{}, err
	}

	if tag.Implicit && !nilable {
		return schema.Field{}, fmt.Errorf("implicit requires a pointer field, found %s", base)
	}

	fl := schema.Field{
		Name:     fi.Name,
		Type:     base,
		Path:     tag.Path,
		Optional: nilable && !tag.Implicit,
		Implicit: tag.Implicit,
	}

	if fl.Path == nil {
		fl.Path = schema.Path{fi.JSONName()}
	}

	if tag.Default != nil {
		fl.Default = defaultNode(*tag.Default, base)
	}

	return fl, nil
}

// baseTypeName names the schema type of t. Basic types keep their Go name
// even when the schema does not support them, so validation reports them.
func baseTypeName(t *TypeInfo) (string, error) {
	switch t.Kind {
	case TypeKindBasic:
		return t.GoType.(*types.Basic).Name(), nil
	case TypeKindAlias:
		if t.Underlying != nil && t.Underlying.Kind == TypeKindBasic {
			return baseTypeName(t.Underlying)
		}
	case TypeKindAny:
		return "any", nil
	}

	return "", fmt.Errorf("unsupported field type %s (%s)", types.TypeString(t.GoType, nil), t.Kind)
}

// defaultNode turns a tag default into the node a YAML schema would hold.
// Defaults of string fields are never resolved, so "0" stays a string.
func defaultNode(v, base string) yaml.Node {
	str := yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
	if base == "string" {
		return str
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(v), &doc); err != nil || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.ScalarNode {
		return str
	}

	n := *doc.Content[0]
	n.Line, n.Column = 0, 0

	return n
}
