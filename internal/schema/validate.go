package schema

import (
	"errors"
	"fmt"
	"go/token"

	"pathcodec/internal/diagnostic"
	"pathcodec/internal/match"
	"pathcodec/internal/plan"
	"pathcodec/internal/tree"
	"pathcodec/keyed"
)

const maxSuggestions = 2

// Validate checks a schema file without synthesizing it. Types with
// errors are reported field by field; path conflicts are only checked
// once every field of a type is well-formed.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError(diagnostic.CodeMissingName, "schema file is nil", "", "")
		return res
	}

	if f.Version != "1" {
		res.AddErrorf(diagnostic.CodeUnsupportedVersion, "", "", "unsupported schema version %q", f.Version)
	}

	if !isIdent(f.Package) {
		res.AddErrorf(diagnostic.CodeInvalidName, "", "", "package %q is not a valid identifier", f.Package)
	}

	seen := map[string]struct{}{}

	for i := range f.Types {
		t := &f.Types[i]

		switch {
		case t.Name == "":
			res.AddErrorf(diagnostic.CodeMissingName, "", "", "type #%d has no name", i+1)
			continue
		case !isIdent(t.Name):
			res.AddErrorf(diagnostic.CodeInvalidName, t.Name, "", "type name %q is not a valid identifier", t.Name)
		}

		if _, ok := seen[t.Name]; ok {
			res.AddErrorf(diagnostic.CodeDuplicateType, t.Name, "", "duplicate type %q", t.Name)
			continue
		}

		seen[t.Name] = struct{}{}

		validateType(res, t)
	}

	return res
}

func validateType(res *diagnostic.Diagnostics, t *Type) {
	before := len(res.Errors)

	if _, ok := plan.ParseTypeKind(t.Kind); !ok {
		res.AddSuggested(diagnostic.CodeInvalidKind, fmt.Sprintf("invalid kind %q", t.Kind), t.Name, "",
			match.Closest(t.Kind, []string{"value", "reference"}, maxSuggestions, match.DefaultMinScore)...)
	}

	if len(t.Fields) == 0 {
		res.AddInfo(diagnostic.CodeNoFields, "type declares no fields", t.Name, "")
	}

	names := map[string]struct{}{}

	for i := range t.Fields {
		fl := &t.Fields[i]

		if fl.Name == "" {
			res.AddErrorf(diagnostic.CodeMissingName, t.Name, "", "field #%d has no name", i+1)
			continue
		}

		if _, ok := names[fl.Name]; ok {
			res.AddErrorf(diagnostic.CodeDuplicateField, t.Name, fl.Name, "duplicate field %q", fl.Name)
			continue
		}

		names[fl.Name] = struct{}{}

		validateField(res, t.Name, fl)
	}

	if len(res.Errors) > before {
		return
	}

	spec, err := toTypeSpec(t)
	if err != nil {
		res.AddError(diagnostic.CodeDefaultTypeMismatch, err.Error(), t.Name, "")
		return
	}

	if _, err := tree.Build(spec.Fields); err != nil {
		var pc *tree.PathConflictError
		if errors.As(err, &pc) {
			res.AddError(diagnostic.CodePathConflict, pc.Error(), t.Name, pc.Field)
			return
		}

		res.AddError(diagnostic.CodePathConflict, err.Error(), t.Name, "")
	}
}

func validateField(res *diagnostic.Diagnostics, typ string, fl *Field) {
	if !isIdent(fl.Name) {
		res.AddErrorf(diagnostic.CodeInvalidName, typ, fl.Name, "field name %q is not a valid identifier", fl.Name)
	}

	if len(fl.Path) == 0 {
		res.AddError(diagnostic.CodeEmptyPath, "path has no segments", typ, fl.Name)
	}

	for i, seg := range fl.Path {
		if seg == "" {
			res.AddErrorf(diagnostic.CodeEmptyPath, typ, fl.Name, "empty segment at position %d of %q", i, fl.Path.String())
		}
	}

	kind, ok := keyed.KindOf(fl.Type)
	if !ok {
		res.AddSuggested(diagnostic.CodeUnknownType, fmt.Sprintf("unknown type %q", fl.Type), typ, fl.Name,
			match.Closest(fl.Type, keyed.TypeNames(), maxSuggestions, match.DefaultMinScore)...)

		return
	}

	if fl.Optional && fl.Implicit {
		res.AddWarning(diagnostic.CodeFlagsOverlap, "both optional and implicit are set; implicit wins", typ, fl.Name)
	}

	if !fl.HasDefault() {
		return
	}

	if fl.NullDefault() {
		res.AddError(diagnostic.CodeDefaultTypeMismatch, "null default; omit the default to fall back to nil", typ, fl.Name)
		return
	}

	if _, err := convertDefault(fl, kind); err != nil {
		res.AddError(diagnostic.CodeDefaultTypeMismatch, err.Error(), typ, fl.Name)
	}
}

func convertDefault(fl *Field, kind keyed.Kind) (any, error) {
	v, err := fl.DefaultValue()
	if err != nil {
		return nil, err
	}

	c, err := keyed.Convert(v, kind)
	if err != nil {
		return nil, fmt.Errorf("default of %s: %w", fl.Name, err)
	}

	return c, nil
}

func isIdent(s string) bool {
	return token.IsIdentifier(s)
}
