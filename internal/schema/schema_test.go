package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathcodec/internal/diagnostic"
	"pathcodec/internal/field"
	"pathcodec/internal/plan"
)

func TestLoadFile(t *testing.T) {
	f, err := LoadFile("testdata/codable.yaml")
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, "models", f.Package)
	require.Len(t, f.Types, 2)

	sc := f.Types[0]
	assert.Equal(t, "SomeCodable", sc.Name)
	assert.Empty(t, sc.Kind)
	require.Len(t, sc.Fields, 4)
	assert.Equal(t, Path{"deeply", "nested", "key1"}, sc.Fields[0].Path)
	assert.Equal(t, Path{"deeply", "nested", "key2"}, sc.Fields[1].Path)
	assert.True(t, sc.Fields[0].HasDefault())
	assert.False(t, sc.Fields[2].HasDefault())
	assert.True(t, sc.Fields[2].Implicit)

	settings := f.Types[1]
	assert.Equal(t, "reference", settings.Kind)
	assert.Equal(t, Path{"meta", "display.name"}, settings.Fields[1].Path)
	assert.Equal(t, Path{"enabled"}, settings.Fields[2].Path, "omitted path defaults to the field name")

	diags := Validate(f)
	assert.False(t, diags.HasErrors(), diags.Error())

	_, err = LoadFile("testdata/missing.yaml")
	require.Error(t, err)
}

func TestParse_Defaults(t *testing.T) {
	f, err := Parse([]byte("types: []\n"))
	require.NoError(t, err)
	assert.Equal(t, "1", f.Version)
	assert.Equal(t, DefaultPackage, f.Package)

	_, err = Parse([]byte("types: [\n"))
	require.Error(t, err)

	_, err = Parse([]byte("types:\n  - name: A\n    fields:\n      - name: a\n        path: {x: 1}\n"))
	require.Error(t, err)
}

func TestTypeSpecs(t *testing.T) {
	f, err := LoadFile("testdata/codable.yaml")
	require.NoError(t, err)

	specs, err := TypeSpecs(f)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	sc := specs[0]
	assert.Equal(t, plan.KindValue, sc.Kind)
	assert.Equal(t, field.Descriptor{
		Name:   "value1",
		Path:   []string{"deeply", "nested", "key1"},
		Type:   "string",
		Policy: field.Defaulted("some", field.WrapNone),
	}, sc.Fields[0])
	assert.Equal(t, field.Defaulted("some", field.WrapOptional), sc.Fields[1].Policy)
	assert.Equal(t, field.Implicit(), sc.Fields[2].Policy)
	assert.Equal(t, field.Required(), sc.Fields[3].Policy)

	settings := specs[1]
	assert.Equal(t, plan.KindReference, settings.Kind)
	assert.Equal(t, field.Defaulted(1.0, field.WrapNone), settings.Fields[0].Policy,
		"int default converted to float64")

	plans, err := plan.SynthesizeAll(specs)
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		codes    []string
		warnings []string
	}{
		{
			name: "unsupported version",
			yaml: "version: \"2\"\ntypes: []\n",
			codes: []string{diagnostic.CodeUnsupportedVersion},
		},
		{
			name: "invalid package",
			yaml: "package: my-models\ntypes: []\n",
			codes: []string{diagnostic.CodeInvalidName},
		},
		{
			name: "duplicate type",
			yaml: `
types:
  - name: A
    fields: [{name: a, type: int}]
  - name: A
    fields: [{name: a, type: int}]
`,
			codes: []string{diagnostic.CodeDuplicateType},
		},
		{
			name: "duplicate field",
			yaml: `
types:
  - name: A
    fields:
      - {name: a, type: int, path: x}
      - {name: a, type: int, path: y}
`,
			codes: []string{diagnostic.CodeDuplicateField},
		},
		{
			name: "empty path",
			yaml: `
types:
  - name: A
    fields:
      - {name: a, type: int, path: ""}
      - {name: b, type: int, path: "x..y"}
`,
			codes: []string{diagnostic.CodeEmptyPath, diagnostic.CodeEmptyPath},
		},
		{
			name: "path conflict",
			yaml: `
types:
  - name: A
    fields:
      - {name: a, type: int, path: x.y}
      - {name: b, type: int, path: x}
`,
			codes: []string{diagnostic.CodePathConflict},
		},
		{
			name: "unknown type",
			yaml: `
types:
  - name: A
    fields: [{name: a, type: strng}]
`,
			codes: []string{diagnostic.CodeUnknownType},
		},
		{
			name: "invalid kind",
			yaml: "types:\n  - name: A\n    kind: class\n    fields: [{name: a, type: int}]\n",
			codes: []string{diagnostic.CodeInvalidKind},
		},
		{
			name: "default type mismatch",
			yaml: `
types:
  - name: A
    fields:
      - {name: a, type: int, default: "three"}
      - {name: b, type: bool, default: null}
`,
			codes: []string{diagnostic.CodeDefaultTypeMismatch, diagnostic.CodeDefaultTypeMismatch},
		},
		{
			name: "invalid field name",
			yaml: "types:\n  - name: A\n    fields: [{name: my-field, type: int, path: k}]\n",
			codes: []string{diagnostic.CodeInvalidName},
		},
		{
			name: "flags overlap",
			yaml: "types:\n  - name: A\n    fields: [{name: a, type: int, optional: true, implicit: true}]\n",
			warnings: []string{diagnostic.CodeFlagsOverlap},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			diags := Validate(f)
			if len(tt.codes) == 0 {
				assert.False(t, diags.HasErrors(), diags.Error())
			} else {
				assert.Equal(t, tt.codes, diags.Codes(), diags.Error())
			}

			var warnings []string
			for _, w := range diags.Warnings {
				warnings = append(warnings, w.Code)
			}

			assert.Equal(t, tt.warnings, warnings)
		})
	}
}

func TestValidate_Suggestions(t *testing.T) {
	f, err := Parse([]byte("types:\n  - name: A\n    kind: refrence\n    fields: [{name: a, type: strng}]\n"))
	require.NoError(t, err)

	diags := Validate(f)
	require.Len(t, diags.Errors, 2)
	assert.Equal(t, []string{"reference"}, diags.Errors[0].Suggestions)
	assert.Equal(t, []string{"string"}, diags.Errors[1].Suggestions)
	assert.Contains(t, diags.Errors[1].String(), `[A] a: [unknown_type] unknown type "strng" (did you mean string?)`)
}

func TestPath_MarshalYAML(t *testing.T) {
	v, err := Path{"a", "b"}.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "a.b", v)

	v, err = Path{"a", "b.c"}.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b.c"}, v)
}

func TestMarshal_RoundTrip(t *testing.T) {
	f, err := LoadFile("testdata/codable.yaml")
	require.NoError(t, err)

	data, err := Marshal(f)
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)

	want, err := TypeSpecs(f)
	require.NoError(t, err)

	got, err := TypeSpecs(again)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
