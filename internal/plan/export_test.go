package plan

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"pathcodec/internal/field"
)

func nestedDefaultSpec() TypeSpec {
	return TypeSpec{
		Name: "SomeCodable",
		Fields: []field.Descriptor{
			field.New("value", "deeply.nested.key", "string", defaulted("some")),
		},
	}
}

func TestExportYAML(t *testing.T) {
	p := mustSynthesize(t, nestedDefaultSpec())

	data, err := ExportYAML(p)
	require.NoError(t, err)

	var doc struct {
		Version string `yaml:"version"`
		Plans   []struct {
			Type   string              `yaml:"type"`
			Kind   string              `yaml:"kind"`
			Keys   []map[string]string `yaml:"keys"`
			Decode []map[string]any    `yaml:"decode"`
			Encode []map[string]any    `yaml:"encode"`
		} `yaml:"plans"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))

	assert.Equal(t, "1", doc.Version)
	require.Len(t, doc.Plans, 1)

	got := doc.Plans[0]
	assert.Equal(t, "SomeCodable", got.Type)
	assert.Equal(t, "value", got.Kind)
	assert.Equal(t, []map[string]string{
		{"name": "value", "key": "key", "kind": "field"},
		{"name": "deeply", "key": "deeply", "kind": "scope"},
		{"name": "nested", "key": "nested", "kind": "scope"},
	}, got.Keys)

	require.NotEmpty(t, got.Decode)
	assert.Equal(t, map[string]any{"op": "OpenScope", "scope": "."}, got.Decode[0])
	assert.Equal(t, map[string]any{"op": "ProbeAbsence", "scope": "deeply", "parent": ".", "key": "deeply"}, got.Decode[1])

	last := got.Decode[len(got.Decode)-2]
	assert.Equal(t, "AssignFallback", last["op"])
	assert.Equal(t, "some", last["fallback"])

	assert.Equal(t, "WriteField", got.Encode[len(got.Encode)-1]["op"])
	assert.Equal(t, "required", got.Encode[len(got.Encode)-1]["mode"])
}

func TestExportYAML_NilFallbackIsExplicit(t *testing.T) {
	p := mustSynthesize(t, TypeSpec{
		Name:   "Opt",
		Fields: []field.Descriptor{field.New("v", "a.b", "int", field.Optional())},
	})

	data, err := ExportYAML(p)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "fallback: null"), string(data))
}

func TestExportJSON(t *testing.T) {
	spec := mixedSpec()
	spec.Kind = KindReference

	p := mustSynthesize(t, spec)

	data, err := ExportJSON(p)
	require.NoError(t, err)

	var doc ExportFile
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Plans, 1)

	got := doc.Plans[0]
	assert.Equal(t, "reference", got.Kind)
	assert.True(t, got.Initializer.RequiresOverride)
	assert.Len(t, got.Keys, 9)
	assert.Len(t, got.Encode, 10)
	assert.Equal(t, "OpenWriteScope", got.Encode[0].Op)
	assert.Len(t, got.Initializer.Params, 6)
	assert.Nil(t, got.Initializer.Params[0].Default)
}

func TestListing(t *testing.T) {
	p := mustSynthesize(t, nestedDefaultSpec())

	want := `decode SomeCodable:
  OpenScope .
  ProbeAbsence deeply = .["deeply"]
  ProbeAbsence nested = deeply["nested"]
  IfPresent deeply
    IfPresent nested
      DecodeInto value = nested["key"] ?? "some"
    Else nested
      AssignFallback value = "some"
    EndIf nested
  Else deeply
    AssignFallback value = "some"
  EndIf deeply
encode SomeCodable:
  OpenWriteScope .
  OpenWriteScope deeply = .["deeply"]
  OpenWriteScope nested = deeply["nested"]
  WriteField nested["key"] = value (required)
`
	assert.Equal(t, want, p.Listing())
	assert.Contains(t, p.Dump(), "plan SomeCodable (value)")
}
