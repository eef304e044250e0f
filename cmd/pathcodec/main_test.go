package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = "testdata/codable.yaml"

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCLI(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Usage: pathcodec <command>")

	code, _, stderr = runCLI(t, "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Unknown command: frobnicate")

	code, stdout, _ := runCLI(t, "help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "decode")

	code, _, _ = runCLI(t, "plan", "-h")
	assert.Equal(t, 0, code)

	code, _, stderr = runCLI(t, "plan", "-nope")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "flag provided but not defined")
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCLI(t, "version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "pathcodec dev\n", stdout)
}

func TestRun_PlanListing(t *testing.T) {
	code, stdout, stderr := runCLI(t, "plan", "-schema", testSchema, "-type", "SomeCodable")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "decode SomeCodable:")
	assert.Contains(t, stdout, "encode SomeCodable:")
	assert.NotContains(t, stdout, "Settings")
}

func TestRun_PlanJSON(t *testing.T) {
	code, stdout, stderr := runCLI(t, "plan", "-schema", testSchema, "-format", "json")
	require.Equal(t, 0, code, stderr)

	var exported struct {
		Plans []struct {
			Type string `json:"type"`
		} `json:"plans"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &exported))
	require.Len(t, exported.Plans, 2)
	assert.Equal(t, "SomeCodable", exported.Plans[0].Type)
	assert.Equal(t, "Settings", exported.Plans[1].Type)
}

func TestRun_PlanUnknownType(t *testing.T) {
	code, _, stderr := runCLI(t, "plan", "-schema", testSchema, "-type", "Setings")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `unknown type "Setings" (did you mean Settings?)`)
}

func TestRun_Decode(t *testing.T) {
	doc := writeFile(t, "doc.json", `{"stats": {"count": 3}}`)

	code, stdout, stderr := runCLI(t, "decode", "-schema", testSchema, "-type", "SomeCodable", "-doc", doc, "-trace")
	require.Equal(t, 0, code, stderr)

	values, trace, ok := bytes.Cut([]byte(stdout), []byte("}\n"))
	require.True(t, ok)

	assert.JSONEq(t, `{"count": 3, "value1": "some", "value2": "some", "value3": null}`, string(values)+"}")

	for _, want := range []string{
		"probes: 1",
		"scope deeply: missing",
		"scope nested: cascaded",
		"scope stats: present",
		"field value1: fallback",
		"field value3: fallback",
		"field count: decoded",
	} {
		assert.Contains(t, string(trace), want)
	}
}

func TestRun_DecodeYAMLFailure(t *testing.T) {
	doc := writeFile(t, "doc.yaml", "deeply:\n  nested:\n    key1: x\n")

	code, _, stderr := runCLI(t, "decode", "-schema", testSchema, "-type", "SomeCodable", "-doc", doc)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "decoding SomeCodable")
	assert.Contains(t, stderr, "stats")
}

func TestRun_Encode(t *testing.T) {
	values := writeFile(t, "values.json", `{"value1": "a", "count": 2}`)

	code, stdout, stderr := runCLI(t, "encode", "-schema", testSchema, "-type", "SomeCodable", "-values", values)
	require.Equal(t, 0, code, stderr)

	assert.JSONEq(t, `{"deeply": {"nested": {"key1": "a"}}, "stats": {"count": 2}}`, stdout)
}

func TestRun_EncodeUnknownField(t *testing.T) {
	values := writeFile(t, "values.yaml", "cnt: 2\n")

	code, _, stderr := runCLI(t, "encode", "-schema", testSchema, "-type", "SomeCodable", "-values", values)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `unknown field "cnt"`)
}

func TestRun_EncodeMissingRequired(t *testing.T) {
	values := writeFile(t, "values.json", `{"count": 2}`)

	code, _, stderr := runCLI(t, "encode", "-schema", testSchema, "-type", "SomeCodable", "-values", values)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "field value1")
}

func TestRun_Gen(t *testing.T) {
	out := t.TempDir()

	code, stdout, stderr := runCLI(t, "gen", "-schema", testSchema, "-out", out, "-package", "codecs")
	require.Equal(t, 0, code, stderr)

	for _, name := range []string{"some_codable_codec.go", "settings_codec.go"} {
		path := filepath.Join(out, name)
		assert.Contains(t, stdout, path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "package codecs")
		assert.Contains(t, string(data), "// Code generated by pathcodec from codable.yaml. DO NOT EDIT.")
	}
}

func TestRun_GenDryRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "never")

	code, stdout, stderr := runCLI(t, "gen", "-schema", testSchema, "-out", out, "-type", "Settings", "-dry-run")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, filepath.Join(out, "settings_codec.go"))

	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_Validate(t *testing.T) {
	code, stdout, stderr := runCLI(t, "validate", "-schema", testSchema)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "is valid (2 types)")

	bad := writeFile(t, "bad.yaml", `types:
  - name: Broken
    fields:
      - name: a
        type: strng
        path: x.y
`)

	code, _, stderr = runCLI(t, "validate", "-schema", bad)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown_type")
	assert.Contains(t, stderr, "string")

	code, _, stderr = runCLI(t, "plan", "-schema", bad)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "is invalid")
}

func TestRun_MissingSchema(t *testing.T) {
	code, _, stderr := runCLI(t, "validate")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "-schema is required")
}

func TestRun_Init(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathcodec.yaml")

	code, stdout, stderr := runCLI(t, "init", "-config", path)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "wrote "+path)

	code, _, stderr = runCLI(t, "init", "-config", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "already exists")

	code, _, _ = runCLI(t, "init", "-config", path, "-force")
	assert.Equal(t, 0, code)

	code, stdout, stderr = runCLI(t, "validate", "-config", path, "-schema", testSchema)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "is valid")
}

func TestRun_Scan(t *testing.T) {
	out := filepath.Join(t.TempDir(), "store.yaml")

	code, _, stderr := runCLI(t, "scan", "-out", out, "pathcodec/store")
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	for _, want := range []string{"package: store", "name: Product", "kind: reference", "path: pricing.currency", "default: EUR"} {
		assert.Contains(t, string(data), want)
	}

	code, stdout, stderr := runCLI(t, "plan", "-schema", out, "-type", "Customer")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "decode Customer:")
}
