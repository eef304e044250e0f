package keyed

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `{
  "name": "pathcodec",
  "count": 3,
  "ratio": 0.5,
  "enabled": true,
  "empty": null,
  "meta": {"owner": {"id": 7}, "tag": "x"}
}`

func mustJSON(t *testing.T, data string) *MapDecoder {
	t.Helper()

	d, err := ParseJSON([]byte(data))
	require.NoError(t, err)

	return d
}

func TestMapDecoder_Classify(t *testing.T) {
	d := mustJSON(t, doc)

	assert.Equal(t, Present, Classify(d, "name"))
	assert.Equal(t, Null, Classify(d, "empty"))
	assert.Equal(t, Missing, Classify(d, "absent"))
	assert.Equal(t, "null", Null.String())
}

func TestMapDecoder_Nested(t *testing.T) {
	d := mustJSON(t, doc)

	meta, err := d.Nested("meta")
	require.NoError(t, err)
	assert.Equal(t, []string{"meta"}, meta.Path())

	owner, err := meta.Nested("owner")
	require.NoError(t, err)
	assert.Equal(t, []string{"meta", "owner"}, owner.Path())

	id, err := Decode[int](owner, "id")
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	_, err = d.Nested("absent")
	require.ErrorIs(t, err, ErrKeyNotFound)

	_, err = d.Nested("empty")
	require.ErrorIs(t, err, ErrValueNotFound)

	_, err = d.Nested("name")
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestDecode(t *testing.T) {
	d := mustJSON(t, doc)

	name, err := Decode[string](d, "name")
	require.NoError(t, err)
	assert.Equal(t, "pathcodec", name)

	ratio, err := Decode[float64](d, "ratio")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, ratio, 1e-9)

	enabled, err := Decode[bool](d, "enabled")
	require.NoError(t, err)
	assert.True(t, enabled)

	_, err = Decode[string](d, "absent")
	require.ErrorIs(t, err, ErrKeyNotFound)

	_, err = Decode[string](d, "empty")
	require.ErrorIs(t, err, ErrValueNotFound)

	_, err = Decode[int](d, "ratio")
	require.ErrorIs(t, err, ErrTypeMismatch)

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "ratio", de.Key)
	assert.Equal(t, "decoding ratio: type mismatch: expected int, found float64", err.Error())
}

func TestDecodeIfPresent(t *testing.T) {
	d := mustJSON(t, doc)

	p, err := DecodeIfPresent[int](d, "count")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 3, *p)

	p, err = DecodeIfPresent[int](d, "empty")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = DecodeIfPresent[int](d, "absent")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = DecodeIfPresent[int](nil, "count")
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = DecodeIfPresent[int](d, "name")
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestDecodeOr(t *testing.T) {
	d := mustJSON(t, doc)

	v, err := DecodeOr(d, "absent", "some")
	require.NoError(t, err)
	assert.Equal(t, "some", v)

	v, err = DecodeOr(d, "empty", "some")
	require.NoError(t, err)
	assert.Equal(t, "some", v)

	v, err = DecodeOr(d, "name", "some")
	require.NoError(t, err)
	assert.Equal(t, "pathcodec", v)

	p, err := DecodePtrOr(d, "absent", 4)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 4, *p)
}

func TestProbe(t *testing.T) {
	d := mustJSON(t, doc)

	meta, err := Probe(d, "meta")
	require.NoError(t, err)
	require.NotNil(t, meta)

	owner, err := Probe(meta, "owner")
	require.NoError(t, err)
	require.NotNil(t, owner)

	for _, key := range []string{"absent", "empty"} {
		got, err := Probe(d, key)
		require.NoError(t, err, key)
		assert.Nil(t, got, key)

		below, err := Probe(got, "anything")
		require.NoError(t, err)
		assert.Nil(t, below)
	}

	_, err = Probe(d, "name")
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestParseYAML(t *testing.T) {
	d, err := ParseYAML([]byte("a:\n  b: 2\n  c: 1.5\n"))
	require.NoError(t, err)

	a, err := d.Nested("a")
	require.NoError(t, err)

	b, err := Decode[int](a, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, b)

	c, err := Decode[float64](a, "c")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, c, 1e-9)

	bf, err := Decode[float64](a, "b")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, bf, 1e-9)

	_, err = ParseYAML([]byte("- 1\n- 2\n"))
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestMapEncoder(t *testing.T) {
	e := NewEncoder()

	a := e.Nested("a")
	b := a.Nested("b")
	require.NoError(t, e.Encode("top", 1))
	require.NoError(t, a.Nested("b").Encode("leaf", "x"))

	assert.Equal(t, map[string]any{
		"top": 1,
		"a":   map[string]any{"b": map[string]any{"leaf": "x"}},
	}, e.Map())
	assert.NotNil(t, b)

	err := e.Encode("bad", struct{}{})
	require.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestMapEncoder_EmptyScopesAreKept(t *testing.T) {
	e := NewEncoder()
	e.Nested("a").Nested("b")

	data, err := MarshalJSON(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": {"b": {}}}`, string(data))

	data, err = MarshalYAML(e)
	require.NoError(t, err)
	assert.Equal(t, "a:\n    b: {}\n", string(data))
}

func TestConvert(t *testing.T) {
	v, err := Convert(float64(3), KindInt)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = Convert(3, KindFloat)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, v, 1e-9)

	v, err = Convert([]any{1}, KindAny)
	require.NoError(t, err)
	assert.Equal(t, []any{1}, v)

	for _, big := range []any{1e20, -1e20, float64(math.MaxInt64), math.Inf(1), math.NaN(), uint64(math.MaxUint64)} {
		_, err = Convert(big, KindInt)
		require.ErrorIs(t, err, ErrTypeMismatch, "%v", big)
	}

	v, err = Convert(float64(-7), KindInt)
	require.NoError(t, err)
	assert.Equal(t, -7, v)

	_, err = Convert(3.5, KindInt)
	require.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Convert("true", KindBool)
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestKindOf(t *testing.T) {
	for _, name := range TypeNames() {
		k, ok := KindOf(name)
		require.True(t, ok, name)
		assert.Equal(t, name, k.String())
	}

	_, ok := KindOf("complex128")
	assert.False(t, ok)
}
