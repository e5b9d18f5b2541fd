package value

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	assert.True(t, v.IsNull())
	assert.Equal(t, KindNull, v.Kind())
	assert.Equal(t, "null", v.String())
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindNull:   "null",
		KindBool:   "boolean",
		KindNumber: "number",
		KindString: "string",
		KindArray:  "array",
		KindObject: "object",
	}
	for k, want := range tests {
		assert.Equal(t, want, k.String())
	}
}

func TestAccessorsRejectOtherKinds(t *testing.T) {
	v := String("x")

	_, ok := v.AsNumber()
	assert.False(t, ok)
	_, ok = v.AsBool()
	assert.False(t, ok)
	_, ok = v.AsArray()
	assert.False(t, ok)
	_, ok = v.AsObject()
	assert.False(t, ok)
	_, ok = v.Get("x")
	assert.False(t, ok)

	s, ok := v.AsString()
	require.True(t, ok)
	assert.Equal(t, "x", s)
}

func TestIsInteger(t *testing.T) {
	assert.True(t, Number(3).IsInteger())
	assert.True(t, Number(-0).IsInteger())
	assert.False(t, Number(3.5).IsInteger())
	assert.False(t, Number(math.Inf(1)).IsInteger())
	assert.False(t, String("3").IsInteger())
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "numbers by value", a: `1`, b: `1.0`, want: true},
		{name: "different kinds", a: `1`, b: `"1"`, want: false},
		{name: "object order ignored", a: `{"a":1,"b":[true,null]}`, b: `{"b":[true,null],"a":1}`, want: true},
		{name: "array order matters", a: `[1,2]`, b: `[2,1]`, want: false},
		{name: "nested mismatch", a: `{"a":{"b":1}}`, b: `{"a":{"b":2}}`, want: false},
		{name: "missing member", a: `{"a":1}`, b: `{"a":1,"b":1}`, want: false},
		{name: "nulls", a: `null`, b: `null`, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(MustParseJSON(tt.a), MustParseJSON(tt.b)))
		})
	}
}

func TestParseJSONRendering(t *testing.T) {
	v := MustParseJSON(`{"z": [1, 2.5, "s"], "a": {"t": true, "n": null}}`)
	assert.Equal(t, `{"a":{"n":null,"t":true},"z":[1,2.5,"s"]}`, v.String())
	assert.Equal(t, []string{"a", "z"}, v.Keys())
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	_, err := ParseJSON([]byte(`{"a":1} {"b":2}`))
	require.Error(t, err)

	_, err = ParseJSON([]byte(`{"a":`))
	require.Error(t, err)
}

func TestDecodeYAML(t *testing.T) {
	doc := `
base: &base
  type: integer
properties:
  count: *base
  name:
    type: string
    minLength: 1
  created: 2001-12-14
required: [count, name]
flag: yes
nothing: ~
ratio: 0.5
`
	v, err := DecodeYAML(strings.NewReader(doc))
	require.NoError(t, err)

	want := MustParseJSON(`{
		"base": {"type": "integer"},
		"properties": {
			"count": {"type": "integer"},
			"name": {"type": "string", "minLength": 1},
			"created": "2001-12-14"
		},
		"required": ["count", "name"],
		"flag": "yes",
		"nothing": null,
		"ratio": 0.5
	}`)
	assert.True(t, Equal(want, v), "got %s", v)
}

func TestDecodeYAMLEmptyDocument(t *testing.T) {
	v, err := DecodeYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestDecodeYAMLRejectsComplexKeys(t *testing.T) {
	_, err := DecodeYAML(strings.NewReader("? [a, b]\n: 1\n"))
	require.Error(t, err)
}

func TestDecodeYAMLAliasExpansionLimit(t *testing.T) {
	var doc strings.Builder
	doc.WriteString("a0: &a0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i < 9; i++ {
		fmt.Fprintf(&doc, "a%d: &a%d [", i, i)
		for j := range 10 {
			if j > 0 {
				doc.WriteString(", ")
			}
			fmt.Fprintf(&doc, "*a%d", i-1)
		}
		doc.WriteString("]\n")
	}

	_, err := DecodeYAML(strings.NewReader(doc.String()))
	require.ErrorIs(t, err, ErrYAMLTooLarge)
}

func TestDecodeYAMLSmallAliasFanOut(t *testing.T) {
	v, err := DecodeYAML(strings.NewReader("base: &b {type: string}\nprops: {a: *b, b: *b, c: *b}\n"))
	require.NoError(t, err)
	props, ok := v.Get("props")
	require.True(t, ok)
	assert.Len(t, props.Keys(), 3)
}

func TestDecodeYAMLRejectsNonFiniteNumbers(t *testing.T) {
	for _, doc := range []string{"x: .inf\n", "x: -.Inf\n", "x: .nan\n"} {
		_, err := DecodeYAML(strings.NewReader(doc))
		assert.ErrorContains(t, err, "not a finite number", doc)
	}
}

func TestMarshalJSONRejectsNonFiniteNumbers(t *testing.T) {
	_, err := Array(Number(math.Inf(1))).MarshalJSON()
	require.Error(t, err)
}

func TestFromGo(t *testing.T) {
	v, err := FromGo(map[string]any{
		"n": 3,
		"f": float32(1.5),
		"a": []any{"x", nil, true},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":["x",null,true],"f":1.5,"n":3}`, v.String())

	_, err = FromGo(struct{}{})
	require.Error(t, err)
}

func TestValueJSONRoundTripThroughStruct(t *testing.T) {
	var v Value
	require.NoError(t, v.UnmarshalJSON([]byte(`[1e3, "x"]`)))
	b, err := v.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `[1000,"x"]`, string(b))
}
