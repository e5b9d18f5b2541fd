package jsonschema

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/value"
)

func mustJSON(doc string) value.Value {
	return value.MustParseJSON(doc)
}

var sampleInstances = []string{
	`null`, `true`, `false`, `0`, `-1.5`, `"x"`, `""`, `[]`, `[1,"a",null]`, `{}`, `{"a":{"b":[1]}}`,
}

func TestBooleanSchemas(t *testing.T) {
	v := New(mustJSON(`{}`))
	for _, doc := range sampleInstances {
		instance := mustJSON(doc)

		assert.True(t, v.ValidateAgainst(instance, value.Bool(true)).IsValid(), "true schema on %s", doc)

		r := v.ValidateAgainst(instance, value.Bool(false))
		assert.Equal(t, []string{"Falsy schema"}, r.Messages(), "false schema on %s", doc)
	}
}

func TestNonObjectSchemasArePermissive(t *testing.T) {
	v := New(mustJSON(`{}`))
	for _, schema := range []string{`null`, `1`, `"string"`, `[{"type":"string"}]`} {
		assert.True(t, v.ValidateAgainst(mustJSON(`42`), mustJSON(schema)).IsValid(), "schema %s", schema)
	}
}

func TestUnknownKeywordsIgnored(t *testing.T) {
	v := New(mustJSON(`{"x-custom": 1, "title": "t", "description": "d"}`))
	assert.True(t, v.Validate(mustJSON(`"anything"`)).IsValid())
}

func TestRefIsExclusive(t *testing.T) {
	v := New(mustJSON(`{
		"definitions": {"x": {"type": "number"}},
		"properties": {
			"a": {"$ref": "#/definitions/x", "type": "string"}
		}
	}`))
	schema := mustJSON(`{"$ref": "#/definitions/x", "type": "string"}`)

	r := v.ValidateAgainst(mustJSON(`"s"`), schema)
	assert.Equal(t, []string{"'s' is not of type 'number'"}, r.Messages())

	assert.True(t, v.ValidateAgainst(mustJSON(`5`), schema).IsValid(), "sibling type must not apply")
	assert.True(t, v.Validate(mustJSON(`{"a": 3}`)).IsValid())
}

func TestNonStringRefFallsThroughToKeywords(t *testing.T) {
	v := New(mustJSON(`{"$ref": 5, "type": "string"}`))
	assert.True(t, v.Validate(mustJSON(`"s"`)).IsValid())
	assert.False(t, v.Validate(mustJSON(`1`)).IsValid())
}

func TestLocalPointerResolution(t *testing.T) {
	v := New(mustJSON(`{"definitions": {"pos": {"minimum": 0}}}`))
	schema := mustJSON(`{"$ref": "#/definitions/pos"}`)

	assert.False(t, v.ValidateAgainst(mustJSON(`-1`), schema).IsValid())
	assert.True(t, v.ValidateAgainst(mustJSON(`1`), schema).IsValid())
}

func TestArrayIndexedPointer(t *testing.T) {
	v := New(mustJSON(`{"items": [{"type": "string"}, {"type": "number"}]}`))
	resolved := v.Resolve("#/items/1")

	assert.True(t, resolved(mustJSON(`5`)).IsValid())
	assert.False(t, resolved(mustJSON(`"x"`)).IsValid())
	assert.True(t, v.Resolve("#/items/0")(mustJSON(`"x"`)).IsValid())
}

func TestUnresolvablePointers(t *testing.T) {
	v := New(mustJSON(`{
		"definitions": {"a": {"type": "string"}, "s": "scalar"},
		"items": [{"type": "string"}]
	}`))
	tests := []struct {
		ref  string
		want string
	}{
		{ref: "#/definitions/missing", want: "Reference not found 'missing' in 'definitions/missing'"},
		{ref: "#/nothing/here", want: "Reference not found 'nothing' in 'nothing/here'"},
		{ref: "#/definitions/s", want: "Reference not found 's' in 'definitions/s'"},
		{ref: "#/items/5", want: "Reference not found 'items' in 'items/5'"},
		{ref: "#/items/-1", want: "Reference not found 'items' in 'items/-1'"},
		{ref: "#/items/first", want: "Reference not found 'items' in 'items/first'"},
		{ref: "#/items", want: "Reference not found 'items' in 'items'"},
		{ref: "#/definitions/a%20b", want: "Reference not found 'a b' in 'definitions/a b'"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			r := v.Resolve(tt.ref)(mustJSON(`"x"`))
			assert.Equal(t, []string{tt.want}, r.Messages())
		})
	}
}

func TestPercentEncodedPointer(t *testing.T) {
	v := New(mustJSON(`{"definitions": {"a b": {"type": "integer"}, "c/d": {"type": "string"}}}`))

	assert.True(t, v.Resolve("#/definitions/a%20b")(mustJSON(`1`)).IsValid())
	assert.False(t, v.Resolve("#/definitions/a%20b")(mustJSON(`1.5`)).IsValid())
	assert.True(t, v.Resolve("#/definitions/c~1d")(mustJSON(`"s"`)).IsValid())
}

func TestRemoteRefRejected(t *testing.T) {
	v := New(mustJSON(`{}`))
	for _, ref := range []string{"http://example.com/schema.json", "other.json#/definitions/a", "#anchor", "#/bad%zz"} {
		r := v.ValidateAgainst(mustJSON(`1`), value.Object(map[string]value.Value{"$ref": value.String(ref)}))
		assert.Equal(t, []string{"Remote $ref '" + ref + "' is not yet supported"}, r.Messages())
	}
}

func TestRootRef(t *testing.T) {
	v := New(mustJSON(`{
		"type": "object",
		"properties": {"child": {"$ref": "#"}},
		"required": ["name"]
	}`))

	assert.True(t, v.Validate(mustJSON(`{"name": 1, "child": {"name": 2}}`)).IsValid())

	r := v.Validate(mustJSON(`{"name": 1, "child": {"child": {}}}`))
	assert.Equal(t, []string{
		"Required property 'name' is missing",
		"Required property 'name' is missing",
	}, r.Messages())
}

func TestMetaSchemaReference(t *testing.T) {
	v := New(mustJSON(`{"$ref": "http://json-schema.org/draft-04/schema#"}`))

	good := mustJSON(`{
		"type": "object",
		"properties": {"a": {"type": "string", "minLength": 1}},
		"required": ["a"],
		"additionalProperties": false,
		"items": [{"type": "number"}]
	}`)
	assert.True(t, v.Validate(good).IsValid(), "%v", v.Validate(good).Messages())

	assert.False(t, v.Validate(mustJSON(`{"type": 123}`)).IsValid())
	assert.False(t, v.Validate(mustJSON(`{"minLength": -1}`)).IsValid())
	assert.False(t, v.Validate(mustJSON(`{"required": []}`)).IsValid())
	assert.False(t, v.Validate(mustJSON(`{"exclusiveMinimum": true}`)).IsValid())
}

func TestCheckSchema(t *testing.T) {
	assert.True(t, New(mustJSON(`{"type": "string"}`)).CheckSchema().IsValid())
	require.Error(t, New(mustJSON(`{"type": "strin"}`)).ValidateSchema())
	require.NoError(t, New(mustJSON(`{"properties": {"a": {"enum": [1, 2]}}}`)).ValidateSchema())
}

func TestDeterministicMessageOrder(t *testing.T) {
	v := New(mustJSON(`{
		"type": "string",
		"minimum": 10,
		"maximum": 0,
		"enum": ["a"],
		"required": ["x"]
	}`))
	instance := mustJSON(`5`)

	want := []string{
		"'5' is not a valid enumeration value of '[\"a\"]'",
		"Value 5 exceeds maximum value of 0",
		"Value 5 is lower than minimum value of 10",
		"'5' is not of type 'string'",
	}
	for range 10 {
		assert.Equal(t, want, v.Validate(instance).Messages())
	}
}

func TestIdempotence(t *testing.T) {
	v := New(mustJSON(`{
		"definitions": {"n": {"type": "number", "multipleOf": 2}},
		"type": "array",
		"items": {"$ref": "#/definitions/n"},
		"uniqueItems": true
	}`))
	instance := mustJSON(`[2, 3, "x", 2]`)

	first := v.Validate(instance)
	require.False(t, first.IsValid())
	for range 5 {
		assert.True(t, first.Equal(v.Validate(instance)))
	}
}

func TestDescendMatchesValidateAgainst(t *testing.T) {
	v := New(mustJSON(`{}`))
	schema := mustJSON(`{"type": "integer"}`)
	for _, doc := range sampleInstances {
		instance := mustJSON(doc)
		assert.True(t, v.Descend(instance, schema).Equal(v.ValidateAgainst(instance, schema)))
	}
}

func TestMaxDepthGuardsSelfReference(t *testing.T) {
	schema := mustJSON(`{"definitions": {"loop": {"$ref": "#/definitions/loop"}}, "$ref": "#/definitions/loop"}`)

	r := New(schema, WithMaxDepth(32)).Validate(mustJSON(`1`))
	assert.Equal(t, []string{"Maximum validation depth 32 exceeded"}, r.Messages())

	r = New(schema).Validate(mustJSON(`1`))
	assert.Equal(t, []string{"Maximum validation depth 1024 exceeded"}, r.Messages())
}

func TestMaxDepthAllowsDeepInstances(t *testing.T) {
	schema := mustJSON(`{"type": "array", "items": {"$ref": "#"}}`)
	doc := strings.Repeat("[", 50) + strings.Repeat("]", 50)

	assert.True(t, New(schema, WithMaxDepth(200)).Validate(mustJSON(doc)).IsValid())
	assert.False(t, New(schema, WithMaxDepth(20)).Validate(mustJSON(doc)).IsValid())
	assert.True(t, New(schema, WithMaxDepth(0)).Validate(mustJSON(doc)).IsValid())
}

func TestResolutionLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	v := New(mustJSON(`{"$ref": "#/definitions/none"}`), WithLogger(logger))

	assert.False(t, v.Validate(mustJSON(`1`)).IsValid())
	assert.Contains(t, buf.String(), `"ref":"#/definitions/none"`)
	assert.Contains(t, buf.String(), "reference not found")
}

func TestWithKeyword(t *testing.T) {
	even := func(_ Engine, keyword, instance, _ value.Value) Result {
		want, _ := keyword.AsBool()
		n, ok := instance.AsNumber()
		if !want || !ok || int(n)%2 == 0 {
			return errors.Valid()
		}
		return errors.Invalid("odd number")
	}
	v := New(mustJSON(`{"even": true, "minimum": 0}`), WithKeyword("even", even))

	assert.True(t, v.Validate(mustJSON(`4`)).IsValid())
	assert.Equal(t, []string{"odd number"}, v.Validate(mustJSON(`3`)).Messages())

	plain := New(mustJSON(`{"even": true}`))
	assert.True(t, plain.Validate(mustJSON(`3`)).IsValid())

	noMinimum := New(mustJSON(`{"minimum": 10}`), WithKeyword("minimum", nil))
	assert.True(t, noMinimum.Validate(mustJSON(`3`)).IsValid())
}

func TestWithFormat(t *testing.T) {
	upper := func(s string) Result {
		if strings.ToUpper(s) != s {
			return errors.Invalid("not upper case")
		}
		return errors.Valid()
	}
	schema := mustJSON(`{"format": "upper"}`)

	assert.True(t, New(schema).Validate(mustJSON(`"abc"`)).IsValid(), "unknown formats pass")
	assert.False(t, New(schema, WithFormat("upper", upper)).Validate(mustJSON(`"abc"`)).IsValid())

	email := mustJSON(`{"format": "email"}`)
	assert.False(t, New(email).Validate(mustJSON(`"nope"`)).IsValid())
	assert.True(t, New(email, WithFormat("email", nil)).Validate(mustJSON(`"nope"`)).IsValid())
}

func TestVocabularyOrdering(t *testing.T) {
	names := Draft04().Names()
	require.NotEmpty(t, names)
	assert.Equal(t, "$ref", names[0])
	assert.IsIncreasing(t, names)

	_, ok := Draft04().Lookup("exclusiveMinimum")
	assert.False(t, ok)
	_, ok = Draft04().Lookup("minimum")
	assert.True(t, ok)
}
