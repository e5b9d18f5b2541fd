package jsonschema_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/jsonschema"
	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/value"
)

func TestLoadYAMLSchema(t *testing.T) {
	schemaYAML := `
type: object
properties:
  port:
    type: integer
    maximum: 65535
required: [port]
`
	fsys := fstest.MapFS{
		"schema.yaml": &fstest.MapFile{Data: []byte(schemaYAML)},
	}
	v, err := jsonschema.Load(fsys, "schema.yaml")
	require.NoError(t, err)

	require.NoError(t, v.ValidateReader(strings.NewReader(`{"port": 8080}`)))

	err = v.ValidateReader(strings.NewReader(`{"port": 70000}`))
	list, ok := errors.AsValidations(err)
	require.True(t, ok, "error %v", err)
	assert.Equal(t, "Value 70000 exceeds maximum value of 65535", list[0].Message)
}

func TestLoadErrors(t *testing.T) {
	_, err := jsonschema.Load(nil, "schema.json")
	require.Error(t, err)

	_, err = jsonschema.Load(fstest.MapFS{}, "missing.json")
	require.Error(t, err)

	fsys := fstest.MapFS{
		"bad.json": &fstest.MapFile{Data: []byte(`{"type":`)},
	}
	_, err = jsonschema.Load(fsys, "bad.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")

	_, err = jsonschema.Parse(nil)
	require.Error(t, err)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(`{"type":"array","minItems":2}`), 0o600))

	goodPath := filepath.Join(dir, "good.yml")
	require.NoError(t, os.WriteFile(goodPath, []byte("- a\n- b\n"), 0o600))
	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`["a"]`), 0o600))

	v, err := jsonschema.LoadFile(schemaPath)
	require.NoError(t, err)

	require.NoError(t, v.ValidateFile(goodPath))

	err = v.ValidateFile(badPath)
	list, ok := errors.AsValidations(err)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, badPath, list[0].Document)

	err = v.ValidateFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	_, ok = errors.AsValidations(err)
	assert.False(t, ok)
}

func TestNilValidator(t *testing.T) {
	var v *jsonschema.Validator
	err := v.ValidateReader(strings.NewReader(`{}`))
	list, ok := errors.AsValidations(err)
	require.True(t, ok)
	assert.Equal(t, "schema not loaded", list[0].Message)
}

func TestValidateReaderMalformedDocument(t *testing.T) {
	v := jsonschema.New(value.MustParseJSON(`{}`))
	err := v.ValidateReader(strings.NewReader(`{`))
	require.Error(t, err)
	_, ok := errors.AsValidations(err)
	assert.False(t, ok)
}
