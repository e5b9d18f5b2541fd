package jsonschema

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/value"
)

// Decode reads a JSON or YAML document from r. Names ending in .yaml or
// .yml are decoded as YAML; everything else as JSON.
func Decode(r io.Reader, name string) (value.Value, error) {
	if r == nil {
		return value.Value{}, fmt.Errorf("decode %s: nil reader", name)
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return value.DecodeYAML(r)
	default:
		return value.DecodeJSON(r)
	}
}

// Load reads the schema at location from fsys and returns its Validator.
func Load(fsys fs.FS, location string, opts ...Option) (*Validator, error) {
	if fsys == nil {
		return nil, fmt.Errorf("load schema %s: nil fs", location)
	}
	f, err := fsys.Open(location)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", location, err)
	}
	defer f.Close()

	schema, err := Decode(f, location)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", location, err)
	}
	return New(schema, opts...), nil
}

// LoadFile loads a schema from a file path.
func LoadFile(path string, opts ...Option) (*Validator, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	return Load(os.DirFS(dir), base, opts...)
}

// Parse reads a JSON schema from r.
func Parse(r io.Reader, opts ...Option) (*Validator, error) {
	if r == nil {
		return nil, fmt.Errorf("parse schema: nil reader")
	}
	schema, err := value.DecodeJSON(r)
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return New(schema, opts...), nil
}

// ValidateReader validates the JSON document read from r. Violations are
// returned as an errors.ValidationList.
func (v *Validator) ValidateReader(r io.Reader) error {
	if v == nil {
		return schemaNotLoadedError()
	}
	if r == nil {
		return fmt.Errorf("validate: nil reader")
	}
	instance, err := value.DecodeJSON(r)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return v.Validate(instance).Err("")
}

// ValidateFile validates a JSON or YAML file.
func (v *Validator) ValidateFile(path string) (err error) {
	if v == nil {
		return schemaNotLoadedError()
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open document %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close document %s: %w", path, closeErr)
		}
	}()

	instance, err := Decode(f, path)
	if err != nil {
		return fmt.Errorf("validate %s: %w", path, err)
	}
	return v.Validate(instance).Err(path)
}

// ValidateSchema checks the root schema against the draft-04 meta-schema.
func (v *Validator) ValidateSchema() error {
	if v == nil {
		return schemaNotLoadedError()
	}
	return v.CheckSchema().Err("")
}

// CheckSchema validates the root schema against the draft-04 meta-schema.
func (v *Validator) CheckSchema() Result {
	return v.Resolve(Draft04MetaSchemaURI)(v.schema)
}

func schemaNotLoadedError() error {
	return errors.ValidationList{errors.NewValidation("schema not loaded", "")}
}
