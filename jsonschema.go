// Package jsonschema validates JSON-like values against JSON Schema draft-04
// documents.
//
// A Validator is built once from a schema and is immutable afterwards, so a
// single Validator may be shared by any number of goroutines. Every call to
// Validate is an independent recursive descent returning a Result that is
// either valid or carries the ordered list of violation messages.
package jsonschema

import (
	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/formats"
	"github.com/jacoelho/jsonschema/internal/metaschema"
)

// Result is the outcome of a validation.
type Result = errors.Result

// FormatChecker validates a string against a named format.
type FormatChecker = formats.Checker

// Draft04MetaSchemaURI identifies the draft-04 meta-schema. A "$ref" to it
// validates the instance as a schema document.
const Draft04MetaSchemaURI = metaschema.Draft04URI
