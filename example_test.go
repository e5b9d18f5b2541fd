package jsonschema_test

import (
	"fmt"
	"strings"
	"testing/fstest"

	"github.com/jacoelho/jsonschema"
	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/value"
)

func ExampleLoad() {
	schemaJSON := `{"type": "string"}`

	fsys := fstest.MapFS{
		"simple.json": &fstest.MapFile{Data: []byte(schemaJSON)},
	}

	validator, err := jsonschema.Load(fsys, "simple.json")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	_ = validator
	fmt.Println("Schema loaded successfully")
	// Output: Schema loaded successfully
}

func ExampleValidator_ValidateReader() {
	schemaJSON := `{
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "age": {"type": "integer", "minimum": 0}
  },
  "required": ["name", "age"]
}`

	validator, err := jsonschema.Parse(strings.NewReader(schemaJSON))
	if err != nil {
		fmt.Printf("Error loading schema: %v\n", err)
		return
	}

	doc := `{"name": "John Doe", "age": -1}`

	if err := validator.ValidateReader(strings.NewReader(doc)); err != nil {
		if violations, ok := errors.AsValidations(err); ok {
			for _, v := range violations {
				fmt.Printf("Validation: %s\n", v.Error())
			}
			return
		}
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("Document is valid")
	// Output: Validation: Value -1 is lower than minimum value of 0
}

func ExampleValidator_Validate() {
	schema := value.MustParseJSON(`{
  "definitions": {"positive": {"minimum": 0, "exclusiveMinimum": true}},
  "items": {"$ref": "#/definitions/positive"}
}`)
	validator := jsonschema.New(schema)

	result := validator.Validate(value.MustParseJSON(`[3, 0]`))
	fmt.Println(result.IsValid())
	for _, msg := range result.Messages() {
		fmt.Println(msg)
	}
	// Output:
	// false
	// Value 0 is equal to or lower than exclusive minimum value of 0
}
