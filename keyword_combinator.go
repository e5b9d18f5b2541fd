package jsonschema

import (
	"fmt"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/value"
)

func validateAllOf(engine Engine, keyword, instance, _ value.Value) Result {
	schemas, ok := keyword.AsArray()
	if !ok {
		return errors.Valid()
	}
	results := make([]Result, 0, len(schemas))
	for _, sub := range schemas {
		results = append(results, engine.Descend(instance, sub))
	}
	return errors.Flatten(results...)
}

func validateAnyOf(engine Engine, keyword, instance, _ value.Value) Result {
	schemas, ok := keyword.AsArray()
	if !ok {
		return errors.Valid()
	}
	for _, sub := range schemas {
		if engine.Descend(instance, sub).IsValid() {
			return errors.Valid()
		}
	}
	return errors.Invalid(fmt.Sprintf("%s does not meet anyOf validation rules.", instance))
}

func validateOneOf(engine Engine, keyword, instance, _ value.Value) Result {
	schemas, ok := keyword.AsArray()
	if !ok {
		return errors.Valid()
	}
	matched := 0
	for _, sub := range schemas {
		if engine.Descend(instance, sub).IsValid() {
			matched++
		}
	}
	switch matched {
	case 1:
		return errors.Valid()
	case 0:
		return errors.Invalid(fmt.Sprintf("%s does not meet any oneOf validation rules.", instance))
	default:
		return errors.Invalid(fmt.Sprintf("%s matches %d oneOf schemas; only one value from `oneOf` should be met.", instance, matched))
	}
}

func validateNot(engine Engine, keyword, instance, _ value.Value) Result {
	if keyword.Kind() != value.KindObject && keyword.Kind() != value.KindBool {
		return errors.Valid()
	}
	if engine.Descend(instance, keyword).IsValid() {
		return errors.Invalid(fmt.Sprintf("'%s' does not match 'not' validation.", describe(instance)))
	}
	return errors.Valid()
}
