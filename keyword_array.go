package jsonschema

import (
	"fmt"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/value"
)

func validateItems(engine Engine, keyword, instance, _ value.Value) Result {
	items, ok := instance.AsArray()
	if !ok {
		return errors.Valid()
	}
	switch keyword.Kind() {
	case value.KindObject, value.KindBool:
		results := make([]Result, 0, len(items))
		for _, item := range items {
			results = append(results, engine.Descend(item, keyword))
		}
		return errors.Flatten(results...)
	case value.KindArray:
		schemas, _ := keyword.AsArray()
		n := min(len(schemas), len(items))
		results := make([]Result, 0, n)
		for i := range n {
			results = append(results, engine.Descend(items[i], schemas[i]))
		}
		return errors.Flatten(results...)
	case value.KindNull, value.KindNumber, value.KindString:
	}
	return errors.Valid()
}

// validateAdditionalItems applies only when items is a positional array.
func validateAdditionalItems(engine Engine, keyword, instance, schema value.Value) Result {
	items, ok := instance.AsArray()
	if !ok {
		return errors.Valid()
	}
	itemsKeyword, ok := schema.Get("items")
	if !ok {
		return errors.Valid()
	}
	positional, ok := itemsKeyword.AsArray()
	if !ok || len(items) <= len(positional) {
		return errors.Valid()
	}
	extra := items[len(positional):]

	if allowed, isBool := keyword.AsBool(); isBool {
		if allowed {
			return errors.Valid()
		}
		return errors.Invalid(fmt.Sprintf("Additional items are not permitted in this array: %d found beyond %d", len(extra), len(positional)))
	}
	if keyword.Kind() != value.KindObject {
		return errors.Valid()
	}
	results := make([]Result, 0, len(extra))
	for _, item := range extra {
		results = append(results, engine.Descend(item, keyword))
	}
	return errors.Flatten(results...)
}

func validateMinItems(_ Engine, keyword, instance, _ value.Value) Result {
	limit, ok := count(keyword)
	items, isArray := instance.AsArray()
	if !ok || !isArray {
		return errors.Valid()
	}
	if len(items) < limit {
		return errors.Invalid(fmt.Sprintf("Length of array is smaller than the minimum %d", limit))
	}
	return errors.Valid()
}

func validateMaxItems(_ Engine, keyword, instance, _ value.Value) Result {
	limit, ok := count(keyword)
	items, isArray := instance.AsArray()
	if !ok || !isArray {
		return errors.Valid()
	}
	if len(items) > limit {
		return errors.Invalid(fmt.Sprintf("Length of array is greater than maximum %d", limit))
	}
	return errors.Valid()
}

func validateUniqueItems(_ Engine, keyword, instance, _ value.Value) Result {
	unique, _ := keyword.AsBool()
	items, isArray := instance.AsArray()
	if !unique || !isArray {
		return errors.Valid()
	}
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if value.Equal(items[i], items[j]) {
				return errors.Invalid(fmt.Sprintf("%s has non-unique elements", instance))
			}
		}
	}
	return errors.Valid()
}
