package jsonschema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/value"
)

func validateRequired(_ Engine, keyword, instance, _ value.Value) Result {
	names, ok := stringList(keyword)
	if !ok || instance.Kind() != value.KindObject {
		return errors.Valid()
	}
	var missing []string
	for _, name := range names {
		if _, ok := instance.Get(name); !ok {
			missing = append(missing, fmt.Sprintf("Required property '%s' is missing", name))
		}
	}
	if len(missing) == 0 {
		return errors.Valid()
	}
	return errors.Invalid(missing...)
}

func validateMinProperties(_ Engine, keyword, instance, _ value.Value) Result {
	limit, ok := count(keyword)
	if !ok || instance.Kind() != value.KindObject {
		return errors.Valid()
	}
	if instance.Len() < limit {
		return errors.Invalid(fmt.Sprintf("Amount of properties is less than the required amount %d", limit))
	}
	return errors.Valid()
}

func validateMaxProperties(_ Engine, keyword, instance, _ value.Value) Result {
	limit, ok := count(keyword)
	if !ok || instance.Kind() != value.KindObject {
		return errors.Valid()
	}
	if instance.Len() > limit {
		return errors.Invalid(fmt.Sprintf("Amount of properties is greater than maximum permitted %d", limit))
	}
	return errors.Valid()
}

func validateProperties(engine Engine, keyword, instance, _ value.Value) Result {
	if keyword.Kind() != value.KindObject || instance.Kind() != value.KindObject {
		return errors.Valid()
	}
	var results []Result
	for _, name := range keyword.Keys() {
		member, ok := instance.Get(name)
		if !ok {
			continue
		}
		sub, _ := keyword.Get(name)
		results = append(results, engine.Descend(member, sub))
	}
	return errors.Flatten(results...)
}

func validatePatternProperties(engine Engine, keyword, instance, _ value.Value) Result {
	if keyword.Kind() != value.KindObject || instance.Kind() != value.KindObject {
		return errors.Valid()
	}
	names := instance.Keys()
	var results []Result
	for _, pattern := range keyword.Keys() {
		re, err := compilePattern(pattern)
		if err != nil {
			results = append(results, errors.Invalid(fmt.Sprintf("Pattern '%s' is not a valid regular expression", pattern)))
			continue
		}
		sub, _ := keyword.Get(pattern)
		for _, name := range names {
			if !re.MatchString(name) {
				continue
			}
			member, _ := instance.Get(name)
			results = append(results, engine.Descend(member, sub))
		}
	}
	return errors.Flatten(results...)
}

func validateAdditionalProperties(engine Engine, keyword, instance, schema value.Value) Result {
	if instance.Kind() != value.KindObject {
		return errors.Valid()
	}
	extras := additionalPropertyNames(instance, schema)
	if len(extras) == 0 {
		return errors.Valid()
	}

	if allowed, isBool := keyword.AsBool(); isBool {
		if allowed {
			return errors.Valid()
		}
		return errors.Invalid(fmt.Sprintf("Additional properties '%s' are not permitted in this object", strings.Join(extras, "', '")))
	}
	if keyword.Kind() != value.KindObject {
		return errors.Valid()
	}
	results := make([]Result, 0, len(extras))
	for _, name := range extras {
		member, _ := instance.Get(name)
		results = append(results, engine.Descend(member, keyword))
	}
	return errors.Flatten(results...)
}

// additionalPropertyNames lists instance members matched by neither
// properties nor patternProperties, in key order. Invalid patterns match
// nothing; patternProperties reports them.
func additionalPropertyNames(instance, schema value.Value) []string {
	properties, _ := schema.Get("properties")
	patternProperties, _ := schema.Get("patternProperties")

	var patterns []*regexp.Regexp
	for _, p := range patternProperties.Keys() {
		if re, err := compilePattern(p); err == nil {
			patterns = append(patterns, re)
		}
	}

	var extras []string
	for _, name := range instance.Keys() {
		if _, ok := properties.Get(name); ok {
			continue
		}
		matched := false
		for _, re := range patterns {
			if re.MatchString(name) {
				matched = true
				break
			}
		}
		if !matched {
			extras = append(extras, name)
		}
	}
	return extras
}

func validateDependencies(engine Engine, keyword, instance, _ value.Value) Result {
	if keyword.Kind() != value.KindObject || instance.Kind() != value.KindObject {
		return errors.Valid()
	}
	var results []Result
	for _, name := range keyword.Keys() {
		if _, present := instance.Get(name); !present {
			continue
		}
		dependency, _ := keyword.Get(name)
		switch dependency.Kind() {
		case value.KindArray:
			required, ok := stringList(dependency)
			if !ok {
				continue
			}
			for _, r := range required {
				if _, ok := instance.Get(r); !ok {
					results = append(results, errors.Invalid(fmt.Sprintf("'%s' is a dependency for '%s'", r, name)))
				}
			}
		case value.KindObject, value.KindBool:
			results = append(results, engine.Descend(instance, dependency))
		case value.KindNull, value.KindNumber, value.KindString:
		}
	}
	return errors.Flatten(results...)
}
