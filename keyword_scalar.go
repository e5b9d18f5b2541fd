package jsonschema

import (
	"fmt"
	"math"
	"math/big"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/value"
)

func validateType(_ Engine, keyword, instance, _ value.Value) Result {
	var types []string
	switch keyword.Kind() {
	case value.KindString:
		s, _ := keyword.AsString()
		types = []string{s}
	case value.KindArray:
		list, ok := stringList(keyword)
		if !ok {
			return errors.Valid()
		}
		types = list
	case value.KindNull, value.KindBool, value.KindNumber, value.KindObject:
		return errors.Valid()
	}

	if slices.ContainsFunc(types, func(t string) bool { return isType(instance, t) }) {
		return errors.Valid()
	}
	return errors.Invalid(fmt.Sprintf("'%s' is not of type '%s'", describe(instance), strings.Join(types, "', '")))
}

func isType(instance value.Value, name string) bool {
	switch name {
	case "integer":
		return instance.IsInteger()
	case "number":
		return instance.Kind() == value.KindNumber
	default:
		return instance.Kind().String() == name
	}
}

func validateEnum(_ Engine, keyword, instance, _ value.Value) Result {
	options, ok := keyword.AsArray()
	if !ok {
		return errors.Valid()
	}
	for _, option := range options {
		if value.Equal(option, instance) {
			return errors.Valid()
		}
	}
	return errors.Invalid(fmt.Sprintf("'%s' is not a valid enumeration value of '%s'", describe(instance), keyword))
}

func validateMinLength(_ Engine, keyword, instance, _ value.Value) Result {
	limit, ok := count(keyword)
	s, isString := instance.AsString()
	if !ok || !isString {
		return errors.Valid()
	}
	if utf8.RuneCountInString(s) < limit {
		return errors.Invalid(fmt.Sprintf("Length of string is smaller than minimum length %d", limit))
	}
	return errors.Valid()
}

func validateMaxLength(_ Engine, keyword, instance, _ value.Value) Result {
	limit, ok := count(keyword)
	s, isString := instance.AsString()
	if !ok || !isString {
		return errors.Valid()
	}
	if utf8.RuneCountInString(s) > limit {
		return errors.Invalid(fmt.Sprintf("Length of string is larger than max length %d", limit))
	}
	return errors.Valid()
}

func validatePattern(_ Engine, keyword, instance, _ value.Value) Result {
	pattern, ok := keyword.AsString()
	s, isString := instance.AsString()
	if !ok || !isString {
		return errors.Valid()
	}
	re, err := compilePattern(pattern)
	if err != nil {
		return errors.Invalid(fmt.Sprintf("Pattern '%s' is not a valid regular expression", pattern))
	}
	if !re.MatchString(s) {
		return errors.Invalid(fmt.Sprintf("'%s' does not match pattern: '%s'", s, pattern))
	}
	return errors.Valid()
}

func validateFormat(engine Engine, keyword, instance, _ value.Value) Result {
	name, ok := keyword.AsString()
	s, isString := instance.AsString()
	if !ok || !isString {
		return errors.Valid()
	}
	check, ok := engine.Format(name)
	if !ok {
		return errors.Valid()
	}
	return check(s)
}

func validateMultipleOf(_ Engine, keyword, instance, _ value.Value) Result {
	divisor, ok := keyword.AsNumber()
	n, isNumber := instance.AsNumber()
	if !ok || !isNumber || divisor <= 0 {
		return errors.Valid()
	}
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return errors.Valid()
	}
	num, okN := decimal(n)
	div, okD := decimal(divisor)
	if !okN || !okD {
		return errors.Valid()
	}
	if !new(big.Rat).Quo(num, div).IsInt() {
		return errors.Invalid(fmt.Sprintf("%s is not a multiple of %s", formatNumber(n), formatNumber(divisor)))
	}
	return errors.Valid()
}

func validateMinimum(_ Engine, keyword, instance, schema value.Value) Result {
	limit, ok := keyword.AsNumber()
	n, isNumber := instance.AsNumber()
	if !ok || !isNumber {
		return errors.Valid()
	}
	if exclusive(schema, "exclusiveMinimum") {
		if n <= limit {
			return errors.Invalid(fmt.Sprintf("Value %s is equal to or lower than exclusive minimum value of %s", formatNumber(n), formatNumber(limit)))
		}
		return errors.Valid()
	}
	if n < limit {
		return errors.Invalid(fmt.Sprintf("Value %s is lower than minimum value of %s", formatNumber(n), formatNumber(limit)))
	}
	return errors.Valid()
}

func validateMaximum(_ Engine, keyword, instance, schema value.Value) Result {
	limit, ok := keyword.AsNumber()
	n, isNumber := instance.AsNumber()
	if !ok || !isNumber {
		return errors.Valid()
	}
	if exclusive(schema, "exclusiveMaximum") {
		if n >= limit {
			return errors.Invalid(fmt.Sprintf("Value %s is equal to or larger than exclusive maximum value of %s", formatNumber(n), formatNumber(limit)))
		}
		return errors.Valid()
	}
	if n > limit {
		return errors.Invalid(fmt.Sprintf("Value %s exceeds maximum value of %s", formatNumber(n), formatNumber(limit)))
	}
	return errors.Valid()
}

func exclusive(schema value.Value, name string) bool {
	v, ok := schema.Get(name)
	if !ok {
		return false
	}
	b, _ := v.AsBool()
	return b
}
