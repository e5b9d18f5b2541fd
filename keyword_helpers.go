package jsonschema

import (
	"math/big"
	"regexp"
	"strconv"

	"github.com/jacoelho/jsonschema/value"
)

// describe renders v for messages: strings verbatim, everything else as JSON.
func describe(v value.Value) string {
	if s, ok := v.AsString(); ok {
		return s
	}
	return v.String()
}

func formatNumber(n float64) string {
	return value.Number(n).String()
}

// count reads a non-negative integer keyword such as minLength.
func count(keyword value.Value) (int, bool) {
	n, ok := keyword.AsNumber()
	if !ok || n < 0 || !keyword.IsInteger() {
		return 0, false
	}
	return int(n), true
}

func stringList(v value.Value) ([]string, bool) {
	items, ok := v.AsArray()
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.AsString()
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// decimal converts n to the exact decimal it prints as, so that 0.0075 is a
// multiple of 0.0001.
func decimal(n float64) (*big.Rat, bool) {
	return new(big.Rat).SetString(strconv.FormatFloat(n, 'g', -1, 64))
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(pattern)
}
