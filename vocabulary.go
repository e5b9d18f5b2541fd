package jsonschema

import (
	"cmp"
	"slices"

	"github.com/jacoelho/jsonschema/value"
)

// KeywordFunc validates instance against one keyword of schema. keyword is
// the value the schema holds for the keyword and schema is the whole schema
// node, for keywords whose meaning depends on siblings. Implementations must
// not retain or modify their arguments and may recurse through engine.
type KeywordFunc func(engine Engine, keyword, instance, schema value.Value) Result

// Keyword binds a keyword name to its validator.
type Keyword struct {
	Validate KeywordFunc
	Name     string
}

// Vocabulary is an immutable, name-ordered set of keywords.
type Vocabulary struct {
	keywords []Keyword
	ref      KeywordFunc
}

// NewVocabulary builds a vocabulary from keywords. Later entries replace
// earlier ones with the same name; an entry with a nil Validate removes the
// name.
func NewVocabulary(keywords ...Keyword) *Vocabulary {
	byName := make(map[string]Keyword, len(keywords))
	for _, kw := range keywords {
		if kw.Validate == nil {
			delete(byName, kw.Name)
			continue
		}
		byName[kw.Name] = kw
	}
	sorted := make([]Keyword, 0, len(byName))
	for _, kw := range byName {
		sorted = append(sorted, kw)
	}
	slices.SortFunc(sorted, func(a, b Keyword) int { return cmp.Compare(a.Name, b.Name) })

	v := &Vocabulary{keywords: sorted}
	if kw, ok := v.Lookup(keywordRef); ok {
		v.ref = kw
	}
	return v
}

// Lookup returns the validator registered for name.
func (v *Vocabulary) Lookup(name string) (KeywordFunc, bool) {
	i, ok := slices.BinarySearchFunc(v.keywords, name, func(kw Keyword, name string) int {
		return cmp.Compare(kw.Name, name)
	})
	if !ok {
		return nil, false
	}
	return v.keywords[i].Validate, true
}

// Names returns keyword names in evaluation order.
func (v *Vocabulary) Names() []string {
	names := make([]string, len(v.keywords))
	for i, kw := range v.keywords {
		names[i] = kw.Name
	}
	return names
}

// With returns a new vocabulary extended or overridden by keywords.
func (v *Vocabulary) With(keywords ...Keyword) *Vocabulary {
	all := make([]Keyword, 0, len(v.keywords)+len(keywords))
	all = append(all, v.keywords...)
	all = append(all, keywords...)
	return NewVocabulary(all...)
}

const keywordRef = "$ref"

// Draft04 returns the draft-04 keyword vocabulary. exclusiveMaximum and
// exclusiveMinimum are read by maximum and minimum rather than registered
// on their own.
func Draft04() *Vocabulary {
	return draft04Vocabulary
}

var draft04Vocabulary = NewVocabulary(
	Keyword{Name: keywordRef, Validate: validateRef},
	Keyword{Name: "additionalItems", Validate: validateAdditionalItems},
	Keyword{Name: "additionalProperties", Validate: validateAdditionalProperties},
	Keyword{Name: "allOf", Validate: validateAllOf},
	Keyword{Name: "anyOf", Validate: validateAnyOf},
	Keyword{Name: "dependencies", Validate: validateDependencies},
	Keyword{Name: "enum", Validate: validateEnum},
	Keyword{Name: "format", Validate: validateFormat},
	Keyword{Name: "items", Validate: validateItems},
	Keyword{Name: "maxItems", Validate: validateMaxItems},
	Keyword{Name: "maxLength", Validate: validateMaxLength},
	Keyword{Name: "maxProperties", Validate: validateMaxProperties},
	Keyword{Name: "maximum", Validate: validateMaximum},
	Keyword{Name: "minItems", Validate: validateMinItems},
	Keyword{Name: "minLength", Validate: validateMinLength},
	Keyword{Name: "minProperties", Validate: validateMinProperties},
	Keyword{Name: "minimum", Validate: validateMinimum},
	Keyword{Name: "multipleOf", Validate: validateMultipleOf},
	Keyword{Name: "not", Validate: validateNot},
	Keyword{Name: "oneOf", Validate: validateOneOf},
	Keyword{Name: "pattern", Validate: validatePattern},
	Keyword{Name: "patternProperties", Validate: validatePatternProperties},
	Keyword{Name: "properties", Validate: validateProperties},
	Keyword{Name: "required", Validate: validateRequired},
	Keyword{Name: "type", Validate: validateType},
	Keyword{Name: "uniqueItems", Validate: validateUniqueItems},
)
