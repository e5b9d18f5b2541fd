package jsonschema

import (
	stderrors "errors"
	"fmt"
	"slices"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/graphcycle"
	"github.com/jacoelho/jsonschema/pkg/refpath"
	"github.com/jacoelho/jsonschema/value"
)

// CheckRefs reports local $ref values that can never be resolved and chains
// of $ref-only schemas that loop back on themselves. Both fail every
// instance that reaches them, whatever the instance is. Remote references
// and the meta-schema are not inspected.
func (v *Validator) CheckRefs() Result {
	if v == nil {
		return errors.Invalid("schema not loaded")
	}
	root := v.schema

	var refs []string
	collectRefs(root, &refs)
	slices.Sort(refs)
	refs = slices.Compact(refs)

	cfg := graphcycle.Config[string]{
		Missing: graphcycle.MissingPolicyError,
		Exists: func(ref string) bool {
			_, ok := localTarget(root, ref)
			return ok
		},
		Next: func(ref string) ([]string, error) {
			target, _ := localTarget(root, ref)
			next, ok := target.Get(keywordRef)
			if !ok {
				return nil, nil
			}
			s, ok := next.AsString()
			if !ok || !isLocalRef(s) {
				return nil, nil
			}
			return []string{s}, nil
		},
	}

	var messages []string
	for _, ref := range refs {
		cfg.Starts = []string{ref}
		err := graphcycle.Detect(cfg)

		var missing graphcycle.MissingError[string]
		var cycle graphcycle.CycleError[string]
		switch {
		case err == nil:
		case stderrors.As(err, &missing):
			messages = append(messages, fmt.Sprintf("Reference '%s' cannot be resolved", missing.Key))
		case stderrors.As(err, &cycle):
			messages = append(messages, fmt.Sprintf("Reference '%s' never reaches a schema: %s", ref, err.Error()))
		default:
			messages = append(messages, err.Error())
		}
	}
	if len(messages) == 0 {
		return errors.Valid()
	}
	return errors.Invalid(slices.Compact(messages)...)
}

func isLocalRef(ref string) bool {
	switch refpath.Parse(ref).Kind {
	case refpath.KindPointer, refpath.KindRoot:
		return true
	default:
		return false
	}
}

func localTarget(root value.Value, ref string) (value.Value, bool) {
	parsed := refpath.Parse(ref)
	switch parsed.Kind {
	case refpath.KindRoot:
		return root, true
	case refpath.KindPointer:
		target, _, ok := lookupPointer(root, parsed.Segments)
		return target, ok
	default:
		return value.Value{}, false
	}
}

// collectRefs gathers every local string $ref in schema positions. Literal
// data under the enum and default keywords is skipped; members of
// name-to-schema maps are schemas whatever their name.
func collectRefs(v value.Value, refs *[]string) {
	switch v.Kind() {
	case value.KindArray:
		items, _ := v.AsArray()
		for _, item := range items {
			collectRefs(item, refs)
		}
	case value.KindObject:
		for _, key := range v.Keys() {
			member, _ := v.Get(key)
			switch key {
			case "enum", "default":
			case keywordRef:
				if s, ok := member.AsString(); ok && isLocalRef(s) {
					*refs = append(*refs, s)
				}
			case "properties", "patternProperties", "definitions", "dependencies":
				for _, name := range member.Keys() {
					schema, _ := member.Get(name)
					collectRefs(schema, refs)
				}
			default:
				collectRefs(member, refs)
			}
		}
	}
}
