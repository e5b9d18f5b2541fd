package jsonschema

import (
	"fmt"
	"strconv"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/metaschema"
	"github.com/jacoelho/jsonschema/pkg/refpath"
	"github.com/jacoelho/jsonschema/value"
)

// Resolve returns a function validating instances against the target of ref,
// resolved against the root schema.
func (v *Validator) Resolve(ref string) func(value.Value) Result {
	return evaluation{validator: v}.Resolve(ref)
}

func (e evaluation) Resolve(ref string) func(value.Value) Result {
	parsed := refpath.Parse(ref)
	switch parsed.Kind {
	case refpath.KindMetaSchema:
		meta := metaschema.Draft04()
		metaEval := evaluation{validator: e.validator.withSchema(meta), depth: e.depth}
		return func(instance value.Value) Result {
			return metaEval.Descend(instance, meta)
		}
	case refpath.KindPointer:
		target, missing, ok := lookupPointer(e.validator.schema, parsed.Segments)
		if !ok {
			e.validator.logger.Debug().Str("ref", ref).Str("component", missing).Msg("reference not found")
			return invalidValidation(fmt.Sprintf("Reference not found '%s' in '%s'", missing, parsed.Path))
		}
		return func(instance value.Value) Result {
			return e.Descend(instance, target)
		}
	case refpath.KindRoot:
		root := e.validator.schema
		return func(instance value.Value) Result {
			return e.Descend(instance, root)
		}
	case refpath.KindUnsupported:
	}

	e.validator.logger.Debug().Str("ref", ref).Msg("unsupported reference")
	return invalidValidation(fmt.Sprintf("Remote $ref '%s' is not yet supported", ref))
}

// lookupPointer walks segments from root. Object members holding objects
// are entered directly; members holding arrays of objects consume the
// following segment as an index. On failure it reports the segment that
// could not be followed.
func lookupPointer(root value.Value, segments []string) (value.Value, string, bool) {
	current := root
	for i := 0; i < len(segments); i++ {
		component := segments[i]
		member, ok := current.Get(component)
		if !ok {
			return value.Value{}, component, false
		}
		if member.Kind() == value.KindObject {
			current = member
			continue
		}
		items, ok := schemaArray(member)
		if !ok || i+1 >= len(segments) {
			return value.Value{}, component, false
		}
		index, err := strconv.Atoi(segments[i+1])
		if err != nil || index < 0 || index >= len(items) {
			return value.Value{}, component, false
		}
		current = items[index]
		i++
	}
	return current, "", true
}

// schemaArray reports the items of v when v is an array whose elements are
// all objects.
func schemaArray(v value.Value) ([]value.Value, bool) {
	items, ok := v.AsArray()
	if !ok {
		return nil, false
	}
	for _, item := range items {
		if item.Kind() != value.KindObject {
			return nil, false
		}
	}
	return items, true
}

func invalidValidation(msg string) func(value.Value) Result {
	return func(value.Value) Result {
		return errors.Invalid(msg)
	}
}

func validateRef(engine Engine, keyword, instance, _ value.Value) Result {
	ref, ok := keyword.AsString()
	if !ok {
		return errors.Valid()
	}
	return engine.Resolve(ref)(instance)
}
