package jsonschema

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/value"
)

// Engine is the evaluation context handed to keyword validators.
type Engine interface {
	// Schema returns the root schema references resolve against.
	Schema() value.Value
	// Validate validates instance against the root schema.
	Validate(instance value.Value) Result
	// Descend validates instance against a nested schema.
	Descend(instance, subschema value.Value) Result
	// Resolve returns a validator bound to the target of ref.
	Resolve(ref string) func(value.Value) Result
	// Format returns the checker registered for a format name.
	Format(name string) (FormatChecker, bool)
}

// Validator validates instances against a root schema.
// It is immutable and safe for concurrent use by multiple goroutines.
type Validator struct {
	schema   value.Value
	vocab    *Vocabulary
	formats  map[string]FormatChecker
	logger   zerolog.Logger
	maxDepth int
}

// New returns a Validator for schema using the draft-04 vocabulary unless
// overridden by opts.
func New(schema value.Value, opts ...Option) *Validator {
	cfg := applyOptions(opts)
	return &Validator{
		schema:   schema,
		vocab:    cfg.vocabulary,
		formats:  cfg.formats,
		logger:   cfg.logger,
		maxDepth: cfg.maxDepth,
	}
}

// Schema returns the root schema.
func (v *Validator) Schema() value.Value {
	return v.schema
}

// Validate validates instance against the root schema.
func (v *Validator) Validate(instance value.Value) Result {
	return v.ValidateAgainst(instance, v.schema)
}

// ValidateAgainst validates instance against schema. References inside
// schema still resolve against the root schema.
func (v *Validator) ValidateAgainst(instance, schema value.Value) Result {
	return evaluation{validator: v}.validate(instance, schema)
}

// Descend is ValidateAgainst under the name keyword validators use.
func (v *Validator) Descend(instance, subschema value.Value) Result {
	return v.ValidateAgainst(instance, subschema)
}

// withSchema returns a validator sharing v's configuration bound to schema.
func (v *Validator) withSchema(schema value.Value) *Validator {
	return &Validator{
		schema:   schema,
		vocab:    v.vocab,
		formats:  v.formats,
		logger:   v.logger,
		maxDepth: v.maxDepth,
	}
}

// evaluation is the per-call Engine. It is passed by value so each nested
// descent carries its own depth.
type evaluation struct {
	validator *Validator
	depth     int
}

func (e evaluation) Schema() value.Value {
	return e.validator.schema
}

func (e evaluation) Validate(instance value.Value) Result {
	return e.Descend(instance, e.validator.schema)
}

func (e evaluation) Descend(instance, subschema value.Value) Result {
	return evaluation{validator: e.validator, depth: e.depth + 1}.validate(instance, subschema)
}

func (e evaluation) Format(name string) (FormatChecker, bool) {
	check, ok := e.validator.formats[name]
	return check, ok
}

func (e evaluation) validate(instance, schema value.Value) Result {
	if limit := e.validator.maxDepth; limit > 0 && e.depth > limit {
		e.validator.logger.Debug().Int("max_depth", limit).Msg("validation depth exceeded")
		return errors.Invalid(fmt.Sprintf("Maximum validation depth %d exceeded", limit))
	}

	switch schema.Kind() {
	case value.KindBool:
		if b, _ := schema.AsBool(); b {
			return errors.Valid()
		}
		return errors.Invalid(errors.MsgFalsySchema)
	case value.KindObject:
	case value.KindNull, value.KindNumber, value.KindString, value.KindArray:
		return errors.Valid()
	}

	vocab := e.validator.vocab
	if refValue, ok := schema.Get(keywordRef); ok && vocab.ref != nil {
		if _, isString := refValue.AsString(); isString {
			return vocab.ref(e, refValue, instance, schema)
		}
	}

	var results []Result
	for _, kw := range vocab.keywords {
		keywordValue, ok := schema.Get(kw.Name)
		if !ok {
			continue
		}
		results = append(results, kw.Validate(e, keywordValue, instance, schema))
	}
	return errors.Flatten(results...)
}
