package jsonschema

import (
	"maps"

	"github.com/rs/zerolog"

	"github.com/jacoelho/jsonschema/internal/formats"
)

// DefaultMaxDepth bounds the nesting of schema evaluation.
const DefaultMaxDepth = 1024

// Option configures a Validator.
type Option interface{ apply(*options) }

type options struct {
	vocabulary *Vocabulary
	formats    map[string]FormatChecker
	logger     zerolog.Logger
	maxDepth   int
}

type optionFunc func(*options)

func (f optionFunc) apply(cfg *options) {
	if cfg == nil {
		return
	}
	f(cfg)
}

// WithLogger sets the logger used for reference resolution diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return optionFunc(func(cfg *options) {
		cfg.logger = logger
	})
}

// WithMaxDepth bounds how deeply schemas may nest during one validation.
// Exceeding the bound makes the validation fail instead of exhausting the
// stack, which matters for self-referential schemas. Zero disables the
// bound.
func WithMaxDepth(depth int) Option {
	return optionFunc(func(cfg *options) {
		if depth < 0 {
			depth = 0
		}
		cfg.maxDepth = depth
	})
}

// WithFormat registers or replaces a format checker. A nil checker removes
// the format, making it always valid.
func WithFormat(name string, check FormatChecker) Option {
	return optionFunc(func(cfg *options) {
		if check == nil {
			delete(cfg.formats, name)
			return
		}
		cfg.formats[name] = check
	})
}

// WithKeyword registers or replaces a keyword validator. A nil fn removes
// the keyword.
func WithKeyword(name string, fn KeywordFunc) Option {
	return optionFunc(func(cfg *options) {
		cfg.vocabulary = cfg.vocabulary.With(Keyword{Name: name, Validate: fn})
	})
}

// WithVocabulary replaces the keyword vocabulary.
func WithVocabulary(v *Vocabulary) Option {
	return optionFunc(func(cfg *options) {
		if v != nil {
			cfg.vocabulary = v
		}
	})
}

func applyOptions(opts []Option) options {
	cfg := options{
		vocabulary: Draft04(),
		formats:    formats.Draft04(),
		logger:     zerolog.Nop(),
		maxDepth:   DefaultMaxDepth,
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&cfg)
		}
	}
	cfg.formats = maps.Clone(cfg.formats)
	return cfg
}
