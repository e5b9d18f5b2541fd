package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Validation describes a single schema violation with an optional
// document location.
//
//nolint:errname // public API name uses the validation domain term.
type Validation struct {
	Message  string
	Document string
}

// ValidationList is an error that wraps one or more validation errors.
type ValidationList []Validation //nolint:errname // public API name, keep for compatibility.

// Error returns a compact summary of the validation errors.
func (v ValidationList) Error() string {
	switch len(v) {
	case 0:
		return "no validation errors"
	case 1:
		return v[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", v[0].Error(), len(v)-1)
	}
}

// Messages returns the messages of every entry in order.
func (v ValidationList) Messages() []string {
	out := make([]string, 0, len(v))
	for _, entry := range v {
		out = append(out, entry.Message)
	}
	return out
}

// Error formats the validation for display.
func (v *Validation) Error() string {
	if v == nil {
		return "validation <nil>"
	}

	var b strings.Builder
	b.WriteString(v.Message)
	if v.Document != "" {
		b.WriteString(fmt.Sprintf(" (in %s)", v.Document))
	}
	return b.String()
}

// NewValidation builds a Validation from a message and optional document name.
func NewValidation(msg, document string) Validation {
	return Validation{Message: msg, Document: document}
}

// NewValidationf formats a message and builds a Validation.
func NewValidationf(document, format string, args ...any) Validation {
	return NewValidation(fmt.Sprintf(format, args...), document)
}

// AsValidations extracts validation errors from an error returned by validation helpers.
func AsValidations(err error) ([]Validation, bool) {
	list, ok := asValidationList(err)
	if !ok {
		return nil, false
	}
	return []Validation(list), true
}

func asValidationList(err error) (ValidationList, bool) {
	if err == nil {
		return nil, false
	}
	var list ValidationList
	if errors.As(err, &list) {
		return list, true
	}

	var listPtr *ValidationList
	if errors.As(err, &listPtr) && listPtr != nil {
		return *listPtr, true
	}

	return nil, false
}
