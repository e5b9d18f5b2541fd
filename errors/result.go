// Package errors holds the validation outcome types: the Result algebra used
// while evaluating schemas and the ValidationList error returned at the API
// boundary.
package errors

import "slices"

// Messages emitted by the evaluation core.
const (
	MsgFalsySchema = "Falsy schema"
)

// Result is the outcome of validating an instance against a schema node.
// The zero Result is valid. An invalid Result always carries at least one
// message.
type Result struct {
	messages []string
}

// Valid returns the valid result.
func Valid() Result { return Result{} }

// Invalid returns an invalid result carrying msgs in order. Calling it
// without messages yields a result with a generic message so the
// at-least-one-message invariant holds.
func Invalid(msgs ...string) Result {
	if len(msgs) == 0 {
		return Result{messages: []string{"invalid"}}
	}
	return Result{messages: slices.Clone(msgs)}
}

// IsValid reports whether r is valid.
func (r Result) IsValid() bool { return len(r.messages) == 0 }

// Messages returns a copy of the accumulated messages. Valid results return nil.
func (r Result) Messages() []string {
	if r.IsValid() {
		return nil
	}
	return slices.Clone(r.messages)
}

// Equal reports whether r and other carry the same outcome and messages.
func (r Result) Equal(other Result) bool {
	return slices.Equal(r.messages, other.messages)
}

// Err converts r into an error. Valid results return nil; invalid ones a
// ValidationList tagged with document.
func (r Result) Err(document string) error {
	if r.IsValid() {
		return nil
	}
	list := make(ValidationList, 0, len(r.messages))
	for _, msg := range r.messages {
		list = append(list, NewValidation(msg, document))
	}
	return list
}

// Flatten combines results: valid iff every element is valid, otherwise
// invalid with the messages of every invalid element in order. Flatten of
// nothing is valid.
func Flatten(results ...Result) Result {
	n := 0
	for _, r := range results {
		n += len(r.messages)
	}
	if n == 0 {
		return Result{}
	}
	msgs := make([]string, 0, n)
	for _, r := range results {
		msgs = append(msgs, r.messages...)
	}
	return Result{messages: msgs}
}
