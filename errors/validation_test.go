package errors

import (
	"fmt"
	"slices"
	"testing"
)

func TestValidationErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		want string
		v    Validation
	}{
		{
			name: "message only",
			v:    Validation{Message: "Required property 'id' is missing"},
			want: "Required property 'id' is missing",
		},
		{
			name: "with document",
			v:    Validation{Message: "Falsy schema", Document: "doc.json"},
			want: "Falsy schema (in doc.json)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewValidationf(t *testing.T) {
	v := NewValidationf("doc.json", "Value %d is too large", 7)
	if v.Message != "Value 7 is too large" {
		t.Fatalf("Message = %q, want %q", v.Message, "Value 7 is too large")
	}
	if v.Document != "doc.json" {
		t.Fatalf("Document = %q, want %q", v.Document, "doc.json")
	}
}

func TestValidationListError(t *testing.T) {
	tests := []struct {
		name string
		want string
		list ValidationList
	}{
		{name: "empty", list: nil, want: "no validation errors"},
		{name: "single", list: ValidationList{{Message: "a"}}, want: "a"},
		{name: "many", list: ValidationList{{Message: "a"}, {Message: "b"}, {Message: "c"}}, want: "a (and 2 more)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.list.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAsValidations(t *testing.T) {
	list := ValidationList{{Message: "a"}, {Message: "b"}}

	got, ok := AsValidations(fmt.Errorf("wrapped: %w", list))
	if !ok {
		t.Fatal("AsValidations() ok = false, want true")
	}
	if len(got) != 2 || got[1].Message != "b" {
		t.Fatalf("AsValidations() = %v, want %v", got, list)
	}

	got, ok = AsValidations(&list)
	if !ok || len(got) != 2 {
		t.Fatalf("AsValidations(pointer) = %v, %v", got, ok)
	}

	if _, ok := AsValidations(fmt.Errorf("plain")); ok {
		t.Fatal("AsValidations(plain) ok = true, want false")
	}
	if _, ok := AsValidations(nil); ok {
		t.Fatal("AsValidations(nil) ok = true, want false")
	}
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name    string
		in      []Result
		want    []string
		isValid bool
	}{
		{name: "identity", in: nil, isValid: true},
		{name: "all valid", in: []Result{Valid(), Valid()}, isValid: true},
		{
			name: "order preserved",
			in:   []Result{Valid(), Invalid("a"), Invalid("b")},
			want: []string{"a", "b"},
		},
		{
			name: "multi message elements",
			in:   []Result{Invalid("a", "b"), Valid(), Invalid("c")},
			want: []string{"a", "b", "c"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(tt.in...)
			if got.IsValid() != tt.isValid {
				t.Fatalf("IsValid() = %v, want %v", got.IsValid(), tt.isValid)
			}
			if !slices.Equal(got.Messages(), tt.want) {
				t.Fatalf("Messages() = %v, want %v", got.Messages(), tt.want)
			}
		})
	}
}

func TestFlattenAssociative(t *testing.T) {
	a, b, c := Invalid("a"), Valid(), Invalid("c1", "c2")

	left := Flatten(Flatten(a, b), c)
	right := Flatten(a, Flatten(b, c))
	if !left.Equal(right) {
		t.Fatalf("Flatten not associative: %v vs %v", left.Messages(), right.Messages())
	}
}

func TestInvalidAlwaysCarriesMessage(t *testing.T) {
	r := Invalid()
	if r.IsValid() {
		t.Fatal("Invalid() IsValid() = true")
	}
	if len(r.Messages()) != 1 {
		t.Fatalf("Messages() = %v, want one message", r.Messages())
	}
}

func TestResultErr(t *testing.T) {
	if err := Valid().Err("doc"); err != nil {
		t.Fatalf("Valid().Err() = %v, want nil", err)
	}

	err := Invalid("a", "b").Err("doc.json")
	list, ok := AsValidations(err)
	if !ok {
		t.Fatalf("AsValidations() ok = false for %v", err)
	}
	if len(list) != 2 || list[0].Document != "doc.json" {
		t.Fatalf("list = %v", list)
	}
	if got := err.Error(); got != "a (in doc.json) (and 1 more)" {
		t.Fatalf("Error() = %q", got)
	}
}
