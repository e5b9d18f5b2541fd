// Package refpath classifies $ref strings and splits document-relative
// pointers into decoded path segments.
package refpath

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-openapi/jsonpointer"
)

// Draft04MetaSchemaURI is the canonical identifier of the draft-04 meta-schema.
const Draft04MetaSchemaURI = "http://json-schema.org/draft-04/schema#"

// Kind identifies how a reference is resolved.
type Kind uint8

const (
	// KindUnsupported covers remote URIs and malformed fragments.
	KindUnsupported Kind = iota
	// KindMetaSchema is a reference to the draft-04 meta-schema.
	KindMetaSchema
	// KindPointer is a document-relative JSON pointer ("#/...").
	KindPointer
	// KindRoot is the bare document root ("#").
	KindRoot
)

func (k Kind) String() string {
	switch k {
	case KindMetaSchema:
		return "meta-schema"
	case KindPointer:
		return "pointer"
	case KindRoot:
		return "root"
	default:
		return "unsupported"
	}
}

// ErrMalformed reports a pointer that cannot be percent-decoded.
var ErrMalformed = errors.New("malformed reference")

// Reference is a classified $ref.
type Reference struct {
	// Raw is the reference as written in the schema.
	Raw string
	// Path is the percent-decoded pointer without the leading "#/".
	// It is only set for KindPointer.
	Path string
	// Segments are the decoded path components of a pointer.
	Segments []string
	Kind     Kind
}

// Parse classifies ref. Meta-schema identity is checked first, then "#/"
// pointers, then the bare "#" root; anything else is unsupported.
func Parse(ref string) Reference {
	if ref == Draft04MetaSchemaURI {
		return Reference{Raw: ref, Kind: KindMetaSchema}
	}
	fragment, ok := strings.CutPrefix(ref, "#")
	if !ok {
		return Reference{Raw: ref, Kind: KindUnsupported}
	}
	if pointer, ok := strings.CutPrefix(fragment, "/"); ok {
		path, segments, err := Split(pointer)
		if err != nil {
			return Reference{Raw: ref, Kind: KindUnsupported}
		}
		return Reference{Raw: ref, Path: path, Segments: segments, Kind: KindPointer}
	}
	if fragment == "" {
		return Reference{Raw: ref, Kind: KindRoot}
	}
	return Reference{Raw: ref, Kind: KindUnsupported}
}

// Split percent-decodes pointer (given without its leading "#/") and splits
// it on "/". Each segment then has the RFC 6901 "~1" and "~0" escapes undone,
// which plain percent-decoding does not do: a key spelled "a~1b" is reached
// as "a~01b", and "a~1b" addresses the key "a/b". The decoded path is
// returned alongside the segments.
func Split(pointer string) (string, []string, error) {
	path, err := url.PathUnescape(pointer)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %q: %w", ErrMalformed, pointer, err)
	}
	parts := strings.Split(path, "/")
	for i, p := range parts {
		parts[i] = jsonpointer.Unescape(p)
	}
	return path, parts, nil
}
