// Package metaschema provides the draft-04 meta-schema as a process-wide
// immutable value.
package metaschema

import (
	_ "embed"
	"sync"

	"github.com/jacoelho/jsonschema/pkg/refpath"
	"github.com/jacoelho/jsonschema/value"
)

// Draft04URI identifies the draft-04 meta-schema.
const Draft04URI = refpath.Draft04MetaSchemaURI

//go:embed draft04.json
var draft04JSON []byte

var draft04 = sync.OnceValue(func() value.Value {
	return value.MustParseJSON(string(draft04JSON))
})

// Draft04 returns the decoded draft-04 meta-schema. The embedded document
// is decoded on first use; the returned value must be treated as read-only.
func Draft04() value.Value {
	return draft04()
}

// Draft04Source returns the raw meta-schema document.
func Draft04Source() []byte {
	out := make([]byte, len(draft04JSON))
	copy(out, draft04JSON)
	return out
}
