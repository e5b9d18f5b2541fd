package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DecodeJSON reads exactly one JSON document from r.
func DecodeJSON(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("decode json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("decode json: unexpected data after top-level value")
	}
	return FromGo(raw)
}

// ParseJSON decodes a JSON document held in data.
func ParseJSON(data []byte) (Value, error) {
	return DecodeJSON(bytes.NewReader(data))
}

// MustParseJSON is like ParseJSON but panics on malformed input.
// It is intended for literals in tests and package initialization.
func MustParseJSON(doc string) Value {
	v, err := ParseJSON([]byte(doc))
	if err != nil {
		panic(err)
	}
	return v
}

// DecodeYAML reads a single YAML document from r. Anchors and aliases are
// expanded; mapping keys must be scalars. Expansion is bounded by a node
// budget derived from the size of the input.
func DecodeYAML(r io.Reader) (Value, error) {
	cr := &countingReader{r: r}
	var doc yaml.Node
	if err := yaml.NewDecoder(cr).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Null(), nil
		}
		return Value{}, fmt.Errorf("decode yaml: %w", err)
	}
	d := yamlDecoder{limit: yamlNodeBudget(cr.n)}
	v, err := d.decode(&doc, 0)
	if err != nil {
		return Value{}, fmt.Errorf("decode yaml: %w", err)
	}
	return v, nil
}

const (
	maxYAMLDepth = 10_000

	// minYAMLNodes and yamlNodesPerByte bound alias expansion. A document
	// without aliases never produces more nodes than it has bytes.
	minYAMLNodes     = 10_000
	yamlNodesPerByte = 16
)

// ErrYAMLTooLarge is returned when alias expansion exceeds the node budget.
var ErrYAMLTooLarge = errors.New("document expands to too many nodes")

func yamlNodeBudget(size int64) int64 {
	return max(minYAMLNodes, size*yamlNodesPerByte)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

type yamlDecoder struct {
	nodes int64
	limit int64
}

func (d *yamlDecoder) decode(n *yaml.Node, depth int) (Value, error) {
	if depth > maxYAMLDepth {
		return Value{}, fmt.Errorf("nesting deeper than %d", maxYAMLDepth)
	}
	d.nodes++
	if d.nodes > d.limit {
		return Value{}, fmt.Errorf("%w: more than %d", ErrYAMLTooLarge, d.limit)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return d.decode(n.Content[0], depth+1)
	case yaml.AliasNode:
		return d.decode(n.Alias, depth+1)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := d.decode(c, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Array(items...), nil
	case yaml.MappingNode:
		members := make(map[string]Value, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("line %d: mapping key must be a scalar", key.Line)
			}
			member, err := d.decode(n.Content[i+1], depth+1)
			if err != nil {
				return Value{}, err
			}
			members[key.Value] = member
		}
		return Object(members), nil
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	default:
		return Value{}, fmt.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
	}
}

func fromYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return Value{}, fmt.Errorf("line %d: %q is not a finite number", n.Line, n.Value)
		}
		return Number(f), nil
	default:
		return String(n.Value), nil
	}
}

// FromGo converts values produced by encoding/json (with or without
// UseNumber), yaml.v3, or literal Go maps and slices into a Value.
func FromGo(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return Value{}, fmt.Errorf("number %q: %w", t.String(), err)
		}
		return Number(f), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int8:
		return Number(float64(t)), nil
	case int16:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint8:
		return Number(float64(t)), nil
	case uint16:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case []any:
		items := make([]Value, 0, len(t))
		for i, e := range t {
			item, err := FromGo(e)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items = append(items, item)
		}
		return Array(items...), nil
	case []Value:
		return Array(t...), nil
	case map[string]any:
		members := make(map[string]Value, len(t))
		for k, e := range t {
			member, err := FromGo(e)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", k, err)
			}
			members[k] = member
		}
		return Object(members), nil
	case map[string]Value:
		return Object(t), nil
	default:
		return Value{}, fmt.Errorf("unsupported go type %T", x)
	}
}

// MarshalJSON renders v as JSON with object members in key order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.appendJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON document into v.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// String renders v as compact JSON. Non-finite numbers render as their Go
// spelling since JSON cannot carry them.
func (v Value) String() string {
	var buf bytes.Buffer
	if err := v.appendJSON(&buf); err != nil {
		return fmt.Sprintf("<%s: %v>", v.kind, err)
	}
	return buf.String()
}

func (v Value) appendJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		if math.IsInf(v.num, 0) || math.IsNaN(v.num) {
			return fmt.Errorf("number %v has no json form", v.num)
		}
		buf.WriteString(formatNumber(v.num))
	case KindString:
		b, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.appendJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(b)
			buf.WriteByte(':')
			if err := v.obj[k].appendJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unknown kind %d", v.kind)
	}
	return nil
}

func formatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
