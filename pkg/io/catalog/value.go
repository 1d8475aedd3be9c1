package catalog

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// Value is a node of a free-form metadata tree.
//
// The concrete types are Map, List, String, Number, Bool and Null.
type Value interface {
	// Raw converts the node back to plain Go values (map[string]any, []any, ...).
	Raw() any

	isValue()
}

// Map is an object node.
type Map map[string]Value

// List is an array node.
type List []Value

// String is a string leaf.
type String string

// Number is a numeric leaf holding its source literal, so "2.0" stays "2.0".
type Number string

// Bool is a boolean leaf.
type Bool bool

// Null is an explicit null leaf.
type Null struct{}

func (Map) isValue()    {}
func (List) isValue()   {}
func (String) isValue() {}
func (Number) isValue() {}
func (Bool) isValue()   {}
func (Null) isValue()   {}

// Raw implements Value.
func (m Map) Raw() any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[key] = value.Raw()
	}

	return out
}

// Raw implements Value.
func (l List) Raw() any {
	out := make([]any, len(l))
	for i, value := range l {
		out[i] = value.Raw()
	}

	return out
}

// Raw implements Value.
func (s String) Raw() any { return string(s) }

// Raw implements Value. Literals that are not decimal numbers are returned as strings.
func (n Number) Raw() any {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return string(n)
	}

	return f
}

// Raw implements Value.
func (b Bool) Raw() any { return bool(b) }

// Raw implements Value.
func (Null) Raw() any { return nil }

// FromAny converts decoded JSON/YAML data into a Value tree.
// Scalars of unknown types are kept as their string representation.
func FromAny(raw any) Value {
	switch typed := raw.(type) {
	case nil:
		return Null{}
	case Value:
		return typed
	case map[string]any:
		out := make(Map, len(typed))
		for key, value := range typed {
			out[key] = FromAny(value)
		}

		return out
	case map[any]any:
		out := make(Map, len(typed))
		for key, value := range typed {
			out[fmt.Sprint(key)] = FromAny(value)
		}

		return out
	case []any:
		out := make(List, len(typed))
		for i, value := range typed {
			out[i] = FromAny(value)
		}

		return out
	case string:
		return String(typed)
	case bool:
		return Bool(typed)
	case float64:
		return Number(strconv.FormatFloat(typed, 'f', -1, 64))
	case float32:
		return Number(strconv.FormatFloat(float64(typed), 'f', -1, 32))
	case int:
		return Number(strconv.Itoa(typed))
	case int64:
		return Number(strconv.FormatInt(typed, 10))
	case uint64:
		return Number(strconv.FormatUint(typed, 10))
	case json.Number:
		_, err := typed.Float64()
		if err != nil {
			return String(typed.String())
		}

		return Number(typed.String())
	default:
		return String(fmt.Sprint(typed))
	}
}

// FromNode converts a YAML node into a Value tree. Numeric scalars keep their
// literal text. A zero node yields nil.
func FromNode(node *yaml.Node) (Value, error) {
	if node == nil || node.Kind == 0 {
		return nil, nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null{}, nil
		}

		return FromNode(node.Content[0])
	case yaml.AliasNode:
		return FromNode(node.Alias)
	case yaml.MappingNode:
		out := make(Map, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			value, err := FromNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}

			out[node.Content[i].Value] = value
		}

		return out, nil
	case yaml.SequenceNode:
		out := make(List, 0, len(node.Content))

		for _, item := range node.Content {
			value, err := FromNode(item)
			if err != nil {
				return nil, err
			}

			out = append(out, value)
		}

		return out, nil
	case yaml.ScalarNode:
		return scalarFromNode(node)
	default:
		return nil, fmt.Errorf("unsupported metadata node at line %d", node.Line)
	}
}

func scalarFromNode(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool

		err := node.Decode(&b)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean at line %d: %w", node.Line, err)
		}

		return Bool(b), nil
	case "!!int", "!!float":
		return Number(node.Value), nil
	default:
		return String(node.Value), nil
	}
}

// Lookup walks the tree along path. It returns false when a segment is missing or
// when an intermediate node is not a Map.
func Lookup(root Value, path ...string) (Value, bool) {
	current := root
	if current == nil {
		return nil, false
	}

	for _, segment := range path {
		node, ok := current.(Map)
		if !ok {
			return nil, false
		}

		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// LookupString resolves path to a scalar and renders it as a string.
// Maps, lists and nulls yield false.
func LookupString(root Value, path ...string) (string, bool) {
	value, ok := Lookup(root, path...)
	if !ok {
		return "", false
	}

	switch leaf := value.(type) {
	case String:
		return string(leaf), true
	case Number:
		return string(leaf), true
	case Bool:
		return strconv.FormatBool(bool(leaf)), true
	default:
		return "", false
	}
}

// Merge overlays one tree on another. Maps are merged key by key; any other overlay
// node replaces the base node. Neither input is modified.
func Merge(base, overlay Value) Value {
	if overlay == nil {
		return base
	}

	baseMap, baseIsMap := base.(Map)
	overlayMap, overlayIsMap := overlay.(Map)

	if !baseIsMap || !overlayIsMap {
		return overlay
	}

	out := make(Map, len(baseMap)+len(overlayMap))
	maps.Copy(out, baseMap)

	for key, value := range overlayMap {
		out[key] = Merge(baseMap[key], value)
	}

	return out
}

// Decode decodes the subtree at path into out using mapstructure tags.
// A missing path leaves out untouched and returns false.
func Decode(root Value, out any, path ...string) (bool, error) {
	value, ok := Lookup(root, path...)
	if !ok {
		return false, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return false, fmt.Errorf("failed to create metadata decoder: %w", err)
	}

	err = decoder.Decode(value.Raw())
	if err != nil {
		return false, fmt.Errorf("failed to decode metadata: %w", err)
	}

	return true, nil
}
