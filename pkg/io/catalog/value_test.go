package catalog_test

import (
	"encoding/json"
	"testing"

	"github.com/devantler-tech/platup/pkg/io/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleTree() catalog.Value {
	return catalog.FromAny(map[string]any{
		"project": map[string]any{
			"properties": map[string]any{
				"kotlin-version": "1.9.10",
				"java-version":   float64(17),
				"native":         true,
				"nothing":        nil,
			},
			"labels": []any{"a", "b"},
		},
	})
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tree := sampleTree()

	tests := []struct {
		name   string
		path   []string
		wantOK bool
	}{
		{name: "root", path: nil, wantOK: true},
		{name: "nested map", path: []string{"project", "properties"}, wantOK: true},
		{name: "leaf", path: []string{"project", "properties", "kotlin-version"}, wantOK: true},
		{name: "missing segment", path: []string{"project", "missing"}},
		{name: "through a list", path: []string{"project", "labels", "0"}},
		{name: "through a leaf", path: []string{"project", "properties", "native", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, ok := catalog.Lookup(tree, tt.path...)

			assert.Equal(t, tt.wantOK, ok)
		})
	}

	_, ok := catalog.Lookup(nil, "x")
	assert.False(t, ok)
}

func TestLookupString(t *testing.T) {
	t.Parallel()

	tree := sampleTree()

	tests := []struct {
		name   string
		key    string
		want   string
		wantOK bool
	}{
		{name: "string", key: "kotlin-version", want: "1.9.10", wantOK: true},
		{name: "number", key: "java-version", want: "17", wantOK: true},
		{name: "bool", key: "native", want: "true", wantOK: true},
		{name: "null", key: "nothing"},
		{name: "missing", key: "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := catalog.LookupString(tree, "project", "properties", tt.key)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := catalog.LookupString(tree, "project", "labels")
	assert.False(t, ok, "lists are not scalars")
}

func TestFromAny(t *testing.T) {
	t.Parallel()

	assert.Equal(t, catalog.Null{}, catalog.FromAny(nil))
	assert.Equal(t, catalog.Number("3"), catalog.FromAny(3))
	assert.Equal(t, catalog.Number("1.5"), catalog.FromAny(json.Number("1.5")))
	assert.Equal(t, catalog.Number("1.10"), catalog.FromAny(json.Number("1.10")))
	assert.Equal(t, catalog.String("nan?"), catalog.FromAny(json.Number("nan?")))
	assert.Equal(t,
		catalog.Map{"1": catalog.String("one")},
		catalog.FromAny(map[any]any{1: "one"}),
	)

	raw := map[string]any{"a": []any{"x", float64(2), false, nil}}
	assert.Equal(t, raw, catalog.FromAny(raw).Raw())
}

func TestFromNode(t *testing.T) {
	t.Parallel()

	var node yaml.Node

	require.NoError(t, yaml.Unmarshal([]byte(`
kotlin: 2.0
java: 1.10
count: 17
native: true
empty: null
name: acme
quoted: "2.0"
list: [1.0, x]
`), &node))

	tree, err := catalog.FromNode(&node)
	require.NoError(t, err)

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{key: "kotlin", want: "2.0", wantOK: true},
		{key: "java", want: "1.10", wantOK: true},
		{key: "count", want: "17", wantOK: true},
		{key: "native", want: "true", wantOK: true},
		{key: "empty"},
		{key: "name", want: "acme", wantOK: true},
		{key: "quoted", want: "2.0", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()

			got, ok := catalog.LookupString(tree, tt.key)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	list, ok := catalog.Lookup(tree, "list")
	require.True(t, ok)
	assert.Equal(t, catalog.List{catalog.Number("1.0"), catalog.String("x")}, list)
	assert.Equal(t, []any{1.0, "x"}, list.Raw())

	empty, err := catalog.FromNode(&yaml.Node{})
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := catalog.FromAny(map[string]any{
		"a": map[string]any{"keep": "base", "override": "base"},
		"b": "base",
	})
	overlay := catalog.FromAny(map[string]any{
		"a": map[string]any{"override": "overlay"},
		"c": "overlay",
	})

	merged := catalog.Merge(base, overlay)

	assert.Equal(t, map[string]any{
		"a": map[string]any{"keep": "base", "override": "overlay"},
		"b": "base",
		"c": "overlay",
	}, merged.Raw())

	kept, _ := catalog.LookupString(base, "a", "override")
	assert.Equal(t, "base", kept, "base tree is not modified")

	assert.Equal(t, base, catalog.Merge(base, nil))
	assert.Equal(t, catalog.String("x"), catalog.Merge(base, catalog.String("x")))
}

func TestDecode(t *testing.T) {
	t.Parallel()

	type properties struct {
		Kotlin string `mapstructure:"kotlin-version"`
		Java   int    `mapstructure:"java-version"`
		Native bool   `mapstructure:"native"`
	}

	var props properties

	ok, err := catalog.Decode(sampleTree(), &props, "project", "properties")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, properties{Kotlin: "1.9.10", Java: 17, Native: true}, props)

	ok, err = catalog.Decode(sampleTree(), &props, "project", "absent")

	require.NoError(t, err)
	assert.False(t, ok)
}
