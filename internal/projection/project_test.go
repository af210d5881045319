package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/flavono123/shaper/internal/field"
)

func leaf(name string, typ field.Type) field.Node {
	return field.Leaf{ID: field.ID(name), Name: name, Type: typ}
}

func branch(name string, children ...field.Node) field.Node {
	return field.Branch{ID: field.ID(name), Name: name, Children: children}
}

func TestJSON(t *testing.T) {
	tests := []struct {
		name     string
		nodes    []field.Node
		expected string
	}{
		{
			name:     "empty root",
			nodes:    nil,
			expected: `{}`,
		},
		{
			name:     "single number",
			nodes:    []field.Node{leaf("age", field.Number)},
			expected: "{\n  \"age\": \"number\"\n}",
		},
		{
			name: "nested",
			nodes: []field.Node{
				branch("address", leaf("city", field.String), leaf("zip", field.Number)),
			},
			expected: "{\n  \"address\": {\n    \"city\": \"string\",\n    \"zip\": \"number\"\n  }\n}",
		},
		{
			name:     "nested without children",
			nodes:    []field.Node{branch("meta")},
			expected: "{\n  \"meta\": {}\n}",
		},
		{
			name:     "duplicate names keep the last value",
			nodes:    []field.Node{leaf("x", field.String), leaf("x", field.Number)},
			expected: "{\n  \"x\": \"number\"\n}",
		},
		{
			name:     "empty names collide",
			nodes:    []field.Node{leaf("", field.String), leaf("", field.Number)},
			expected: "{\n  \"\": \"number\"\n}",
		},
		{
			name:     "markup characters are kept verbatim",
			nodes:    []field.Node{branch("a<b&c", leaf("x>y", field.String))},
			expected: "{\n  \"a<b&c\": {\n    \"x>y\": \"string\"\n  }\n}",
		},
		{
			name:     "sibling order is preserved",
			nodes:    []field.Node{leaf("zeta", field.String), leaf("alpha", field.String)},
			expected: "{\n  \"zeta\": \"string\",\n  \"alpha\": \"string\"\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := JSON(Project(tt.nodes))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestDuplicateKeepsFirstPosition(t *testing.T) {
	obj := Project([]field.Node{
		leaf("x", field.String),
		leaf("y", field.String),
		leaf("x", field.Number),
	})
	assert.Equal(t, []string{"x", "y"}, obj.Keys())
	v, _ := obj.Get("x")
	assert.Equal(t, "number", v)
}

func TestProjectTree(t *testing.T) {
	tree := field.New()
	require.NoError(t, tree.SetFieldName(field.Path{0}, "address"))
	require.NoError(t, tree.SetFieldType(field.Path{0}, field.Nested))
	_, err := tree.AddField(field.Path{0})
	require.NoError(t, err)
	require.NoError(t, tree.SetFieldName(field.Path{0, 0}, "city"))
	_, err = tree.AddField(field.Path{0})
	require.NoError(t, err)
	require.NoError(t, tree.SetFieldName(field.Path{0, 1}, "zip"))
	require.NoError(t, tree.SetFieldType(field.Path{0, 1}, field.Number))

	out, err := Preview(tree)
	require.NoError(t, err)
	assert.Equal(t, "string", gjson.Get(out, "address.city").String())
	assert.Equal(t, "number", gjson.Get(out, "address.zip").String())

	t.Run("pure", func(t *testing.T) {
		again, err := Preview(tree)
		require.NoError(t, err)
		assert.Equal(t, out, again)
		assert.Equal(t, uint64(7), tree.Revision())
	})

	t.Run("type switch drops nested content", func(t *testing.T) {
		require.NoError(t, tree.SetFieldType(field.Path{0}, field.String))
		out, err := Preview(tree)
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"address\": \"string\"\n}", out)
		assert.False(t, gjson.Get(out, "address.city").Exists())
	})

	t.Run("removing the first root field", func(t *testing.T) {
		_, err := tree.AddField(nil)
		require.NoError(t, err)
		require.NoError(t, tree.SetFieldName(field.Path{1}, "age"))
		require.NoError(t, tree.SetFieldType(field.Path{1}, field.Number))
		require.NoError(t, tree.RemoveField(field.Path{0}))

		out, err := Preview(tree)
		require.NoError(t, err)
		assert.JSONEq(t, `{"age":"number"}`, out)
		f, err := tree.Resolve(field.Path{0})
		require.NoError(t, err)
		assert.Equal(t, "age", f.Name)
	})
}

func TestYAML(t *testing.T) {
	out, err := YAML(Project([]field.Node{
		leaf("name", field.String),
		branch("address", leaf("zip", field.Number)),
		branch("meta"),
	}))
	require.NoError(t, err)
	assert.Equal(t, "name: string\naddress:\n  zip: number\nmeta: {}\n", out)

	out, err = YAML(Project(nil))
	require.NoError(t, err)
	assert.Equal(t, "{}\n", out)
}

func TestJSONSchemaText(t *testing.T) {
	out, err := JSONSchemaText([]field.Node{
		leaf("name", field.String),
		branch("address", leaf("zip", field.Number)),
		leaf("name", field.Number),
	})
	require.NoError(t, err)

	assert.Equal(t, schemaDraft, gjson.Get(out, "$schema").String())
	assert.Equal(t, "object", gjson.Get(out, "type").String())
	assert.Equal(t, "number", gjson.Get(out, "properties.name.type").String())
	assert.Equal(t, "number", gjson.Get(out, "properties.address.properties.zip.type").String())
	var required []string
	for _, r := range gjson.Get(out, "required").Array() {
		required = append(required, r.String())
	}
	assert.Equal(t, []string{"name", "address"}, required)
}

func TestPointer(t *testing.T) {
	tree := field.New()
	require.NoError(t, tree.SetFieldName(field.Path{0}, "address"))
	require.NoError(t, tree.SetFieldType(field.Path{0}, field.Nested))
	id, err := tree.AddField(field.Path{0})
	require.NoError(t, err)
	require.NoError(t, tree.SetFieldName(field.Path{0, 0}, "a/b"))

	ptr, err := Pointer(tree, id)
	require.NoError(t, err)
	assert.Equal(t, "#/properties/address/properties/a~1b", ptr)

	require.NoError(t, tree.SetFieldName(field.Path{0, 0}, "50% off"))
	ptr, err = Pointer(tree, id)
	require.NoError(t, err)
	assert.Equal(t, "#/properties/address/properties/50%25%20off", ptr)

	require.NoError(t, tree.SetFieldType(field.Path{0}, field.Number))
	_, err = Pointer(tree, id)
	assert.ErrorIs(t, err, field.ErrHidden)
}

func TestChanges(t *testing.T) {
	prev := "{\n  \"a\": \"string\"\n}"
	next := "{\n  \"a\": \"string\",\n  \"b\": \"number\"\n}"

	d := Changes(prev, next)
	assert.Equal(t, Delta{Added: 2, Removed: 1}, d)
	assert.Equal(t, "+2 -1", d.String())
	assert.True(t, Changes(prev, prev).Empty())
}
