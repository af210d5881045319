package projection

import (
	"bytes"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/flavono123/shaper/internal/field"
)

const indent = "  "

// Project maps fields to an object keyed by name: leaves become their
// type tag, nested fields their projected children. Later duplicates
// win. It never mutates its input.
func Project(nodes []field.Node) *Object {
	obj := NewObject()
	for _, n := range nodes {
		switch n := n.(type) {
		case field.Branch:
			obj.Set(n.Name, Project(n.Children))
		case field.Leaf:
			obj.Set(n.Name, string(n.Type))
		}
	}
	return obj
}

// JSON renders obj with two-space indentation, as shown in the preview.
func JSON(obj *Object) (string, error) {
	raw, err := json.MarshalNoEscape(obj)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", indent); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func YAML(obj *Object) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(len(indent))
	if err := enc.Encode(obj); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Preview is the JSON text of the tree's current projection.
func Preview(tree *field.Tree) (string, error) {
	return JSON(Project(tree.Nodes()))
}
