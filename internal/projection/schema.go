package projection

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/go-openapi/jsonpointer"
	"github.com/go-openapi/jsonreference"
	"github.com/goccy/go-json"
	"k8s.io/kube-openapi/pkg/validation/spec"

	"github.com/flavono123/shaper/internal/field"
)

const schemaDraft = "http://json-schema.org/draft-07/schema#"

// JSONSchema describes the projected object: every named field becomes a
// required property.
func JSONSchema(nodes []field.Node) *spec.Schema {
	root := objectSchema(nodes)
	root.Schema = schemaDraft
	return root
}

func objectSchema(nodes []field.Node) *spec.Schema {
	s := &spec.Schema{
		SchemaProps: spec.SchemaProps{
			Type:       spec.StringOrArray{"object"},
			Properties: map[string]spec.Schema{},
		},
	}

	seen := map[string]bool{}
	for _, n := range nodes {
		switch n := n.(type) {
		case field.Branch:
			s.Properties[n.Name] = *objectSchema(n.Children)
		case field.Leaf:
			s.Properties[n.Name] = spec.Schema{
				SchemaProps: spec.SchemaProps{Type: spec.StringOrArray{string(n.Type)}},
			}
		}
		if !seen[n.FieldName()] {
			seen[n.FieldName()] = true
			s.Required = append(s.Required, n.FieldName())
		}
	}
	return s
}

func JSONSchemaText(nodes []field.Node) (string, error) {
	raw, err := json.MarshalNoEscape(JSONSchema(nodes))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", indent); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Pointer returns the JSON reference of a field's property inside the
// document produced by JSONSchema, e.g. "#/properties/address/properties/city".
// Tokens are percent-encoded, so any name yields a valid fragment.
func Pointer(tree *field.Tree, id field.ID) (string, error) {
	path, err := tree.PathOf(id)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := range path {
		f, err := tree.Resolve(path[:i+1])
		if err != nil {
			return "", err
		}
		b.WriteString("/properties/")
		b.WriteString(url.PathEscape(jsonpointer.Escape(f.Name)))
	}

	ref, err := jsonreference.New("#" + b.String())
	if err != nil {
		return "", err
	}
	return ref.String(), nil
}
