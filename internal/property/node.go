package property

import (
	"k8s.io/kube-openapi/pkg/validation/spec"

	"github.com/flavono123/shaper/internal/field"
)

// Node is one property read from a JSON Schema document. Children keep
// the order the document lists them in.
type Node struct {
	Name        string
	SchemaProps *spec.SchemaProps
	Type        field.Type
	// Coerced is set when the schema type had no field counterpart.
	Coerced  bool
	Children []*Node
}

func (n *Node) Nested() bool {
	return n.Type == field.Nested
}
