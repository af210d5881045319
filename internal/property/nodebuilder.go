package property

import (
	"k8s.io/kube-openapi/pkg/validation/spec"
)

type NodeBuilder struct {
	node *Node
}

func CreatePropertyNodeBuilder(
	name string,
	schemaProps *spec.SchemaProps,
) *NodeBuilder {
	t, ok := FieldType(schemaProps)
	return &NodeBuilder{
		node: &Node{
			Name:        name,
			SchemaProps: schemaProps,
			Type:        t,
			Coerced:     !ok,
		},
	}
}

func (b *NodeBuilder) WithChildren(
	children []*Node,
) *NodeBuilder {
	b.node.Children = children
	return b
}

func (b *NodeBuilder) Build() *Node {
	return b.node
}
