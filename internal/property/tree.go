package property

import (
	"strings"

	"github.com/flavono123/shaper/internal/field"
)

// Tree builds a fresh field tree holding nodes.
func Tree(nodes []*Node) (*field.Tree, error) {
	tree := field.Empty()
	if err := appendNodes(tree, nil, nodes); err != nil {
		return nil, err
	}
	return tree, nil
}

func appendNodes(tree *field.Tree, parent field.Path, nodes []*Node) error {
	for i, n := range nodes {
		if _, err := tree.AddField(parent); err != nil {
			return err
		}
		path := parent.Child(i)
		if err := tree.SetFieldName(path, n.Name); err != nil {
			return err
		}
		if err := tree.SetFieldType(path, n.Type); err != nil {
			return err
		}
		if n.Nested() {
			if err := appendNodes(tree, path, n.Children); err != nil {
				return err
			}
		}
	}
	return nil
}

// Coerced lists the dotted names of properties whose type was replaced
// by string.
func Coerced(nodes []*Node) []string {
	var result []string
	var walk func(prefix []string, nodes []*Node)
	walk = func(prefix []string, nodes []*Node) {
		for _, n := range nodes {
			names := append(append([]string{}, prefix...), n.Name)
			if n.Coerced {
				result = append(result, strings.Join(names, "."))
			}
			walk(names, n.Children)
		}
	}
	walk(nil, nodes)
	return result
}

// LoadTree reads a JSON Schema file into a new tree. coerced lists the
// properties imported as string.
func LoadTree(path string) (tree *field.Tree, coerced []string, err error) {
	nodes, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	tree, err = Tree(nodes)
	if err != nil {
		return nil, nil, err
	}
	return tree, Coerced(nodes), nil
}
