package field

import (
	"fmt"

	"github.com/google/uuid"
)

// ID identifies a field for its whole lifetime. Paths shift, ids don't.
type ID string

type Type string

const (
	String Type = "string"
	Number Type = "number"
	Nested Type = "nested"
)

// Types returns the selectable field types in display order.
func Types() []Type {
	return []Type{String, Number, Nested}
}

func ParseType(s string) (Type, error) {
	for _, t := range Types() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown field type %q", s)
}

// Next returns the type following t in Types(), wrapping around.
func (t Type) Next() Type {
	types := Types()
	for i, candidate := range types {
		if candidate == t {
			return types[(i+1)%len(types)]
		}
	}
	return String
}

type Field struct {
	ID   ID
	Name string
	Type Type
	// Children keeps its ids when the type moves away from Nested,
	// so switching back restores the subtree.
	Children []ID

	parent ID
}

func (f *Field) IsNested() bool {
	return f.Type == Nested
}

// VisibleChildren returns the children that take part in the schema.
func (f *Field) VisibleChildren() []ID {
	if !f.IsNested() {
		return nil
	}
	return f.Children
}

func (f *Field) Parent() ID {
	return f.parent
}

func newID() ID {
	return ID(uuid.New().String())
}
