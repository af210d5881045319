package field

// Node is a read-only view of a field: either a Leaf or a Nested.
type Node interface {
	FieldID() ID
	FieldName() string
	FieldType() Type
	node() // restricts implementations to this package
}

type Leaf struct {
	ID   ID
	Name string
	Type Type
}

type Branch struct {
	ID       ID
	Name     string
	Children []Node
}

func (l Leaf) FieldID() ID       { return l.ID }
func (l Leaf) FieldName() string { return l.Name }
func (l Leaf) FieldType() Type   { return l.Type }
func (Leaf) node()               {}

func (b Branch) FieldID() ID       { return b.ID }
func (b Branch) FieldName() string { return b.Name }
func (Branch) FieldType() Type     { return Nested }
func (Branch) node()               {}
