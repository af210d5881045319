package field

import "fmt"

type Op string

const (
	OpAdd    Op = "add"
	OpRemove Op = "remove"
	OpRename Op = "rename"
	OpRetype Op = "retype"
)

// Change describes one applied mutation. Path is the address the
// operation was issued with.
type Change struct {
	Op       Op
	ID       ID
	Path     Path
	Revision uint64
}

// Tree owns every field in a flat table keyed by id. Structure lives in
// the id lists (roots and Field.Children); paths are derived on demand.
// A Tree is not safe for concurrent use.
type Tree struct {
	fields    map[ID]*Field
	roots     []ID
	revision  uint64
	observers []func(Change)
}

// New returns a tree holding the single default field an editor starts with.
func New() *Tree {
	t := Empty()
	t.insert(&t.roots, "")
	return t
}

func Empty() *Tree {
	return &Tree{
		fields: map[ID]*Field{},
		roots:  []ID{},
	}
}

// OnChange registers fn to run synchronously after every mutation.
func (t *Tree) OnChange(fn func(Change)) {
	t.observers = append(t.observers, fn)
}

func (t *Tree) Revision() uint64 {
	return t.revision
}

// Len counts every field in the tree, hidden ones included.
func (t *Tree) Len() int {
	return len(t.fields)
}

func (t *Tree) Roots() []ID {
	result := make([]ID, len(t.roots))
	copy(result, t.roots)
	return result
}

func (t *Tree) Lookup(id ID) (*Field, bool) {
	f, ok := t.fields[id]
	return f, ok
}

// AddField appends a fresh string field to the root sequence, or to the
// children of the nested field at parent when parent is non-empty.
func (t *Tree) AddField(parent Path) (ID, error) {
	list := &t.roots
	var parentID ID

	if len(parent) > 0 {
		p, err := t.Resolve(parent)
		if err != nil {
			return "", err
		}
		if !p.IsNested() {
			return "", &InvalidPathError{
				Path:   parent.Clone(),
				Depth:  len(parent) - 1,
				Reason: fmt.Sprintf("field %q is %s, not nested", p.Name, p.Type),
			}
		}
		list = &p.Children
		parentID = p.ID
	}

	f := t.insert(list, parentID)
	t.notify(OpAdd, f.ID, parent.Child(len(*list)-1))
	return f.ID, nil
}

// RemoveField deletes the field at path together with its subtree.
// Following siblings move one index down.
func (t *Tree) RemoveField(path Path) error {
	f, err := t.Resolve(path)
	if err != nil {
		return err
	}

	list := t.siblings(f.parent)
	idx := path[len(path)-1]
	*list = append((*list)[:idx], (*list)[idx+1:]...)
	t.drop(f)

	t.notify(OpRemove, f.ID, path.Clone())
	return nil
}

// SetFieldName overwrites the name. Empty names are accepted here and
// reported by Validate.
func (t *Tree) SetFieldName(path Path, name string) error {
	f, err := t.Resolve(path)
	if err != nil {
		return err
	}
	f.Name = name

	t.notify(OpRename, f.ID, path.Clone())
	return nil
}

// SetFieldType overwrites the type. Leaving Nested hides the children
// instead of discarding them.
func (t *Tree) SetFieldType(path Path, typ Type) error {
	if _, err := ParseType(string(typ)); err != nil {
		return err
	}
	f, err := t.Resolve(path)
	if err != nil {
		return err
	}
	f.Type = typ
	if typ == Nested && f.Children == nil {
		f.Children = []ID{}
	}

	t.notify(OpRetype, f.ID, path.Clone())
	return nil
}

// Resolve walks path from the root sequence. Every index must be in
// range and every non-terminal step must land on a nested field.
func (t *Tree) Resolve(path Path) (*Field, error) {
	if len(path) == 0 {
		return nil, &InvalidPathError{Path: path, Reason: "empty path"}
	}

	siblings := t.roots
	var cur *Field
	for depth, idx := range path {
		if cur != nil && !cur.IsNested() {
			return nil, &InvalidPathError{
				Path:   path.Clone(),
				Depth:  depth,
				Reason: fmt.Sprintf("field %q is %s, not nested", cur.Name, cur.Type),
			}
		}
		if idx < 0 || idx >= len(siblings) {
			return nil, &InvalidPathError{
				Path:   path.Clone(),
				Depth:  depth,
				Reason: fmt.Sprintf("index %d out of range [0,%d)", idx, len(siblings)),
			}
		}
		cur = t.fields[siblings[idx]]
		siblings = cur.Children
	}

	return cur, nil
}

// PathOf translates a stable id into its current path.
func (t *Tree) PathOf(id ID) (Path, error) {
	f, ok := t.fields[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	var reversed Path
	for {
		if f.parent != "" && !t.fields[f.parent].IsNested() {
			return nil, fmt.Errorf("%w: %s", ErrHidden, id)
		}
		list := *t.siblings(f.parent)
		idx := indexOf(list, f.ID)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s is detached", ErrNotFound, id)
		}
		reversed = append(reversed, idx)
		if f.parent == "" {
			break
		}
		f = t.fields[f.parent]
	}

	path := make(Path, len(reversed))
	for i, idx := range reversed {
		path[len(reversed)-1-i] = idx
	}
	return path, nil
}

// Walk visits visible fields depth-first in sibling order. Returning
// false from fn skips that field's children.
func (t *Tree) Walk(fn func(f *Field, path Path) bool) {
	t.walk(t.roots, nil, fn)
}

func (t *Tree) walk(ids []ID, prefix Path, fn func(f *Field, path Path) bool) {
	for i, id := range ids {
		f := t.fields[id]
		path := prefix.Child(i)
		if fn(f, path) {
			t.walk(f.VisibleChildren(), path, fn)
		}
	}
}

// Nodes returns an immutable snapshot of the visible tree.
func (t *Tree) Nodes() []Node {
	return t.nodes(t.roots)
}

func (t *Tree) nodes(ids []ID) []Node {
	result := make([]Node, 0, len(ids))
	for _, id := range ids {
		f := t.fields[id]
		if f.IsNested() {
			result = append(result, Branch{
				ID:       f.ID,
				Name:     f.Name,
				Children: t.nodes(f.Children),
			})
			continue
		}
		result = append(result, Leaf{ID: f.ID, Name: f.Name, Type: f.Type})
	}
	return result
}

func (t *Tree) insert(list *[]ID, parent ID) *Field {
	id := newID()
	for t.fields[id] != nil {
		id = newID()
	}
	f := &Field{ID: id, Type: String, parent: parent}
	t.fields[id] = f
	*list = append(*list, id)
	return f
}

// drop forgets f and everything below it, hidden children included.
func (t *Tree) drop(f *Field) {
	for _, child := range f.Children {
		t.drop(t.fields[child])
	}
	delete(t.fields, f.ID)
}

func (t *Tree) siblings(parent ID) *[]ID {
	if parent == "" {
		return &t.roots
	}
	return &t.fields[parent].Children
}

func (t *Tree) notify(op Op, id ID, path Path) {
	t.revision++
	change := Change{Op: op, ID: id, Path: path, Revision: t.revision}
	for _, fn := range t.observers {
		fn(change)
	}
}

func indexOf(ids []ID, id ID) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}
