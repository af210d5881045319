package field

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidPath = errors.New("invalid field path")
	ErrNotFound    = errors.New("field not found")
	// ErrHidden is returned for fields living under a parent whose type
	// is no longer nested. They keep their id but have no path.
	ErrHidden = errors.New("field is hidden")
)

// Path addresses a field by sibling index per nesting level. It is only
// valid until the next structural change of the tree.
type Path []int

func (p Path) String() string {
	if len(p) == 0 {
		return "root"
	}
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ".")
}

func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	c := make(Path, len(p))
	copy(c, p)
	return c
}

// Child returns p extended by one index.
func (p Path) Child(index int) Path {
	c := make(Path, len(p), len(p)+1)
	copy(c, p)
	return append(c, index)
}

type InvalidPathError struct {
	Path   Path
	Depth  int // level at which resolution failed
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path %s at level %d: %s", e.Path, e.Depth, e.Reason)
}

func (e *InvalidPathError) Unwrap() error {
	return ErrInvalidPath
}
