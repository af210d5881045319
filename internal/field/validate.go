package field

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNameRequired = errors.New("name is required")

// ValidationError reports a visible field without a name. It never
// blocks editing or projection.
type ValidationError struct {
	ID   ID
	Path Path
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Path, ErrNameRequired)
}

func (e ValidationError) Unwrap() error {
	return ErrNameRequired
}

func (t *Tree) Validate() []ValidationError {
	var result []ValidationError
	t.Walk(func(f *Field, path Path) bool {
		if !NameValid(f.Name) {
			result = append(result, ValidationError{ID: f.ID, Path: path})
		}
		return true
	})
	return result
}

func NameValid(name string) bool {
	return strings.TrimSpace(name) != ""
}
