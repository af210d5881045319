package projection

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Delta counts lines added and removed between two renderings.
type Delta struct {
	Added   int
	Removed int
}

func (d Delta) Empty() bool {
	return d.Added == 0 && d.Removed == 0
}

func (d Delta) String() string {
	return fmt.Sprintf("+%d -%d", d.Added, d.Removed)
}

func Changes(prev, next string) Delta {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(prev, next)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var d Delta
	for _, diff := range diffs {
		n := countLines(diff.Text)
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			d.Added += n
		case diffmatchpatch.DiffDelete:
			d.Removed += n
		}
	}
	return d
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
