// Package patch applies byte-range replacements to text and renders the
// difference between two versions of a file as a unified diff.
package patch

import (
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/gozen/pkg/textrange"
)

// Edit errors.
var (
	// ErrOutOfRange is returned for an edit outside the content.
	ErrOutOfRange = errors.New("edit out of range")

	// ErrOverlap is returned when two edits touch the same bytes.
	ErrOverlap = errors.New("overlapping edits")
)

// Edit replaces the bytes [Start, End) with Text.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Replace returns an edit replacing r with text.
func Replace(r textrange.Range, text string) Edit {
	return Edit{Start: r.Start, End: r.End, Text: text}
}

// Insert returns an edit inserting text at pos.
func Insert(pos int, text string) Edit {
	return Edit{Start: pos, End: pos, Text: text}
}

func (e Edit) String() string {
	return fmt.Sprintf("[%d:%d]=%q", e.Start, e.End, e.Text)
}

// Apply applies edits to content. Edits are given in content offsets and
// may come in any order. Inserts at the same position keep their order.
func Apply(content string, edits ...Edit) (string, error) {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int { return a.Start - b.Start })

	last := 0
	for _, e := range sorted {
		if e.Start < 0 || e.End < e.Start || e.End > len(content) {
			return "", fmt.Errorf("%w: %s for length %d", ErrOutOfRange, e, len(content))
		}
		if e.Start < last {
			return "", fmt.Errorf("%w: %s", ErrOverlap, e)
		}
		last = e.End
	}

	var out []byte
	pos := 0
	for _, e := range sorted {
		out = append(out, content[pos:e.Start]...)
		out = append(out, e.Text...)
		pos = e.End
	}
	out = append(out, content[pos:]...)
	return string(out), nil
}
