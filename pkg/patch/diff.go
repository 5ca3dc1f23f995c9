package patch

import (
	"fmt"
	"strings"
)

// LineKind tells whether a diff line is kept, added or removed.
type LineKind int

const (
	// Context is a line both versions share.
	Context LineKind = iota

	// Added is a line only the new version has.
	Added

	// Removed is a line only the old version has.
	Removed
)

// contextLines is how many unchanged lines surround each change.
const contextLines = 3

// Line is one line of a hunk.
type Line struct {
	Kind LineKind
	Text string
}

// String returns the line with its unified diff prefix.
func (l Line) String() string {
	switch l.Kind {
	case Added:
		return "+" + l.Text
	case Removed:
		return "-" + l.Text
	default:
		return " " + l.Text
	}
}

// Hunk is a run of changes with surrounding context. Line numbers are
// 1-based.
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Lines    []Line
}

// Header returns the "@@ -a,b +c,d @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
}

// Diff is the line difference between two versions of a file.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// Compare returns the difference between before and after, or nil when
// they have the same lines.
func Compare(path, before, after string) *Diff {
	ops := diffLines(splitLines(before), splitLines(after))

	d := &Diff{Path: path}
	for _, op := range ops {
		switch op.Kind {
		case Added:
			d.Additions++
		case Removed:
			d.Deletions++
		}
	}
	if d.Additions == 0 && d.Deletions == 0 {
		return nil
	}
	d.Hunks = hunks(ops)
	return d
}

// String renders the diff in unified format.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}

	var b strings.Builder
	path := strings.TrimPrefix(d.Path, "/")
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range d.Hunks {
		b.WriteString(h.Header())
		b.WriteByte('\n')
		for _, l := range h.Lines {
			b.WriteString(l.String())
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// diffLines walks a longest common subsequence table of old and cur and
// returns every line tagged with its kind, removals before additions.
func diffLines(old, cur []string) []Line {
	// lcs[i][j] is the LCS length of old[i:] and cur[j:].
	lcs := make([][]int, len(old)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(cur)+1)
	}
	for i := len(old) - 1; i >= 0; i-- {
		for j := len(cur) - 1; j >= 0; j-- {
			if old[i] == cur[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	lines := make([]Line, 0, max(len(old), len(cur)))
	i, j := 0, 0
	for i < len(old) || j < len(cur) {
		switch {
		case i < len(old) && j < len(cur) && old[i] == cur[j]:
			lines = append(lines, Line{Kind: Context, Text: old[i]})
			i++
			j++
		case i < len(old) && (j == len(cur) || lcs[i+1][j] >= lcs[i][j+1]):
			lines = append(lines, Line{Kind: Removed, Text: old[i]})
			i++
		default:
			lines = append(lines, Line{Kind: Added, Text: cur[j]})
			j++
		}
	}
	return lines
}

// hunks groups changed lines with their context. Changes separated by no
// more than twice the context share a hunk.
func hunks(lines []Line) []Hunk {
	var changed []int
	for idx, l := range lines {
		if l.Kind != Context {
			changed = append(changed, idx)
		}
	}

	var out []Hunk
	for first := 0; first < len(changed); {
		last := first
		for last+1 < len(changed) && changed[last+1]-changed[last]-1 <= 2*contextLines {
			last++
		}

		start := max(0, changed[first]-contextLines)
		end := min(len(lines), changed[last]+contextLines+1)

		h := Hunk{OldStart: 1, NewStart: 1}
		for _, l := range lines[:start] {
			if l.Kind != Added {
				h.OldStart++
			}
			if l.Kind != Removed {
				h.NewStart++
			}
		}
		for _, l := range lines[start:end] {
			h.add(l)
		}
		out = append(out, h)

		first = last + 1
	}
	return out
}

func (h *Hunk) add(l Line) {
	h.Lines = append(h.Lines, l)
	if l.Kind != Added {
		h.OldLines++
	}
	if l.Kind != Removed {
		h.NewLines++
	}
}
