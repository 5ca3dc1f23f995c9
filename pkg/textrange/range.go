// Package textrange provides a half-open integer interval over source text.
package textrange

import (
	"cmp"
	"fmt"
	"strings"
)

// Range is the half-open interval [Start, End) of byte offsets.
// Start is always <= End.
type Range struct {
	Start int
	End   int
}

// New creates a range from two offsets. The offsets are swapped when given in
// reverse order.
func New(start, end int) Range {
	if end < start {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// FromLength creates a range starting at start and spanning length bytes.
func FromLength(start, length int) Range {
	return New(start, start+length)
}

// Len returns the length of the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Empty reports whether the range has zero length.
func (r Range) Empty() bool {
	return r.Start == r.End
}

// Equal reports whether both ranges cover the same offsets.
func (r Range) Equal(other Range) bool {
	return r.Start == other.Start && r.End == other.End
}

// Overlap reports whether the two ranges share at least one boundary point.
// Touching ranges such as [0,3) and [3,5) overlap.
func (r Range) Overlap(other Range) bool {
	return other.Start <= r.End && other.End >= r.Start
}

// Intersection returns the common part of two ranges. ok is false when the
// ranges do not overlap.
func (r Range) Intersection(other Range) (Range, bool) {
	if !r.Overlap(other) {
		return Range{}, false
	}
	return Range{Start: max(r.Start, other.Start), End: min(r.End, other.End)}, true
}

// Union returns the smallest range covering both ranges. ok is false when the
// ranges do not overlap.
func (r Range) Union(other Range) (Range, bool) {
	if !r.Overlap(other) {
		return Range{}, false
	}
	return Range{Start: min(r.Start, other.Start), End: max(r.End, other.End)}, true
}

// Contains reports whether pos lies in [Start, End).
func (r Range) Contains(pos int) bool {
	return r.Start <= pos && pos < r.End
}

// Inside reports whether pos lies strictly between Start and End.
func (r Range) Inside(pos int) bool {
	return r.Start < pos && pos < r.End
}

// Include reports whether pos lies in [Start, End].
func (r Range) Include(pos int) bool {
	return r.Start <= pos && pos <= r.End
}

// ContainsRange reports whether other lies completely within r.
func (r Range) ContainsRange(other Range) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// Shift returns the range moved by delta.
func (r Range) Shift(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// Substring returns the part of s covered by the range, clamped to s.
func (r Range) Substring(s string) string {
	start := clamp(r.Start, 0, len(s))
	end := clamp(r.End, start, len(s))
	return s[start:end]
}

// Replace returns s with the covered part replaced by value.
func (r Range) Replace(s, value string) string {
	start := clamp(r.Start, 0, len(s))
	end := clamp(r.End, start, len(s))

	var b strings.Builder
	b.Grow(len(s) - (end - start) + len(value))
	b.WriteString(s[:start])
	b.WriteString(value)
	b.WriteString(s[end:])
	return b.String()
}

// Cmp orders ranges by start, then by end. It suits slices.SortFunc.
func (r Range) Cmp(other Range) int {
	return cmp.Or(cmp.Compare(r.Start, other.Start), cmp.Compare(r.End, other.End))
}

// String implements fmt.Stringer.
func (r Range) String() string {
	return fmt.Sprintf("{%d, %d}", r.Start, r.Len())
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
