package textrange_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gozen/pkg/textrange"
)

func TestNew(t *testing.T) {
	t.Parallel()

	r := textrange.New(7, 3)
	assert.Equal(t, 3, r.Start)
	assert.Equal(t, 7, r.End)
	assert.Equal(t, 4, r.Len())

	assert.Equal(t, textrange.Range{Start: 2, End: 5}, textrange.FromLength(2, 3))
	assert.True(t, textrange.New(4, 4).Empty())
	assert.Equal(t, "{2, 3}", textrange.FromLength(2, 3).String())
}

func TestRangeAlgebra(t *testing.T) {
	t.Parallel()

	ranges := []textrange.Range{
		textrange.New(0, 0),
		textrange.New(0, 3),
		textrange.New(3, 5),
		textrange.New(2, 8),
		textrange.New(6, 9),
		textrange.New(10, 12),
		textrange.New(4, 4),
	}

	for _, a := range ranges {
		for _, b := range ranges {
			assert.Equal(t, a.Overlap(b), b.Overlap(a), "%v %v", a, b)

			inter, ok := a.Intersection(b)
			assert.Equal(t, a.Overlap(b), ok, "%v %v", a, b)
			if ok {
				assert.True(t, a.ContainsRange(inter))
				assert.True(t, b.ContainsRange(inter))
			}

			union, ok := a.Union(b)
			assert.Equal(t, a.Overlap(b), ok)
			if ok {
				assert.True(t, union.ContainsRange(a), "%v ∪ %v = %v", a, b, union)
				assert.True(t, union.ContainsRange(b), "%v ∪ %v = %v", a, b, union)
			}
		}
	}
}

func TestPositions(t *testing.T) {
	t.Parallel()

	r := textrange.New(2, 5)

	tests := []struct {
		pos      int
		contains bool
		inside   bool
		include  bool
	}{
		{1, false, false, false},
		{2, true, false, true},
		{3, true, true, true},
		{5, false, false, true},
		{6, false, false, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.contains, r.Contains(tt.pos), "contains %d", tt.pos)
		assert.Equal(t, tt.inside, r.Inside(tt.pos), "inside %d", tt.pos)
		assert.Equal(t, tt.include, r.Include(tt.pos), "include %d", tt.pos)
	}
}

func TestSubstringReplace(t *testing.T) {
	t.Parallel()

	s := "color:red"
	r := textrange.New(6, 9)

	assert.Equal(t, "red", r.Substring(s))
	assert.Equal(t, "color:blue", r.Replace(s, "blue"))
	assert.Equal(t, "", textrange.New(20, 30).Substring(s))
	assert.Equal(t, "color:red!", textrange.New(20, 30).Replace(s, "!"))
	assert.Equal(t, textrange.New(8, 11), r.Shift(2))
}

func TestCmp(t *testing.T) {
	t.Parallel()

	ranges := []textrange.Range{
		textrange.New(5, 9),
		textrange.New(0, 4),
		textrange.New(5, 6),
	}
	slices.SortFunc(ranges, textrange.Range.Cmp)

	assert.Equal(t, []textrange.Range{
		textrange.New(0, 4),
		textrange.New(5, 6),
		textrange.New(5, 9),
	}, ranges)
	assert.Zero(t, textrange.New(1, 2).Cmp(textrange.New(1, 2)))
}
