package abbrev_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gozen/pkg/abbrev"
)

func names(nodes []*abbrev.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestParseStructure(t *testing.T) {
	t.Parallel()

	root, err := abbrev.Parse("div>ul>li*3")
	require.NoError(t, err)
	require.Len(t, root.Children, 1)

	div := root.Children[0]
	assert.Equal(t, "div", div.Name)
	require.Len(t, div.Children, 1)

	ul := div.Children[0]
	assert.Equal(t, "ul", ul.Name)
	assert.Same(t, div, ul.Parent)
	require.Len(t, ul.Children, 1)

	li := ul.Children[0]
	assert.Equal(t, "li", li.Name)
	assert.Equal(t, 3, li.Count)
	assert.False(t, li.IsRepeating)
}

func TestParseSiblingsAndGroups(t *testing.T) {
	t.Parallel()

	tests := []struct {
		abbr string
		want []string
	}{
		{"a+b+c", []string{"a", "b", "c"}},
		{"(a+b)*2+c", []string{"a", "b", "a", "b", "c"}},
		{"((a)*2)*2", []string{"a", "a", "a", "a"}},
		{"p+(ul>li)", []string{"p", "ul"}},
		{"(a)(b)", []string{"a", "b"}},
		{"ul+", []string{"ul+"}},
	}

	for _, tt := range tests {
		t.Run(tt.abbr, func(t *testing.T) {
			t.Parallel()

			root, err := abbrev.Parse(tt.abbr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(root.Children))
			assertNoEmpty(t, root)
		})
	}
}

func TestGroupClonesAreIndependent(t *testing.T) {
	t.Parallel()

	root, err := abbrev.Parse("(div>p)*2")
	require.NoError(t, err)
	require.Len(t, root.Children, 2)

	first, second := root.Children[0], root.Children[1]
	assert.NotSame(t, first, second)
	require.Len(t, second.Children, 1)
	assert.Same(t, second, second.Children[0].Parent)
	assert.NotSame(t, first.Children[0], second.Children[0])
}

func TestParseAttributes(t *testing.T) {
	t.Parallel()

	root, err := abbrev.Parse("a.one.two#id")
	require.NoError(t, err)
	node := root.Children[0]

	assert.Equal(t, "a", node.Name)
	assert.Equal(t, []abbrev.Attribute{
		{Name: "class", Value: "one two"},
		{Name: "id", Value: "id"},
	}, node.Attributes)

	root, err = abbrev.Parse(`input[type=text name="q x" value='a>b' disabled]`)
	require.NoError(t, err)
	node = root.Children[0]

	assert.Equal(t, "input", node.Name)
	assert.Equal(t, []abbrev.Attribute{
		{Name: "type", Value: "text"},
		{Name: "name", Value: "q x"},
		{Name: "value", Value: "a>b"},
		{Name: "disabled", Value: ""},
	}, node.Attributes)

	value, ok := node.Attribute("name")
	assert.True(t, ok)
	assert.Equal(t, "q x", value)

	_, ok = node.Attribute("missing")
	assert.False(t, ok)
}

func TestParseText(t *testing.T) {
	t.Parallel()

	root, err := abbrev.Parse("div{Hello $# World}+p{a+b>c {nested}}")
	require.NoError(t, err)
	require.Len(t, root.Children, 2)

	assert.Equal(t, "Hello $# World", root.Children[0].Text)
	assert.True(t, root.Children[0].HasText)
	assert.Equal(t, "a+b>c {nested}", root.Children[1].Text)

	root, err = abbrev.Parse("{just text}")
	require.NoError(t, err)
	assert.True(t, root.Children[0].IsTextNode())
	assert.False(t, root.Children[0].HasImplicitName)
}

func TestImplicitName(t *testing.T) {
	t.Parallel()

	root, err := abbrev.Parse("ul>.item*2")
	require.NoError(t, err)

	item := root.Children[0].Children[0]
	assert.True(t, item.HasImplicitName)
	assert.Equal(t, abbrev.ImplicitName, item.Name)
	assert.Equal(t, 2, item.Count)
}

func TestRepeating(t *testing.T) {
	t.Parallel()

	root, err := abbrev.Parse("ul>li*")
	require.NoError(t, err)

	li := root.Children[0].Children[0]
	assert.True(t, li.IsRepeating)
	assert.Equal(t, 1, li.Count)
}

func TestInvalidAbbreviation(t *testing.T) {
	t.Parallel()

	valid := []string{"123tag", "#id", ".cls", "[title]", "a:link", "@media", "bq!", "{text}", "a[b", "a)"}
	for _, abbr := range valid {
		_, err := abbrev.Parse(abbr)
		assert.NoError(t, err, abbr)
	}

	invalid := []string{"a b", "di%v", "p}>x"}
	for _, abbr := range invalid {
		_, err := abbrev.Parse(abbr)
		require.Error(t, err, abbr)
		assert.ErrorIs(t, err, abbrev.ErrInvalidAbbreviation)

		var invalidErr *abbrev.InvalidAbbreviationError
		require.ErrorAs(t, err, &invalidErr)
		assert.NotEmpty(t, invalidErr.Name)
	}
}

// Balanced groups flatten into non-empty nodes whose number equals the sum of
// the top-level multiplication factors.
func TestBalancedGroupsFlatten(t *testing.T) {
	t.Parallel()

	tests := []struct {
		abbr  string
		count int
	}{
		{"a", 1},
		{"(a)*3", 3},
		{"(a+b)*2+(c)*3", 7},
		{"((a+b)*2)*2", 8},
		{"(a>b)*4+c", 5},
		{"((((a))))", 1},
	}

	for _, tt := range tests {
		root, err := abbrev.Parse(tt.abbr)
		require.NoError(t, err, tt.abbr)
		assert.Len(t, root.Children, tt.count, tt.abbr)
		assertNoEmpty(t, root)
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	root, err := abbrev.Parse("ul#nav>li{x}*2")
	require.NoError(t, err)

	assert.Equal(t, "(empty)\n-ul [id=\"nav\"]\n--li {text: \"x\"} *2\n", root.String())
}

func assertNoEmpty(t *testing.T, node *abbrev.Node) {
	t.Helper()

	for _, child := range node.Children {
		assert.False(t, child.IsEmpty(), "empty node under %q", node.Abbreviation)
		assertNoEmpty(t, child)
	}
}
