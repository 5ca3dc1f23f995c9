package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gozen/pkg/abbrev"
	"github.com/yaklabco/gozen/pkg/elements"
	"github.com/yaklabco/gozen/pkg/resources"
	"github.com/yaklabco/gozen/pkg/textutil"
	"github.com/yaklabco/gozen/pkg/transform"
)

func newTransformer() *transform.Transformer {
	return transform.New(resources.NewStore())
}

func expand(t *testing.T, tr *transform.Transformer, abbr, syntax string) *elements.OutputNode {
	t.Helper()
	out, err := tr.TransformString(abbr, syntax, nil)
	require.NoError(t, err)
	return out
}

func childNames(node *elements.OutputNode) []string {
	names := make([]string, 0, len(node.Children))
	for _, child := range node.Children {
		names = append(names, child.Name)
	}
	return names
}

func TestRepeatedElements(t *testing.T) {
	t.Parallel()

	out := expand(t, newTransformer(), "ul>li*3", "html")
	require.Len(t, out.Children, 1)

	ul := out.Children[0]
	assert.Equal(t, "ul", ul.Name)
	require.Len(t, ul.Children, 3)
	for i, li := range ul.Children {
		assert.Equal(t, "li", li.Name)
		assert.Equal(t, i+1, li.Counter)
		assert.False(t, li.IsInline())
		assert.True(t, li.IsRepeating)
	}
}

func TestResourceAttributes(t *testing.T) {
	t.Parallel()

	out := expand(t, newTransformer(), "a.one.two#id", "html")
	a := out.Children[0]
	assert.Equal(t, []elements.Attribute{
		{Name: "href", Value: ""},
		{Name: "class", Value: "one two"},
		{Name: "id", Value: "id"},
	}, a.Attributes)
}

func TestAliasedNames(t *testing.T) {
	t.Parallel()

	tr := newTransformer()
	out := expand(t, tr, "bq+input-text", "html")
	assert.Equal(t, []string{"blockquote", "input"}, childNames(out))
	assert.Equal(t, "bq", out.Children[0].RealName)
	assert.True(t, out.Children[1].IsUnary())

	out = expand(t, tr, "tmatch", "xsl")
	assert.Equal(t, []string{"xsl:template"}, childNames(out))
}

func TestSnippets(t *testing.T) {
	t.Parallel()

	out := expand(t, newTransformer(), "cc:ie>p", "html")
	cc := out.Children[0]
	assert.Equal(t, elements.NodeSnippet, cc.Type)
	assert.Equal(t, "<!--[if IE]>\n\t${child}"+textutil.CaretPlaceholder+"\n<![endif]-->", cc.Source.Value)
	assert.Equal(t, []string{"p"}, childNames(cc))
}

func TestPasteIntoPlaceholder(t *testing.T) {
	t.Parallel()

	tr := newTransformer()
	parsed, err := tr.CreateParsedTreeFromString("div{Hello $# World}", "html", nil)
	require.NoError(t, err)

	out := transform.RolloutTree(parsed)
	out.PasteContent("X")
	assert.Equal(t, "Hello X World", out.Children[0].Content)
}

func TestRepeatByLines(t *testing.T) {
	t.Parallel()

	tr := newTransformer()
	parsed, err := tr.CreateParsedTreeFromString("ul>li*>a", "html", nil)
	require.NoError(t, err)
	require.NotNil(t, parsed.MultiplyElem)
	assert.Equal(t, "li", parsed.MultiplyElem.Name)
	assert.Equal(t, "a", parsed.Last.Name)

	parsed.MultiplyElem.SetPasteContent("one\n\n  two  \nthree")
	out := transform.RolloutTree(parsed)

	ul := out.Children[0]
	require.Len(t, ul.Children, 3)
	for i, want := range []string{"one", "two", "three"} {
		li := ul.Children[i]
		assert.Equal(t, i+1, li.Counter)
		require.Len(t, li.Children, 1)
		assert.Equal(t, want, li.Children[0].Content, "pasted into the deepest child")
	}
}

func TestRepeatByLinesWithoutContent(t *testing.T) {
	t.Parallel()

	out := expand(t, newTransformer(), "li*", "html")
	require.Len(t, out.Children, 1)
	assert.Equal(t, 1, out.Children[0].Counter)
}

func TestImplicitNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		abbr string
		want string
	}{
		{".item", "div"},
		{"ul>.item", "li"},
		{"ol>.first+.item", "li"},
		{"table>.row>.cell", "tr"},
		{"em>.x", "span"},
		{"select>[value=1]", "option"},
		{"section>#main", "div"},
	}

	tr := newTransformer()
	for _, tt := range tests {
		t.Run(tt.abbr, func(t *testing.T) {
			t.Parallel()

			out := expand(t, tr, tt.abbr, "html")
			node := out.Children[0]
			if len(node.Children) > 0 {
				node = node.Children[len(node.Children)-1]
			}
			assert.Equal(t, tt.want, node.Name)
		})
	}

	out := expand(t, tr, "table>.row>.cell", "html")
	assert.Equal(t, "td", out.Children[0].Children[0].Children[0].Name)
}

func TestImplicitNameFromContext(t *testing.T) {
	t.Parallel()

	context := abbrev.NewNode()
	context.Name = "span"
	out, err := newTransformer().TransformString(".x", "html", context)
	require.NoError(t, err)
	assert.Equal(t, "span", out.Children[0].Name)
}

func TestInvalidAbbreviation(t *testing.T) {
	t.Parallel()

	_, err := newTransformer().TransformString("di%v", "html", nil)
	require.ErrorIs(t, err, abbrev.ErrInvalidAbbreviation)
}

func TestResolverContract(t *testing.T) {
	t.Parallel()

	resolverFor := func(name string, result elements.Result) resources.Resolver {
		return func(node *abbrev.Node, _ string) (elements.Result, error) {
			if node.Name != name {
				return elements.None(), nil
			}
			return result, nil
		}
	}

	store := resources.NewStore()
	tr := transform.New(store)

	store.AddResolver(resolverFor("bad", elements.List(&elements.Reference{Data: "x"})))
	store.AddResolver(resolverFor("internal", elements.Single(&elements.OutputNode{})))
	store.AddResolver(resolverFor("nothing", elements.List(&elements.Empty{})))
	store.AddResolver(resolverFor("ref", elements.Single(&elements.Reference{Data: "x"})))
	store.AddResolver(resolverFor("pair", elements.List(
		&elements.Snippet{Data: "one"},
		elements.NewElement("b", "", false),
	)))

	_, err := tr.TransformString("bad", "html", nil)
	require.ErrorIs(t, err, transform.ErrUnparsedData)

	_, err = tr.TransformString("div>internal", "html", nil)
	require.ErrorIs(t, err, transform.ErrInternalNode)

	out, err := tr.TransformString("nothing+p", "html", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"p"}, childNames(out))

	out, err = tr.TransformString("ref", "html", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"ref"}, childNames(out), "a lone unrecognized result falls back to a plain element")

	out, err = tr.TransformString("pair>i", "html", nil)
	require.NoError(t, err)
	require.Len(t, out.Children, 2)
	assert.Equal(t, elements.NodeSnippet, out.Children[0].Type)
	assert.Equal(t, "b", out.Children[1].Name)
	assert.Equal(t, []string{"i"}, childNames(out.Children[0]), "children are processed for every item")
	assert.Equal(t, []string{"i"}, childNames(out.Children[1]))
}

func TestSiblingLinks(t *testing.T) {
	t.Parallel()

	out := expand(t, newTransformer(), "(dt+dd)*2", "html")
	require.Len(t, out.Children, 4)
	for i := 1; i < len(out.Children); i++ {
		assert.Same(t, out.Children[i-1], out.Children[i].PreviousSibling)
		assert.Same(t, out.Children[i], out.Children[i-1].NextSibling)
	}
}
