package generators_test

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gozen/pkg/abbrev"
	"github.com/yaklabco/gozen/pkg/elements"
	"github.com/yaklabco/gozen/pkg/generators"
	"github.com/yaklabco/gozen/pkg/resources"
	"github.com/yaklabco/gozen/pkg/transform"
)

func setup(t *testing.T) (*transform.Transformer, *generators.Installed) {
	t.Helper()
	tr := transform.New(resources.NewStore())
	installed := generators.Install(tr, generators.WithRand(rand.New(rand.NewPCG(1, 2))))
	return tr, installed
}

func expand(t *testing.T, tr *transform.Transformer, abbr, syntax string) *elements.OutputNode {
	t.Helper()
	out, err := tr.TransformString(abbr, syntax, nil)
	require.NoError(t, err)
	return out
}

func names(nodes []*elements.OutputNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestExpando(t *testing.T) {
	t.Parallel()

	tr, _ := setup(t)

	tests := []struct {
		abbr     string
		top      []string
		children []string
	}{
		{"ul+", []string{"ul"}, []string{"li"}},
		{"ol+", []string{"ol"}, []string{"li"}},
		{"dl+", []string{"dl"}, []string{"dt", "dd"}},
		{"table+", []string{"table"}, []string{"tr"}},
	}

	for _, tt := range tests {
		t.Run(tt.abbr, func(t *testing.T) {
			t.Parallel()

			out := expand(t, tr, tt.abbr, "html")
			assert.Equal(t, tt.top, names(out.Children))
			assert.Equal(t, tt.children, names(out.Children[0].Children))
		})
	}
}

func TestExpandoKeepsOwnChildren(t *testing.T) {
	t.Parallel()

	tr, _ := setup(t)
	out := expand(t, tr, "div>ul+", "html")
	div := out.Children[0]
	require.Len(t, div.Children, 1)
	assert.Equal(t, "ul", div.Children[0].Name)
	assert.Same(t, div, div.Children[0].Parent)
}

func TestUninstall(t *testing.T) {
	t.Parallel()

	tr, installed := setup(t)
	installed.Uninstall(tr.Store())

	out := expand(t, tr, "ul+", "html")
	assert.Equal(t, []string{"ul+"}, names(out.Children))
}

func TestLipsum(t *testing.T) {
	t.Parallel()

	tr, _ := setup(t)

	out := expand(t, tr, "lipsum5", "html")
	require.Len(t, out.Children, 1)
	assert.Empty(t, out.Children[0].Name)
	assert.Equal(t, "Lorem ipsum dolor sit amet.", out.Children[0].Content)

	out = expand(t, tr, "lipsum", "html")
	words := strings.Fields(out.Children[0].Content)
	assert.Len(t, words, 30)
	assert.True(t, strings.HasPrefix(out.Children[0].Content, "Lorem ipsum dolor sit amet, consectetur adipisicing elit."))
}

func TestLipsumWrapping(t *testing.T) {
	t.Parallel()

	tr, _ := setup(t)

	tests := []struct {
		abbr   string
		parent string
		want   []string
	}{
		{"lipsum*3", "", []string{"p", "p", "p"}},
		{"ol>lipsum5*2", "ol", []string{"li", "li"}},
		{"ul>lipsum5", "ul", []string{"li"}},
		{"lipsum10span*2", "", []string{"span", "span"}},
	}

	for _, tt := range tests {
		t.Run(tt.abbr, func(t *testing.T) {
			t.Parallel()

			out := expand(t, tr, tt.abbr, "html")
			nodes := out.Children
			if tt.parent != "" {
				require.Len(t, nodes, 1)
				assert.Equal(t, tt.parent, nodes[0].Name)
				nodes = nodes[0].Children
			}
			assert.Equal(t, tt.want, names(nodes))
			for _, n := range nodes {
				assert.NotEmpty(t, n.Content)
			}
		})
	}
}

func TestLipsumSentences(t *testing.T) {
	t.Parallel()

	tr, _ := setup(t)
	out := expand(t, tr, "lipsum200", "html")
	content := out.Children[0].Content

	assert.Len(t, strings.Fields(content), 200)
	assert.NotContains(t, content, ",.")
	assert.NotContains(t, content, ",?")
	assert.NotContains(t, content, ",!")
	assert.Contains(t, ".?!", content[len(content)-1:])
}

func TestImportant(t *testing.T) {
	t.Parallel()

	tr, _ := setup(t)

	out := expand(t, tr, "d:n!", "css")
	require.Len(t, out.Children, 1)
	assert.Equal(t, elements.NodeSnippet, out.Children[0].Type)
	assert.Equal(t, "display:none !important;", out.Children[0].Source.Value)

	out = expand(t, tr, "m:a!+c", "css")
	assert.Equal(t, "margin:auto !important;", out.Children[0].Source.Value)
	assert.Equal(t, "color:#000;", out.Children[1].Source.Value)

	out = expand(t, tr, "p!", "html")
	assert.Equal(t, []string{"p!"}, names(out.Children), "only css snippets take !important")
}

func TestSetOrder(t *testing.T) {
	t.Parallel()

	constant := func(value string) generators.Func {
		return func(_ []string, _ *abbrev.Node, _ string) (elements.Result, error) {
			return elements.Single(&elements.Snippet{Data: value}), nil
		}
	}

	var set generators.Set
	re := regexp.MustCompile(`^x\d+$`)
	set.Add(re, constant("first"))
	second := set.Add(re, constant("second"))

	node := abbrev.NewNode()
	require.NoError(t, node.SetAbbreviation("x1"))

	got, err := set.Resolve(node, "html")
	require.NoError(t, err)
	assert.Equal(t, &elements.Snippet{Data: "second"}, got.First())

	assert.True(t, set.Remove(second))
	got, err = set.Resolve(node, "html")
	require.NoError(t, err)
	assert.Equal(t, &elements.Snippet{Data: "first"}, got.First())

	require.NoError(t, node.SetAbbreviation("y1"))
	got, err = set.Resolve(node, "html")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}
