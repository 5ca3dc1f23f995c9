package filters_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gozen/pkg/elements"
	"github.com/yaklabco/gozen/pkg/filters"
	"github.com/yaklabco/gozen/pkg/profile"
	"github.com/yaklabco/gozen/pkg/resources"
	"github.com/yaklabco/gozen/pkg/textutil"
	"github.com/yaklabco/gozen/pkg/transform"
)

// caret is what an expansion shows for the caret placeholder in tests.
const caret = "|"

func render(t *testing.T, store *resources.Store, abbr, syntax, profileName string) string {
	t.Helper()

	abbr, extra := filters.ExtractFromAbbreviation(abbr)
	tree, err := transform.New(store).TransformString(abbr, syntax, nil)
	require.NoError(t, err)

	p := profile.NewRegistry().Get(profileName)
	reg := filters.NewRegistry()
	reg.Apply(tree, reg.ComposeList(store, syntax, p, extra...), &filters.Context{
		Profile:   p,
		Syntax:    syntax,
		Variables: store,
	})
	return strings.ReplaceAll(tree.String(), textutil.CaretPlaceholder, caret)
}

func TestHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		abbr    string
		syntax  string
		profile string
		want    string
	}{
		{name: "nested block", abbr: "ul>li*2", profile: "xhtml", want: "<ul>\n\t<li>|</li>\n\t<li>|</li>\n</ul>"},
		{name: "counters", abbr: "ul>li.item$*2", profile: "xhtml", want: "<ul>\n\t<li class=\"item1\">|</li>\n\t<li class=\"item2\">|</li>\n</ul>"},
		{name: "padded counters", abbr: "p#n$$*2", profile: "plain", want: `<p id="n01"></p><p id="n02"></p>`},
		{name: "inline with attribute", abbr: "a", profile: "xhtml", want: `<a href="|">|</a>`},
		{name: "plain", abbr: "p>span", profile: "plain", want: "<p><span></span></p>"},
		{name: "unary html", abbr: "br", profile: "html", want: "<br>"},
		{name: "unary xhtml", abbr: "br", profile: "xhtml", want: "<br />"},
		{name: "unary xml", abbr: "br", profile: "xml", want: "<br/>"},
		{name: "two inline", abbr: "span*2", profile: "html", want: "<span>|</span><span>|</span>"},
		{name: "inline break", abbr: "span*3", profile: "html", want: "<span>|</span>\n<span>|</span>\n<span>|</span>"},
		{name: "snippet", abbr: "cc:ie", profile: "html", want: "<!--[if IE]>\n\t|\n<![endif]-->"},
		{name: "snippet child", abbr: "cc:ie>p", profile: "html", want: "<!--[if IE]>\n\t<p>|</p>|\n<![endif]-->"},
		{name: "text node", abbr: "p>{hi}", profile: "plain", want: "<p>hi</p>"},
		{name: "css snippet", abbr: "pos:a", syntax: "css", profile: "plain", want: "position:absolute;"},
		{name: "xsl trims select", abbr: "wp>p", syntax: "xsl", profile: "plain", want: `<xsl:with-param name=""><p></p></xsl:with-param>`},
		{name: "xsl keeps select", abbr: "wp", syntax: "xsl", profile: "plain", want: `<xsl:with-param name="" select="" />`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			syntax := tt.syntax
			if syntax == "" {
				syntax = "html"
			}
			assert.Equal(t, tt.want, render(t, resources.NewStore(), tt.abbr, syntax, tt.profile))
		})
	}
}

func TestProfileCase(t *testing.T) {
	t.Parallel()

	p := profile.New("loud", profile.WithTagCase(profile.CaseUpper), profile.WithAttrCase(profile.CaseUpper),
		profile.WithAttrQuotes(profile.QuotesSingle), profile.WithPlaceCursor(false))

	store := resources.NewStore()
	tree, err := transform.New(store).TransformString("a#top", "html", nil)
	require.NoError(t, err)

	filters.HTML(tree, &filters.Context{Profile: p, Syntax: "html", Variables: store})
	assert.Equal(t, `<A HREF='' ID='top'></A>`, tree.String())
}

func TestSuffixFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		abbr    string
		syntax  string
		profile string
		want    string
	}{
		{name: "single line", abbr: "ul>li*2|s", profile: "xhtml", want: "<ul><li>|</li><li>|</li></ul>"},
		{name: "escape", abbr: "a|e", profile: "xhtml", want: `&lt;a href="|"&gt;|&lt;/a&gt;`},
		{name: "trim", abbr: "p{1. first}|t", profile: "plain", want: "<p>first</p>"},
		{name: "trim bullet", abbr: "p{* item}|t", profile: "plain", want: "<p>item</p>"},
		{name: "format css", abbr: "pos:a|fc", syntax: "css", profile: "plain", want: "position: absolute;"},
		{
			name:    "comment",
			abbr:    "div#main>p|c",
			profile: "html",
			want:    "<!-- #main -->\n<div id=\"main\">\n\t<p>|</p>\n</div>\n<!-- /#main -->",
		},
		{name: "comment skipped when plain", abbr: "div#main|c", profile: "plain", want: `<div id="main"></div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			syntax := tt.syntax
			if syntax == "" {
				syntax = "html"
			}
			assert.Equal(t, tt.want, render(t, resources.NewStore(), tt.abbr, syntax, tt.profile))
		})
	}
}

func TestSnippetVariables(t *testing.T) {
	t.Parallel()

	out := render(t, resources.NewStore(), "html:5", "html", "html")
	assert.Contains(t, out, `<html lang="en-US">`)
	assert.Contains(t, out, `<meta charset="UTF-8">`)

	user, err := resources.ParseVocabulary([]byte(`
html:
  snippets:
    tpl: "<b>${foo}${foo}${bar}</b>"
    idtpl: "<i id=\"${id}\"></i>"
`))
	require.NoError(t, err)
	store := resources.NewStore(resources.WithUserVocabulary(user))

	assert.Equal(t, "<b>${100:foo}${100:foo}${101:bar}</b>", render(t, store, "tpl", "html", "plain"))
	assert.Equal(t, `<i id="x"></i>`, render(t, store, "idtpl#x", "html", "plain"))
	assert.Equal(t, `<i id="|"></i>`, render(t, store, "idtpl", "html", "plain"))
}

func TestTabStopsAreRenumbered(t *testing.T) {
	t.Parallel()

	user, err := resources.ParseVocabulary([]byte(`
html:
  snippets:
    ts: "<i>${1:x}$2</i>"
`))
	require.NoError(t, err)
	store := resources.NewStore(resources.WithUserVocabulary(user))

	assert.Equal(t, "<i>${1:x}$2</i>\n<i>${4:x}$5</i>", render(t, store, "ts+ts", "html", "html"))
}

func TestComposeList(t *testing.T) {
	t.Parallel()

	reg := filters.NewRegistry()
	store := resources.NewStore()
	plain := profile.New("plain")

	assert.Equal(t, []string{"html"}, reg.ComposeList(store, "html", plain))
	assert.Equal(t, []string{"html", "xsl"}, reg.ComposeList(store, "xsl", plain))
	assert.Equal(t, []string{"html", "fc"}, reg.ComposeList(store, "css", plain, "fc"))
	assert.Equal(t, []string{"html"}, reg.ComposeList(store, "haml", plain), "unknown filters fall back to html")
	assert.Equal(t, []string{"html"}, reg.ComposeList(store, "unknown", plain))
	assert.Equal(t, []string{"html"}, reg.ComposeList(nil, "html", plain))

	custom := profile.New("custom", profile.WithFilters("html|S"))
	assert.Equal(t, []string{"html", "s", "e"}, reg.ComposeList(store, "xsl", custom, "e", "bogus"))
}

func TestUnknown(t *testing.T) {
	t.Parallel()

	reg := filters.NewRegistry()
	assert.Equal(t, []string{"haml", "bogus"}, reg.Unknown("html", " HAML", "bogus", "haml", "", "e"))
	assert.Empty(t, reg.Unknown("html", "xsl"))
	assert.Empty(t, reg.Unknown())
}

func TestExtractFromAbbreviation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		abbr    string
		want    string
		filters []string
	}{
		{abbr: "ul>li|e|s", want: "ul>li", filters: []string{"e", "s"}},
		{abbr: "div|c", want: "div", filters: []string{"c"}},
		{abbr: "div", want: "div"},
		{abbr: "a[title=x|y]", want: "a[title=x|y]"},
		{abbr: "p|", want: "p|"},
	}

	for _, tt := range tests {
		t.Run(tt.abbr, func(t *testing.T) {
			t.Parallel()

			abbr, list := filters.ExtractFromAbbreviation(tt.abbr)
			assert.Equal(t, tt.want, abbr)
			assert.Equal(t, tt.filters, list)
		})
	}
}

func TestCustomFilter(t *testing.T) {
	t.Parallel()

	reg := filters.NewRegistry()
	var visited int
	reg.Add("Count", filters.Func(func(tree *elements.OutputNode, _ *filters.Context) {
		tree.Walk(func(*elements.OutputNode) { visited++ })
	}))

	_, ok := reg.Get("count")
	require.True(t, ok)
	assert.Contains(t, reg.Names(), "count")

	tree, err := transform.New(resources.NewStore()).TransformString("ul>li*3", "html", nil)
	require.NoError(t, err)

	reg.Apply(tree, []string{"count", "missing"}, &filters.Context{Profile: profile.Default()})
	assert.Equal(t, 5, visited)
}
