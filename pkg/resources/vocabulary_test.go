package resources_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gozen/pkg/elements"
	"github.com/yaklabco/gozen/pkg/resources"
)

func TestParseVocabularyTOML(t *testing.T) {
	t.Parallel()

	voc, err := resources.ParseVocabularyTOML([]byte(`
[variables]
lang = "fr"

[syntax.html]
filters = "html"

[syntax.html.snippets]
hello = "<b>hello</b>"

[syntax.html.abbreviations]
box = "<div class=\"box\">"
`))
	require.NoError(t, err)

	assert.Equal(t, "fr", voc.Variables["lang"])
	html := voc.Syntax("html")
	require.NotNil(t, html)
	assert.Equal(t, "html", html.Filters)

	store := resources.NewStore(resources.WithUserVocabulary(voc))
	snippet, ok := store.Snippet("html", "hello").(*elements.Snippet)
	require.True(t, ok)
	assert.Equal(t, "<b>hello</b>", snippet.Data)

	tag, ok := store.Abbreviation("html", "box").(*elements.Element)
	require.True(t, ok)
	assert.Equal(t, "div", tag.Name)

	value, ok := store.Variable("lang")
	assert.True(t, ok)
	assert.Equal(t, "fr", value)

	_, err = resources.ParseVocabularyTOML([]byte("[syntax.html\n"))
	require.Error(t, err)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	first := mustParse(t, `
variables:
  lang: en
html:
  filters: html
  snippets:
    a: "first a"
    b: "first b"
css:
  snippets:
    c: "c"
`)
	second := mustParse(t, `
variables:
  charset: latin1
html:
  extends: css
  snippets:
    b: "second b"
`)

	merged := resources.Merge(first, nil, second)

	assert.Equal(t, map[string]string{"lang": "en", "charset": "latin1"}, merged.Variables)

	html := merged.Syntax("html")
	require.NotNil(t, html)
	assert.Equal(t, "html", html.Filters)
	assert.Equal(t, "css", html.Extends)
	assert.Equal(t, "first a", html.Snippets["a"].Raw())
	assert.Equal(t, "second b", html.Snippets["b"].Raw())
	assert.NotNil(t, merged.Syntax("css"))

	assert.Equal(t, "first b", first.Syntax("html").Snippets["b"].Raw(), "inputs are left alone")
	assert.Empty(t, first.Syntax("html").Extends)
}
