package zen_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gozen/internal/logging"
	"github.com/yaklabco/gozen/pkg/abbrev"
	"github.com/yaklabco/gozen/pkg/editor"
	"github.com/yaklabco/gozen/pkg/profile"
	"github.com/yaklabco/gozen/pkg/resources"
	"github.com/yaklabco/gozen/pkg/textrange"
	"github.com/yaklabco/gozen/pkg/zen"
)

func TestExpandAbbreviation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		abbr    string
		syntax  string
		profile string
		want    string
	}{
		{name: "empty", abbr: "", syntax: "html", profile: "xhtml", want: ""},
		{
			name:    "nested",
			abbr:    "ul>li*2",
			syntax:  "html",
			profile: "xhtml",
			want:    "<ul>\n\t<li>${0:cursor}</li>\n\t<li>${0:cursor}</li>\n</ul>",
		},
		{
			name:    "single line filter",
			abbr:    "ul>li*2|s",
			syntax:  "html",
			profile: "xhtml",
			want:    "<ul><li>${0:cursor}</li><li>${0:cursor}</li></ul>",
		},
		{name: "plain", abbr: "p.a+p.b", syntax: "html", profile: "plain", want: `<p class="a"></p><p class="b"></p>`},
		{name: "css", abbr: "pos:a", syntax: "css", profile: "plain", want: "position:absolute;"},
		{name: "lipsum", abbr: "lipsum5", syntax: "html", profile: "plain", want: "Lorem ipsum dolor sit amet."},
		{name: "unknown profile", abbr: "br", syntax: "html", profile: "nope", want: "<br />"},
	}

	engine := zen.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := engine.ExpandAbbreviation(tt.abbr, tt.syntax, tt.profile, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandAbbreviationError(t *testing.T) {
	t.Parallel()

	_, err := zen.New().ExpandAbbreviation("di%v", "html", "xhtml", nil)
	require.ErrorIs(t, err, abbrev.ErrInvalidAbbreviation)
	assert.Contains(t, err.Error(), "di%v")
}

func TestExpandWithContext(t *testing.T) {
	t.Parallel()

	context := abbrev.NewNode()
	context.Name = "ul"

	got, err := zen.New().ExpandAbbreviation(".item", "html", "plain", context)
	require.NoError(t, err)
	assert.Equal(t, `<li class="item"></li>`, got)
}

func TestExpand(t *testing.T) {
	t.Parallel()

	res, err := zen.New().Expand("ul>li*2", "html", "xhtml")
	require.NoError(t, err)

	assert.Equal(t, "<ul>\n\t<li></li>\n\t<li></li>\n</ul>", res.Text)
	assert.Len(t, res.Carets(), 2)
	assert.Equal(t, 10, res.CaretPos())
}

func TestWrapWithAbbreviation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		abbr string
		text string
		want string
	}{
		{name: "repeat by lines", abbr: "ul>li*", text: "one\n\n two \nthree", want: "<ul><li>one</li><li>two</li><li>three</li></ul>"},
		{name: "deepest child", abbr: "div>p", text: "hello", want: "<div><p>hello</p></div>"},
		{name: "placeholder", abbr: "div[title=$#]", text: "x", want: `<div title="x"></div>`},
		{name: "text kept as is", abbr: "p", text: "a|b ${x}", want: "<p>a|b ${x}</p>"},
		{name: "empty abbreviation", abbr: "", text: "x", want: ""},
	}

	engine := zen.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := engine.WrapWithAbbreviation(tt.abbr, tt.text, "html", "plain")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStoreVariables(t *testing.T) {
	t.Parallel()

	store := resources.NewStore()
	store.SetVariable("lang", "ru")

	got, err := zen.New(zen.WithStore(store)).ExpandAbbreviation("html:5", "html", "html", nil)
	require.NoError(t, err)
	assert.Contains(t, got, `<html lang="ru">`)
}

func TestWithoutGenerators(t *testing.T) {
	t.Parallel()

	engine := zen.New(zen.WithoutGenerators())
	assert.Nil(t, engine.Generators())

	got, err := engine.ExpandAbbreviation("lipsum5", "html", "plain", nil)
	require.NoError(t, err)
	assert.NotContains(t, got, "Lorem")
}

func TestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	engine := zen.New(zen.WithLogger(logging.NewWithWriter(&buf, "debug")))
	require.NotNil(t, engine.Generators())

	_, err := engine.ExpandAbbreviation("p", "html", "plain", nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "expanded")
	assert.Contains(t, buf.String(), "abbreviation=p")
}

func TestUnknownFiltersLogged(t *testing.T) {
	t.Parallel()

	profiles := profile.NewRegistry()
	profiles.Create("mine", profile.WithFilters("html|haml"))

	var buf bytes.Buffer
	engine := zen.New(
		zen.WithProfiles(profiles),
		zen.WithLogger(logging.NewWithWriter(&buf, "warn")),
	)

	_, err := engine.ExpandAbbreviation("pos:a", "css", "plain", nil)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "unknown filters", "syntax defaults stay at debug level")

	got, err := engine.ExpandAbbreviation("p|bogus", "html", "plain", nil)
	require.NoError(t, err)
	assert.Equal(t, "<p></p>", got)
	assert.Contains(t, buf.String(), "filters=bogus")

	buf.Reset()
	_, err = engine.ExpandAbbreviation("p", "html", "mine", nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "unknown filters skipped")
	assert.Contains(t, buf.String(), "filters=haml")
	assert.Contains(t, buf.String(), "profile=mine")
}

func TestExpandAtCaret(t *testing.T) {
	t.Parallel()

	buf := editor.NewBuffer("<div>\n\tul>li")
	ok, err := zen.New().ExpandAtCaret(buf)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "<div>\n\t<ul>\n\t\t<li></li>\n\t</ul>", buf.Content())
	assert.Equal(t, 18, buf.CaretPos())
}

func TestExpandAtCaretUsesContext(t *testing.T) {
	t.Parallel()

	buf := editor.NewBuffer("<ul>\n.item", editor.WithProfile("html"))
	ok, err := zen.New().ExpandAtCaret(buf)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "<ul>\n<li class=\"item\"></li>", buf.Content())
	assert.Equal(t, 22, buf.CaretPos())
}

func TestExpandAtCaretNothing(t *testing.T) {
	t.Parallel()

	buf := editor.NewBuffer("hello ")
	ok, err := zen.New().ExpandAtCaret(buf)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "hello ", buf.Content())
}

func TestWrapAtCaret(t *testing.T) {
	t.Parallel()

	engine := zen.New()

	buf := editor.NewBuffer("hello\nworld", editor.WithProfile("plain"), editor.WithSelection(0, 11))
	ok, err := engine.WrapAtCaret(buf, "ul>li*")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "<ul><li>hello</li><li>world</li></ul>", buf.Content())

	buf = editor.NewBuffer("  hello  ", editor.WithProfile("plain"))
	ok, err = engine.WrapAtCaret(buf, "p")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "  <p>hello</p>  ", buf.Content())
	assert.Equal(t, 14, buf.CaretPos())
}

func TestWrapAtCaretPrompt(t *testing.T) {
	t.Parallel()

	engine := zen.New()

	buf := editor.NewBuffer("hi")
	_, err := engine.WrapAtCaret(buf, "")
	require.ErrorIs(t, err, zen.ErrCancelled)
	assert.Equal(t, "hi", buf.Content())

	buf = editor.NewBuffer("hi", editor.WithProfile("plain"),
		editor.WithPrompt(func(string) (string, bool) { return " b ", true }))
	ok, err := engine.WrapAtCaret(buf, "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "<b>hi</b>", buf.Content())
}

func TestCaptureContext(t *testing.T) {
	t.Parallel()

	engine := zen.New()

	node := engine.CaptureContext(editor.NewBuffer(`<ul class="nav"><li>a</li><br>` + "\n"))
	require.NotNil(t, node)
	assert.Equal(t, "ul", node.Name)
	value, ok := node.Attribute("class")
	assert.True(t, ok)
	assert.Equal(t, "nav", value)

	node = engine.CaptureContext(editor.NewBuffer("<div><p>x</p><img/>", editor.WithCaret(13)))
	require.NotNil(t, node)
	assert.Equal(t, "div", node.Name)

	assert.Nil(t, engine.CaptureContext(editor.NewBuffer("<p>text</p>")))
	assert.Nil(t, engine.CaptureContext(editor.NewBuffer("<p>", editor.WithSyntax("css"))))
}

func TestWrapAtCaretBlankLine(t *testing.T) {
	t.Parallel()

	buf := editor.NewBuffer("\t \t", editor.WithProfile("plain"))
	ok, err := zen.New().WrapAtCaret(buf, "p")
	require.NoError(t, err)
	assert.False(t, ok, "blank line has nothing to wrap")
	assert.Equal(t, textrange.New(3, 3), buf.SelectionRange())
}

func BenchmarkExpandAbbreviation(b *testing.B) {
	engine := zen.New()

	for _, abbr := range []string{"ul#nav>li.item$*5>a", "html:5", "table>tr*3>td*4"} {
		b.Run(abbr, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := engine.ExpandAbbreviation(abbr, "html", "xhtml", nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
