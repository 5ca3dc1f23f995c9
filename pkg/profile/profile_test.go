package profile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gozen/pkg/profile"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	p := profile.Default()
	assert.Equal(t, profile.CaseLower, p.TagCase)
	assert.Equal(t, profile.CaseLower, p.AttrCase)
	assert.Equal(t, profile.QuotesDouble, p.AttrQuotes)
	assert.Equal(t, profile.TagNewlineDecide, p.TagNewline)
	assert.True(t, p.PlaceCursor)
	assert.True(t, p.Indent)
	assert.Equal(t, 3, p.InlineBreak)
	assert.Equal(t, profile.SelfClosingXHTML, p.SelfClosingTag)
	assert.Empty(t, p.Filters)
	require.NoError(t, p.Validate())
}

func TestBuiltins(t *testing.T) {
	t.Parallel()

	reg := profile.NewRegistry()
	assert.Equal(t, []string{"html", "plain", "xhtml", "xml"}, reg.Names())

	tests := []struct {
		name        string
		selfClosing profile.SelfClosing
		newline     profile.TagNewline
		indent      bool
		cursor      bool
	}{
		{name: "xhtml", selfClosing: profile.SelfClosingXHTML, newline: profile.TagNewlineDecide, indent: true, cursor: true},
		{name: "html", selfClosing: profile.SelfClosingNone, newline: profile.TagNewlineDecide, indent: true, cursor: true},
		{name: "xml", selfClosing: profile.SelfClosingXML, newline: profile.TagNewlineAlways, indent: true, cursor: true},
		{name: "plain", selfClosing: profile.SelfClosingXHTML, newline: profile.TagNewlineNever},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := reg.Get(tt.name)
			assert.Equal(t, tt.name, p.Name)
			assert.Equal(t, tt.selfClosing, p.SelfClosingTag)
			assert.Equal(t, tt.newline, p.TagNewline)
			assert.Equal(t, tt.indent, p.Indent)
			assert.Equal(t, tt.cursor, p.PlaceCursor)
		})
	}
}

func TestRegistryFallback(t *testing.T) {
	t.Parallel()

	reg := profile.NewRegistry()
	assert.Equal(t, "plain", reg.Get("nope").Name)
	assert.Equal(t, "xml", reg.Get("XML").Name)

	custom := reg.Create("Mine", profile.WithTagCase(profile.CaseUpper), profile.WithAttrQuotes(profile.QuotesSingle))
	assert.Equal(t, "mine", custom.Name)
	assert.Equal(t, profile.CaseUpper, reg.Get("mine").TagCase)

	assert.True(t, reg.Remove("mine"))
	assert.False(t, reg.Remove("mine"))
	assert.Equal(t, "plain", reg.Get("mine").Name)

	reg.Remove("plain")
	assert.Equal(t, profile.Default().TagNewline, reg.Get("missing").TagNewline)
}

func TestCaseAndSuffix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "div", profile.CaseLower.Apply("DiV"))
	assert.Equal(t, "DIV", profile.CaseUpper.Apply("DiV"))
	assert.Equal(t, "DiV", profile.CaseLeave.Apply("DiV"))

	assert.Equal(t, " /", profile.SelfClosingXHTML.Suffix())
	assert.Equal(t, "/", profile.SelfClosingXML.Suffix())
	assert.Empty(t, profile.SelfClosingNone.Suffix())

	assert.Equal(t, "'", profile.QuotesSingle.Char())
	assert.Equal(t, `"`, profile.QuotesDouble.Char())
}

func TestUnmarshalYAML(t *testing.T) {
	t.Parallel()

	src := `
tag_case: upper
attr_quotes: single
tag_nl: true
self_closing_tag: false
inline_break: 0
`
	p := profile.Default()
	require.NoError(t, yaml.Unmarshal([]byte(src), &p))

	assert.Equal(t, profile.CaseUpper, p.TagCase)
	assert.Equal(t, profile.QuotesSingle, p.AttrQuotes)
	assert.Equal(t, profile.TagNewlineAlways, p.TagNewline)
	assert.Equal(t, profile.SelfClosingNone, p.SelfClosingTag)
	assert.Equal(t, 0, p.InlineBreak)
	assert.True(t, p.Indent, "unset keys keep their defaults")

	err := yaml.Unmarshal([]byte("tag_nl: sometimes"), &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tag_nl")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	p := profile.New("bad", profile.WithTagCase("title"))
	require.Error(t, p.Validate())

	p = profile.New("bad", profile.WithInlineBreak(-1))
	require.Error(t, p.Validate())
}
