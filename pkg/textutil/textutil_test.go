package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gozen/pkg/textutil"
)

func TestReplaceCounter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		value int
		want  string
	}{
		{"single", "item$", 3, "item3"},
		{"padded", "item$$$", 7, "item007"},
		{"wider than pad", "n$", 12, "n12"},
		{"escaped", `a\$b$`, 2, `a\$b2`},
		{"tabstop untouched", "$1 and $", 4, "$1 and 4"},
		{"variable untouched", "${lang}$", 5, "${lang}5"},
		{"no symbol", "plain", 1, "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, textutil.ReplaceCounter(tt.input, tt.value))
		})
	}
}

func TestReplaceUnescaped(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a-X-b", textutil.ReplaceUnescaped("a-$#-b", "$#", "X"))
	assert.Equal(t, `a\$#X`, textutil.ReplaceUnescaped(`a\$#$#`, "$#", "X"))
	assert.True(t, textutil.HasUnescaped("x $# y", "$#"))
	assert.False(t, textutil.HasUnescaped(`x \$# y`, "$#"))
}

func TestReplaceVariables(t *testing.T) {
	t.Parallel()

	vars := map[string]string{"lang": "en", "charset": "UTF-8"}
	lookup := func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}

	got := textutil.ReplaceVariables(`<html lang="${lang}" x="${missing}">${charset}`, lookup)
	assert.Equal(t, `<html lang="en" x="${missing}">UTF-8`, got)
}

func TestEscapeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "plain", "$1 | \\ end", "a$$b||c"} {
		assert.Equal(t, s, textutil.UnescapeText(textutil.EscapeText(s)))
	}
	assert.Equal(t, `\$1 \| \\`, textutil.EscapeText(`$1 | \`))
}

func TestSplitByLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "", "c"}, textutil.SplitByLines("a\r\nb\r\rc", false))
	assert.Equal(t, []string{"a", "b", "c"}, textutil.SplitByLines("a\n\nb\n  \nc", true))
}

func TestPadString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a\n\tb\n\tc", textutil.PadString("a\nb\nc", "\t", "\n"))
	assert.Equal(t, "single", textutil.PadString("single", "\t", "\n"))
	assert.Equal(t, "007", textutil.ZeroPad("7", 3))
	assert.Equal(t, "a\nb\nc", textutil.NormalizeNewlines("a\r\nb\rc", "\n"))
}
