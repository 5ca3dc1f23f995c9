// Package textutil holds the string helpers shared by the expansion pipeline:
// escaping, counter and variable substitution, and line handling.
package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

// CaretPlaceholder marks the place where the caret should land after expansion.
// It replaces "|" in resource content and "${0:cursor}" in final output.
const CaretPlaceholder = "{%::zen-caret::%}"

//nolint:gochecknoglobals // Compiled patterns are read-only.
var (
	reVariable = regexp.MustCompile(`\$\{([\w\-]+)\}`)
	reNewline  = regexp.MustCompile(`\r\n|\r|\n`)
	reEscaped  = regexp.MustCompile(`\\(.)`)
	reTagTail  = regexp.MustCompile(`</?[\w:\-]+(?:\s+[\w\-:]+(?:\s*=\s*(?:"[^"]*"|'[^']*'|[^>\s]+))?)*\s*/?>$`)
)

// ReplaceFunc decides how a matched symbol at pos is replaced. It returns the
// length of the consumed text and its replacement; ok is false to leave the
// match untouched. matchNum is the 1-based match ordinal.
type ReplaceFunc func(str string, pos, matchNum int) (consumed int, value string, ok bool)

// ReplaceUnescapedSymbol replaces every occurrence of symbol that is not
// preceded by a backslash, asking fn for each replacement.
func ReplaceUnescapedSymbol(str, symbol string, fn ReplaceFunc) string {
	if symbol == "" {
		return str
	}

	var (
		b        strings.Builder
		matchNum int
	)

	i := 0
	for i < len(str) {
		switch {
		case str[i] == '\\':
			end := min(i+len(symbol)+1, len(str))
			b.WriteString(str[i:end])
			i = end
		case strings.HasPrefix(str[i:], symbol):
			matchNum++
			consumed, value, ok := fn(str, i, matchNum)
			if !ok {
				b.WriteByte(str[i])
				i++
				continue
			}
			b.WriteString(value)
			i += consumed
		default:
			b.WriteByte(str[i])
			i++
		}
	}

	return b.String()
}

// ReplaceUnescaped replaces every unescaped symbol with value.
func ReplaceUnescaped(str, symbol, value string) string {
	return ReplaceUnescapedSymbol(str, symbol, func(string, int, int) (int, string, bool) {
		return len(symbol), value, true
	})
}

// HasUnescaped reports whether str contains symbol not preceded by a backslash.
func HasUnescaped(str, symbol string) bool {
	found := false
	ReplaceUnescapedSymbol(str, symbol, func(string, int, int) (int, string, bool) {
		found = true
		return 0, "", false
	})
	return found
}

// ReplaceCounter replaces runs of unescaped "$" with value, zero padded to the
// run length. "$N" and "${" are tabstops or variables and stay untouched.
func ReplaceCounter(str string, value int) string {
	counter := strconv.Itoa(value)

	return ReplaceUnescapedSymbol(str, "$", func(s string, pos, _ int) (int, string, bool) {
		if pos+1 < len(s) && (s[pos+1] == '{' || isDigit(s[pos+1])) {
			return 0, "", false
		}

		j := pos + 1
		for j < len(s) && s[j] == '$' && (j+1 >= len(s) || s[j+1] != '{') {
			j++
		}

		return j - pos, ZeroPad(counter, j-pos), true
	})
}

// ReplaceVariables substitutes "${name}" tokens for which lookup reports a
// value. Unknown variables stay as they are.
func ReplaceVariables(str string, lookup func(name string) (string, bool)) string {
	return reVariable.ReplaceAllStringFunc(str, func(token string) string {
		name := token[2 : len(token)-1]
		if value, ok := lookup(name); ok {
			return value
		}
		return token
	})
}

// EscapeText escapes characters that have a meaning in snippet templates.
func EscapeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := range len(text) {
		switch text[i] {
		case '$', '|', '\\':
			b.WriteByte('\\')
		}
		b.WriteByte(text[i])
	}
	return b.String()
}

// UnescapeText removes backslash escapes.
func UnescapeText(text string) string {
	return reEscaped.ReplaceAllString(text, "$1")
}

// SplitByLines splits text on any newline convention. With removeEmpty, blank
// lines are dropped.
func SplitByLines(text string, removeEmpty bool) []string {
	lines := reNewline.Split(text, -1)
	if !removeEmpty {
		return lines
	}

	out := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// PadString indents every line of text but the first with pad.
func PadString(text, pad, newline string) string {
	lines := SplitByLines(text, false)
	return strings.Join(lines, newline+pad)
}

// ZeroPad left-pads value with zeros to the given width.
func ZeroPad(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return strings.Repeat("0", width-len(value)) + value
}

// NormalizeNewlines replaces every newline convention with newline.
func NormalizeNewlines(text, newline string) string {
	return reNewline.ReplaceAllLiteralString(text, newline)
}

// EndsWithTag reports whether str ends with an opening, closing or
// self-closing tag.
func EndsWithTag(str string) bool {
	return reTagTail.MatchString(str)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
