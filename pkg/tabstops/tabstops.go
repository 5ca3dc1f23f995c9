// Package tabstops scans generated text for editor tab stops written as $N,
// ${N} or ${N:placeholder}, and extracts them into positions an editor can
// turn into linked edit regions.
package tabstops

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gozen/pkg/textutil"
)

// CaretToken is the tab stop that marks the final caret position.
const CaretToken = "${0:cursor}"

// Match describes one tab stop found by Process.
type Match struct {
	// Pos is the offset of the tab stop in the input.
	Pos int
	// Offset is the length of the output written before the replacement.
	Offset int
	// Token is the source text of the tab stop.
	Token string

	Index          int
	Placeholder    string
	HasPlaceholder bool
	Braced         bool
}

// Renumber formats the tab stop with a new index, keeping its form.
func (m Match) Renumber(index int) string {
	num := strconv.Itoa(index)
	switch {
	case m.HasPlaceholder:
		return "${" + num + ":" + m.Placeholder + "}"
	case m.Braced:
		return "${" + num + "}"
	default:
		return "$" + num
	}
}

// Handlers receive the escapes and tab stops found by Process. Each returns
// the text written in place of what it received.
type Handlers struct {
	// Escape gets the character following a backslash. Nil drops the
	// backslash.
	Escape func(ch string) string
	// TabStop gets each tab stop. Nil keeps the token.
	TabStop func(m Match) string
	// Caret gets each caret placeholder. Nil leaves the placeholder as
	// plain text.
	Caret func(m Match) string
}

// Process runs a single left-to-right scan over text and returns it with
// escapes and tab stops replaced by what the handlers return. A "$" that does
// not start a well-formed tab stop is kept literally.
func Process(text string, h Handlers) string {
	escape := h.Escape
	if escape == nil {
		escape = func(ch string) string { return ch }
	}
	tabStop := h.TabStop
	if tabStop == nil {
		tabStop = func(m Match) string { return m.Token }
	}

	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		ch := text[i]
		switch {
		case ch == '\\' && i+1 < len(text):
			_, size := utf8.DecodeRuneInString(text[i+1:])
			b.WriteString(escape(text[i+1 : i+1+size]))
			i += 1 + size
			continue

		case ch == '$':
			if m, ok := scan(text, i); ok {
				m.Offset = b.Len()
				b.WriteString(tabStop(m))
				i += len(m.Token)
				continue
			}

		case h.Caret != nil && strings.HasPrefix(text[i:], textutil.CaretPlaceholder):
			b.WriteString(h.Caret(Match{Pos: i, Offset: b.Len(), Token: textutil.CaretPlaceholder}))
			i += len(textutil.CaretPlaceholder)
			continue
		}

		b.WriteByte(ch)
		i++
	}

	return b.String()
}

// scan reads the tab stop starting with the "$" at pos.
func scan(text string, pos int) (Match, bool) {
	rest := text[pos+1:]

	if n := countDigits(rest); n > 0 {
		idx, err := strconv.Atoi(rest[:n])
		if err != nil {
			return Match{}, false
		}
		return Match{Pos: pos, Token: text[pos : pos+1+n], Index: idx}, true
	}

	if !strings.HasPrefix(rest, "{") {
		return Match{}, false
	}

	body := rest[1:]
	n := countDigits(body)
	if n == 0 || n == len(body) {
		return Match{}, false
	}
	idx, err := strconv.Atoi(body[:n])
	if err != nil {
		return Match{}, false
	}

	switch body[n] {
	case '}':
		return Match{Pos: pos, Token: text[pos : pos+n+3], Index: idx, Braced: true}, true

	case ':':
		depth := 1
		for j := n + 1; j < len(body); j++ {
			switch body[j] {
			case '\\':
				j++
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return Match{
						Pos:            pos,
						Token:          text[pos : pos+j+3],
						Index:          idx,
						Placeholder:    body[n+1 : j],
						HasPlaceholder: true,
						Braced:         true,
					}, true
				}
			}
		}
	}

	return Match{}, false
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

// Upgrade adds offset to every tab stop index in text except the caret stop
// 0, so that text from several sources can be joined without index clashes.
// Escapes are kept. It returns the new text and the largest index found
// before renumbering.
func Upgrade(text string, offset int) (string, int) {
	maxIndex := 0
	out := Process(text, Handlers{
		Escape: func(ch string) string { return `\` + ch },
		TabStop: func(m Match) string {
			if m.Index == 0 {
				return m.Token
			}
			maxIndex = max(maxIndex, m.Index)
			return m.Renumber(m.Index + offset)
		},
	})
	return out, maxIndex
}

// MaxIndex returns the largest tab stop index in text, or 0.
func MaxIndex(text string) int {
	maxIndex := 0
	Process(text, Handlers{
		Escape: func(ch string) string { return `\` + ch },
		TabStop: func(m Match) string {
			maxIndex = max(maxIndex, m.Index)
			return m.Token
		},
	})
	return maxIndex
}

// Strip removes tab stops from text, leaving their placeholders. Nested tab
// stops inside placeholders are stripped too.
func Strip(text string) string {
	return Process(text, Handlers{
		TabStop: func(m Match) string {
			if m.HasPlaceholder {
				return Strip(m.Placeholder)
			}
			return ""
		},
		Caret: func(Match) string { return "" },
	})
}
