package editor

import (
	"strings"

	"github.com/yaklabco/gozen/pkg/textrange"
	"github.com/yaklabco/gozen/pkg/textutil"
)

// abbrevSpecialChars are the non-alphanumeric characters an abbreviation
// may contain outside of attribute and text sections.
const abbrevSpecialChars = "#.>+*:$-_!@[]()|"

// ExtractAbbreviation returns the abbreviation that ends str. It scans
// backward from the end, keeping anything inside balanced [...] and {...}
// sections, and stops at the first character an abbreviation cannot hold or
// at a ">" that closes a tag. Unbalanced brackets yield "".
func ExtractAbbreviation(str string) string {
	var brace, text, group int
	start := -1

	for cur := len(str) - 1; ; cur-- {
		if cur < 0 {
			start = 0
			break
		}

		ch := str[cur]
		switch ch {
		case ']':
			brace++
		case '[':
			if brace == 0 {
				start = cur + 1
			} else {
				brace--
			}
		case '}':
			text++
		case '{':
			if text == 0 {
				start = cur + 1
			} else {
				text--
			}
		case ')':
			group++
		case '(':
			if group == 0 {
				start = cur + 1
			} else {
				group--
			}
		default:
			if brace > 0 || text > 0 {
				continue
			}
			if !isAllowedChar(ch) || (ch == '>' && textutil.EndsWithTag(str[:cur+1])) {
				start = cur + 1
			}
		}

		if start >= 0 {
			break
		}
	}

	if brace != 0 || text != 0 || group != 0 {
		return ""
	}
	return str[start:]
}

func isAllowedChar(ch byte) bool {
	return ch >= 'a' && ch <= 'z' ||
		ch >= 'A' && ch <= 'Z' ||
		ch >= '0' && ch <= '9' ||
		strings.IndexByte(abbrevSpecialChars, ch) >= 0
}

// FindAbbreviation returns the abbreviation to expand in ed and its range:
// the selection when there is one, otherwise the abbreviation ending at the
// caret on the current line.
func FindAbbreviation(ed Editor) (string, textrange.Range) {
	content := ed.Content()
	sel := ed.SelectionRange()
	if !sel.Empty() {
		return sel.Substring(content), sel
	}

	line := ed.CurrentLineRange()
	abbr := ExtractAbbreviation(content[line.Start:sel.End])
	return abbr, textrange.New(sel.End-len(abbr), sel.End)
}
