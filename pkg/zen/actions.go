package zen

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/yaklabco/gozen/internal/logging"
	"github.com/yaklabco/gozen/pkg/abbrev"
	"github.com/yaklabco/gozen/pkg/editor"
	"github.com/yaklabco/gozen/pkg/textrange"
)

// ErrCancelled is returned when the user dismisses a prompt.
var ErrCancelled = errors.New("cancelled")

// collectionEmpty names the store collection of elements without content.
const collectionEmpty = "empty"

// ExpandAtCaret expands the abbreviation at the caret, or the selection, and
// replaces it in ed. It reports false when there was nothing to expand.
func (e *Engine) ExpandAtCaret(ed editor.Editor) (bool, error) {
	abbr, r := editor.FindAbbreviation(ed)
	if abbr == "" {
		return false, nil
	}

	out, err := e.ExpandAbbreviation(abbr, ed.Syntax(), ed.ProfileName(), e.CaptureContext(ed))
	if err != nil {
		return false, err
	}
	if out == "" {
		return false, nil
	}

	e.logger.Debug("replacing", logging.FieldAbbreviation, abbr, logging.FieldOffset, r.Start)
	ed.ReplaceContent(out, r.Start, r.End, false)
	return true, nil
}

// WrapAtCaret wraps the selection, or the current line without its
// surrounding whitespace, with abbr. An empty abbr is asked for with
// ed.Prompt; ErrCancelled is returned when the prompt is dismissed.
func (e *Engine) WrapAtCaret(ed editor.Editor, abbr string) (bool, error) {
	if abbr == "" {
		value, ok := ed.Prompt("Enter abbreviation")
		if !ok {
			return false, ErrCancelled
		}
		abbr = strings.TrimSpace(value)
		if abbr == "" {
			return false, nil
		}
	}

	r := ed.SelectionRange()
	if r.Empty() {
		r = trimRange(ed.Content(), ed.CurrentLineRange())
		if r.Empty() {
			return false, nil
		}
	}

	text := r.Substring(ed.Content())
	out, err := e.WrapWithAbbreviation(abbr, unindent(text), ed.Syntax(), ed.ProfileName())
	if err != nil {
		return false, fmt.Errorf("wrap: %w", err)
	}
	if out == "" {
		return false, nil
	}

	ed.ReplaceContent(out, r.Start, r.End, false)
	return true, nil
}

// CaptureContext returns the innermost element open at the caret, with its
// attributes, for markup syntaxes. It returns nil outside of an element or
// for other syntaxes.
func (e *Engine) CaptureContext(ed editor.Editor) *abbrev.Node {
	syntax := ed.Syntax()
	if !isMarkup(syntax) {
		return nil
	}

	content := ed.Content()
	caret := min(ed.CaretPos(), len(content))

	var stack []*abbrev.Node
	z := html.NewTokenizer(strings.NewReader(content[:caret]))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if !errors.Is(z.Err(), io.EOF) {
				return nil
			}
			if len(stack) == 0 {
				return nil
			}
			return stack[len(stack)-1]
		case html.StartTagToken:
			tok := z.Token()
			if e.store.IsItemInCollection(syntax, collectionEmpty, tok.Data) {
				continue
			}
			stack = append(stack, contextNode(tok))
		case html.EndTagToken:
			tok := z.Token()
			for i := len(stack) - 1; i >= 0; i-- {
				if strings.EqualFold(stack[i].Name, tok.Data) {
					stack = stack[:i]
					break
				}
			}
		default:
		}
	}
}

func isMarkup(syntax string) bool {
	switch syntax {
	case "html", "xml", "xsl":
		return true
	default:
		return false
	}
}

func contextNode(tok html.Token) *abbrev.Node {
	node := abbrev.NewNode()
	node.Name = tok.Data
	node.Abbreviation = tok.Data
	for _, attr := range tok.Attr {
		node.Attributes = append(node.Attributes, abbrev.Attribute{Name: attr.Key, Value: attr.Val})
	}
	return node
}

// trimRange shrinks r so it excludes leading and trailing whitespace.
func trimRange(content string, r textrange.Range) textrange.Range {
	text := r.Substring(content)
	start := r.Start + len(text) - len(strings.TrimLeftFunc(text, unicode.IsSpace))
	end := r.Start + len(strings.TrimRightFunc(text, unicode.IsSpace))
	if end < start {
		end = start
	}
	return textrange.New(start, end)
}

// unindent removes the indentation shared by the lines of text after the
// first, so the wrapped text is re-indented by the output.
func unindent(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return text
	}

	pad := -1
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if pad < 0 || n < pad {
			pad = n
		}
	}
	if pad <= 0 {
		return text
	}

	for i := 1; i < len(lines); i++ {
		if len(lines[i]) >= pad {
			lines[i] = lines[i][pad:]
		} else {
			lines[i] = strings.TrimLeft(lines[i], " \t")
		}
	}
	return strings.Join(lines, "\n")
}
