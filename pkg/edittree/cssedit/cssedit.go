// Package cssedit parses a single CSS rule into an edit tree whose
// declarations can be read and changed in place.
package cssedit

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/ericchiang/css"
	"golang.org/x/net/html"

	"github.com/yaklabco/gozen/pkg/edittree"
	"github.com/yaklabco/gozen/pkg/lexer/csslex"
	"github.com/yaklabco/gozen/pkg/textrange"
)

// ErrInvalidRule is returned when the source has no opening brace.
var ErrInvalidRule = errors.New("invalid CSS rule")

//nolint:gochecknoglobals // read-only defaults
var defaultOptions = edittree.Options{
	Style: edittree.Style{
		Before:    "\n\t",
		Separator: ": ",
	},
	Terminator: ";",
}

// Rule is an editable CSS rule. The container name is the selector and the
// elements are its declarations.
type Rule struct {
	*edittree.Container
}

// Parse builds an edit tree for the rule in source.
func Parse(source string, opts ...edittree.Option) (*Rule, error) {
	options := edittree.ApplyOptions(defaultOptions, opts...)

	raw, err := csslex.Lex(source, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRule, err)
	}
	tokens := csslex.Optimize(raw)

	open := slices.IndexFunc(tokens, func(tok csslex.Token) bool { return tok.Is("{") })
	if open < 0 {
		return nil, ErrInvalidRule
	}

	sel := trimSpace(source, textrange.New(0, tokens[open].Start))
	rule := &Rule{
		Container: edittree.New(source, sel.Substring(source), sel.Start, tokens[open].End, options),
	}

	for i := open + 1; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Is("}") {
			break
		}
		if tok.Kind != csslex.KindIdentifier {
			continue
		}

		colon := nextSignificant(tokens, i+1)
		if colon < 0 || !tokens[colon].Is(":") {
			continue
		}

		spec := edittree.ElementSpec{
			Name:     tok.Value,
			NamePos:  tok.Start,
			ValuePos: tokens[colon].End,
			EndPos:   -1,
		}

		next := nextSignificant(tokens, colon+1)
		i = colon
		if next >= 0 {
			i = next
			if tokens[next].Kind == csslex.KindValue {
				spec.Value = tokens[next].Value
				spec.ValuePos = tokens[next].Start
				next = nextSignificant(tokens, next+1)
			} else {
				spec.ValuePos = tokens[next].Start
			}
		}

		if next >= 0 && tokens[next].Is(";") {
			spec.End = ";"
			spec.EndPos = tokens[next].Start
			i = next
		} else if next >= 0 && tokens[next].Is("}") {
			i = next - 1
		}

		rule.Append(spec)
	}

	rule.CaptureStyle()
	return rule, nil
}

// Selector compiles the rule selector.
func (r *Rule) Selector() (*css.Selector, error) {
	sel, err := css.Parse(r.Name())
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", r.Name(), err)
	}
	return sel, nil
}

// Select returns the nodes under root matched by the rule selector.
func (r *Rule) Select(root *html.Node) ([]*html.Node, error) {
	sel, err := r.Selector()
	if err != nil {
		return nil, err
	}
	return sel.Select(root), nil
}

// ParseFromPosition parses the rule around pos in content. It returns nil
// without an error when pos is not inside a rule.
func ParseFromPosition(content string, pos int, backward bool, opts ...edittree.Option) (*Rule, error) {
	bounds, ok := ExtractRule(content, pos, backward)
	if !ok || !bounds.Inside(pos) {
		return nil, nil //nolint:nilnil // no rule at pos
	}
	return Parse(bounds.Substring(content), append([]edittree.Option{edittree.WithOffset(bounds.Start)}, opts...)...)
}

// ExtractRule finds the bounds of the CSS rule, selector included, around
// pos. When backward is false a rule ending before pos is skipped in favour
// of the next one.
func ExtractRule(content string, pos int, backward bool) (textrange.Range, bool) {
	const stopChars = "{}/\\<>"

	if content == "" {
		return textrange.Range{}, false
	}

	offset := min(max(pos, 0), len(content)-1)
	bracePos := -1

	for ; offset >= 0; offset-- {
		ch := content[offset]
		if ch == '{' {
			bracePos = offset
			break
		}
		if ch == '}' && !backward {
			offset++
			break
		}
	}
	offset = max(offset, 0)

	end := -1
	for ; offset < len(content); offset++ {
		ch := content[offset]
		if ch == '{' {
			bracePos = offset
		} else if ch == '}' {
			if bracePos >= 0 {
				end = offset + 1
			}
			break
		}
	}
	if end < 0 {
		return textrange.Range{}, false
	}

	start := bracePos - 1
	for start >= 0 && !strings.ContainsRune(stopChars, rune(content[start])) {
		start--
	}
	selector := strings.TrimLeftFunc(content[start+1:bracePos], unicode.IsSpace)

	return textrange.New(bracePos-len(selector), end), true
}

func nextSignificant(tokens []csslex.Token, from int) int {
	for i := from; i < len(tokens); i++ {
		if !tokens[i].IsSpace() && tokens[i].Kind != csslex.KindComment {
			return i
		}
	}
	return -1
}

func trimSpace(source string, r textrange.Range) textrange.Range {
	text := r.Substring(source)
	lead := len(text) - len(strings.TrimLeftFunc(text, unicode.IsSpace))
	trail := len(text) - len(strings.TrimRightFunc(text, unicode.IsSpace))
	if lead == len(text) {
		return textrange.FromLength(r.Start, 0)
	}
	return textrange.New(r.Start+lead, r.End-trail)
}
