// Package xmledit parses a single markup start tag into an edit tree whose
// attributes can be read and changed in place.
package xmledit

import (
	"errors"
	"regexp"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/gozen/pkg/edittree"
	"github.com/yaklabco/gozen/pkg/lexer/xmllex"
	"github.com/yaklabco/gozen/pkg/textrange"
)

// ErrInvalidTag is returned when the source does not start with a tag name.
var ErrInvalidTag = errors.New("invalid tag")

// maxTagLen bounds how far ExtractTag looks for the end of a tag.
const maxTagLen = 2000

//nolint:gochecknoglobals // compiled once
var reStartTag = regexp.MustCompile(`^<([\w:\-]+)((?:\s+[\w\-:]+(?:\s*=\s*(?:"[^"]*"|'[^']*'|[^>\s]+))?)*)\s*(/?)>`)

//nolint:gochecknoglobals // read-only defaults
var defaultOptions = edittree.Options{
	Style: edittree.Style{
		Before:    " ",
		Separator: "=",
		Quote:     `"`,
	},
	EmptyQuote: `"`,
}

// Tag is an editable start tag. The container name is the tag name and the
// elements are its attributes.
type Tag struct {
	*edittree.Container
}

// Parse builds an edit tree for the start tag in source.
func Parse(source string, opts ...edittree.Option) (*Tag, error) {
	options := edittree.ApplyOptions(defaultOptions, opts...)
	tokens := xmllex.Lex(source, 0)

	if len(tokens) < 2 || !tokens[0].Is("<") || tokens[1].Kind != xmllex.KindTagName {
		return nil, ErrInvalidTag
	}

	name := tokens[1]
	tag := &Tag{
		Container: edittree.New(source, name.Value, name.Start, name.End, options),
	}

	var pending *xmllex.Token
	flush := func() {
		if pending != nil {
			tag.Append(edittree.ElementSpec{Name: pending.Value, NamePos: pending.Start, ValuePos: -1, EndPos: -1})
			pending = nil
		}
	}

tokens:
	for i := 2; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok.Is(">"), tok.Is("/>"):
			break tokens
		case tok.Kind == xmllex.KindAttrName:
			flush()
			pending = &tokens[i]
		case tok.Kind == xmllex.KindAttrValue && pending != nil:
			spec := edittree.ElementSpec{
				Name:     pending.Value,
				NamePos:  pending.Start,
				Value:    tok.Value,
				ValuePos: tok.Start,
				EndPos:   -1,
			}
			if quote, ok := quoteOf(tok.Value); ok {
				spec.Quote = quote
				spec.Value = tok.Value[1 : len(tok.Value)-1]
				spec.ValuePos++
			}
			tag.Append(spec)
			pending = nil
		}
	}
	flush()

	tag.CaptureStyle()
	return tag, nil
}

func quoteOf(value string) (string, bool) {
	if len(value) < 2 {
		return "", false
	}
	q := value[0]
	if (q != '"' && q != '\'') || value[len(value)-1] != q {
		return "", false
	}
	return value[:1], true
}

// Decoded returns the value of the attribute called name with character
// references decoded.
func (t *Tag) Decoded(name string) (string, bool) {
	value, ok := t.Value(name)
	if !ok {
		return "", false
	}
	return html.UnescapeString(value), true
}

// Document returns a document holding the tag as an element node, for
// matching it against CSS selectors.
func (t *Tag) Document() *html.Node {
	elem := &html.Node{
		Type:     html.ElementNode,
		Data:     t.Name(),
		DataAtom: atom.Lookup([]byte(t.Name())),
	}
	for _, el := range t.List() {
		value, _ := t.decodedElement(el)
		elem.Attr = append(elem.Attr, html.Attribute{Key: el.Name(), Val: value})
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(elem)
	return doc
}

func (t *Tag) decodedElement(el *edittree.Element) (string, bool) {
	if !el.HasValue() {
		return "", false
	}
	return html.UnescapeString(el.Value()), true
}

// ParseFromPosition parses the start tag around pos in content. It returns
// nil without an error when pos is not inside a tag.
func ParseFromPosition(content string, pos int, backward bool, opts ...edittree.Option) (*Tag, error) {
	bounds, ok := ExtractTag(content, pos, backward)
	if !ok || !bounds.Inside(pos) {
		return nil, nil //nolint:nilnil // no tag at pos
	}
	return Parse(bounds.Substring(content), append([]edittree.Option{edittree.WithOffset(bounds.Start)}, opts...)...)
}

// ExtractTag finds the start tag around pos. The nearest tag at or before pos
// wins when pos is inside it or backward is set. Otherwise the first tag
// after pos is used.
func ExtractTag(content string, pos int, backward bool) (textrange.Range, bool) {
	match := func(i int) (textrange.Range, bool) {
		if content[i] != '<' {
			return textrange.Range{}, false
		}
		m := reStartTag.FindString(content[i:min(len(content), i+maxTagLen)])
		if m == "" {
			return textrange.Range{}, false
		}
		return textrange.FromLength(i, len(m)), true
	}

	if content == "" {
		return textrange.Range{}, false
	}

	for i := min(max(pos, 0), len(content)-1); i >= 0; i-- {
		if r, ok := match(i); ok {
			if r.Inside(pos) || backward {
				return r, true
			}
			break
		}
	}
	if backward {
		return textrange.Range{}, false
	}

	for i := max(pos, 0); i < len(content); i++ {
		if r, ok := match(i); ok {
			return r, true
		}
	}
	return textrange.Range{}, false
}
