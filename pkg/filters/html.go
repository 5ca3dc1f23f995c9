package filters

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gozen/pkg/elements"
	"github.com/yaklabco/gozen/pkg/tabstops"
	"github.com/yaklabco/gozen/pkg/textutil"
)

// firstSnippetStop is the index given to the first unresolved snippet
// variable. It stays clear of the stops a snippet numbers by hand.
const firstSnippetStop = 100

// HTML renders the tree as markup. It runs Format first, then writes tags
// and snippet halves into the placeholders, substitutes counters and gives
// every node its own range of tab stop indexes.
func HTML(tree *elements.OutputNode, ctx *Context) {
	Format(tree, ctx)

	h := htmlWriter{ctx: ctx}
	if ctx.Profile.PlaceCursor {
		h.cursor = textutil.CaretPlaceholder
	}
	h.walk(tree)
}

type htmlWriter struct {
	ctx    *Context
	cursor string
	stops  int
}

func (h *htmlWriter) walk(tree *elements.OutputNode) {
	for _, item := range tree.Children {
		if item.Type == elements.NodeTag {
			h.tag(item)
		} else {
			h.snippet(item)
		}

		counter := item.RepeatCounter()
		item.Start = textutil.UnescapeText(textutil.ReplaceCounter(item.Start, counter))
		item.End = textutil.UnescapeText(textutil.ReplaceCounter(item.End, counter))
		item.Content = textutil.UnescapeText(textutil.ReplaceCounter(item.Content, counter))

		h.stops += upgradeTabStops(item, h.stops) + 1

		h.walk(item)
	}
}

func (h *htmlWriter) attributes(item *elements.OutputNode) string {
	p := h.ctx.Profile
	quote := p.AttrQuotes.Char()

	var b strings.Builder
	for _, attr := range item.Attributes {
		value := attr.Value
		if value == "" {
			value = h.cursor
		}
		b.WriteString(" " + p.AttrCase.Apply(attr.Name) + "=" + quote + value + quote)
	}
	return b.String()
}

func (h *htmlWriter) tag(item *elements.OutputNode) {
	if item.Name == "" {
		return
	}

	p := h.ctx.Profile
	name := p.TagCase.Apply(item.Name)
	attrs := h.attributes(item)
	isUnary := item.IsUnary() && !item.HasChildren()

	var start, end string
	if isUnary {
		start = "<" + name + attrs + p.SelfClosingTag.Suffix() + ">"
		item.End = ""
	} else {
		start = "<" + name + attrs + ">"
		end = "</" + name + ">"
	}

	item.Start = strings.Replace(item.Start, placeholder, start, 1)
	item.End = strings.Replace(item.End, placeholder, end, 1)

	if !item.HasChildren() && !isUnary && h.cursor != "" && !strings.Contains(item.Content, h.cursor) {
		item.Start += h.cursor
	}
}

func (h *htmlWriter) snippet(item *elements.OutputNode) {
	data := item.Source.Value
	if data == "" {
		h.tag(item)
		return
	}

	head, tail, _ := strings.Cut(data, childToken)
	var padding string
	if item.Parent != nil {
		padding = item.Parent.Padding
	}
	newline := h.ctx.newline()

	item.Start = strings.Replace(item.Start, placeholder, textutil.PadString(head, padding, newline), 1)
	item.End = strings.Replace(item.End, placeholder, textutil.PadString(tail, padding, newline), 1)

	next := firstSnippetStop
	memo := make(map[string]int)
	lookup := func(name string) (string, bool) {
		if isNumber(name) {
			return "", false
		}
		if value, ok := item.Attribute(name); ok {
			return value, true
		}
		if value, ok := h.ctx.lookup(name); ok && value != "" {
			return value, true
		}
		if _, ok := memo[name]; !ok {
			memo[name] = next
			next++
		}
		return "${" + strconv.Itoa(memo[name]) + ":" + name + "}", true
	}

	item.Start = textutil.ReplaceVariables(item.Start, lookup)
	item.End = textutil.ReplaceVariables(item.End, lookup)
}

// upgradeTabStops shifts the tab stops of item by offset and returns the
// largest index it held.
func upgradeTabStops(item *elements.OutputNode, offset int) int {
	maxIndex := 0
	for _, field := range []*string{&item.Start, &item.End, &item.Content} {
		var n int
		*field, n = tabstops.Upgrade(*field, offset)
		maxIndex = max(maxIndex, n)
	}
	return maxIndex
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
