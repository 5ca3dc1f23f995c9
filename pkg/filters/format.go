package filters

import (
	"strings"
	"unicode"

	"github.com/yaklabco/gozen/pkg/elements"
	"github.com/yaklabco/gozen/pkg/profile"
	"github.com/yaklabco/gozen/pkg/textutil"
)

// placeholder marks where a later filter writes the real tag markup inside
// the Start and End strings prepared by Format.
const placeholder = "%s"

// childToken separates the opening and closing halves of a snippet.
const childToken = "${child}"

// Format lays the tree out: it sets Start and End to a placeholder wrapped
// in the line breaks and indentation the profile asks for, and records the
// padding for each node's children. It is run by HTML and is not meant to
// be listed on its own.
func Format(tree *elements.OutputNode, ctx *Context) {
	f := formatter{
		ctx:     ctx,
		newline: ctx.newline(),
		indent:  ctx.indentation(),
	}
	f.walk(tree, 0)
}

type formatter struct {
	ctx     *Context
	newline string
	indent  string
}

func (f *formatter) walk(tree *elements.OutputNode, level int) {
	for _, item := range tree.Children {
		if item.Type == elements.NodeTag {
			f.tag(item, level)
		} else {
			f.snippet(item, level)
		}

		if item.Content != "" {
			item.Content = textutil.PadString(item.Content, item.Padding, f.newline)
		}

		f.walk(item, level+1)
	}
}

func (f *formatter) padding(item *elements.OutputNode, level int) string {
	if item.Parent != nil {
		return item.Parent.Padding
	}
	return strings.Repeat(f.indent, level)
}

func (f *formatter) snippet(item *elements.OutputNode, level int) {
	data := item.Source.Value
	if data == "" {
		f.tag(item, level)
		return
	}

	item.Start, item.End = placeholder, placeholder
	padding := f.padding(item, level)
	if !isVeryFirstChild(item) {
		item.Start = f.newline + padding + item.Start
	}

	head, _, _ := strings.Cut(data, childToken)
	delta := f.indent
	if lines := textutil.SplitByLines(head, false); len(lines) > 1 {
		last := lines[len(lines)-1]
		if lead := last[:len(last)-len(strings.TrimLeftFunc(last, unicode.IsSpace))]; lead != "" {
			delta = lead
		}
	}

	item.Padding = padding + delta
}

func (f *formatter) tag(item *elements.OutputNode, level int) {
	if item.Name == "" {
		return
	}

	item.Start, item.End = placeholder, placeholder
	p := f.ctx.Profile
	if p.TagNewline == profile.TagNewlineNever {
		return
	}

	var (
		padding     = f.padding(item, level)
		nl          = f.newline + padding
		forceNL     = p.TagNewline == profile.TagNewlineAlways
		isUnary     = item.IsUnary() && !item.HasChildren()
		shouldBreak = shouldBreakLine(item, p.InlineBreak)
	)

	switch {
	case item.IsBlock() || shouldBreak || forceNL:
		if item.Parent == nil || (item.Parent.Type != elements.NodeSnippet && !isVeryFirstChild(item)) {
			item.Start = nl + item.Start
		}
		if item.HasBlockChildren() || shouldBreakChild(item, p.InlineBreak) || (forceNL && !isUnary) {
			item.End = nl + item.End
		}
		if item.HasTagsInContent() || (forceNL && !item.HasChildren() && !isUnary) {
			item.Start += nl + f.indent
		}
	case item.IsInline() && hasBlockSibling(item) && !isVeryFirstChild(item):
		item.Start = nl + item.Start
	case item.IsInline() && item.HasBlockChildren():
		item.End = nl + item.End
	}

	item.Padding = padding + f.indent
}

func hasBlockSibling(item *elements.OutputNode) bool {
	return item.Parent != nil && item.Parent.HasBlockChildren()
}

// isVeryFirstChild reports whether item is the first node of the whole
// output.
func isVeryFirstChild(item *elements.OutputNode) bool {
	return item.Parent != nil && item.Parent.Parent == nil && item.PreviousSibling == nil
}

// shouldBreakLine reports whether node sits in a run of at least limit
// inline siblings, which are then put on separate lines.
func shouldBreakLine(node *elements.OutputNode, limit int) bool {
	if limit <= 0 {
		return false
	}

	for node.PreviousSibling != nil && node.PreviousSibling.IsInline() {
		node = node.PreviousSibling
	}
	if !node.IsInline() {
		return false
	}

	count := 1
	for n := node.NextSibling; n != nil; n = n.NextSibling {
		if n.Name == "" || !n.IsInline() {
			count = 0
		} else {
			count++
		}
	}
	return count >= limit
}

func shouldBreakChild(node *elements.OutputNode, limit int) bool {
	return node.HasChildren() && shouldBreakLine(node.Children[0], limit)
}
