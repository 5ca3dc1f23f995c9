package filters

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gozen/pkg/elements"
	"github.com/yaklabco/gozen/pkg/profile"
	"github.com/yaklabco/gozen/pkg/textutil"
)

//nolint:gochecknoglobals // compiled once
var (
	reLeadingSpace = regexp.MustCompile(`^\s+`)
	reNewlines     = regexp.MustCompile(`[\n\r]`)
	reListMarker   = regexp.MustCompile(`^([\s|\x{00a0}])?[\d|#\-*\x{2022}]+\.?\s*`)
	reSelectAttr   = regexp.MustCompile(`\s+select\s*=\s*(?:"[^"]*"|'[^']*')`)
	reCSSProperty  = regexp.MustCompile(`^([\w\-]+\s*:)\s*`)
)

//nolint:gochecknoglobals // read-only lookup table
var xslTrimmedTags = map[string]bool{
	"xsl:variable":   true,
	"xsl:with-param": true,
}

// walk calls fn for every node below tree, parents first.
func walk(tree *elements.OutputNode, fn func(item *elements.OutputNode)) {
	for _, item := range tree.Children {
		fn(item)
		walk(item, fn)
	}
}

// SingleLine removes line breaks so the expansion fits on one line.
func SingleLine(tree *elements.OutputNode, _ *Context) {
	walk(tree, func(item *elements.OutputNode) {
		if item.Type == elements.NodeTag {
			item.Start = reLeadingSpace.ReplaceAllString(item.Start, "")
			item.End = reLeadingSpace.ReplaceAllString(item.End, "")
		}
		item.Start = reNewlines.ReplaceAllString(item.Start, "")
		item.End = reNewlines.ReplaceAllString(item.End, "")
		item.Content = reNewlines.ReplaceAllString(item.Content, "")
	})
}

// Trim strips list markers such as "1.", "*" or "-" from the start of text
// content, which is handy when wrapping a pasted list.
func Trim(tree *elements.OutputNode, _ *Context) {
	walk(tree, func(item *elements.OutputNode) {
		if item.Content != "" {
			item.Content = reListMarker.ReplaceAllString(item.Content, "${1}")
		}
	})
}

// XSL drops the select attribute of xsl:variable and xsl:with-param
// elements that have children, since the children provide the value.
func XSL(tree *elements.OutputNode, _ *Context) {
	walk(tree, func(item *elements.OutputNode) {
		if item.Type == elements.NodeTag && xslTrimmedTags[strings.ToLower(item.Name)] && item.HasChildren() {
			if loc := reSelectAttr.FindStringIndex(item.Start); loc != nil {
				item.Start = item.Start[:loc[0]] + item.Start[loc[1]:]
			}
		}
	})
}

// Escape replaces the markup characters in rendered tags with entities, so
// the expansion can be pasted as text.
func Escape(tree *elements.OutputNode, _ *Context) {
	r := strings.NewReplacer("<", "&lt;", ">", "&gt;", "&", "&amp;")
	walk(tree, func(item *elements.OutputNode) {
		item.Start = r.Replace(item.Start)
		item.End = r.Replace(item.End)
	})
}

// Comment surrounds block elements that have an id or class with comments
// naming them.
func Comment(tree *elements.OutputNode, ctx *Context) {
	if ctx.Profile.TagNewline == profile.TagNewlineNever {
		return
	}

	newline := ctx.newline()
	walk(tree, func(item *elements.OutputNode) {
		if item.Type != elements.NodeTag || !item.IsBlock() {
			return
		}

		id, _ := item.Attribute("id")
		class, _ := item.Attribute("class")
		if id == "" && class == "" {
			return
		}

		var label string
		if id != "" {
			label += "#" + id
		}
		if class != "" {
			label += "." + class
		}

		var padding string
		if item.Parent != nil {
			padding = item.Parent.Padding
		}

		item.Start = strings.Replace(item.Start, "<", "<!-- "+label+" -->"+newline+padding+"<", 1)
		item.End = strings.Replace(item.End, ">", ">"+newline+padding+"<!-- /"+label+" -->", 1)

		counter := item.RepeatCounter()
		item.Start = textutil.ReplaceCounter(item.Start, counter)
		item.End = textutil.ReplaceCounter(item.End, counter)
	})
}

// FormatCSS puts a space after the property name of CSS snippets:
// "padding:0;" becomes "padding: 0;".
func FormatCSS(tree *elements.OutputNode, _ *Context) {
	walk(tree, func(item *elements.OutputNode) {
		if item.Type == elements.NodeSnippet {
			item.Start = spaceAfterProperty(item.Start)
		}
	})
}

// spaceAfterProperty formats the first "name:" that is not part of a "::"
// pseudo-element.
func spaceAfterProperty(s string) string {
	for i := 0; i < len(s); i++ {
		m := reCSSProperty.FindStringSubmatchIndex(s[i:])
		if m == nil {
			continue
		}
		colonEnd := i + m[3]
		if colonEnd < len(s) && s[colonEnd] == ':' {
			continue
		}
		return s[:colonEnd] + " " + s[i+m[1]:]
	}
	return s
}
