package transform

import (
	"strings"

	"github.com/yaklabco/gozen/pkg/elements"
)

// childNames maps a parent element to the child it most often holds.
//
//nolint:gochecknoglobals // read-only lookup table
var childNames = map[string]string{
	"ul":       "li",
	"ol":       "li",
	"table":    "tr",
	"tbody":    "tr",
	"thead":    "tr",
	"tfoot":    "tr",
	"tr":       "td",
	"select":   "option",
	"optgroup": "option",
	"dl":       "dt",
	"colgroup": "col",
	"map":      "area",
	"audio":    "source",
	"video":    "source",
	"object":   "param",
}

// ImplicitName picks a name for a child of parent that was written without
// one, such as ".item" inside "ul". Unknown inline parents get "span" and
// everything else "div".
func ImplicitName(parent *elements.OutputNode) string {
	if parent == nil || parent.Name == "" {
		return "div"
	}
	if name, ok := childNames[strings.ToLower(parent.Name)]; ok {
		return name
	}
	if parent.IsInline() {
		return "span"
	}
	return "div"
}
