package pretty

import (
	"strings"

	"github.com/yaklabco/gozen/pkg/tabstops"
)

// CaretMark is drawn where an empty tab stop or caret sits.
const CaretMark = "|"

// HighlightTabStops renders the text of an expansion with its tab stops
// styled. Empty stops are drawn as CaretMark so they stay visible.
func (s *Styles) HighlightTabStops(res tabstops.Result) string {
	var b strings.Builder
	last := 0

	for _, ts := range res.TabStops {
		if ts.Start < last || ts.End > len(res.Text) {
			continue
		}
		b.WriteString(res.Text[last:ts.Start])

		switch {
		case ts.Caret || ts.Start == ts.End:
			b.WriteString(s.Caret.Render(CaretMark))
			b.WriteString(res.Text[ts.Start:ts.End])
		default:
			b.WriteString(s.Placeholder.Render(res.Text[ts.Start:ts.End]))
		}
		last = ts.End
	}

	b.WriteString(res.Text[last:])
	return b.String()
}
