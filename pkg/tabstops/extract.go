package tabstops

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// TabStop is one tab stop or caret extracted from text.
type TabStop struct {
	// Start and End delimit the placeholder text written in Result.Text.
	Start, End int
	// Group is the tab stop index. Stops sharing a group are edited together.
	Group int
	// Placeholder is the text written for the stop.
	Placeholder string
	// Token is the source text the stop replaced.
	Token string
	// Caret marks a final caret position rather than a tab stop.
	Caret bool
}

// Result is text with its tab stops extracted.
type Result struct {
	Text string
	// TabStops holds every stop and caret in the order they appear.
	TabStops []TabStop
}

// Carets returns the caret marks.
func (r Result) Carets() []TabStop {
	return lo.Filter(r.TabStops, func(ts TabStop, _ int) bool { return ts.Caret })
}

// Groups returns the tab stops grouped by index, excluding carets, with
// groups in ascending order.
func (r Result) Groups() [][]TabStop {
	byGroup := lo.GroupBy(lo.Reject(r.TabStops, func(ts TabStop, _ int) bool { return ts.Caret }),
		func(ts TabStop) int { return ts.Group })

	keys := lo.Keys(byGroup)
	slices.Sort(keys)

	groups := make([][]TabStop, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, byGroup[k])
	}
	return groups
}

// CaretPos returns where the caret should land: the first caret mark, else
// the start of the lowest numbered tab stop, else the end of the text.
func (r Result) CaretPos() int {
	if carets := r.Carets(); len(carets) > 0 {
		return carets[0].Start
	}

	stops := lo.Reject(r.TabStops, func(ts TabStop, _ int) bool { return ts.Caret })
	if len(stops) == 0 {
		return len(r.Text)
	}
	first := slices.MinFunc(stops, func(a, b TabStop) int {
		return cmp.Or(cmp.Compare(a.Group, b.Group), cmp.Compare(a.Start, b.Start))
	})
	return first.Start
}

// Reinsert puts the original tokens back in place of the extracted stops.
func (r Result) Reinsert() string {
	text := r.Text
	for _, ts := range slices.Backward(r.TabStops) {
		text = text[:ts.Start] + ts.Token + text[ts.End:]
	}
	return text
}

// Option configures Extract.
type Option func(*extractOptions)

type extractOptions struct {
	escape func(ch string) string
}

// WithEscape sets how escaped characters are written. The default drops the
// backslash.
func WithEscape(fn func(ch string) string) Option {
	return func(o *extractOptions) {
		o.escape = fn
	}
}

// Extract removes tab stops from text. Each stop is replaced by the
// placeholder of its group, which is the first placeholder given for that
// index anywhere in the text, or nothing. ${0:cursor} and the caret
// placeholder become caret marks.
func Extract(text string, opts ...Option) Result {
	var o extractOptions
	for _, opt := range opts {
		opt(&o)
	}

	labels := make(map[int]string)
	Process(text, Handlers{
		Escape: o.escape,
		TabStop: func(m Match) string {
			if m.HasPlaceholder && !isCaret(m) {
				if _, ok := labels[m.Index]; !ok {
					labels[m.Index] = Strip(m.Placeholder)
				}
			}
			return m.Token
		},
	})

	var stops []TabStop
	caret := func(m Match) string {
		stops = append(stops, TabStop{Start: m.Offset, End: m.Offset, Token: m.Token, Caret: true})
		return ""
	}

	out := Process(text, Handlers{
		Escape: o.escape,
		TabStop: func(m Match) string {
			if isCaret(m) {
				return caret(m)
			}
			label := labels[m.Index]
			stops = append(stops, TabStop{
				Start:       m.Offset,
				End:         m.Offset + len(label),
				Group:       m.Index,
				Placeholder: label,
				Token:       m.Token,
			})
			return label
		},
		Caret: caret,
	})

	return Result{Text: out, TabStops: stops}
}

func isCaret(m Match) bool {
	return m.Token == CaretToken
}

// Normalize returns text as Extract followed by Reinsert would produce it:
// escapes resolved and tab stops untouched.
func Normalize(text string, opts ...Option) string {
	var o extractOptions
	for _, opt := range opts {
		opt(&o)
	}
	return Process(text, Handlers{Escape: o.escape})
}
