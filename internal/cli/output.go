package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/gozen/pkg/config"
	"github.com/yaklabco/gozen/pkg/tabstops"
)

// expansion is one rendered abbreviation.
type expansion struct {
	Abbreviation string       `json:"abbreviation"`
	Syntax       string       `json:"syntax"`
	Profile      string       `json:"profile"`
	Output       string       `json:"output"`
	Text         string       `json:"text"`
	Caret        int          `json:"caret"`
	TabStops     []tabStopOut `json:"tabstops,omitempty"`
}

type tabStopOut struct {
	Group       int    `json:"group"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Placeholder string `json:"placeholder,omitempty"`
	Caret       bool   `json:"caret,omitempty"`
}

func newExpansion(abbr, syntax, profileName, output string) expansion {
	res := tabstops.Extract(output)
	exp := expansion{
		Abbreviation: abbr,
		Syntax:       syntax,
		Profile:      profileName,
		Output:       output,
		Text:         res.Text,
		Caret:        res.CaretPos(),
	}
	for _, ts := range res.TabStops {
		exp.TabStops = append(exp.TabStops, tabStopOut{
			Group:       ts.Group,
			Start:       ts.Start,
			End:         ts.End,
			Placeholder: ts.Placeholder,
			Caret:       ts.Caret,
		})
	}
	return exp
}

// writeExpansions prints expansions in the configured format.
func (a *app) writeExpansions(exps []expansion) error {
	switch a.format() {
	case config.FormatJSON:
		return writeJSON(a.out, exps)
	case config.FormatRaw:
		for _, exp := range exps {
			if _, err := fmt.Fprintln(a.out, exp.Output); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
	default:
		for _, exp := range exps {
			text := a.styles.HighlightTabStops(tabstops.Extract(exp.Output))
			if _, err := fmt.Fprintln(a.out, text); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
