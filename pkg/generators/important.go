package generators

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gozen/pkg/abbrev"
	"github.com/yaklabco/gozen/pkg/elements"
	"github.com/yaklabco/gozen/pkg/transform"
)

var reImportant = regexp.MustCompile(`^(.+)!$`) //nolint:gochecknoglobals // compiled once

// Important expands CSS snippets written with a trailing "!", such as
// "d:n!", adding !important to every declaration.
func Important(t *transform.Transformer) Func {
	return func(match []string, node *abbrev.Node, syntax string) (elements.Result, error) {
		if syntax != "css" {
			return elements.None(), nil
		}

		snippet, ok := t.Store().Snippet(syntax, match[1]).(*elements.Snippet)
		if !ok {
			return elements.None(), nil
		}

		parsed := t.NewParsedSnippet(node, syntax, snippet)
		if strings.Contains(parsed.Value, ";") {
			parsed.Value = strings.Join(strings.Split(parsed.Value, ";"), " !important;")
		} else {
			parsed.Value += " !important"
		}
		return elements.Single(parsed), nil
	}
}
