package generators

import (
	"strings"

	"github.com/yaklabco/gozen/pkg/abbrev"
	"github.com/yaklabco/gozen/pkg/elements"
	"github.com/yaklabco/gozen/pkg/resources"
	"github.com/yaklabco/gozen/pkg/transform"
)

// Expando returns a resolver for names containing "+", such as "ul+" or
// "dl+", whose vocabulary definition is itself an abbreviation. The
// definition is expanded and its top-level elements replace the node.
func Expando(t *transform.Transformer) resources.Resolver {
	return func(node *abbrev.Node, syntax string) (elements.Result, error) {
		if node.IsEmpty() || node.IsTextNode() || !strings.Contains(node.Name, "+") {
			return elements.None(), nil
		}

		expando, ok := t.Store().Abbreviation(syntax, node.Name).(*elements.Expando)
		if !ok {
			return elements.None(), nil
		}

		tree, err := t.CreateParsedTreeFromString(expando.Data, syntax, nil)
		if err != nil {
			return elements.None(), err
		}

		items := make([]elements.Resource, 0, len(tree.Children))
		for _, child := range tree.Children {
			child.Parent = nil
			items = append(items, child)
		}
		return elements.List(items...), nil
	}
}
