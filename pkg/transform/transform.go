// Package transform turns an abbreviation tree into an output tree: each node
// is resolved against the resources, then repeated elements are rolled out
// into separate output nodes.
package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/gozen/pkg/abbrev"
	"github.com/yaklabco/gozen/pkg/elements"
	"github.com/yaklabco/gozen/pkg/resources"
	"github.com/yaklabco/gozen/pkg/textutil"
)

var (
	// ErrUnparsedData is returned when a resolver returns a list holding an
	// item that is not a recognized resource.
	ErrUnparsedData = errors.New("elements list contains unparsed data")

	// ErrInternalNode is returned when a resolver returns an output node.
	ErrInternalNode = errors.New("output node is internal and cannot be returned by resolvers")
)

// Transformer resolves abbreviation trees against a resource store.
type Transformer struct {
	store *resources.Store
}

// New returns a transformer backed by store.
func New(store *resources.Store) *Transformer {
	return &Transformer{store: store}
}

// Store returns the resource store.
func (t *Transformer) Store() *resources.Store {
	return t.store
}

// Transform resolves tree and rolls it out. context is the element the
// abbreviation is expanded in and may be nil.
func (t *Transformer) Transform(tree *abbrev.Node, syntax string, context *abbrev.Node) (*elements.OutputNode, error) {
	parsed, err := t.CreateParsedTree(tree, syntax, context)
	if err != nil {
		return nil, err
	}
	return RolloutTree(parsed), nil
}

// TransformString parses abbr and transforms it.
func (t *Transformer) TransformString(abbr, syntax string, context *abbrev.Node) (*elements.OutputNode, error) {
	parsed, err := t.CreateParsedTreeFromString(abbr, syntax, context)
	if err != nil {
		return nil, err
	}
	return RolloutTree(parsed), nil
}

// CreateParsedTreeFromString parses abbr and resolves it.
func (t *Transformer) CreateParsedTreeFromString(abbr, syntax string, context *abbrev.Node) (*elements.ParsedElement, error) {
	tree, err := abbrev.Parse(abbr)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", abbr, err)
	}
	return t.CreateParsedTree(tree, syntax, context)
}

// CreateParsedTree resolves every node of tree into parsed elements under a
// new root. The root records the last element added and the last
// line-repeating one.
func (t *Transformer) CreateParsedTree(tree *abbrev.Node, syntax string, context *abbrev.Node) (*elements.ParsedElement, error) {
	root := elements.NewRoot(context, syntax, t.store)
	abbrev.Optimize(tree)

	for _, child := range tree.Children {
		if err := t.parseNodes(child, syntax, root); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func (t *Transformer) parseNodes(node *abbrev.Node, syntax string, parent *elements.ParsedElement) error {
	items, err := t.Resolve(node, syntax)
	if err != nil {
		return err
	}

	for _, item := range items {
		parsed, ok := item.(*elements.ParsedElement)
		if !ok {
			continue
		}

		parent.AddChild(parsed)

		root := parent.Root()
		root.Last = parsed
		if parsed.RepeatByLines {
			root.MultiplyElem = parsed
		}

		for _, child := range node.Children {
			if err := t.parseNodes(child, syntax, parsed); err != nil {
				return err
			}
		}
	}
	return nil
}

// Resolve matches node against the resolvers and vocabularies. Each returned
// item is a *elements.ParsedElement or *elements.Empty. A grouping node
// resolves to nothing.
func (t *Transformer) Resolve(node *abbrev.Node, syntax string) ([]elements.Resource, error) {
	if node.IsEmpty() {
		return nil, nil
	}

	result, err := t.store.MatchedResource(node, syntax)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", node.Name, err)
	}

	if result.IsList() {
		out := make([]elements.Resource, 0, len(result.Items()))
		for _, item := range result.Items() {
			data, err := t.recognize(node, syntax, item)
			if err != nil {
				return nil, err
			}
			if data == nil {
				return nil, fmt.Errorf("resolve %q: %w", node.Name, ErrUnparsedData)
			}
			out = append(out, data)
		}
		return out, nil
	}

	data, err := t.recognize(node, syntax, result.First())
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = t.NewParsedElement(node, syntax, nil)
	}
	return []elements.Resource{data}, nil
}

// recognize converts a resolver result into parsed form. It returns nil for
// variants that need no special handling here, such as references.
func (t *Transformer) recognize(node *abbrev.Node, syntax string, res elements.Resource) (elements.Resource, error) {
	switch r := res.(type) {
	case *elements.Snippet:
		return t.NewParsedSnippet(node, syntax, r), nil
	case *elements.Element:
		return t.NewParsedElement(node, syntax, r), nil
	case *elements.OutputNode:
		return nil, fmt.Errorf("resolve %q: %w", node.Name, ErrInternalNode)
	case *elements.ParsedElement, *elements.Empty:
		return r, nil
	default:
		return nil, nil
	}
}

// NewParsedElement builds a parsed element for node. Without an explicit
// element the abbreviation named after node is looked up.
func (t *Transformer) NewParsedElement(node *abbrev.Node, syntax string, elem *elements.Element) *elements.ParsedElement {
	if elem == nil && node != nil && node.Name != "" {
		if found, ok := t.store.Abbreviation(syntax, node.Name).(*elements.Element); ok {
			elem = found
		}
	}
	return elements.NewParsedElement(node, syntax, elem, t.store)
}

// NewParsedSnippet builds a parsed snippet for node. Without an explicit
// snippet the one named after node is looked up.
func (t *Transformer) NewParsedSnippet(node *abbrev.Node, syntax string, snippet *elements.Snippet) *elements.ParsedElement {
	if snippet == nil && node != nil {
		if found, ok := t.store.Snippet(syntax, node.Name).(*elements.Snippet); ok {
			snippet = found
		}
	}
	return elements.NewParsedSnippet(node, syntax, snippet, t.store)
}

// RolloutTree builds the output tree. An element with count N becomes N
// sibling nodes numbered from 1. A line-repeating element gets one copy per
// non-empty line of its paste content, each holding that line. Implicit
// names are resolved once the whole tree exists.
func RolloutTree(tree *elements.ParsedElement) *elements.OutputNode {
	root := elements.NewOutputNode(tree)
	rollout(tree, root)
	resolveImplicitNames(root)
	return root
}

func rollout(tree *elements.ParsedElement, parent *elements.OutputNode) {
	for _, child := range tree.Children {
		count := child.Count
		paste := child.PasteContent()

		var lines []string
		if child.RepeatByLines {
			lines = textutil.SplitByLines(paste, true)
			count = max(len(lines), 1)
		}

		for j := range count {
			elem := elements.NewOutputNode(child)
			parent.AddChild(elem)
			elem.Counter = j + 1

			if child.HasChildren() {
				rollout(child, elem)
			}

			switch {
			case child.RepeatByLines:
				var line string
				if j < len(lines) {
					line = lines[j]
				}
				elem.PasteContent(strings.TrimSpace(line))
			case paste != "":
				elem.PasteContent(strings.TrimSpace(paste))
			}
		}
	}
}

func resolveImplicitNames(node *elements.OutputNode) {
	for _, child := range node.Children {
		if child.HasImplicitName {
			child.Name = ImplicitName(node)
		}
		resolveImplicitNames(child)
	}
}
