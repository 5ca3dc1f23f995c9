package elements

import (
	"strings"

	"github.com/yaklabco/gozen/pkg/textutil"
)

// NodeType distinguishes output nodes built from tags and from snippets.
type NodeType int

const (
	NodeTag NodeType = iota
	NodeSnippet
)

// pastePlaceholder marks where pasted content goes inside an expansion.
const pastePlaceholder = "$#"

// OutputNode is one instance in the rolled-out output tree. Filters fill in
// Start, End and Padding and may rewrite Content and attribute values.
type OutputNode struct {
	Type NodeType

	Name            string
	RealName        string
	IsRepeating     bool
	RepeatByLines   bool
	HasImplicitName bool

	// Attributes is a private copy; siblings never share it.
	Attributes []Attribute

	// Counter is the 1-based index among the copies of a repeated element.
	Counter int

	Content string
	Start   string
	End     string
	Padding string

	Source *ParsedElement

	Parent          *OutputNode
	PreviousSibling *OutputNode
	NextSibling     *OutputNode
	Children        []*OutputNode
}

// NewOutputNode creates an output node from a parsed element.
func NewOutputNode(src *ParsedElement) *OutputNode {
	n := &OutputNode{
		Type:            NodeTag,
		Counter:         1,
		Name:            src.Name,
		RealName:        src.RealName,
		IsRepeating:     src.IsRepeating,
		RepeatByLines:   src.RepeatByLines,
		HasImplicitName: src.HasImplicitName,
		Content:         src.Content(),
		Source:          src,
	}
	if src.IsSnippet {
		n.Type = NodeSnippet
	}
	if attrs := src.Attributes(); len(attrs) > 0 {
		n.Attributes = make([]Attribute, len(attrs))
		copy(n.Attributes, attrs)
	}
	return n
}

// Kind reports KindOutputNode.
func (*OutputNode) Kind() Kind { return KindOutputNode }

func (*OutputNode) isResource() {}

// AddChild appends child and links it to its previous sibling.
func (n *OutputNode) AddChild(child *OutputNode) {
	child.Parent = n
	if len(n.Children) > 0 {
		last := n.Children[len(n.Children)-1]
		child.PreviousSibling = last
		last.NextSibling = child
	}
	n.Children = append(n.Children, child)
}

// Attribute returns the value of the named attribute, compared case
// insensitively.
func (n *OutputNode) Attribute(name string) (string, bool) {
	if i := n.attrIndex(name); i >= 0 {
		return n.Attributes[i].Value, true
	}
	return "", false
}

// SetAttribute updates an existing attribute. Unknown names are ignored.
func (n *OutputNode) SetAttribute(name, value string) {
	if i := n.attrIndex(name); i >= 0 {
		n.Attributes[i].Value = value
	}
}

// RemoveAttribute drops the named attribute.
func (n *OutputNode) RemoveAttribute(name string) {
	if i := n.attrIndex(name); i >= 0 {
		n.Attributes = append(n.Attributes[:i], n.Attributes[i+1:]...)
	}
}

func (n *OutputNode) attrIndex(name string) int {
	for i, attr := range n.Attributes {
		if strings.EqualFold(attr.Name, name) {
			return i
		}
	}
	return -1
}

func (n *OutputNode) inCollection(collection string) bool {
	if n.Source == nil || n.Source.types == nil {
		return false
	}
	return n.Source.types.IsItemInCollection(n.Source.Syntax, collection, n.Name)
}

// IsUnary reports whether the element has no closing tag.
func (n *OutputNode) IsUnary() bool {
	if n.Type == NodeSnippet {
		return false
	}
	if elem, ok := n.Source.Resource.(*Element); ok && elem.IsEmpty {
		return true
	}
	return n.inCollection("empty")
}

// IsInline reports whether the element is inline-level. Nodes without a
// source name, such as text nodes and the root, count as inline.
func (n *OutputNode) IsInline() bool {
	if n.Source == nil || n.Source.Name == "" {
		return true
	}
	return n.inCollection("inline_level")
}

// IsBlock reports whether the element is block-level. Snippets always are.
func (n *OutputNode) IsBlock() bool {
	return n.Type == NodeSnippet || !n.IsInline()
}

// RepeatCounter returns the counter that "$" stands for inside n: its own
// when n is repeated, otherwise that of the nearest repeated ancestor.
func (n *OutputNode) RepeatCounter() int {
	if n.IsRepeating || n.RepeatByLines {
		return n.Counter
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.IsRepeating || p.RepeatByLines {
			return p.Counter
		}
	}
	return n.Counter
}

// HasChildren reports whether n has child nodes.
func (n *OutputNode) HasChildren() bool {
	return len(n.Children) > 0
}

// HasTagsInContent reports whether the text content ends with markup.
func (n *OutputNode) HasTagsInContent() bool {
	return textutil.EndsWithTag(n.Content)
}

// HasBlockChildren reports whether any child is block-level, or the content
// itself holds markup inside a block element.
func (n *OutputNode) HasBlockChildren() bool {
	if n.HasTagsInContent() && n.IsBlock() {
		return true
	}
	for _, child := range n.Children {
		if child.IsBlock() {
			return true
		}
	}
	return false
}

// FindDeepestChild follows the last child down to a leaf. It returns nil when
// n has no children.
func (n *OutputNode) FindDeepestChild() *OutputNode {
	if len(n.Children) == 0 {
		return nil
	}
	deepest := n
	for len(deepest.Children) > 0 {
		deepest = deepest.Children[len(deepest.Children)-1]
	}
	return deepest
}

// Walk visits n and its descendants depth first, parents before children.
func (n *OutputNode) Walk(fn func(node *OutputNode)) {
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// String concatenates the output strings of the subtree.
func (n *OutputNode) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *OutputNode) write(b *strings.Builder) {
	b.WriteString(n.Start)
	b.WriteString(n.Content)
	for _, child := range n.Children {
		child.write(b)
	}
	b.WriteString(n.End)
}

// HasOutputPlaceholder reports whether the content or an attribute value
// contains an unescaped "$#".
func (n *OutputNode) HasOutputPlaceholder() bool {
	if textutil.HasUnescaped(n.Content, pastePlaceholder) {
		return true
	}
	for _, attr := range n.Attributes {
		if textutil.HasUnescaped(attr.Value, pastePlaceholder) {
			return true
		}
	}
	return false
}

// PasteContent inserts text into the subtree. Every "$#" placeholder in n and
// its descendants is replaced with text; when there is none, text is appended
// to the content of the deepest last descendant, or n itself.
func (n *OutputNode) PasteContent(text string) {
	var targets []*OutputNode
	n.Walk(func(node *OutputNode) {
		if node.HasOutputPlaceholder() {
			targets = append(targets, node)
		}
	})

	if len(targets) == 0 {
		target := n.FindDeepestChild()
		if target == nil {
			target = n
		}
		target.Content += text
		return
	}

	for _, node := range targets {
		node.Content = textutil.ReplaceUnescaped(node.Content, pastePlaceholder, text)
		for i := range node.Attributes {
			node.Attributes[i].Value = textutil.ReplaceUnescaped(node.Attributes[i].Value, pastePlaceholder, text)
		}
	}
}
