// Package abbrev parses abbreviations such as "div#page>ul.nav>li*3" into a
// tree of nodes.
package abbrev

import (
	"fmt"
	"strings"
)

// ImplicitName is the placeholder name given to nodes that carry attributes or
// text but no explicit name. The transform stage replaces it with a name that
// fits the parent element.
const ImplicitName = "div"

// Attribute is a single name/value pair in declaration order.
type Attribute struct {
	Name  string
	Value string
}

// Node is one abbreviation token in the parsed tree.
type Node struct {
	// Abbreviation is the raw token this node was built from. It is empty for
	// grouping nodes, which Optimize removes.
	Abbreviation string

	Name       string
	Attributes []Attribute

	// Text is the content of the first top-level {...} segment.
	Text    string
	HasText bool

	// Count is the multiplication factor, at least 1.
	Count int

	// IsRepeating is set by a bare "*": the real count comes from the number
	// of lines in pasted content.
	IsRepeating bool

	// HasImplicitName is set when the token had no name of its own.
	HasImplicitName bool

	Parent   *Node
	Children []*Node
}

// NewNode returns an empty node.
func NewNode() *Node {
	return &Node{Count: 1}
}

// AddChild appends child, or a new empty node when child is nil, and returns it.
func (n *Node) AddChild(child *Node) *Node {
	if child == nil {
		child = NewNode()
	}
	child.Parent = n
	n.Children = append(n.Children, child)
	return child
}

// IsEmpty reports whether the node exists only for grouping.
func (n *Node) IsEmpty() bool {
	return n.Abbreviation == ""
}

// IsTextNode reports whether the node carries text but no name.
func (n *Node) IsTextNode() bool {
	return n.Name == "" && n.HasText && n.Text != ""
}

// Attribute returns the value of the named attribute.
func (n *Node) Attribute(name string) (string, bool) {
	for _, attr := range n.Attributes {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Clone returns a deep copy of the subtree rooted at n. The copy has no parent.
func (n *Node) Clone() *Node {
	cp := *n
	cp.Parent = nil
	cp.Attributes = append([]Attribute(nil), n.Attributes...)
	cp.Children = make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		cp.AddChild(child.Clone())
	}
	return &cp
}

func (n *Node) hasEmptyChildren() bool {
	for _, child := range n.Children {
		if child.IsEmpty() {
			return true
		}
	}
	return false
}

// String dumps the subtree, one node per line, indented with '-' per level.
func (n *Node) String() string {
	var b strings.Builder
	n.dump(&b, 0)
	return b.String()
}

func (n *Node) dump(b *strings.Builder, level int) {
	b.WriteString(strings.Repeat("-", level))

	if n.IsEmpty() {
		b.WriteString("(empty)")
	} else {
		b.WriteString(n.Name)
		if n.HasText {
			if n.Name != "" {
				b.WriteByte(' ')
			}
			fmt.Fprintf(b, "{text: %q}", n.Text)
		}
		if len(n.Attributes) > 0 {
			attrs := make([]string, 0, len(n.Attributes))
			for _, attr := range n.Attributes {
				attrs = append(attrs, fmt.Sprintf("%s=%q", attr.Name, attr.Value))
			}
			b.WriteString(" [" + strings.Join(attrs, ", ") + "]")
		}
		if n.Count > 1 {
			fmt.Fprintf(b, " *%d", n.Count)
		}
	}
	b.WriteByte('\n')

	for _, child := range n.Children {
		child.dump(b, level+1)
	}
}
