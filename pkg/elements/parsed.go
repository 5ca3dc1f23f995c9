package elements

import (
	"github.com/yaklabco/gozen/pkg/abbrev"
	"github.com/yaklabco/gozen/pkg/textutil"
)

// ElementTypes answers membership questions about the element_types
// collections ("empty", "inline_level", "block_level") of a syntax.
type ElementTypes interface {
	IsItemInCollection(syntax, collection, item string) bool
}

// ParsedElement is an abbreviation node matched against a resource. It is the
// intermediate form between the abbreviation tree and the output tree.
type ParsedElement struct {
	// Resource is the matched *Element or *Snippet, or nil.
	Resource Resource

	Name     string
	RealName string
	Syntax   string
	Count    int

	RepeatByLines   bool
	IsRepeating     bool
	HasImplicitName bool

	// IsSnippet marks elements built from snippets; Value holds the template.
	IsSnippet bool
	Value     string

	IsRoot bool
	// Last and MultiplyElem are tracked on the root only: the most recently
	// added element and the last line-repeating one.
	Last         *ParsedElement
	MultiplyElem *ParsedElement

	Parent   *ParsedElement
	Children []*ParsedElement

	attributes   []Attribute
	content      string
	pasteContent string
	types        ElementTypes
}

// Kind reports KindParsedSnippet for snippets and KindParsedElement otherwise.
func (p *ParsedElement) Kind() Kind {
	if p.IsSnippet {
		return KindParsedSnippet
	}
	return KindParsedElement
}

func (*ParsedElement) isResource() {}

func newParsed(node *abbrev.Node, syntax string, res Resource, types ElementTypes) *ParsedElement {
	if node == nil {
		node = abbrev.NewNode()
	}

	p := &ParsedElement{
		Resource:        res,
		Name:            node.Name,
		RealName:        node.Name,
		Syntax:          syntax,
		Count:           max(node.Count, 1),
		RepeatByLines:   node.IsRepeating,
		IsRepeating:     node.Count > 1,
		HasImplicitName: node.HasImplicitName,
		types:           types,
	}
	if elem, ok := res.(*Element); ok {
		p.Name = elem.Name
	}
	p.SetContent(node.Text)

	return p
}

// NewParsedElement builds a parsed element for node. Attributes come from the
// element definition first, then from the abbreviation, so that abbreviation
// values win and classes accumulate.
func NewParsedElement(node *abbrev.Node, syntax string, elem *Element, types ElementTypes) *ParsedElement {
	var res Resource
	if elem != nil {
		res = elem
	}

	p := newParsed(node, syntax, res, types)
	if elem != nil {
		for _, attr := range elem.Attributes {
			p.AddAttribute(attr.Name, attr.Value)
		}
	}
	p.copyNodeAttributes(node)

	return p
}

// NewParsedSnippet builds a parsed element from a snippet template.
func NewParsedSnippet(node *abbrev.Node, syntax string, snippet *Snippet, types ElementTypes) *ParsedElement {
	var res Resource
	if snippet != nil {
		res = snippet
	}

	p := newParsed(node, syntax, res, types)
	p.IsSnippet = true
	if snippet != nil {
		p.Value = textutil.ReplaceUnescaped(snippet.Data, "|", textutil.CaretPlaceholder)
	}

	p.AddAttribute("id", textutil.CaretPlaceholder)
	p.AddAttribute("class", textutil.CaretPlaceholder)
	p.copyNodeAttributes(node)

	return p
}

// NewRoot returns the synthetic root of a parsed tree. The optional context
// node describes the element the abbreviation is expanded in.
func NewRoot(context *abbrev.Node, syntax string, types ElementTypes) *ParsedElement {
	p := newParsed(context, syntax, nil, types)
	p.IsRoot = true
	return p
}

func (p *ParsedElement) copyNodeAttributes(node *abbrev.Node) {
	if node == nil {
		return
	}
	for _, attr := range node.Attributes {
		p.AddAttribute(attr.Name, attr.Value)
	}
}

// AddChild appends child and sets its parent.
func (p *ParsedElement) AddChild(child *ParsedElement) {
	child.Parent = p
	p.Children = append(p.Children, child)
}

// HasChildren reports whether p has child elements.
func (p *ParsedElement) HasChildren() bool {
	return len(p.Children) > 0
}

// AddAttribute adds or updates an attribute. A repeated "class" is appended,
// space separated; any other repeated name is overwritten. An unescaped "|"
// in value becomes the caret placeholder.
func (p *ParsedElement) AddAttribute(name, value string) {
	value = textutil.ReplaceUnescaped(value, "|", textutil.CaretPlaceholder)

	for i := range p.attributes {
		attr := &p.attributes[i]
		if attr.Name != name {
			continue
		}
		if name == "class" {
			if attr.Value != "" {
				attr.Value += " "
			}
			attr.Value += value
		} else {
			attr.Value = value
		}
		return
	}

	p.attributes = append(p.attributes, Attribute{Name: name, Value: value})
}

// Attributes returns the attributes in declaration order.
func (p *ParsedElement) Attributes() []Attribute {
	return p.attributes
}

// Attribute returns the value of the named attribute.
func (p *ParsedElement) Attribute(name string) (string, bool) {
	for _, attr := range p.attributes {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// SetContent sets the text content. An unescaped "|" becomes the caret
// placeholder.
func (p *ParsedElement) SetContent(text string) {
	p.content = textutil.ReplaceUnescaped(text, "|", textutil.CaretPlaceholder)
}

// Content returns the text content.
func (p *ParsedElement) Content() string {
	return p.content
}

// SetPasteContent stores text to be pasted into the output, escaped so that
// it is not treated as a template.
func (p *ParsedElement) SetPasteContent(text string) {
	p.pasteContent = textutil.EscapeText(text)
}

// PasteContent returns the escaped paste content.
func (p *ParsedElement) PasteContent() string {
	return p.pasteContent
}

// Types returns the element type collections the element was built with.
func (p *ParsedElement) Types() ElementTypes {
	return p.types
}

// FindDeepestChild follows the last child down to a leaf. It returns nil when
// p has no children.
func (p *ParsedElement) FindDeepestChild() *ParsedElement {
	if len(p.Children) == 0 {
		return nil
	}
	deepest := p
	for len(deepest.Children) > 0 {
		deepest = deepest.Children[len(deepest.Children)-1]
	}
	return deepest
}

// Root walks up to the topmost ancestor.
func (p *ParsedElement) Root() *ParsedElement {
	root := p
	for root.Parent != nil {
		root = root.Parent
	}
	return root
}
