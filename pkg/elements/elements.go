// Package elements defines the resources an abbreviation can resolve to and
// the intermediate and output trees built from them.
package elements

import (
	"regexp"
)

// Kind identifies a resource variant.
type Kind int

const (
	KindElement Kind = iota
	KindSnippet
	KindExpando
	KindReference
	KindEmpty
	KindParsedElement
	KindParsedSnippet
	KindOutputNode
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindSnippet:
		return "snippet"
	case KindExpando:
		return "expando"
	case KindReference:
		return "reference"
	case KindEmpty:
		return "empty"
	case KindParsedElement:
		return "parsedElement"
	case KindParsedSnippet:
		return "parsedSnippet"
	case KindOutputNode:
		return "outputNode"
	default:
		return "unknown"
	}
}

// Resource is the closed set of values a vocabulary lookup or a resolver can
// produce. Only types in this package implement it.
type Resource interface {
	Kind() Kind
	isResource()
}

// Attribute is a name/value pair. Order is significant.
type Attribute struct {
	Name  string
	Value string
}

// Element is a tag definition such as <a href="">.
type Element struct {
	Name       string
	Attributes []Attribute
	// IsEmpty marks tags written as <br/> in the vocabulary.
	IsEmpty bool
}

// Snippet is a literal template, possibly with a ${child} marker.
type Snippet struct {
	Data string
}

// Expando is an abbreviation that expands into another abbreviation, for
// example "ul+" into "ul>li".
type Expando struct {
	Data string
}

// Reference points to another abbreviation by name.
type Reference struct {
	Data string
}

// Empty is a resolver result that produces no output.
type Empty struct{}

func (*Element) Kind() Kind   { return KindElement }
func (*Snippet) Kind() Kind   { return KindSnippet }
func (*Expando) Kind() Kind   { return KindExpando }
func (*Reference) Kind() Kind { return KindReference }
func (*Empty) Kind() Kind     { return KindEmpty }

func (*Element) isResource()   {}
func (*Snippet) isResource()   {}
func (*Expando) isResource()   {}
func (*Reference) isResource() {}
func (*Empty) isResource()     {}

var attrPattern = regexp.MustCompile(`([\w\-]+)\s*=\s*(?:"([^"]*)"|'([^']*)')`) //nolint:gochecknoglobals // compiled once

// NewElement builds an element from a tag name and a raw attribute string
// such as ` href="" title='x'`.
func NewElement(name, attrs string, isEmpty bool) *Element {
	elem := &Element{Name: name, IsEmpty: isEmpty}
	for _, m := range attrPattern.FindAllStringSubmatch(attrs, -1) {
		elem.Attributes = append(elem.Attributes, Attribute{Name: m[1], Value: m[2] + m[3]})
	}
	return elem
}

// Result is what a resolver returns: nothing, a single resource, or a list.
// A list is held to a stricter contract by the transform stage: every item
// must already be a recognized variant.
type Result struct {
	items []Resource
	list  bool
}

// None is the zero result: the resolver did not claim the node.
func None() Result {
	return Result{}
}

// Single wraps one resource. A nil resource yields None.
func Single(r Resource) Result {
	if r == nil {
		return Result{}
	}
	return Result{items: []Resource{r}}
}

// List wraps resources produced together, such as a generated subtree.
func List(rs ...Resource) Result {
	return Result{items: rs, list: true}
}

// IsZero reports whether the result claims nothing.
func (r Result) IsZero() bool {
	return !r.list && len(r.items) == 0
}

// IsList reports whether the result was built with List.
func (r Result) IsList() bool {
	return r.list
}

// Items returns the wrapped resources.
func (r Result) Items() []Resource {
	return r.items
}

// First returns the single wrapped resource, or nil.
func (r Result) First() Resource {
	if len(r.items) == 0 {
		return nil
	}
	return r.items[0]
}
