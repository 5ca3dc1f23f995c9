// Package edittree is a position-tracked, in-place editable view over a
// single CSS rule or markup tag. A Container owns its source text and a
// list of name/value elements. Every change rewrites the source and shifts
// the stored offsets, so the tree stays valid across edits without being
// parsed again.
package edittree

import (
	"slices"

	"github.com/yaklabco/gozen/pkg/textrange"
)

// Style is the formatting around an element. It is captured from parsed
// elements and reused when new ones are added next to them.
type Style struct {
	// Before is the text between the previous element (or the container
	// name) and the element name.
	Before string
	// Separator sits between the name and the value.
	Separator string
	// Quote wraps the value on both sides.
	Quote string
}

// Options configure a container.
type Options struct {
	// Offset is the position of the source in its enclosing document.
	// Ranges requested as absolute include it.
	Offset int
	// Style is used for added elements that have no neighbour to copy from.
	Style Style
	// Terminator is written after every added element. Adding after an
	// element without one terminates it first.
	Terminator string
	// EmptyQuote wraps empty values that would otherwise be written bare,
	// which markup would read as a valueless attribute.
	EmptyQuote string
}

type containerPos struct {
	name         int
	contentStart int
}

// Container is an editable rule or tag.
type Container struct {
	source   string
	name     string
	pos      containerPos
	opts     Options
	children []*Element
}

// New creates a container over source. name is found at namePos and elements
// are added from contentStart on. Parsers call it and then Append the
// elements they find, finishing with CaptureStyle.
func New(source, name string, namePos, contentStart int, opts Options) *Container {
	return &Container{
		source: source,
		name:   name,
		pos:    containerPos{name: namePos, contentStart: contentStart},
		opts:   opts,
	}
}

// ElementSpec locates a parsed element in the container source. Value and
// End positions are -1 when absent.
type ElementSpec struct {
	Name     string
	NamePos  int
	Value    string
	ValuePos int
	Quote    string
	End      string
	EndPos   int
}

// Append adds an element found by a parser. It does not change the source.
func (c *Container) Append(spec ElementSpec) *Element {
	el := &Element{
		container: c,
		name:      spec.Name,
		value:     spec.Value,
		end:       spec.End,
		style:     c.opts.Style,
		pos: elementPos{
			name:  spec.NamePos,
			value: spec.ValuePos,
			end:   spec.EndPos,
		},
	}
	if spec.ValuePos >= 0 {
		el.style.Quote = spec.Quote
	}
	if el.pos.end < 0 {
		el.pos.end = el.valueEnd()
	}
	c.children = append(c.children, el)
	return el
}

// CaptureStyle records the formatting of every element from the source.
func (c *Container) CaptureStyle() {
	start := c.pos.contentStart
	for _, el := range c.children {
		if el.pos.name >= start {
			el.style.Before = c.source[start:el.pos.name]
		}
		if el.HasValue() {
			sepEnd := el.pos.value - len(el.style.Quote)
			if nameEnd := el.pos.name + len(el.name); sepEnd >= nameEnd {
				el.style.Separator = c.source[nameEnd:sepEnd]
			}
		}
		start = el.rangeEnd()
	}
}

// positions returns every stored offset in document order: the container
// name and content start, then name, value and end of each element.
func (c *Container) positions() []*int {
	out := make([]*int, 0, 2+3*len(c.children))
	out = append(out, &c.pos.name, &c.pos.contentStart)
	for _, el := range c.children {
		out = append(out, &el.pos.name, &el.pos.value, &el.pos.end)
	}
	return out
}

// updateSource replaces source[start:end] with value and shifts the stored
// offsets by the change in length. Offsets past end always move. An offset
// equal to end moves only when it comes after anchor in document order, so
// text inserted where several offsets meet lands right after anchor. A nil
// anchor moves every offset at end. Absent values (-1) are left alone.
func (c *Container) updateSource(value string, start, end int, anchor *int) {
	r := textrange.New(start, end)
	delta := len(value) - r.Len()

	after := anchor == nil
	for _, p := range c.positions() {
		if *p >= 0 && (*p > r.End || (*p == r.End && after)) {
			*p += delta
		}
		if p == anchor {
			after = true
		}
	}

	c.source = r.Replace(c.source, value)
}

// Source returns the current source text.
func (c *Container) Source() string {
	return c.source
}

func (c *Container) String() string {
	return c.source
}

// Offset returns the position of the source in its document.
func (c *Container) Offset() int {
	return c.opts.Offset
}

// Options returns the container options.
func (c *Container) Options() Options {
	return c.opts
}

func (c *Container) offset(absolute bool) int {
	if absolute {
		return c.opts.Offset
	}
	return 0
}

// Name returns the selector or tag name.
func (c *Container) Name() string {
	return c.name
}

// SetName renames the container.
func (c *Container) SetName(name string) {
	if name == c.name {
		return
	}
	c.updateSource(name, c.pos.name, c.pos.name+len(c.name), &c.pos.name)
	c.name = name
}

// NameRange returns the range of the container name.
func (c *Container) NameRange(absolute bool) textrange.Range {
	return textrange.FromLength(c.pos.name+c.offset(absolute), len(c.name))
}

// Range returns the range of the whole source.
func (c *Container) Range(absolute bool) textrange.Range {
	return textrange.FromLength(c.offset(absolute), len(c.source))
}

// ContentStart returns where the element list begins.
func (c *Container) ContentStart(absolute bool) int {
	return c.pos.contentStart + c.offset(absolute)
}

// List returns the elements in source order.
func (c *Container) List() []*Element {
	return slices.Clone(c.children)
}

// Len returns the number of elements.
func (c *Container) Len() int {
	return len(c.children)
}

// IndexOf returns the position of el in the list, or -1.
func (c *Container) IndexOf(el *Element) int {
	return slices.Index(c.children, el)
}

// Get returns the first element called name.
func (c *Container) Get(name string) *Element {
	for _, el := range c.children {
		if el.name == name {
			return el
		}
	}
	return nil
}

// GetIndex returns the element at index i, or nil.
func (c *Container) GetIndex(i int) *Element {
	if i < 0 || i >= len(c.children) {
		return nil
	}
	return c.children[i]
}

// GetAll returns every element whose name is one of names.
func (c *Container) GetAll(names ...string) []*Element {
	var out []*Element
	for _, el := range c.children {
		if slices.Contains(names, el.name) {
			out = append(out, el)
		}
	}
	return out
}

// Value returns the value of the first element called name.
func (c *Container) Value(name string) (string, bool) {
	el := c.Get(name)
	if el == nil {
		return "", false
	}
	return el.value, true
}

// Values returns the values of every element called name.
func (c *Container) Values(name string) []string {
	var out []string
	for _, el := range c.GetAll(name) {
		out = append(out, el.value)
	}
	return out
}

// SetValue updates the first element called name, adding it at the end when
// missing.
func (c *Container) SetValue(name, value string) *Element {
	if el := c.Get(name); el != nil {
		el.SetValue(value)
		return el
	}
	return c.Add(name, value)
}

// Add appends a new element.
func (c *Container) Add(name, value string) *Element {
	return c.Insert(len(c.children), name, value)
}

// Insert adds a new element at index pos, clamped to the list bounds. The
// element copies the style of the element it is inserted before, or after
// when it goes last.
func (c *Container) Insert(pos int, name, value string) *Element {
	pos = max(0, min(pos, len(c.children)))

	start := c.pos.contentStart
	style := c.opts.Style
	anchor := &c.pos.contentStart

	if pos > 0 {
		anchor = &c.children[pos-1].pos.end
	}
	if pos < len(c.children) {
		donor := c.children[pos]
		start = donor.FullRange(false).Start
		style = donor.style
	} else if pos > 0 {
		donor := c.children[pos-1]
		if c.opts.Terminator != "" {
			donor.SetEnd(c.opts.Terminator)
		}
		start = donor.rangeEnd()
		style = donor.style
	}
	if value == "" && style.Quote == "" {
		style.Quote = c.opts.EmptyQuote
	}

	nameStart := start + len(style.Before)
	valueStart := nameStart + len(name) + len(style.Separator) + len(style.Quote)
	el := &Element{
		container: c,
		name:      name,
		value:     value,
		end:       c.opts.Terminator,
		style:     style,
		pos: elementPos{
			name:  nameStart,
			value: valueStart,
			end:   valueStart + len(value) + len(style.Quote),
		},
	}

	c.updateSource(style.Before+el.String(), start, start, anchor)
	c.children = slices.Insert(c.children, pos, el)
	return el
}

// Remove deletes the first element called name.
func (c *Container) Remove(name string) bool {
	return c.RemoveElement(c.Get(name))
}

// RemoveIndex deletes the element at index i.
func (c *Container) RemoveIndex(i int) bool {
	return c.RemoveElement(c.GetIndex(i))
}

// RemoveElement deletes el together with its leading whitespace.
func (c *Container) RemoveElement(el *Element) bool {
	i := c.IndexOf(el)
	if el == nil || i < 0 {
		return false
	}
	r := el.FullRange(false)
	c.children = slices.Delete(c.children, i, i+1)
	c.updateSource("", r.Start, r.End, nil)
	el.container = nil
	return true
}

// ItemFromPosition returns the element whose range strictly contains pos.
func (c *Container) ItemFromPosition(pos int, absolute bool) *Element {
	for _, el := range c.children {
		if el.Range(absolute).Inside(pos) {
			return el
		}
	}
	return nil
}

// Option adjusts the options a parser starts from.
type Option func(*Options)

// WithOffset places the source at offset in its document.
func WithOffset(offset int) Option {
	return func(o *Options) {
		o.Offset = offset
	}
}

// WithStyle sets the style used when there is no neighbour to copy.
func WithStyle(style Style) Option {
	return func(o *Options) {
		o.Style = style
	}
}

// ApplyOptions applies opts over defaults.
func ApplyOptions(defaults Options, opts ...Option) Options {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}
