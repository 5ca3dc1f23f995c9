package edittree

import (
	"github.com/yaklabco/gozen/pkg/textrange"
)

type elementPos struct {
	name  int
	value int
	end   int
}

// Element is a name/value pair inside a container: a CSS declaration or a
// tag attribute. Positions are relative to the container source.
type Element struct {
	container *Container
	name      string
	value     string
	end       string
	style     Style
	pos       elementPos
}

// Name returns the element name.
func (e *Element) Name() string {
	return e.name
}

// SetName renames the element in the source.
func (e *Element) SetName(name string) {
	if e.container == nil || name == e.name {
		return
	}
	e.container.updateSource(name, e.pos.name, e.pos.name+len(e.name), &e.pos.name)
	e.name = name
}

// Value returns the element value without quotes.
func (e *Element) Value() string {
	return e.value
}

// HasValue reports whether the element has a value in the source. Boolean
// attributes such as "disabled" do not.
func (e *Element) HasValue() bool {
	return e.pos.value >= 0
}

// SetValue changes the value in the source. An element without a value gets
// one written after its name using its style.
func (e *Element) SetValue(value string) {
	if e.container == nil {
		return
	}

	if !e.HasValue() {
		quote := e.quoteFor(value)
		nameEnd := e.pos.name + len(e.name)
		insert := e.style.Separator + quote + value + quote
		e.container.updateSource(insert, nameEnd, nameEnd, &e.pos.name)
		e.style.Quote = quote
		e.pos.value = nameEnd + len(e.style.Separator) + len(quote)
		e.value = value
		return
	}

	if value == e.value {
		return
	}
	if quote := e.quoteFor(value); quote != e.style.Quote {
		start := e.pos.value - len(e.style.Quote)
		end := e.pos.value + len(e.value) + len(e.style.Quote)
		e.container.updateSource(quote+value+quote, start, end, &e.pos.value)
		e.style.Quote = quote
		e.pos.value = start + len(quote)
		e.value = value
		return
	}
	e.container.updateSource(value, e.pos.value, e.pos.value+len(e.value), &e.pos.value)
	e.value = value
}

// quoteFor returns the quote to write around value.
func (e *Element) quoteFor(value string) string {
	if value == "" && e.style.Quote == "" {
		return e.container.opts.EmptyQuote
	}
	return e.style.Quote
}

// End returns the terminator written after the value, such as ";".
func (e *Element) End() string {
	return e.end
}

// SetEnd changes the terminator.
func (e *Element) SetEnd(end string) {
	if e.container == nil || end == e.end {
		return
	}
	e.container.updateSource(end, e.pos.end, e.pos.end+len(e.end), &e.pos.end)
	e.end = end
}

// Style returns the captured formatting.
func (e *Element) Style() Style {
	return e.style
}

// SetStyle replaces the formatting used when elements are added next to e.
// The source is not changed.
func (e *Element) SetStyle(style Style) {
	e.style = style
}

func (e *Element) offset(absolute bool) int {
	if e.container == nil {
		return 0
	}
	return e.container.offset(absolute)
}

// NameRange returns the range of the name.
func (e *Element) NameRange(absolute bool) textrange.Range {
	return textrange.FromLength(e.pos.name+e.offset(absolute), len(e.name))
}

// ValueRange returns the range of the value without quotes. An element
// without a value reports an empty range at the end of its name.
func (e *Element) ValueRange(absolute bool) textrange.Range {
	if !e.HasValue() {
		return textrange.FromLength(e.pos.name+len(e.name)+e.offset(absolute), 0)
	}
	return textrange.FromLength(e.pos.value+e.offset(absolute), len(e.value))
}

// Range returns the range from the name to the terminator.
func (e *Element) Range(absolute bool) textrange.Range {
	off := e.offset(absolute)
	return textrange.New(e.pos.name+off, e.rangeEnd()+off)
}

// FullRange is Range extended back over the leading whitespace.
func (e *Element) FullRange(absolute bool) textrange.Range {
	r := e.Range(absolute)
	return textrange.New(r.Start-len(e.style.Before), r.End)
}

// Index returns the position of e in its container, or -1 once removed.
func (e *Element) Index() int {
	if e.container == nil {
		return -1
	}
	return e.container.IndexOf(e)
}

// Remove deletes e from its container.
func (e *Element) Remove() bool {
	if e.container == nil {
		return false
	}
	return e.container.RemoveElement(e)
}

// String formats the element with its style, as written by Add.
func (e *Element) String() string {
	if !e.HasValue() {
		return e.name + e.end
	}
	return e.name + e.style.Separator + e.style.Quote + e.value + e.style.Quote + e.end
}

func (e *Element) valueEnd() int {
	if !e.HasValue() {
		return e.pos.name + len(e.name)
	}
	return e.pos.value + len(e.value) + len(e.style.Quote)
}

func (e *Element) rangeEnd() int {
	if e.end != "" {
		return e.pos.end + len(e.end)
	}
	return e.valueEnd()
}
