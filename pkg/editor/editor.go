// Package editor defines what the engine needs from a host text editor and
// provides an in-memory implementation used by the CLI and in tests.
package editor

import (
	"strings"
	"unicode"

	"github.com/yaklabco/gozen/pkg/tabstops"
	"github.com/yaklabco/gozen/pkg/textrange"
	"github.com/yaklabco/gozen/pkg/textutil"
)

// Editor is a host editor buffer with a caret and a selection.
type Editor interface {
	Content() string
	// SelectionRange returns the selection, or an empty range at the caret.
	SelectionRange() textrange.Range
	CaretPos() int
	SetCaretPos(pos int)
	// ReplaceContent replaces content[start:end] with text. Text may hold tab
	// stops, which the editor turns into edit regions. Unless noIndent is
	// set, new lines in text are indented like the current line.
	ReplaceContent(text string, start, end int, noIndent bool)
	CreateSelection(start, end int)
	Syntax() string
	ProfileName() string
	CurrentLine() string
	CurrentLineRange() textrange.Range
	// Prompt asks the user for a value. ok is false when the user cancels.
	Prompt(message string) (value string, ok bool)
}

// Buffer is an in-memory Editor.
type Buffer struct {
	content   string
	selection textrange.Range
	syntax    string
	profile   string
	newline   string
	prompt    func(message string) (string, bool)
	last      tabstops.Result
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithSyntax sets the buffer syntax.
func WithSyntax(syntax string) Option {
	return func(b *Buffer) { b.syntax = syntax }
}

// WithProfile sets the output profile name.
func WithProfile(name string) Option {
	return func(b *Buffer) { b.profile = name }
}

// WithCaret places the caret at pos.
func WithCaret(pos int) Option {
	return func(b *Buffer) { b.selection = textrange.FromLength(pos, 0) }
}

// WithSelection selects content[start:end].
func WithSelection(start, end int) Option {
	return func(b *Buffer) { b.selection = textrange.New(start, end) }
}

// WithPrompt sets the function answering Prompt.
func WithPrompt(fn func(message string) (string, bool)) Option {
	return func(b *Buffer) { b.prompt = fn }
}

// WithNewline sets the newline used when indenting replaced text.
func WithNewline(newline string) Option {
	return func(b *Buffer) { b.newline = newline }
}

// NewBuffer returns a buffer holding content with the caret at its end.
func NewBuffer(content string, opts ...Option) *Buffer {
	b := &Buffer{
		content:   content,
		selection: textrange.FromLength(len(content), 0),
		syntax:    "html",
		profile:   "xhtml",
		newline:   "\n",
	}
	for _, opt := range opts {
		opt(b)
	}
	b.selection = b.clamp(b.selection)
	return b
}

func (b *Buffer) clamp(r textrange.Range) textrange.Range {
	start := max(0, min(r.Start, len(b.content)))
	end := max(start, min(r.End, len(b.content)))
	return textrange.New(start, end)
}

// Content returns the buffer text.
func (b *Buffer) Content() string { return b.content }

// SelectionRange returns the selection.
func (b *Buffer) SelectionRange() textrange.Range { return b.selection }

// CaretPos returns the caret offset.
func (b *Buffer) CaretPos() int { return b.selection.End }

// SetCaretPos moves the caret and clears the selection.
func (b *Buffer) SetCaretPos(pos int) {
	b.selection = b.clamp(textrange.FromLength(pos, 0))
}

// CreateSelection selects content[start:end].
func (b *Buffer) CreateSelection(start, end int) {
	b.selection = b.clamp(textrange.New(start, end))
}

// Syntax returns the buffer syntax.
func (b *Buffer) Syntax() string { return b.syntax }

// ProfileName returns the output profile name.
func (b *Buffer) ProfileName() string { return b.profile }

// CurrentLineRange returns the line holding the caret, without its line
// break.
func (b *Buffer) CurrentLineRange() textrange.Range {
	caret := b.CaretPos()
	start := strings.LastIndexAny(b.content[:caret], "\r\n") + 1
	end := len(b.content)
	if i := strings.IndexAny(b.content[caret:], "\r\n"); i >= 0 {
		end = caret + i
	}
	return textrange.New(start, end)
}

// CurrentLine returns the text of the line holding the caret.
func (b *Buffer) CurrentLine() string {
	return b.CurrentLineRange().Substring(b.content)
}

// Prompt answers with the configured prompt function. Without one it
// reports a cancel.
func (b *Buffer) Prompt(message string) (string, bool) {
	if b.prompt == nil {
		return "", false
	}
	return b.prompt(message)
}

// ReplaceContent replaces content[start:end] with text. Tab stops are
// extracted; the caret goes to the first caret mark or tab stop and, when
// that stop has placeholder text, the placeholder is selected.
func (b *Buffer) ReplaceContent(text string, start, end int, noIndent bool) {
	r := b.clamp(textrange.New(start, end))

	if !noIndent {
		text = textutil.PadString(text, linePadding(b.CurrentLine()), b.newline)
	}

	res := tabstops.Extract(text)
	b.content = r.Replace(b.content, res.Text)
	b.last = res

	caret := r.Start + res.CaretPos()
	b.selection = textrange.FromLength(caret, 0)
	for _, ts := range res.TabStops {
		if !ts.Caret && ts.Start == res.CaretPos() && ts.End > ts.Start {
			b.selection = textrange.New(r.Start+ts.Start, r.Start+ts.End)
			break
		}
	}
}

// TabStops returns the tab stops of the last ReplaceContent call, relative
// to the start of the replaced range.
func (b *Buffer) TabStops() tabstops.Result {
	return b.last
}

// linePadding returns the leading whitespace of line.
func linePadding(line string) string {
	return line[:len(line)-len(strings.TrimLeftFunc(line, unicode.IsSpace))]
}
