// Package filters turns an output tree into text. Each filter walks the tree
// and fills in or rewrites the Start, End and Content strings of its nodes.
// Filters run in list order, so later ones see the output of earlier ones.
package filters

import (
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/yaklabco/gozen/pkg/elements"
	"github.com/yaklabco/gozen/pkg/profile"
)

// Names of the built-in filters.
const (
	NameFormat     = "_format"
	NameHTML       = "html"
	NameSingleLine = "s"
	NameTrim       = "t"
	NameXSL        = "xsl"
	NameEscape     = "e"
	NameComment    = "c"
	NameFormatCSS  = "fc"
)

// basicFilters is used when a syntax declares no usable filters.
const basicFilters = NameHTML

//nolint:gochecknoglobals // compiled once
var (
	reListSep      = regexp.MustCompile(`[|,]`)
	reFilterSuffix = regexp.MustCompile(`\|([\w|\-]+)$`)
)

// Variables looks up resource variables such as "newline".
type Variables interface {
	Variable(name string) (string, bool)
}

// Source provides the default filter list of a syntax.
type Source interface {
	Filters(syntax string) string
}

// Context is what a filter gets besides the tree.
type Context struct {
	Profile   profile.Profile
	Syntax    string
	Variables Variables
}

func (c *Context) lookup(name string) (string, bool) {
	if c.Variables == nil {
		return "", false
	}
	return c.Variables.Variable(name)
}

func (c *Context) variable(name, fallback string) string {
	if value, ok := c.lookup(name); ok {
		return value
	}
	return fallback
}

func (c *Context) newline() string {
	return c.variable("newline", "\n")
}

func (c *Context) indentation() string {
	if !c.Profile.Indent {
		return ""
	}
	return c.variable("indentation", "\t")
}

// Filter transforms an output tree in place.
type Filter interface {
	Apply(tree *elements.OutputNode, ctx *Context)
}

// Func adapts a function to the Filter interface.
type Func func(tree *elements.OutputNode, ctx *Context)

// Apply calls f.
func (f Func) Apply(tree *elements.OutputNode, ctx *Context) {
	f(tree, ctx)
}

// Registry holds named filters.
type Registry struct {
	mu      sync.RWMutex
	filters map[string]Filter
}

// NewRegistry returns a registry holding the built-in filters.
func NewRegistry() *Registry {
	r := &Registry{filters: make(map[string]Filter)}
	r.Add(NameFormat, Func(Format))
	r.Add(NameHTML, Func(HTML))
	r.Add(NameSingleLine, Func(SingleLine))
	r.Add(NameTrim, Func(Trim))
	r.Add(NameXSL, Func(XSL))
	r.Add(NameEscape, Func(Escape))
	r.Add(NameComment, Func(Comment))
	r.Add(NameFormatCSS, Func(FormatCSS))
	return r
}

// Add registers f under name, replacing any filter of that name.
func (r *Registry) Add(name string, f Filter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters[normalize(name)] = f
}

// Get returns the filter called name.
func (r *Registry) Get(name string) (Filter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.filters[normalize(name)]
	return f, ok
}

// Names returns the registered filter names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := lo.Keys(r.filters)
	slices.Sort(names)
	return names
}

// Apply runs the named filters over tree in order. Unknown names are
// skipped.
func (r *Registry) Apply(tree *elements.OutputNode, names []string, ctx *Context) *elements.OutputNode {
	for _, name := range names {
		if f, ok := r.Get(name); ok {
			f.Apply(tree, ctx)
		}
	}
	return tree
}

// ComposeList builds the filter list for an expansion: the profile filters,
// or else the syntax filters from src, followed by extra. Names that are not
// registered are dropped. When nothing is left the basic html filter is
// used.
func (r *Registry) ComposeList(src Source, syntax string, p profile.Profile, extra ...string) []string {
	base := p.Filters
	if base == "" && src != nil {
		base = src.Filters(syntax)
	}

	names := append(List(base), extra...)
	names = lo.Filter(names, func(name string, _ int) bool {
		_, ok := r.Get(name)
		return ok
	})
	if len(names) == 0 {
		return List(basicFilters)
	}
	return lo.Map(names, func(name string, _ int) string { return normalize(name) })
}

// Unknown returns the names, normalized and without repeats, that have no
// registered filter.
func (r *Registry) Unknown(names ...string) []string {
	var out []string
	for _, name := range names {
		name = normalize(name)
		if name == "" || slices.Contains(out, name) {
			continue
		}
		if _, ok := r.Get(name); !ok {
			out = append(out, name)
		}
	}
	return out
}

// List splits a filter list written as "a|b" or "a,b".
func List(filters string) []string {
	if strings.TrimSpace(filters) == "" {
		return nil
	}
	return lo.FilterMap(reListSep.Split(filters, -1), func(name string, _ int) (string, bool) {
		name = normalize(name)
		return name, name != ""
	})
}

// ExtractFromAbbreviation splits a trailing filter suffix off abbr, so that
// "ul>li|e|s" yields "ul>li" and [e s].
func ExtractFromAbbreviation(abbr string) (string, []string) {
	m := reFilterSuffix.FindStringSubmatchIndex(abbr)
	if m == nil {
		return abbr, nil
	}
	return abbr[:m[0]], List(abbr[m[2]:m[3]])
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
