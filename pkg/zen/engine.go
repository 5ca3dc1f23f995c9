// Package zen wires the expansion pipeline together. An Engine owns the
// resource store, the transformer, the built-in generators, the output
// profiles and the filters, and exposes the operations a host editor calls.
package zen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gozen/internal/logging"
	"github.com/yaklabco/gozen/pkg/abbrev"
	"github.com/yaklabco/gozen/pkg/elements"
	"github.com/yaklabco/gozen/pkg/filters"
	"github.com/yaklabco/gozen/pkg/generators"
	"github.com/yaklabco/gozen/pkg/profile"
	"github.com/yaklabco/gozen/pkg/resources"
	"github.com/yaklabco/gozen/pkg/tabstops"
	"github.com/yaklabco/gozen/pkg/textutil"
	"github.com/yaklabco/gozen/pkg/transform"
)

// Engine expands abbreviations. It is safe for concurrent use as long as the
// registries it holds are only changed through their own methods.
type Engine struct {
	store       *resources.Store
	transformer *transform.Transformer
	generators  *generators.Installed
	profiles    *profile.Registry
	filters     *filters.Registry
	logger      *log.Logger
}

type options struct {
	store        *resources.Store
	profiles     *profile.Registry
	filters      *filters.Registry
	logger       *log.Logger
	lipsum       []generators.LipsumOption
	noGenerators bool
}

// Option configures an Engine.
type Option func(*options)

// WithStore uses store instead of a store holding the default vocabulary.
func WithStore(store *resources.Store) Option {
	return func(o *options) { o.store = store }
}

// WithProfiles uses reg instead of the built-in profiles.
func WithProfiles(reg *profile.Registry) Option {
	return func(o *options) { o.profiles = reg }
}

// WithFilters uses reg instead of the built-in filters.
func WithFilters(reg *filters.Registry) Option {
	return func(o *options) { o.filters = reg }
}

// WithLogger sets the logger for debug output. The default discards it.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithLipsumOptions passes opts to the lorem ipsum generator.
func WithLipsumOptions(opts ...generators.LipsumOption) Option {
	return func(o *options) { o.lipsum = append(o.lipsum, opts...) }
}

// WithoutGenerators leaves the built-in resolvers out.
func WithoutGenerators() Option {
	return func(o *options) { o.noGenerators = true }
}

// New builds an engine. Components are created leaves first: the store, then
// the transformer over it, the generators registered with it, and finally
// the profiles and filters that render its output.
func New(opts ...Option) *Engine {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		store:    o.store,
		profiles: o.profiles,
		filters:  o.filters,
		logger:   o.logger,
	}
	if e.logger == nil {
		e.logger = logging.Discard()
	}
	if e.store == nil {
		e.store = resources.NewStore()
	}

	e.transformer = transform.New(e.store)
	if !o.noGenerators {
		e.generators = generators.Install(e.transformer, o.lipsum...)
		e.logger.Debug("installed generators", logging.FieldResolver, len(e.generators.Resolvers))
	}

	if e.profiles == nil {
		e.profiles = profile.NewRegistry()
	}
	if e.filters == nil {
		e.filters = filters.NewRegistry()
	}

	return e
}

// Store returns the resource store.
func (e *Engine) Store() *resources.Store { return e.store }

// Transformer returns the transformer.
func (e *Engine) Transformer() *transform.Transformer { return e.transformer }

// Profiles returns the profile registry.
func (e *Engine) Profiles() *profile.Registry { return e.profiles }

// Filters returns the filter registry.
func (e *Engine) Filters() *filters.Registry { return e.filters }

// Generators returns what New installed, or nil.
func (e *Engine) Generators() *generators.Installed { return e.generators }

// ExpandAbbreviation expands abbr in syntax and renders it with the named
// profile. A trailing "|filter" suffix adds filters. context describes the
// element the abbreviation is written in and may be nil. The caret position
// is marked with ${0:cursor}; other tab stops are left in place.
func (e *Engine) ExpandAbbreviation(abbr, syntax, profileName string, context *abbrev.Node) (string, error) {
	if abbr == "" {
		return "", nil
	}

	clean, extra := filters.ExtractFromAbbreviation(abbr)
	tree, err := e.transformer.TransformString(clean, syntax, context)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", abbr, err)
	}

	return e.render(abbr, tree, syntax, profileName, extra), nil
}

// WrapWithAbbreviation expands abbr around text. The text goes into the
// element repeated with a bare "*", one copy per line, or else into the
// "$#" placeholders, or else into the deepest last element. Characters with
// a meaning in templates are escaped first, so text comes out as given.
func (e *Engine) WrapWithAbbreviation(abbr, text, syntax, profileName string) (string, error) {
	if abbr == "" {
		return "", nil
	}

	clean, extra := filters.ExtractFromAbbreviation(abbr)
	parsed, err := e.transformer.CreateParsedTreeFromString(clean, syntax, nil)
	if err != nil {
		return "", fmt.Errorf("wrap with %q: %w", abbr, err)
	}

	if elem := parsed.MultiplyElem; elem != nil {
		elem.SetPasteContent(text)
		return e.render(abbr, transform.RolloutTree(parsed), syntax, profileName, extra), nil
	}

	tree := transform.RolloutTree(parsed)
	tree.PasteContent(textutil.EscapeText(text))

	return e.render(abbr, tree, syntax, profileName, extra), nil
}

// Expand expands abbr and extracts its tab stops.
func (e *Engine) Expand(abbr, syntax, profileName string) (tabstops.Result, error) {
	out, err := e.ExpandAbbreviation(abbr, syntax, profileName, nil)
	if err != nil {
		return tabstops.Result{}, err
	}
	return tabstops.Extract(out), nil
}

func (e *Engine) render(abbr string, tree *elements.OutputNode, syntax, profileName string, extra []string) string {
	p := e.profiles.Get(profileName)
	e.reportUnknownFilters(abbr, syntax, p, extra)
	names := e.filters.ComposeList(e.store, syntax, p, extra...)

	e.filters.Apply(tree, names, &filters.Context{
		Profile:   p,
		Syntax:    syntax,
		Variables: e.store,
	})

	out := textutil.ReplaceVariables(tree.String(), e.store.Variable)
	out = strings.ReplaceAll(out, textutil.CaretPlaceholder, tabstops.CaretToken)

	e.logger.Debug("expanded",
		logging.FieldAbbreviation, abbr,
		logging.FieldSyntax, syntax,
		logging.FieldProfile, p.Name,
		logging.FieldFilters, strings.Join(names, ","),
	)
	return out
}

// reportUnknownFilters logs the filter names ComposeList is about to drop.
// Names from the syntax defaults are logged at debug level, names from the
// profile or the abbreviation as warnings.
func (e *Engine) reportUnknownFilters(abbr, syntax string, p profile.Profile, extra []string) {
	logAt := e.logger.Warn
	base := p.Filters
	if base == "" {
		base = e.store.Filters(syntax)
		logAt = e.logger.Debug
	}

	if unknown := e.filters.Unknown(filters.List(base)...); len(unknown) > 0 {
		logAt("unknown filters skipped",
			logging.FieldFilters, strings.Join(unknown, ","),
			logging.FieldSyntax, syntax,
			logging.FieldProfile, p.Name,
		)
	}
	if unknown := e.filters.Unknown(extra...); len(unknown) > 0 {
		e.logger.Warn("unknown filters skipped",
			logging.FieldFilters, strings.Join(unknown, ","),
			logging.FieldAbbreviation, abbr,
		)
	}
}
