// Package resources looks up abbreviations, snippets and variables in the
// system and user vocabularies, and runs registered resolvers.
//
// Every lookup tries the user vocabulary first and falls back to the system
// vocabulary. Within one vocabulary the requested syntax is searched before
// its "extends" ancestors.
package resources

import (
	"maps"
	"strings"
	"sync"

	"github.com/yaklabco/gozen/pkg/abbrev"
	"github.com/yaklabco/gozen/pkg/elements"
	"github.com/yaklabco/gozen/pkg/handlers"
)

// VocabularyType selects one of the two vocabularies.
type VocabularyType string

const (
	System VocabularyType = "system"
	User   VocabularyType = "user"
)

// Resolver may claim an abbreviation node before the vocabularies are
// consulted. It returns elements.None() to pass.
type Resolver func(node *abbrev.Node, syntax string) (elements.Result, error)

// Store holds the vocabularies and the resolver chain.
type Store struct {
	mu     sync.RWMutex
	system *Vocabulary
	user   *Vocabulary

	resolvers handlers.List[Resolver]
}

// Option configures a Store.
type Option func(*Store)

// WithSystemVocabulary replaces the built-in system vocabulary.
func WithSystemVocabulary(voc *Vocabulary) Option {
	return func(s *Store) {
		s.system = voc
	}
}

// WithUserVocabulary sets the user vocabulary.
func WithUserVocabulary(voc *Vocabulary) Option {
	return func(s *Store) {
		s.user = voc
	}
}

// NewStore returns a store using the built-in system vocabulary unless an
// option replaces it.
func NewStore(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	if s.system == nil {
		s.system = DefaultVocabulary()
	}
	if s.user == nil {
		s.user = &Vocabulary{}
	}
	return s
}

// SetVocabulary swaps a whole vocabulary. Readers see either the old or the
// new value, never a mix.
func (s *Store) SetVocabulary(kind VocabularyType, voc *Vocabulary) {
	if voc == nil {
		voc = &Vocabulary{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if kind == System {
		s.system = voc
	} else {
		s.user = voc
	}
}

// Vocabulary returns the current vocabulary of the given kind.
func (s *Store) Vocabulary(kind VocabularyType) *Vocabulary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if kind == System {
		return s.system
	}
	return s.user
}

func (s *Store) vocabularies() (user, system *Vocabulary) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.system
}

// chain lists the entries to search for syntax in voc, most specific first.
// A user vocabulary without its own "extends" for the syntax borrows the one
// declared by the system vocabulary.
func chain(voc, system *Vocabulary, syntax string) []*SyntaxEntry {
	var result []*SyntaxEntry

	entry := voc.Syntax(syntax)
	if entry != nil {
		result = append(result, entry)
	}

	source := entry
	if source == nil || !source.hasExtends() {
		source = nil
		if voc != system {
			if sys := system.Syntax(syntax); sys != nil && sys.hasExtends() {
				source = sys
			}
		}
	}
	if source == nil {
		return result
	}

	for _, ancestor := range source.Ancestors() {
		if e := voc.Syntax(ancestor); e != nil {
			result = append(result, e)
		}
	}
	return result
}

// Resource returns the parsed item named name from section, following the
// inheritance chain. The user chain as a whole wins over the system chain.
func (s *Store) Resource(syntax string, section Section, name string) elements.Resource {
	user, system := s.vocabularies()
	for _, voc := range []*Vocabulary{user, system} {
		for _, entry := range chain(voc, system, syntax) {
			if item, ok := entry.section(section)[name]; ok && item != nil {
				return item.resource(section, name)
			}
		}
	}
	return nil
}

// Abbreviation looks up an abbreviation, retrying with "-" replaced by ":"
// so that "input-text" finds "input:text". A reference is followed one hop;
// a reference to another reference is returned unresolved.
func (s *Store) Abbreviation(syntax, name string) elements.Resource {
	res := s.lookup(syntax, SectionAbbreviations, name)
	if ref, ok := res.(*elements.Reference); ok {
		if target := s.lookup(syntax, SectionAbbreviations, ref.Data); target != nil {
			return target
		}
	}
	return res
}

// Snippet looks up a snippet with the same "-" to ":" retry as Abbreviation.
func (s *Store) Snippet(syntax, name string) elements.Resource {
	return s.lookup(syntax, SectionSnippets, name)
}

func (s *Store) lookup(syntax string, section Section, name string) elements.Resource {
	if res := s.Resource(syntax, section, name); res != nil {
		return res
	}
	if alt := strings.ReplaceAll(name, "-", ":"); alt != name {
		return s.Resource(syntax, section, alt)
	}
	return nil
}

// MatchedResource runs the resolvers, highest order and most recent first,
// and falls back to the abbreviation and then the snippet named after node.
func (s *Store) MatchedResource(node *abbrev.Node, syntax string) (elements.Result, error) {
	result, ok, err := handlers.First(&s.resolvers, func(fn Resolver) (elements.Result, bool, error) {
		res, err := fn(node, syntax)
		return res, !res.IsZero(), err
	})
	if err != nil || ok {
		return result, err
	}

	if res := s.Abbreviation(syntax, node.Name); res != nil {
		return elements.Single(res), nil
	}
	return elements.Single(s.Snippet(syntax, node.Name)), nil
}

// AddResolver registers fn. See handlers.WithOrder for priorities.
func (s *Store) AddResolver(fn Resolver, opts ...handlers.Option) handlers.ID {
	return s.resolvers.Add(fn, opts...)
}

// RemoveResolver unregisters a resolver.
func (s *Store) RemoveResolver(id handlers.ID) bool {
	return s.resolvers.Remove(id)
}

// Variable returns a global variable, user value first.
func (s *Store) Variable(name string) (string, bool) {
	user, system := s.vocabularies()
	for _, voc := range []*Vocabulary{user, system} {
		if value, ok := voc.Variables[name]; ok {
			return value, true
		}
	}
	return "", false
}

// SyntaxVariable returns a variable declared by a syntax entry or its
// ancestors, falling back to the global variables.
func (s *Store) SyntaxVariable(syntax, name string) (string, bool) {
	user, system := s.vocabularies()
	for _, voc := range []*Vocabulary{user, system} {
		for _, entry := range chain(voc, system, syntax) {
			if value, ok := entry.Variables[name]; ok {
				return value, true
			}
		}
	}
	return s.Variable(name)
}

// SetVariable stores a runtime variable in the user vocabulary. The
// vocabulary is replaced, not mutated, so concurrent readers are unaffected.
func (s *Store) SetVariable(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := &Vocabulary{
		Variables: maps.Clone(s.user.Variables),
		Syntaxes:  s.user.Syntaxes,
	}
	if next.Variables == nil {
		next.Variables = make(map[string]string)
	}
	next.Variables[name] = value
	s.user = next
}

// Subset returns the first section map found along the inheritance chain,
// user vocabulary first.
func (s *Store) Subset(syntax string, section Section) map[string]*Item {
	user, system := s.vocabularies()
	for _, voc := range []*Vocabulary{user, system} {
		for _, entry := range chain(voc, system, syntax) {
			if items := entry.section(section); items != nil {
				return items
			}
		}
	}
	return nil
}

// Filters returns the default filter list of a syntax.
func (s *Store) Filters(syntax string) string {
	user, system := s.vocabularies()
	for _, voc := range []*Vocabulary{user, system} {
		for _, entry := range chain(voc, system, syntax) {
			if entry.Filters != "" {
				return entry.Filters
			}
		}
	}
	return ""
}

// HasSyntax reports whether either vocabulary defines syntax.
func (s *Store) HasSyntax(syntax string) bool {
	user, system := s.vocabularies()
	return user.Syntax(syntax) != nil || system.Syntax(syntax) != nil
}

// Syntaxes returns the names of all syntaxes known to either vocabulary.
func (s *Store) Syntaxes() []string {
	user, system := s.vocabularies()
	seen := make(map[string]struct{})
	var names []string
	for _, voc := range []*Vocabulary{user, system} {
		for name, entry := range voc.Syntaxes {
			if _, ok := seen[name]; ok || entry == nil {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// IsItemInCollection reports whether item is listed in an element_types
// collection such as "empty" or "inline_level". The first entry along the
// inheritance chain that declares the collection decides.
func (s *Store) IsItemInCollection(syntax, collection, item string) bool {
	user, system := s.vocabularies()
	for _, voc := range []*Vocabulary{user, system} {
		for _, entry := range chain(voc, system, syntax) {
			if set, ok := entry.collection(collection); ok {
				if _, found := set[item]; found {
					return true
				}
			}
		}
	}
	return false
}
