// Package generators holds the built-in resolvers: expandos such as "ul+",
// and pattern generators such as "lipsum10" and the CSS "!" suffix.
package generators

import (
	"regexp"

	"github.com/yaklabco/gozen/pkg/abbrev"
	"github.com/yaklabco/gozen/pkg/elements"
	"github.com/yaklabco/gozen/pkg/handlers"
	"github.com/yaklabco/gozen/pkg/resources"
	"github.com/yaklabco/gozen/pkg/transform"
)

// Func produces resources for a node whose name matched a generator
// pattern. match holds the submatches of the pattern.
type Func func(match []string, node *abbrev.Node, syntax string) (elements.Result, error)

type generator struct {
	re *regexp.Regexp
	fn Func
}

// Set is an ordered collection of pattern generators exposed to the
// resources store as a single resolver. Later generators win.
type Set struct {
	list handlers.List[generator]
}

// Add registers fn for node names matching re.
func (s *Set) Add(re *regexp.Regexp, fn Func) handlers.ID {
	return s.list.Add(generator{re: re, fn: fn})
}

// Remove unregisters a generator.
func (s *Set) Remove(id handlers.ID) bool {
	return s.list.Remove(id)
}

// Resolve runs the generators against node. It is a resources.Resolver.
func (s *Set) Resolve(node *abbrev.Node, syntax string) (elements.Result, error) {
	if node.IsEmpty() {
		return elements.None(), nil
	}

	result, _, err := handlers.First(&s.list, func(g generator) (elements.Result, bool, error) {
		m := g.re.FindStringSubmatch(node.Name)
		if m == nil {
			return elements.None(), false, nil
		}
		res, err := g.fn(m, node, syntax)
		return res, !res.IsZero(), err
	})
	return result, err
}

// Installed describes what Install registered.
type Installed struct {
	Generators *Set
	Resolvers  []handlers.ID
}

// Install registers the expando resolver and a generator set holding the
// built-in generators with the store behind t.
func Install(t *transform.Transformer, opts ...LipsumOption) *Installed {
	set := &Set{}
	set.Add(reImportant, Important(t))
	set.Add(reLipsum, Lipsum(t, opts...))

	store := t.Store()
	return &Installed{
		Generators: set,
		Resolvers: []handlers.ID{
			store.AddResolver(set.Resolve),
			store.AddResolver(Expando(t)),
		},
	}
}

// Uninstall removes the resolvers registered by Install.
func (i *Installed) Uninstall(store *resources.Store) {
	for _, id := range i.Resolvers {
		store.RemoveResolver(id)
	}
}
