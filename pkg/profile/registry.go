package profile

import (
	"slices"
	"strings"
	"sync"
)

// Built-in profile names.
const (
	NameXHTML = "xhtml"
	NameHTML  = "html"
	NameXML   = "xml"
	NamePlain = "plain"
)

// Registry holds named profiles. Lookups are case insensitive.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewRegistry returns a registry holding the built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]Profile)}
	r.Create(NameXHTML)
	r.Create(NameHTML, WithSelfClosing(SelfClosingNone))
	r.Create(NameXML, WithSelfClosing(SelfClosingXML), WithTagNewline(TagNewlineAlways))
	r.Create(NamePlain, WithTagNewline(TagNewlineNever), WithIndent(false), WithPlaceCursor(false))
	return r
}

// Create builds a profile from the defaults and opts and stores it under
// name, replacing any profile of that name.
func (r *Registry) Create(name string, opts ...Option) Profile {
	p := New(strings.ToLower(name), opts...)
	r.Set(p)
	return p
}

// Set stores p under its name.
func (r *Registry) Set(p Profile) {
	p.Name = strings.ToLower(p.Name)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.Name] = p
}

// Lookup returns the profile called name.
func (r *Registry) Lookup(name string) (Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[strings.ToLower(name)]
	return p, ok
}

// Get returns the profile called name, or the plain profile when there is
// none. Without a plain profile the defaults are used.
func (r *Registry) Get(name string) Profile {
	if p, ok := r.Lookup(name); ok {
		return p
	}
	if p, ok := r.Lookup(NamePlain); ok {
		return p
	}
	return New(NamePlain)
}

// Remove deletes the profile called name.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	name = strings.ToLower(name)
	if _, ok := r.profiles[name]; !ok {
		return false
	}
	delete(r.profiles, name)
	return true
}

// Names returns the registered profile names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
