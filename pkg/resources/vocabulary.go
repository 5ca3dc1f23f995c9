package resources

import (
	_ "embed"
	"fmt"
	"maps"
	"regexp"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gozen/pkg/elements"
)

// Section names a resource collection inside a syntax entry.
type Section string

const (
	SectionAbbreviations Section = "abbreviations"
	SectionSnippets      Section = "snippets"
)

//go:embed defaults.yaml
var defaultsYAML []byte //nolint:gochecknoglobals // embedded data

// reTag matches the tag shorthand used by abbreviation definitions:
// <name attr="value" ...> or <name .../>.
var reTag = regexp.MustCompile(`^<(\w+:?[\w\-]*)((?:\s+[\w:\-]+\s*=\s*(?:"[^"]*"|'[^']*'))*)\s*(/?)>`) //nolint:gochecknoglobals // compiled once

// Item is one abbreviation or snippet definition. The raw text is parsed into
// a resource on first access and the result is kept for the life of the item.
type Item struct {
	raw string

	once   sync.Once
	parsed elements.Resource
}

// NewItem returns an item holding raw.
func NewItem(raw string) *Item {
	return &Item{raw: raw}
}

// Raw returns the definition as written.
func (i *Item) Raw() string {
	return i.raw
}

// UnmarshalText lets vocabulary files hold items as plain strings.
func (i *Item) UnmarshalText(text []byte) error {
	i.raw = string(text)
	return nil
}

// MarshalText writes the raw definition.
func (i *Item) MarshalText() ([]byte, error) {
	return []byte(i.raw), nil
}

func (i *Item) resource(section Section, key string) elements.Resource {
	i.once.Do(func() {
		switch section {
		case SectionAbbreviations:
			i.parsed = parseAbbreviation(strings.TrimSpace(key), i.raw)
		case SectionSnippets:
			i.parsed = &elements.Snippet{Data: i.raw}
		}
	})
	return i.parsed
}

// parseAbbreviation turns a definition into an element when it looks like a
// tag, an expando when the key ends with "+", and a reference otherwise.
func parseAbbreviation(key, value string) elements.Resource {
	if m := reTag.FindStringSubmatch(value); m != nil {
		return elements.NewElement(m[1], m[2], m[3] == "/")
	}
	if strings.HasSuffix(key, "+") {
		return &elements.Expando{Data: value}
	}
	return &elements.Reference{Data: value}
}

// SyntaxEntry holds the resources of one syntax.
type SyntaxEntry struct {
	Abbreviations map[string]*Item  `yaml:"abbreviations,omitempty" toml:"abbreviations,omitempty"`
	Snippets      map[string]*Item  `yaml:"snippets,omitempty" toml:"snippets,omitempty"`
	Variables     map[string]string `yaml:"variables,omitempty" toml:"variables,omitempty"`
	Filters       string            `yaml:"filters,omitempty" toml:"filters,omitempty"`

	// Extends is a comma separated list of syntaxes searched, in order, when
	// a name is missing from this entry.
	Extends string `yaml:"extends,omitempty" toml:"extends,omitempty"`

	// ElementTypes maps a collection name such as "empty" or "inline_level"
	// to a comma separated list of element names.
	ElementTypes map[string]string `yaml:"element_types,omitempty" toml:"element_types,omitempty"`

	extendsOnce sync.Once
	extends     []string

	typesOnce sync.Once
	types     map[string]map[string]struct{}
}

// Ancestors returns the parsed Extends list.
func (e *SyntaxEntry) Ancestors() []string {
	e.extendsOnce.Do(func() {
		e.extends = splitList(e.Extends)
	})
	return e.extends
}

func (e *SyntaxEntry) hasExtends() bool {
	return strings.TrimSpace(e.Extends) != ""
}

func (e *SyntaxEntry) section(section Section) map[string]*Item {
	switch section {
	case SectionAbbreviations:
		return e.Abbreviations
	case SectionSnippets:
		return e.Snippets
	default:
		return nil
	}
}

func (e *SyntaxEntry) collection(name string) (map[string]struct{}, bool) {
	e.typesOnce.Do(func() {
		e.types = make(map[string]map[string]struct{}, len(e.ElementTypes))
		for kind, list := range e.ElementTypes {
			set := make(map[string]struct{})
			for _, item := range splitList(list) {
				set[item] = struct{}{}
			}
			e.types[kind] = set
		}
	})
	set, ok := e.types[name]
	return set, ok
}

// Vocabulary is a full resource tree: global variables plus one entry per
// syntax. In YAML the syntaxes sit at the top level next to "variables"; in
// TOML they live under [syntax.<name>] tables.
type Vocabulary struct {
	Variables map[string]string       `yaml:"variables,omitempty" toml:"variables,omitempty"`
	Syntaxes  map[string]*SyntaxEntry `yaml:",inline" toml:"syntax,omitempty"`
}

// Syntax returns the entry for name, or nil.
func (v *Vocabulary) Syntax(name string) *SyntaxEntry {
	if v == nil {
		return nil
	}
	return v.Syntaxes[name]
}

// ParseVocabulary decodes a YAML vocabulary.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var voc Vocabulary
	if err := yaml.Unmarshal(data, &voc); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	return &voc, nil
}

// ParseVocabularyTOML decodes a TOML vocabulary.
func ParseVocabularyTOML(data []byte) (*Vocabulary, error) {
	var voc Vocabulary
	if err := toml.Unmarshal(data, &voc); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	return &voc, nil
}

// Merge returns a vocabulary holding the entries of vocs, later ones
// winning per name. Entry fields that are not maps are replaced when the
// later entry sets them. The inputs are not modified.
func Merge(vocs ...*Vocabulary) *Vocabulary {
	out := &Vocabulary{}
	for _, voc := range vocs {
		if voc == nil {
			continue
		}
		out.Variables = mergeMap(out.Variables, voc.Variables)
		for name, entry := range voc.Syntaxes {
			if entry == nil {
				continue
			}
			if out.Syntaxes == nil {
				out.Syntaxes = make(map[string]*SyntaxEntry)
			}
			out.Syntaxes[name] = mergeEntry(out.Syntaxes[name], entry)
		}
	}
	return out
}

func mergeEntry(base, over *SyntaxEntry) *SyntaxEntry {
	out := &SyntaxEntry{}
	if base != nil {
		out.Abbreviations = base.Abbreviations
		out.Snippets = base.Snippets
		out.Variables = base.Variables
		out.Filters = base.Filters
		out.Extends = base.Extends
		out.ElementTypes = base.ElementTypes
	}

	out.Abbreviations = mergeMap(out.Abbreviations, over.Abbreviations)
	out.Snippets = mergeMap(out.Snippets, over.Snippets)
	out.Variables = mergeMap(out.Variables, over.Variables)
	out.ElementTypes = mergeMap(out.ElementTypes, over.ElementTypes)
	if over.Filters != "" {
		out.Filters = over.Filters
	}
	if over.Extends != "" {
		out.Extends = over.Extends
	}
	return out
}

func mergeMap[V any](base, over map[string]V) map[string]V {
	if len(over) == 0 {
		return base
	}
	out := make(map[string]V, len(base)+len(over))
	maps.Copy(out, base)
	maps.Copy(out, over)
	return out
}

// DefaultVocabulary returns a freshly decoded copy of the built-in system
// vocabulary. Each call returns an independent value.
func DefaultVocabulary() *Vocabulary {
	voc, err := ParseVocabulary(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded vocabulary: %v", err))
	}
	return voc
}

func splitList(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
