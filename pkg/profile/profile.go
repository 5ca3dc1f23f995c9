// Package profile defines output profiles: named sets of formatting options
// that the output filters consult when turning an output tree into text.
package profile

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Case controls the letter case of tag and attribute names.
type Case string

const (
	CaseLower Case = "lower"
	CaseUpper Case = "upper"
	CaseLeave Case = "leave"
)

// IsValid returns true if the case is known.
func (c Case) IsValid() bool {
	switch c {
	case CaseLower, CaseUpper, CaseLeave:
		return true
	default:
		return false
	}
}

// Apply converts s to the case.
func (c Case) Apply(s string) string {
	switch Case(strings.ToLower(string(c))) {
	case CaseLower:
		return strings.ToLower(s)
	case CaseUpper:
		return strings.ToUpper(s)
	default:
		return s
	}
}

// Quotes selects the attribute value quote character.
type Quotes string

const (
	QuotesDouble Quotes = "double"
	QuotesSingle Quotes = "single"
)

// IsValid returns true if the quote style is known.
func (q Quotes) IsValid() bool {
	return q == QuotesDouble || q == QuotesSingle
}

// Char returns the quote character.
func (q Quotes) Char() string {
	if q == QuotesSingle {
		return "'"
	}
	return `"`
}

// TagNewline controls line breaks around tags.
type TagNewline string

const (
	// TagNewlineDecide breaks around block-level elements only.
	TagNewlineDecide TagNewline = "decide"
	// TagNewlineAlways puts every tag on its own line.
	TagNewlineAlways TagNewline = "true"
	// TagNewlineNever keeps the output on the lines the templates produce.
	TagNewlineNever TagNewline = "false"
)

// IsValid returns true if the setting is known.
func (t TagNewline) IsValid() bool {
	switch t {
	case TagNewlineDecide, TagNewlineAlways, TagNewlineNever:
		return true
	default:
		return false
	}
}

// UnmarshalText accepts "decide" and any boolean spelling.
func (t *TagNewline) UnmarshalText(text []byte) error {
	value, err := parseTristate(string(text), string(TagNewlineDecide))
	if err != nil {
		return fmt.Errorf("tag_nl: %w", err)
	}
	*t = TagNewline(value)
	return nil
}

// UnmarshalYAML accepts both `tag_nl: true` and `tag_nl: decide`.
func (t *TagNewline) UnmarshalYAML(node *yaml.Node) error {
	return t.UnmarshalText([]byte(node.Value))
}

// SelfClosing selects how empty elements are closed.
type SelfClosing string

const (
	// SelfClosingXHTML writes <br />.
	SelfClosingXHTML SelfClosing = "xhtml"
	// SelfClosingXML writes <br/>.
	SelfClosingXML SelfClosing = "true"
	// SelfClosingNone writes <br>.
	SelfClosingNone SelfClosing = "false"
)

// IsValid returns true if the setting is known.
func (s SelfClosing) IsValid() bool {
	switch s {
	case SelfClosingXHTML, SelfClosingXML, SelfClosingNone:
		return true
	default:
		return false
	}
}

// Suffix returns the text placed before the ">" of an empty element.
func (s SelfClosing) Suffix() string {
	switch s {
	case SelfClosingXHTML:
		return " /"
	case SelfClosingXML:
		return "/"
	default:
		return ""
	}
}

// UnmarshalText accepts "xhtml" and any boolean spelling.
func (s *SelfClosing) UnmarshalText(text []byte) error {
	value, err := parseTristate(string(text), string(SelfClosingXHTML))
	if err != nil {
		return fmt.Errorf("self_closing_tag: %w", err)
	}
	*s = SelfClosing(value)
	return nil
}

// UnmarshalYAML accepts both `self_closing_tag: true` and
// `self_closing_tag: xhtml`.
func (s *SelfClosing) UnmarshalYAML(node *yaml.Node) error {
	return s.UnmarshalText([]byte(node.Value))
}

func parseTristate(value, third string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "on":
		return "true", nil
	case "false", "no", "off":
		return "false", nil
	case third:
		return third, nil
	default:
		return "", fmt.Errorf("invalid value %q (want true, false or %s)", value, third)
	}
}

// Profile is a set of output options.
type Profile struct {
	Name string `yaml:"-" toml:"-"`

	TagCase     Case       `yaml:"tag_case" toml:"tag_case"`
	AttrCase    Case       `yaml:"attr_case" toml:"attr_case"`
	AttrQuotes  Quotes     `yaml:"attr_quotes" toml:"attr_quotes"`
	TagNewline  TagNewline `yaml:"tag_nl" toml:"tag_nl"`
	PlaceCursor bool       `yaml:"place_cursor" toml:"place_cursor"`
	Indent      bool       `yaml:"indent" toml:"indent"`
	// InlineBreak is how many inline siblings force each one onto its own
	// line. Zero disables the check.
	InlineBreak    int         `yaml:"inline_break" toml:"inline_break"`
	SelfClosingTag SelfClosing `yaml:"self_closing_tag" toml:"self_closing_tag"`
	// Filters overrides the filter list of the syntax when not empty.
	Filters string `yaml:"filters" toml:"filters"`
}

// Default returns a profile with every option at its default.
func Default() Profile {
	return Profile{
		TagCase:        CaseLower,
		AttrCase:       CaseLower,
		AttrQuotes:     QuotesDouble,
		TagNewline:     TagNewlineDecide,
		PlaceCursor:    true,
		Indent:         true,
		InlineBreak:    3,
		SelfClosingTag: SelfClosingXHTML,
	}
}

// Validate reports the first option holding an unknown value.
func (p Profile) Validate() error {
	switch {
	case !p.TagCase.IsValid():
		return fmt.Errorf("profile %q: invalid tag_case %q", p.Name, p.TagCase)
	case !p.AttrCase.IsValid():
		return fmt.Errorf("profile %q: invalid attr_case %q", p.Name, p.AttrCase)
	case !p.AttrQuotes.IsValid():
		return fmt.Errorf("profile %q: invalid attr_quotes %q", p.Name, p.AttrQuotes)
	case !p.TagNewline.IsValid():
		return fmt.Errorf("profile %q: invalid tag_nl %q", p.Name, p.TagNewline)
	case !p.SelfClosingTag.IsValid():
		return fmt.Errorf("profile %q: invalid self_closing_tag %q", p.Name, p.SelfClosingTag)
	case p.InlineBreak < 0:
		return fmt.Errorf("profile %q: inline_break must not be negative", p.Name)
	}
	return nil
}

// Option overrides a single profile setting.
type Option func(*Profile)

// WithTagCase sets the tag name case.
func WithTagCase(c Case) Option { return func(p *Profile) { p.TagCase = c } }

// WithAttrCase sets the attribute name case.
func WithAttrCase(c Case) Option { return func(p *Profile) { p.AttrCase = c } }

// WithAttrQuotes sets the attribute quote style.
func WithAttrQuotes(q Quotes) Option { return func(p *Profile) { p.AttrQuotes = q } }

// WithTagNewline sets the line break policy.
func WithTagNewline(t TagNewline) Option { return func(p *Profile) { p.TagNewline = t } }

// WithPlaceCursor toggles caret placeholders in empty attributes and elements.
func WithPlaceCursor(on bool) Option { return func(p *Profile) { p.PlaceCursor = on } }

// WithIndent toggles child indentation.
func WithIndent(on bool) Option { return func(p *Profile) { p.Indent = on } }

// WithInlineBreak sets the inline sibling threshold.
func WithInlineBreak(n int) Option { return func(p *Profile) { p.InlineBreak = n } }

// WithSelfClosing sets how empty elements are closed.
func WithSelfClosing(s SelfClosing) Option { return func(p *Profile) { p.SelfClosingTag = s } }

// WithFilters sets the filter list.
func WithFilters(filters string) Option { return func(p *Profile) { p.Filters = filters } }

// New builds a profile from the defaults and opts.
func New(name string, opts ...Option) Profile {
	p := Default()
	p.Name = name
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
