// Package config defines core configuration types for gozen.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

import (
	"github.com/yaklabco/gozen/pkg/profile"
)

// Default values.
const (
	DefaultSyntax   = "html"
	DefaultProfile  = profile.NameXHTML
	DefaultLogLevel = "warn"
)

// OutputFormat specifies how the CLI prints an expansion.
type OutputFormat string

const (
	// FormatText prints the expansion with tab stops removed.
	FormatText OutputFormat = "text"
	// FormatRaw prints the expansion with tab stop tokens left in place.
	FormatRaw OutputFormat = "raw"
	// FormatJSON prints the text together with caret and tab stop offsets.
	FormatJSON OutputFormat = "json"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatRaw, FormatJSON:
		return true
	default:
		return false
	}
}

// BackupMode controls where backups of edited files go.
type BackupMode string

const (
	BackupModeSidecar BackupMode = "sidecar"
	BackupModeNone    BackupMode = "none"
)

// IsValid returns true if the mode is known.
func (m BackupMode) IsValid() bool {
	switch m {
	case BackupModeSidecar, BackupModeNone:
		return true
	default:
		return false
	}
}

// BackupsConfig controls backup behavior when files are rewritten in place.
type BackupsConfig struct {
	Enabled bool       `yaml:"enabled" toml:"enabled"`
	Mode    BackupMode `yaml:"mode" toml:"mode"`
}

// ProfileConfig overrides fields of an output profile. Unset fields keep the
// value of the profile being extended.
type ProfileConfig struct {
	// Extends names the profile the overrides apply to. It defaults to the
	// profile of the same name, or the default profile for new names.
	Extends string `yaml:"extends,omitempty" toml:"extends,omitempty"`

	TagCase        *profile.Case        `yaml:"tag_case,omitempty" toml:"tag_case,omitempty"`
	AttrCase       *profile.Case        `yaml:"attr_case,omitempty" toml:"attr_case,omitempty"`
	AttrQuotes     *profile.Quotes      `yaml:"attr_quotes,omitempty" toml:"attr_quotes,omitempty"`
	TagNewline     *profile.TagNewline  `yaml:"tag_nl,omitempty" toml:"tag_nl,omitempty"`
	PlaceCursor    *bool                `yaml:"place_cursor,omitempty" toml:"place_cursor,omitempty"`
	Indent         *bool                `yaml:"indent,omitempty" toml:"indent,omitempty"`
	InlineBreak    *int                 `yaml:"inline_break,omitempty" toml:"inline_break,omitempty"`
	SelfClosingTag *profile.SelfClosing `yaml:"self_closing_tag,omitempty" toml:"self_closing_tag,omitempty"`
	Filters        *string              `yaml:"filters,omitempty" toml:"filters,omitempty"`
}

// Apply returns base with the set fields of pc applied.
func (pc ProfileConfig) Apply(base profile.Profile) profile.Profile {
	p := base
	if pc.TagCase != nil {
		p.TagCase = *pc.TagCase
	}
	if pc.AttrCase != nil {
		p.AttrCase = *pc.AttrCase
	}
	if pc.AttrQuotes != nil {
		p.AttrQuotes = *pc.AttrQuotes
	}
	if pc.TagNewline != nil {
		p.TagNewline = *pc.TagNewline
	}
	if pc.PlaceCursor != nil {
		p.PlaceCursor = *pc.PlaceCursor
	}
	if pc.Indent != nil {
		p.Indent = *pc.Indent
	}
	if pc.InlineBreak != nil {
		p.InlineBreak = *pc.InlineBreak
	}
	if pc.SelfClosingTag != nil {
		p.SelfClosingTag = *pc.SelfClosingTag
	}
	if pc.Filters != nil {
		p.Filters = *pc.Filters
	}
	return p
}

// Config is the root configuration structure for gozen.
type Config struct {
	// Syntax is used when neither a flag nor the file name decides one.
	Syntax string `yaml:"syntax" toml:"syntax"`

	// Profile is the output profile name.
	Profile string `yaml:"profile" toml:"profile"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// Vocabulary lists user vocabulary files, YAML or TOML, merged in order.
	// Relative paths are resolved against the config file's directory.
	Vocabulary []string `yaml:"vocabulary,omitempty" toml:"vocabulary,omitempty"`

	// Profiles overrides or adds output profiles by name.
	Profiles map[string]ProfileConfig `yaml:"profiles,omitempty" toml:"profiles,omitempty"`

	// Variables overrides global vocabulary variables such as lang or charset.
	Variables map[string]string `yaml:"variables,omitempty" toml:"variables,omitempty"`

	// Backups configures backups for commands that rewrite files.
	Backups BackupsConfig `yaml:"backups" toml:"backups"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// DryRun prints edits instead of writing them.
	DryRun bool `yaml:"-" toml:"-"`

	// NoBackups disables backup creation for this run.
	NoBackups bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Syntax:   DefaultSyntax,
		Profile:  DefaultProfile,
		LogLevel: DefaultLogLevel,
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    BackupModeSidecar,
		},
		Format: FormatText,
	}
}

// BuildProfiles returns a registry holding the built-in profiles with the
// configured overrides applied.
func (c *Config) BuildProfiles() *profile.Registry {
	reg := profile.NewRegistry()
	if c == nil {
		return reg
	}

	for name, pc := range c.Profiles {
		base := pc.Extends
		if base == "" {
			base = name
		}
		p, ok := reg.Lookup(base)
		if !ok {
			p = profile.Default()
		}
		p.Name = name
		reg.Set(pc.Apply(p))
	}
	return reg
}
