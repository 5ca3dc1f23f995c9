package config

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gozen/pkg/profile"
)

// Template formats.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every built-in profile out with its settings. If false,
	// generates a minimal commented template.
	Full bool

	// Format is the output format: "yaml" or "toml".
	Format string

	// Profiles limits a full template to these profile names. If empty,
	// all built-in profiles are included.
	Profiles []string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", TemplateYAML, TemplateTOML:
	default:
		return nil, fmt.Errorf("unknown template format %q; must be yaml or toml", opts.Format)
	}

	if opts.Full {
		return generateFullTemplate(opts)
	}
	return generateMinimalTemplate(opts), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate(opts TemplateOptions) []byte {
	if opts.Format == TemplateTOML {
		return []byte(DefaultTemplateHeader() + `

# Syntax used when the file name does not decide one
syntax = "html"

# Output profile: xhtml, html, xml, plain or one defined below
profile = "xhtml"

# Log level: debug, info, warn or error
# log_level = "warn"

# User vocabulary files, merged in order
# vocabulary = ["snippets.toml"]

# [variables]
# lang = "en"
# charset = "UTF-8"

# [profiles.mine]
# extends = "html"
# tag_case = "upper"
# tag_nl = "false"

[backups]
enabled = true
mode = "sidecar"
`)
	}

	return []byte(DefaultTemplateHeader() + `

# Syntax used when the file name does not decide one
syntax: html

# Output profile: xhtml, html, xml, plain or one defined below
profile: xhtml

# Log level: debug, info, warn or error
# log_level: warn

# User vocabulary files, merged in order
# vocabulary:
#   - snippets.yaml

# variables:
#   lang: en
#   charset: UTF-8

# profiles:
#   mine:
#     extends: html
#     tag_case: upper
#     tag_nl: false

backups:
  enabled: true
  mode: sidecar
`)
}

// generateFullTemplate writes the defaults and the built-in profiles out.
func generateFullTemplate(opts TemplateOptions) ([]byte, error) {
	cfg := NewConfig()
	cfg.Profiles = make(map[string]ProfileConfig)

	reg := profile.NewRegistry()
	names := opts.Profiles
	if len(names) == 0 {
		names = reg.Names()
	}
	for _, name := range names {
		p, ok := reg.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown profile %q", name)
		}
		cfg.Profiles[strings.ToLower(name)] = profileConfigOf(p)
	}

	header := DefaultTemplateHeader() + "\n#\n# Every built-in profile is listed with its settings.\n# Remove what you do not change."

	var (
		body []byte
		err  error
	)
	if opts.Format == TemplateTOML {
		body, err = cfg.ToTOMLWithHeader(header)
	} else {
		body, err = cfg.ToYAMLWithHeader(header)
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

// profileConfigOf sets every field of a ProfileConfig from p.
func profileConfigOf(p profile.Profile) ProfileConfig {
	return ProfileConfig{
		TagCase:        &p.TagCase,
		AttrCase:       &p.AttrCase,
		AttrQuotes:     &p.AttrQuotes,
		TagNewline:     &p.TagNewline,
		PlaceCursor:    &p.PlaceCursor,
		Indent:         &p.Indent,
		InlineBreak:    &p.InlineBreak,
		SelfClosingTag: &p.SelfClosingTag,
		Filters:        &p.Filters,
	}
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gozen configuration
# See: https://github.com/yaklabco/gozen`
}
