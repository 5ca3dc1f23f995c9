package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gozen/pkg/config"
	"github.com/yaklabco/gozen/pkg/profile"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, "html", cfg.Syntax)
	assert.Equal(t, "xhtml", cfg.Profile)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.True(t, cfg.Backups.Enabled)
	assert.Equal(t, config.BackupModeSidecar, cfg.Backups.Mode)
}

func TestEnumValidity(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FormatRaw.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())
	assert.True(t, config.BackupModeNone.IsValid())
	assert.False(t, config.BackupMode("xdg").IsValid())
}

func TestBuildProfiles(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Profiles: map[string]config.ProfileConfig{
			"html":  {TagCase: ptr(profile.CaseUpper)},
			"mine":  {Extends: "plain", AttrQuotes: ptr(profile.QuotesSingle)},
			"fresh": {InlineBreak: ptr(0)},
		},
	}
	reg := cfg.BuildProfiles()

	html, ok := reg.Lookup("html")
	require.True(t, ok)
	assert.Equal(t, profile.CaseUpper, html.TagCase)
	assert.Equal(t, profile.SelfClosingNone, html.SelfClosingTag, "overrides keep the built-in settings")

	mine, ok := reg.Lookup("mine")
	require.True(t, ok)
	assert.Equal(t, "mine", mine.Name)
	assert.Equal(t, profile.QuotesSingle, mine.AttrQuotes)
	assert.Equal(t, profile.TagNewlineNever, mine.TagNewline)

	fresh, ok := reg.Lookup("fresh")
	require.True(t, ok)
	assert.Equal(t, 0, fresh.InlineBreak)
	assert.True(t, fresh.PlaceCursor)

	var nilCfg *config.Config
	assert.Equal(t, []string{"html", "plain", "xhtml", "xml"}, nilCfg.BuildProfiles().Names())
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	minimal, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)
	cfg, err := config.FromYAML(minimal)
	require.NoError(t, err)
	assert.Equal(t, "xhtml", cfg.Profile)

	minimalTOML, err := config.GenerateTemplate(config.TemplateOptions{Format: config.TemplateTOML})
	require.NoError(t, err)
	cfg, err = config.FromTOML(minimalTOML)
	require.NoError(t, err)
	assert.Equal(t, "html", cfg.Syntax)

	full, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
	require.NoError(t, err)
	cfg, err = config.FromYAML(full)
	require.NoError(t, err)
	require.Contains(t, cfg.Profiles, "xml")
	assert.Equal(t, profile.SelfClosingXML, *cfg.Profiles["xml"].SelfClosingTag)
	assert.Equal(t, profile.TagNewlineAlways, *cfg.Profiles["xml"].TagNewline)

	full, err = config.GenerateTemplate(config.TemplateOptions{Full: true, Format: config.TemplateTOML, Profiles: []string{"plain"}})
	require.NoError(t, err)
	cfg, err = config.FromTOML(full)
	require.NoError(t, err)
	assert.Len(t, cfg.Profiles, 1)
	assert.False(t, *cfg.Profiles["plain"].Indent)

	_, err = config.GenerateTemplate(config.TemplateOptions{Format: "json"})
	require.Error(t, err)

	_, err = config.GenerateTemplate(config.TemplateOptions{Full: true, Profiles: []string{"nope"}})
	require.Error(t, err)
}
