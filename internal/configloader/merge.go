package configloader

import (
	"maps"

	"github.com/yaklabco/gozen/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Syntax != "" {
		result.Syntax = override.Syntax
	}
	if override.Profile != "" {
		result.Profile = override.Profile
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Format != "" {
		result.Format = override.Format
	}

	// Only true can be detected for plain booleans, so a later layer can turn
	// these on but not off.
	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	result.Variables = mergeVariables(base.Variables, override.Variables)
	result.Profiles = mergeProfiles(base.Profiles, override.Profiles)

	if override.Vocabulary != nil {
		result.Vocabulary = override.Vocabulary
	}

	return &result
}

func mergeVariables(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}
	result := make(map[string]string, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// mergeProfiles performs deep merge of profile overrides.
func mergeProfiles(base, override map[string]config.ProfileConfig) map[string]config.ProfileConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.ProfileConfig, len(base)+len(override))
	maps.Copy(result, base)

	for name, pc := range override {
		if existing, ok := result[name]; ok {
			result[name] = mergeProfileConfig(existing, pc)
		} else {
			result[name] = pc
		}
	}

	return result
}

// mergeProfileConfig merges individual profile overrides.
func mergeProfileConfig(base, override config.ProfileConfig) config.ProfileConfig {
	result := base

	if override.Extends != "" {
		result.Extends = override.Extends
	}
	if override.TagCase != nil {
		result.TagCase = override.TagCase
	}
	if override.AttrCase != nil {
		result.AttrCase = override.AttrCase
	}
	if override.AttrQuotes != nil {
		result.AttrQuotes = override.AttrQuotes
	}
	if override.TagNewline != nil {
		result.TagNewline = override.TagNewline
	}
	if override.PlaceCursor != nil {
		result.PlaceCursor = override.PlaceCursor
	}
	if override.Indent != nil {
		result.Indent = override.Indent
	}
	if override.InlineBreak != nil {
		result.InlineBreak = override.InlineBreak
	}
	if override.SelfClosingTag != nil {
		result.SelfClosingTag = override.SelfClosingTag
	}
	if override.Filters != nil {
		result.Filters = override.Filters
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
