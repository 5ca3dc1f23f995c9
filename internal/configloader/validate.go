package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gozen/internal/logging"
	"github.com/yaklabco/gozen/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "profiles.mine.tag_case").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.LogLevel != "" && !logging.ParseLevel(cfg.LogLevel) {
		result.addError("log_level", cfg.LogLevel,
			"invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel)
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format, "invalid format %q; must be one of: text, raw, json", cfg.Format)
	}

	if cfg.Backups.Mode != "" && !cfg.Backups.Mode.IsValid() {
		result.addError("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	validateProfiles(cfg, result)

	for i, path := range cfg.Vocabulary {
		if !fileExists(path) {
			result.addError(fmt.Sprintf("vocabulary[%d]", i), path, "vocabulary file %q not found", path)
		}
	}

	return result
}

// validateProfiles checks every configured profile once applied.
func validateProfiles(cfg *config.Config, result *ValidationResult) {
	reg := cfg.BuildProfiles()

	for name, pc := range cfg.Profiles {
		field := "profiles." + name

		if pc.Extends != "" {
			if _, ok := reg.Lookup(pc.Extends); !ok {
				result.addWarning(field+".extends", pc.Extends,
					"unknown profile %q; defaults are used", pc.Extends)
			}
		}

		p, ok := reg.Lookup(name)
		if !ok {
			continue
		}
		if err := p.Validate(); err != nil {
			result.addError(field, name, "%v", err)
		}
	}

	if cfg.Profile != "" {
		if _, ok := reg.Lookup(cfg.Profile); !ok {
			result.addWarning("profile", cfg.Profile, "unknown profile %q; the plain profile is used", cfg.Profile)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
