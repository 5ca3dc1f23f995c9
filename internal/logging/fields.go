// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Expansion fields.
	FieldSyntax       = "syntax"
	FieldProfile      = "profile"
	FieldAbbreviation = "abbreviation"
	FieldFilters      = "filters"
	FieldTabStops     = "tabstops"

	// Resource fields.
	FieldVocabulary = "vocabulary"
	FieldResolver   = "resolver"
	FieldOrder      = "order"
	FieldSection    = "section"

	// Edit tree fields.
	FieldKind   = "kind"
	FieldOffset = "offset"
	FieldItems  = "items"

	// Generic naming fields.
	FieldName = "name"
)
