package pretty

import (
	"fmt"
	"strings"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 3 // NAME, KIND, VALUE
	minNameWidth     = 8
	minKindWidth     = 7
	minValueWidth    = 20
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow represents a single row of a resource listing.
type TableRow struct {
	Name  string
	Kind  string
	Value string
}

// TableFormatter formats resource listings as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

type columnWidths struct {
	name  int
	kind  int
	value int
}

// FormatTable formats rows under a section title. Values are flattened to
// one line and truncated to fit the terminal.
func (t *TableFormatter) FormatTable(title string, rows []TableRow) string {
	var b strings.Builder

	if title != "" {
		b.WriteString(t.styles.Section.Render(title))
		b.WriteString("\n")
	}
	if len(rows) == 0 {
		b.WriteString(t.styles.Dim.Render(" (none)"))
		b.WriteString("\n")
		return b.String()
	}

	widths := t.calculateColumnWidths(rows)
	b.WriteString(t.formatHeader(widths))
	b.WriteString("\n")
	b.WriteString(t.formatSeparator(widths))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(t.formatRow(row, widths))
		b.WriteString("\n")
	}

	return b.String()
}

// calculateColumnWidths sizes columns to their content, then shrinks the
// value column to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{name: minNameWidth, kind: minKindWidth, value: minValueWidth}

	for _, row := range rows {
		widths.name = max(widths.name, len(row.Name))
		widths.kind = max(widths.kind, len(row.Kind))
		widths.value = max(widths.value, len(flatten(row.Value)))
	}

	if total := t.calculateTotalWidth(widths); total > t.termWidth {
		widths.value = max(minValueWidth, widths.value-(total-t.termWidth))
	}

	return widths
}

// calculateTotalWidth calculates the total table width from column widths.
func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.name + widths.kind + widths.value + tablePadding*tableColumnCount
}

// formatHeader formats the table header row.
func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s",
		widths.name, "NAME",
		widths.kind, "KIND",
		widths.value, "VALUE",
	)
	return t.styles.TableHeader.Render(strings.TrimRight(header, " "))
}

// formatSeparator formats a separator line.
func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(lightSeparator, t.calculateTotalWidth(widths)))
}

// formatRow formats a single table row.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	name := fmt.Sprintf("%-*s", widths.name, row.Name)
	kind := fmt.Sprintf("%-*s", widths.kind, row.Kind)
	value := truncateString(flatten(row.Value), widths.value)

	return " " + t.styles.Name.Render(name) + "  " + t.styles.Kind.Render(kind) + "  " + t.styles.Value.Render(value)
}

// flatten shows line breaks and tabs as escapes so every row stays on one line.
func flatten(s string) string {
	return strings.NewReplacer("\r", `\r`, "\n", `\n`, "\t", `\t`).Replace(s)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}
