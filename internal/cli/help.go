package cli

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gozen/internal/ui/pretty"
)

// annotationOperators marks commands whose help lists the abbreviation
// operators.
const annotationOperators = "gozen/operators"

//nolint:gochecknoglobals // read-only help content
var abbreviationOperators = [][2]string{
	{"E>F", "F inside E"},
	{"E+F", "F after E"},
	{"(E>F)+G", "group, closed before G"},
	{"E*3", "three copies; $ in names and values counts them"},
	{"E*", "one copy per line of wrapped text"},
	{"E#id.a.b", "id and classes"},
	{"E[x=1 y]", "attributes"},
	{"E{text}", "text content"},
	{"ul+", "expando, a list with its first item"},
	{"E|e|s", "extra output filters: e, c, fc, s, t, xsl"},
}

//nolint:gochecknoglobals // compiled once
var reFlagUsage = regexp.MustCompile(`^(\s*)(-\S.*?)(\s{2,})(\S.*)$`)

const usageTemplate = `{{heading "Usage:"}}
{{- if .Runnable}}
  {{command .UseLine}}{{end}}
{{- if .HasAvailableSubCommands}}
  {{command .CommandPath}} [command]{{end}}
{{- if .Aliases}}

{{heading "Aliases:"}}
  {{join .Aliases ", "}}{{end}}
{{- if .HasExample}}

{{heading "Examples:"}}
{{dim .Example}}{{end}}
{{- with operators .}}

{{heading "Abbreviation syntax:"}}
{{.}}{{end}}
{{- if .HasAvailableSubCommands}}

{{heading "Commands:"}}{{range .Commands}}{{if .IsAvailableCommand}}
  {{name (pad .Name .NamePadding)}} {{.Short}}{{end}}{{end}}{{end}}
{{- if .HasAvailableLocalFlags}}

{{heading "Flags:"}}
{{flags .LocalFlags}}{{end}}
{{- if .HasAvailableInheritedFlags}}

{{heading "Global Flags:"}}
{{flags .InheritedFlags}}{{end}}
{{- if .HasAvailableSubCommands}}

Run "{{.CommandPath}} [command] --help" for details on a command.{{end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{trim .}}

{{end}}` + usageTemplate

// applyHelp installs styled help and usage output on root. Subcommands
// inherit it. Colors follow the --color flag and the output writer.
func applyHelp(root *cobra.Command) {
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		if err := renderHelp(cmd, helpTemplate); err != nil {
			cmd.PrintErrln(err)
		}
	})
	root.SetUsageFunc(func(cmd *cobra.Command) error {
		return renderHelp(cmd, usageTemplate)
	})
}

func renderHelp(cmd *cobra.Command, text string) error {
	mode := "auto"
	if f := cmd.Flag(flagColor); f != nil {
		mode = f.Value.String()
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(mode, cmd.OutOrStdout()))

	tmpl, err := template.New("help").Funcs(helpFuncs(styles)).Parse(text)
	if err != nil {
		return fmt.Errorf("parse help template: %w", err)
	}
	if err := tmpl.Execute(cmd.OutOrStdout(), cmd); err != nil {
		return fmt.Errorf("render help: %w", err)
	}
	return nil
}

func helpFuncs(styles *pretty.Styles) template.FuncMap {
	return template.FuncMap{
		"heading":   styles.Section.Render,
		"command":   styles.Bold.Render,
		"name":      styles.Name.Render,
		"dim":       func(s string) string { return renderLines(styles.Dim, s) },
		"join":      strings.Join,
		"pad":       pad,
		"trim":      func(s string) string { return strings.TrimRight(s, " \t\n") },
		"operators": func(cmd *cobra.Command) string { return operatorHelp(styles, cmd) },
		"flags": func(fs interface{ FlagUsages() string }) string {
			return flagHelp(styles, fs.FlagUsages())
		},
	}
}

// operatorHelp lists the abbreviation operators for annotated commands.
func operatorHelp(styles *pretty.Styles, cmd *cobra.Command) string {
	if _, ok := cmd.Annotations[annotationOperators]; !ok {
		return ""
	}

	width := 0
	for _, op := range abbreviationOperators {
		width = max(width, len(op[0]))
	}

	lines := make([]string, 0, len(abbreviationOperators))
	for _, op := range abbreviationOperators {
		lines = append(lines, "  "+styles.Name.Render(pad(op[0], width))+"  "+op[1])
	}
	return strings.Join(lines, "\n")
}

// flagHelp styles pflag's usage table, keeping its column alignment.
func flagHelp(styles *pretty.Styles, usages string) string {
	lines := strings.Split(strings.TrimRight(usages, "\n"), "\n")
	for i, line := range lines {
		m := reFlagUsage.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		spec := strings.Fields(m[2])
		for j, field := range spec {
			if strings.HasPrefix(field, "-") {
				name, comma := strings.CutSuffix(field, ",")
				spec[j] = styles.Name.Render(name)
				if comma {
					spec[j] += ","
				}
			} else {
				spec[j] = styles.Dim.Render(field)
			}
		}
		lines[i] = m[1] + strings.Join(spec, " ") + m[3] + m[4]
	}
	return strings.Join(lines, "\n")
}

// renderLines applies style to each line on its own so multi-line text is
// not padded to a block.
func renderLines(style lipgloss.Style, s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
