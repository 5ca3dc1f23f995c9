package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gozen/internal/ui/pretty"
	"github.com/yaklabco/gozen/pkg/config"
	"github.com/yaklabco/gozen/pkg/elements"
	"github.com/yaklabco/gozen/pkg/resources"
)

// ErrUnknownResource is returned by "resources show" for a name no section has.
var ErrUnknownResource = errors.New("unknown resource")

// maxSuggestions bounds the "did you mean" list.
const maxSuggestions = 3

//nolint:gochecknoglobals // Read-only lookup table.
var sections = []resources.Section{resources.SectionSnippets, resources.SectionAbbreviations}

func newResourcesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resources",
		Aliases: []string{"res"},
		Short:   "Inspect the snippet and abbreviation vocabulary",
		Long: `Inspect the vocabulary used for expansion: the built-in one merged
with any user vocabularies named in the configuration.`,
	}

	cmd.AddCommand(newResourcesListCommand())
	cmd.AddCommand(newResourcesShowCommand())
	cmd.AddCommand(newResourcesSyntaxesCommand())

	return cmd
}

func newResourcesListCommand() *cobra.Command {
	var match string
	var section string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List snippets and abbreviations of a syntax",
		Example: `  gozen resources list -s css --match bd
  gozen resources list --section snippets`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd, nil)
			if err != nil {
				return err
			}

			selected := sections
			if section != "" {
				s := resources.Section(section)
				if !slices.Contains(sections, s) {
					return fmt.Errorf("invalid section %q; must be snippets or abbreviations", section)
				}
				selected = []resources.Section{s}
			}

			return a.listResources(selected, match)
		},
	}

	cmd.Flags().StringVar(&match, "match", "", "fuzzy filter on names")
	cmd.Flags().StringVar(&section, "section", "", "only list one section: snippets or abbreviations")

	return cmd
}

type resourceRow struct {
	Section string `json:"section"`
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Value   string `json:"value"`
}

func (a *app) resourceRows(section resources.Section, match string) []resourceRow {
	store := a.engine.Store()
	names := lo.Keys(store.Subset(a.cfg.Syntax, section))
	if match != "" {
		names = lo.Filter(names, func(name string, _ int) bool { return fuzzy.MatchFold(match, name) })
	}
	slices.Sort(names)

	rows := make([]resourceRow, 0, len(names))
	for _, name := range names {
		res := store.Resource(a.cfg.Syntax, section, name)
		if res == nil {
			continue
		}
		rows = append(rows, resourceRow{
			Section: string(section),
			Name:    name,
			Kind:    res.Kind().String(),
			Value:   describe(res),
		})
	}
	return rows
}

func (a *app) listResources(selected []resources.Section, match string) error {
	var all []resourceRow
	for _, section := range selected {
		all = append(all, a.resourceRows(section, match)...)
	}

	if a.format() == config.FormatJSON {
		return writeJSON(a.out, all)
	}

	formatter := pretty.NewTableFormatter(a.styles, terminalWidth(a.out))
	for _, section := range selected {
		rows := lo.FilterMap(all, func(r resourceRow, _ int) (pretty.TableRow, bool) {
			return pretty.TableRow{Name: r.Name, Kind: r.Kind, Value: r.Value}, r.Section == string(section)
		})
		title := fmt.Sprintf("%s %s", a.cfg.Syntax, section)
		if _, err := io.WriteString(a.out, formatter.FormatTable(title, rows)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

func newResourcesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one snippet or abbreviation",
		Long: `Show the definition of a snippet or abbreviation. Abbreviations are
searched first, with "-" also tried as ":" the way expansion does.`,
		Example: "  gozen resources show html:5\n  gozen resources show -s css bd+",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, nil)
			if err != nil {
				return err
			}
			return a.showResource(args[0])
		},
	}
}

func (a *app) showResource(name string) error {
	store := a.engine.Store()

	lookups := []struct {
		section resources.Section
		res     elements.Resource
	}{
		{section: resources.SectionAbbreviations, res: store.Abbreviation(a.cfg.Syntax, name)},
		{section: resources.SectionSnippets, res: store.Snippet(a.cfg.Syntax, name)},
	}

	var found []resourceRow
	for _, l := range lookups {
		if l.res == nil {
			continue
		}
		found = append(found, resourceRow{
			Section: string(l.section),
			Name:    name,
			Kind:    l.res.Kind().String(),
			Value:   describe(l.res),
		})
	}

	if len(found) == 0 {
		return a.unknownResource(name)
	}

	if a.format() == config.FormatJSON {
		return writeJSON(a.out, found)
	}
	for _, row := range found {
		header := a.styles.Section.Render(row.Section) + " " +
			a.styles.Name.Render(row.Name) + " " +
			a.styles.Kind.Render("("+row.Kind+")")
		if _, err := fmt.Fprintf(a.out, "%s\n%s\n", header, row.Value); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

// unknownResource builds the error for a missing name, suggesting the
// closest names of the syntax.
func (a *app) unknownResource(name string) error {
	store := a.engine.Store()

	var names []string
	for _, section := range sections {
		names = append(names, lo.Keys(store.Subset(a.cfg.Syntax, section))...)
	}

	ranks := fuzzy.RankFindFold(name, lo.Uniq(names))
	sort.Sort(ranks)
	suggestions := lo.Map(lo.Slice(ranks, 0, maxSuggestions), func(r fuzzy.Rank, _ int) string { return r.Target })

	if len(suggestions) == 0 {
		return fmt.Errorf("%w: %q in %s", ErrUnknownResource, name, a.cfg.Syntax)
	}
	return fmt.Errorf("%w: %q in %s; did you mean %s?", ErrUnknownResource, name, a.cfg.Syntax,
		strings.Join(suggestions, ", "))
}

func newResourcesSyntaxesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "syntaxes",
		Short: "List known syntaxes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd, nil)
			if err != nil {
				return err
			}

			names := a.engine.Store().Syntaxes()
			slices.Sort(names)

			if a.format() == config.FormatJSON {
				return writeJSON(a.out, names)
			}
			for _, name := range names {
				line := name
				if filters := a.engine.Store().Filters(name); filters != "" {
					line += " " + a.styles.Dim.Render("filters: "+filters)
				}
				if _, err := fmt.Fprintln(a.out, line); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}
			return nil
		},
	}
}

// describe renders a resource the way it would appear in a vocabulary file.
func describe(res elements.Resource) string {
	switch r := res.(type) {
	case *elements.Element:
		var b strings.Builder
		b.WriteString("<" + r.Name)
		for _, attr := range r.Attributes {
			fmt.Fprintf(&b, " %s=%q", attr.Name, attr.Value)
		}
		if r.IsEmpty {
			b.WriteString(" /")
		}
		b.WriteString(">")
		return b.String()
	case *elements.Snippet:
		return r.Data
	case *elements.Expando:
		return r.Data
	case *elements.Reference:
		return "-> " + r.Data
	default:
		return ""
	}
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
