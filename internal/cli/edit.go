package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gozen/internal/logging"
	"github.com/yaklabco/gozen/internal/ui/pretty"
	"github.com/yaklabco/gozen/pkg/config"
	"github.com/yaklabco/gozen/pkg/edittree"
	"github.com/yaklabco/gozen/pkg/edittree/cssedit"
	"github.com/yaklabco/gozen/pkg/edittree/xmledit"
	"github.com/yaklabco/gozen/pkg/fsutil"
	"github.com/yaklabco/gozen/pkg/patch"
)

// Edit errors.
var (
	// ErrNothingAtPosition is returned when no rule or tag surrounds --at.
	ErrNothingAtPosition = errors.New("nothing to edit at position")

	// ErrInvalidEdit is returned for a malformed --set value.
	ErrInvalidEdit = errors.New("invalid edit")
)

// Edit targets.
const (
	editCSS = "css"
	editXML = "xml"
)

type editFlags struct {
	at       int
	set      []string
	remove   []string
	rename   string
	dryRun   bool
	noBackup bool
}

// edits are the changes requested on the command line.
type edits struct {
	set    []string
	remove []string
	rename string
}

func (e edits) empty() bool {
	return len(e.set) == 0 && len(e.remove) == 0 && e.rename == ""
}

func newEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a CSS rule or an XML tag in place",
		Long: `Edit the CSS rule or the start tag found at a byte offset of a file.

Without changes the rule's declarations or the tag's attributes are
listed. Changes keep the formatting around them: new declarations and
attributes copy the spacing and quoting of their neighbours.

Files are written atomically. When backups are enabled the first version
of a file is kept next to it with a .gozen.bak suffix.`,
	}

	cmd.AddCommand(newEditTargetCommand(editCSS, "rule", "declaration", `  gozen edit css site.css --at 120
  gozen edit css site.css --at 120 --set color=red --remove margin
  gozen edit css site.css --at 120 --rename 'a:hover' --dry-run`))
	cmd.AddCommand(newEditTargetCommand(editXML, "tag", "attribute", `  gozen edit xml index.html --at 40
  gozen edit xml index.html --at 40 --set class=main --remove style
  gozen edit xml index.html --at 40 --rename section`))

	return cmd
}

func newEditTargetCommand(target, container, element, example string) *cobra.Command {
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:     target + " <file>",
		Short:   fmt.Sprintf("Edit the %s %s at an offset", target, container),
		Example: example,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, target, args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.at, "at", 0, "byte offset inside the "+container)
	cmd.Flags().StringArrayVar(&flags.set, "set", nil, "set "+element+" name=value (repeatable)")
	cmd.Flags().StringArrayVar(&flags.remove, "remove", nil, "remove "+element+" by name (repeatable)")
	cmd.Flags().StringVar(&flags.rename, "rename", "", "rename the "+container)
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the change instead of writing it")
	cmd.Flags().BoolVar(&flags.noBackup, "no-backups", false, "do not back the file up")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

// editResult is what an edit did, as reported in JSON.
type editResult struct {
	Path     string        `json:"path"`
	Name     string        `json:"name"`
	Start    int           `json:"start"`
	End      int           `json:"end"`
	Before   string        `json:"before"`
	After    string        `json:"after"`
	Elements []editElement `json:"elements"`
	Written  bool          `json:"written"`
	Backup   string        `json:"backup,omitempty"`

	original string
	updated  string
}

type editElement struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func runEdit(cmd *cobra.Command, target, path string, flags *editFlags) error {
	a, err := loadApp(cmd, &config.Config{DryRun: flags.dryRun, NoBackups: flags.noBackup})
	if err != nil {
		return err
	}

	content, info, err := fsutil.ReadFile(a.ctx, path)
	if err != nil {
		return err
	}

	ops := edits{set: flags.set, remove: flags.remove, rename: flags.rename}
	updated, res, err := editDocument(target, string(content), flags.at, ops)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	res.Path = path
	res.original, res.updated = string(content), updated

	if !ops.empty() && !a.cfg.DryRun {
		backups := a.cfg.Backups
		if a.cfg.NoBackups {
			backups.Enabled = false
		}

		saved, err := fsutil.Save(a.ctx, info, []byte(updated), backups)
		if err != nil {
			return err
		}
		res.Written = saved.Written
		res.Backup = saved.BackupPath

		a.logger().Info("edited", logging.FieldPath, path, logging.FieldKind, target, "backup", saved.BackupPath)
	}

	return a.writeEdit(target, ops, res)
}

// editDocument applies ops to the CSS rule or XML tag around pos and returns
// the whole updated content.
func editDocument(target, content string, pos int, ops edits) (string, editResult, error) {
	var c *edittree.Container
	switch target {
	case editCSS:
		rule, err := cssedit.ParseFromPosition(content, pos, false)
		if err != nil {
			return "", editResult{}, err
		}
		if rule != nil {
			c = rule.Container
		}
	case editXML:
		tag, err := xmledit.ParseFromPosition(content, pos, false)
		if err != nil {
			return "", editResult{}, err
		}
		if tag != nil {
			c = tag.Container
		}
	default:
		return "", editResult{}, fmt.Errorf("unknown edit target %q", target)
	}
	if c == nil {
		return "", editResult{}, fmt.Errorf("%w %d", ErrNothingAtPosition, pos)
	}

	orig := c.Range(true)
	res := editResult{Start: orig.Start, End: orig.End, Before: c.Source()}

	for _, assignment := range ops.set {
		name, value, ok := strings.Cut(assignment, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return "", editResult{}, fmt.Errorf("%w: %q is not name=value", ErrInvalidEdit, assignment)
		}
		c.SetValue(name, value)
	}
	for _, name := range ops.remove {
		c.Remove(name)
	}
	if ops.rename != "" {
		c.SetName(ops.rename)
	}

	res.Name = c.Name()
	res.After = c.Source()
	for _, el := range c.List() {
		res.Elements = append(res.Elements, editElement{Name: el.Name(), Value: el.Value()})
	}

	updated, err := patch.Apply(content, patch.Replace(orig, c.Source()))
	if err != nil {
		return "", editResult{}, err
	}
	return updated, res, nil
}

func (a *app) writeEdit(target string, ops edits, res editResult) error {
	if a.format() == config.FormatJSON {
		return writeJSON(a.out, res)
	}

	var b strings.Builder
	switch {
	case ops.empty():
		kind := "declaration"
		if target == editXML {
			kind = "attribute"
		}
		rows := make([]pretty.TableRow, 0, len(res.Elements))
		for _, el := range res.Elements {
			rows = append(rows, pretty.TableRow{Name: el.Name, Kind: kind, Value: el.Value})
		}
		title := fmt.Sprintf("%s %d-%d", res.Name, res.Start, res.End)
		b.WriteString(pretty.NewTableFormatter(a.styles, terminalWidth(a.out)).FormatTable(title, rows))
	case a.cfg.DryRun:
		d := patch.Compare(res.Path, res.original, res.updated)
		if d == nil {
			b.WriteString(a.styles.Dim.Render("no change") + " " + res.Path + "\n")
			break
		}
		for line := range strings.Lines(d.String()) {
			switch {
			case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
				b.WriteString(a.styles.FilePath.Render(strings.TrimSuffix(line, "\n")) + "\n")
			case strings.HasPrefix(line, "+"):
				b.WriteString(a.styles.DiffAdd.Render(strings.TrimSuffix(line, "\n")) + "\n")
			case strings.HasPrefix(line, "-"):
				b.WriteString(a.styles.DiffRemove.Render(strings.TrimSuffix(line, "\n")) + "\n")
			default:
				b.WriteString(line)
			}
		}
	case res.Written:
		b.WriteString(a.styles.Success.Render("updated") + " " + res.Path)
		if res.Backup != "" {
			b.WriteString(a.styles.Dim.Render(" (backup " + res.Backup + ")"))
		}
		b.WriteString("\n")
	default:
		b.WriteString(a.styles.Dim.Render("unchanged") + " " + res.Path + "\n")
	}

	if _, err := io.WriteString(a.out, b.String()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
