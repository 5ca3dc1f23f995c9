package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gozen/internal/logging"
	"github.com/yaklabco/gozen/pkg/config"
	"github.com/yaklabco/gozen/pkg/langdetect"
)

func newWrapCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "wrap <abbreviation> [file]",
		Short: "Wrap text with an abbreviation",
		Long: `Wrap the contents of a file, or standard input, with an abbreviation.

The text lands in the deepest element of the expansion, or wherever the
abbreviation places $#. A repeated element written with a bare "*" is
repeated once per non-blank line of text.

When a file is given and --syntax is not, the syntax is guessed from the
file name.`,
		Example: `  printf 'Home\nAbout\n' | gozen wrap 'ul>li*>a'
  gozen wrap 'div.note' note.txt`,
		Annotations: map[string]string{annotationOperators: ""},
		Args: cobra.RangeArgs(1, 2),
		RunE: runWrap,
	}
}

func runWrap(cmd *cobra.Command, args []string) error {
	var override *config.Config
	if len(args) == 2 && !cmd.Flags().Changed(flagSyntax) {
		if syntax := langdetect.ByFilename(args[1]); syntax != "" {
			override = &config.Config{Syntax: syntax}
		}
	}

	a, err := loadApp(cmd, override)
	if err != nil {
		return err
	}

	text, err := readInput(cmd.InOrStdin(), args[1:])
	if err != nil {
		return err
	}

	text = strings.TrimRight(text, "\r\n")
	abbr := args[0]
	out, err := a.engine.WrapWithAbbreviation(abbr, text, a.cfg.Syntax, a.cfg.Profile)
	if err != nil {
		return err
	}
	a.logger().Debug("wrapped", logging.FieldAbbreviation, abbr, logging.FieldInput, len(text))

	return a.writeExpansions([]expansion{newExpansion(abbr, a.cfg.Syntax, a.cfg.Profile, out)})
}

// readInput returns the named file, or standard input when no file (or "-")
// is named.
func readInput(stdin io.Reader, files []string) (string, error) {
	if len(files) > 0 && files[0] != "-" {
		data, err := os.ReadFile(files[0])
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	}

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", fmt.Errorf("%w: pipe text in or name a file", ErrNoInput)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}
