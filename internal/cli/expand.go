package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gozen/internal/logging"
)

// ErrNoInput is returned when a command has nothing to work on.
var ErrNoInput = errors.New("no input")

func newExpandCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "expand [abbreviation...]",
		Short: "Expand abbreviations",
		Long: `Expand one or more abbreviations and print the result.

With no arguments, abbreviations are read from standard input, one per
line. Blank lines are skipped.

The text format shows the expansion with tab stops highlighted and empty
stops drawn as "|". The raw format keeps tab stop tokens such as ${1} for
editors that understand them. The json format adds tab stop offsets.`,
		Example: `  gozen expand 'ul#nav>li.item$*3>a'
  gozen expand -s css 'pos:a+m:0'
  gozen expand -p plain -f raw 'table>tr*2>td*2'
  printf 'a\nimg\n' | gozen expand -f json`,
		Annotations: map[string]string{annotationOperators: ""},
		Args: cobra.ArbitraryArgs,
		RunE: runExpand,
	}
}

func runExpand(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd, nil)
	if err != nil {
		return err
	}

	abbrs := args
	if len(abbrs) == 0 {
		abbrs, err = readLines(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}
	if len(abbrs) == 0 {
		return fmt.Errorf("%w: give an abbreviation or pipe some in", ErrNoInput)
	}

	exps := make([]expansion, 0, len(abbrs))
	for _, abbr := range abbrs {
		out, err := a.engine.ExpandAbbreviation(abbr, a.cfg.Syntax, a.cfg.Profile, nil)
		if err != nil {
			return err
		}
		a.logger().Debug("expanded", logging.FieldAbbreviation, abbr, logging.FieldOutput, len(out))
		exps = append(exps, newExpansion(abbr, a.cfg.Syntax, a.cfg.Profile, out))
	}

	return a.writeExpansions(exps)
}

// readLines reads non-blank lines from r. An interactive terminal yields
// nothing rather than blocking for input.
func readLines(r io.Reader) ([]string, error) {
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, nil
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return lines, nil
}
