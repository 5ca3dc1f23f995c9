package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gozen/internal/logging"
	"github.com/yaklabco/gozen/pkg/config"
	"github.com/yaklabco/gozen/pkg/langdetect"
	"github.com/yaklabco/gozen/pkg/runner"
)

// ErrDetectFailed is returned when some files could not be read.
var ErrDetectFailed = errors.New("detection failed")

// detectSample bounds how much of a file the classifier reads.
const detectSample = 16 * 1024

type detectFlags struct {
	extensions []string
	exclude    []string
	jobs       int
	symlinks   bool
}

func newDetectCommand() *cobra.Command {
	flags := &detectFlags{}

	cmd := &cobra.Command{
		Use:   "detect [path...]",
		Short: "Guess the syntax of files",
		Long: `Guess which syntax suits each file, from its name first and its
content second. Directories are walked, skipping hidden entries. Files
nothing fits are reported with the configured default syntax.`,
		Example: `  gozen detect index.html theme.scss
  gozen detect --ext .html --ext .css --exclude 'vendor/**' site/`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "only walk files with these extensions")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "files read concurrently (default: number of CPUs)")
	cmd.Flags().BoolVar(&flags.symlinks, "follow-symlinks", false, "walk symlinked directories")

	return cmd
}

type detection struct {
	Path     string `json:"path"`
	Syntax   string `json:"syntax"`
	Detected bool   `json:"detected"`
}

func runDetect(cmd *cobra.Command, args []string, flags *detectFlags) error {
	a, err := loadApp(cmd, nil)
	if err != nil {
		return err
	}

	result, err := runner.Run(a.ctx, runner.Options{
		Paths:          args,
		Extensions:     flags.extensions,
		ExcludeGlobs:   flags.exclude,
		FollowSymlinks: flags.symlinks,
		Jobs:           flags.jobs,
	}, func(ctx context.Context, path string) (string, error) {
		logger := logging.FromContext(logging.WithFields(ctx, logging.FieldPath, path))
		content, err := readSample(path)
		if err != nil {
			return "", err
		}
		syntax := langdetect.Detect(path, content)
		logger.Debug("sampled", "bytes", len(content), logging.FieldSyntax, syntax)
		return syntax, nil
	})
	if err != nil {
		return err
	}

	results := make([]detection, 0, len(result.Files))
	for _, outcome := range result.Files {
		if outcome.Error != nil {
			a.logger().Warn("skipped", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
			continue
		}
		d := detection{Path: outcome.Path, Syntax: outcome.Value, Detected: outcome.Value != ""}
		if !d.Detected {
			d.Syntax = a.cfg.Syntax
		}
		results = append(results, d)
	}

	if err := a.writeDetections(results); err != nil {
		return err
	}
	if result.Stats.FilesErrored > 0 {
		return fmt.Errorf("%w: %d of %d files unreadable", ErrDetectFailed,
			result.Stats.FilesErrored, result.Stats.FilesDiscovered)
	}
	return nil
}

func (a *app) writeDetections(results []detection) error {
	if a.format() == config.FormatJSON {
		return writeJSON(a.out, results)
	}
	for _, d := range results {
		syntax := d.Syntax
		if !d.Detected {
			syntax += a.styles.Dim.Render(" (default)")
		}
		if _, err := fmt.Fprintf(a.out, "%s: %s\n", a.styles.FilePath.Render(d.Path), syntax); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

func readSample(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, detectSample))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
