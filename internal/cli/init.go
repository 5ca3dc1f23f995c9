package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gozen/internal/logging"
	"github.com/yaklabco/gozen/pkg/config"
	"github.com/yaklabco/gozen/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force    bool
	full     bool
	toml     bool
	output   string
	profiles []string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gozen configuration file",
		Long: `Create a new .gozen.yml configuration file in the current directory.

The minimal template documents every setting in comments. The full
template spells out the defaults together with the settings of the
built-in profiles, ready to be tweaked.`,
		Example: `  gozen init                        Create minimal .gozen.yml
  gozen init --full                 Include the built-in profiles
  gozen init --full --profiles html Only include the html profile
  gozen init --toml                 Create .gozen.toml instead
  gozen init --output custom.yml    Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with profile settings")
	cmd.Flags().BoolVar(&flags.toml, "toml", false, "Generate TOML instead of YAML")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .gozen.yml or .gozen.toml)")
	cmd.Flags().StringSliceVar(&flags.profiles, "profiles", nil, "Profiles to include in a full template")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	format, outputPath := config.TemplateYAML, ".gozen.yml"
	if flags.toml {
		format, outputPath = config.TemplateTOML, ".gozen.toml"
	}
	if flags.output != "" {
		outputPath = flags.output
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:     flags.full,
		Format:   format,
		Profiles: flags.profiles,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := fsutil.WriteAtomic(ctx, absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'gozen resources list' to see what can be expanded")

	return nil
}
