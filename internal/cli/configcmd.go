package cli

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gozen/internal/configloader"
	"github.com/yaklabco/gozen/internal/ui/pretty"
	"github.com/yaklabco/gozen/pkg/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(newConfigShowCommand(), newConfigEnvCommand(), newConfigPathsCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	var asTOML bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration",
		Long: `Print the configuration that results from merging the system, user,
project and explicit configuration files, the environment and the flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd, nil)
			if err != nil {
				return err
			}

			if a.format() == config.FormatJSON {
				return writeJSON(a.out, a.cfg)
			}

			var data []byte
			if asTOML {
				data, err = a.cfg.ToTOML()
			} else {
				data, err = a.cfg.ToYAML()
			}
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}

			if _, err := a.out.Write(data); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asTOML, "toml", false, "Print as TOML instead of YAML")

	return cmd
}

func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables gozen reads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			color, _ := cmd.Flags().GetString(flagColor)
			out := cmd.OutOrStdout()
			styles := pretty.NewStyles(pretty.IsColorEnabled(color, out))

			vars := configloader.ListEnvVars()
			names := lo.Keys(vars)
			slices.Sort(names)

			rows := lo.Map(names, func(name string, _ int) pretty.TableRow {
				return pretty.TableRow{Name: name, Kind: "env", Value: vars[name]}
			})

			table := pretty.NewTableFormatter(styles, terminalWidth(out))
			if _, err := fmt.Fprint(out, table.FormatTable("environment", rows)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}
}

func newConfigPathsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "List the configuration files that were loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd, nil)
			if err != nil {
				return err
			}

			if a.format() == config.FormatJSON {
				return writeJSON(a.out, a.loaded.LoadedFrom)
			}

			if len(a.loaded.LoadedFrom) == 0 {
				_, err = fmt.Fprintln(a.out, a.styles.Dim.Render("no configuration files; using defaults"))
				return err
			}
			for _, path := range a.loaded.LoadedFrom {
				if _, err := fmt.Fprintln(a.out, a.styles.FilePath.Render(path)); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}
			return nil
		},
	}
}
