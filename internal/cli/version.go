package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gozen/pkg/config"
)

type versionInfo struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Built    string `json:"built"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the gozen version with its commit, build date, Go version and
platform. With --format json the same fields are printed as an object.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := versionInfo{
				Version:  info.Version,
				Commit:   info.Commit,
				Built:    info.Date,
				Go:       runtime.Version(),
				Platform: runtime.GOOS + "/" + runtime.GOARCH,
			}

			format, err := cmd.Flags().GetString(flagFormat)
			if err != nil {
				return fmt.Errorf("get %s flag: %w", flagFormat, err)
			}
			if config.OutputFormat(format) == config.FormatJSON {
				return writeJSON(cmd.OutOrStdout(), v)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "gozen %s (commit %s, built %s, %s %s)\n",
				v.Version, v.Commit, v.Built, v.Go, v.Platform)
			if err != nil {
				return fmt.Errorf("write version: %w", err)
			}
			return nil
		},
	}
}
