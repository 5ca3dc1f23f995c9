// Package main is the entry point for the gozen CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gozen/internal/cli"
	"github.com/yaklabco/gozen/internal/logging"
	"github.com/yaklabco/gozen/pkg/zen"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// A cancelled prompt is the user's choice, not a failure worth logging.
		if !errors.Is(err, zen.ErrCancelled) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return 0
}
