// Package cli provides the Cobra command structure for gozen.
package cli

import (
	"github.com/spf13/cobra"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Persistent flag names shared by every subcommand.
const (
	flagConfig   = "config"
	flagSyntax   = "syntax"
	flagProfile  = "profile"
	flagFormat   = "format"
	flagLogLevel = "log-level"
	flagDebug    = "debug"
	flagColor    = "color"
)

// NewRootCommand creates the root gozen command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gozen",
		Short: "Expand Zen Coding abbreviations into HTML, XML and CSS",
		Long: `gozen expands Zen Coding abbreviations such as "ul#nav>li.item*3>a"
into markup or style sheet code.

Output is shaped by profiles (tag case, quotes, indentation, self-closing
style) and filters. Snippets, abbreviations and variables come from a
built-in vocabulary that user vocabularies in YAML or TOML can extend.
Beyond expansion, gozen wraps text with abbreviations and edits CSS rules
and XML tags in place with optional backups.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String(flagConfig, "", "path to config file")
	flags.StringP(flagSyntax, "s", "", "document syntax: html, css, xml, xsl, haml, ...")
	flags.StringP(flagProfile, "p", "", "output profile: xhtml, html, xml, plain or a configured one")
	flags.StringP(flagFormat, "f", "", "output format: text, raw, json")
	flags.String(flagLogLevel, "", "log level: debug, info, warn, error")
	flags.Bool(flagDebug, false, "enable debug logging")
	flags.String(flagColor, "auto", "colorize output: auto, always, never")

	rootCmd.AddCommand(newExpandCommand())
	rootCmd.AddCommand(newWrapCommand())
	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newResourcesCommand())
	rootCmd.AddCommand(newEditCommand())
	rootCmd.AddCommand(newDetectCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	applyHelp(rootCmd)

	return rootCmd
}
