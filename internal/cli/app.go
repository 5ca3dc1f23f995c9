package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gozen/internal/configloader"
	"github.com/yaklabco/gozen/internal/logging"
	"github.com/yaklabco/gozen/internal/ui/pretty"
	"github.com/yaklabco/gozen/pkg/config"
	"github.com/yaklabco/gozen/pkg/zen"
)

// ErrConfig marks failures to load or apply configuration.
var ErrConfig = errors.New("configuration error")

// app is what a subcommand needs once configuration is resolved.
type app struct {
	ctx    context.Context
	cfg    *config.Config
	loaded *configloader.LoadResult
	engine *zen.Engine
	styles *pretty.Styles
	out    io.Writer
}

// loadApp resolves configuration for cmd and builds the engine. Values in
// override win over everything else, as do persistent flags the user set.
func loadApp(cmd *cobra.Command, override *config.Config) (*app, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cliCfg, err := configFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	if override != nil {
		cliCfg = configloader.MergeAll(cliCfg, override)
	}

	configPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	cfg := loaded.Config

	level := cfg.LogLevel
	if debug, _ := cmd.Flags().GetBool(flagDebug); debug {
		level = "debug"
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)

	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if len(loaded.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", "files", loaded.LoadedFrom)
	}

	store, err := configloader.BuildStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	engine := zen.New(
		zen.WithStore(store),
		zen.WithProfiles(cfg.BuildProfiles()),
		zen.WithLogger(logger),
	)

	colorMode, _ := cmd.Flags().GetString(flagColor)
	out := cmd.OutOrStdout()

	logger.Debug("configuration resolved",
		logging.FieldSyntax, cfg.Syntax,
		logging.FieldProfile, cfg.Profile,
		logging.FieldVocabulary, cfg.Vocabulary,
	)

	return &app{
		ctx:    logging.WithLogger(ctx, logger),
		cfg:    cfg,
		loaded: loaded,
		engine: engine,
		styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, out)),
		out:    out,
	}, nil
}

// configFromFlags collects the persistent flags the user actually set.
func configFromFlags(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	flags := cmd.Flags()

	for name, dst := range map[string]*string{
		flagSyntax:   &cfg.Syntax,
		flagProfile:  &cfg.Profile,
		flagLogLevel: &cfg.LogLevel,
	} {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return nil, fmt.Errorf("get %s flag: %w", name, err)
		}
		*dst = value
	}

	if flags.Changed(flagFormat) {
		value, err := flags.GetString(flagFormat)
		if err != nil {
			return nil, fmt.Errorf("get %s flag: %w", flagFormat, err)
		}
		cfg.Format = config.OutputFormat(value)
	}

	return cfg, nil
}

// logger returns the logger carried by the command context.
func (a *app) logger() *log.Logger {
	return logging.FromContext(a.ctx)
}

// format returns the output format, text unless configured otherwise.
func (a *app) format() config.OutputFormat {
	if a.cfg.Format == "" {
		return config.FormatText
	}
	return a.cfg.Format
}
