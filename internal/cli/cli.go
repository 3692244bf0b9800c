// Package cli implements the varscan command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lightfinesthour/VAM-Dependency-Scanner/internal/config"
	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "varscan"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer // report lines
	Err    io.Writer // diagnostics

	configPath string
	verbose    bool
}

// New creates a new CLI instance writing reports to out and logs to errw.
func New(out, errw io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(errw, level),
		Out:    out,
		Err:    errw,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "varscan finds unused, missing and recoverable VaM var packages",
		Long: `varscan scans a VaM folder for .var packages and presets, lists packages
nothing depends on, and checks an extra source folder for dependencies that
are not installed, optionally copying the matches into place.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)
	root.SetErr(c.Err)
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "show verbose output")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/varscan/config.toml)")

	root.AddCommand(c.scanCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config Loading
// =============================================================================

// loadConfig reads the config file, applies the flags set on cmd from fc,
// and validates the result.
func (c *CLI) loadConfig(cmd *cobra.Command, fc *config.Config) (config.Config, error) {
	logger := loggerFromContext(cmd.Context())

	cfg, warnings, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	for _, w := range warnings {
		logger.Warn(w)
	}

	cmd.Flags().Visit(func(f *pflag.Flag) { applyFlag(&cfg, fc, f.Name) })
	if c.verbose {
		cfg.Verbose = true
	}
	if cfg.Verbose {
		c.SetLogLevel(LogDebug)
	}

	if err := cfg.Abs(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyFlag(cfg, fc *config.Config, name string) {
	switch name {
	case "path":
		cfg.Path = fc.Path
	case "source":
		cfg.Source = fc.Source
	case "name":
		cfg.Name = fc.Name
	case "output":
		cfg.Output = fc.Output
	case "missing-only":
		cfg.MissingOnly = fc.MissingOnly
	case "dest":
		cfg.Dest = fc.Dest
	case "copy-found":
		cfg.CopyFound = fc.CopyFound
	case "strict":
		cfg.Strict = fc.Strict
	case "json":
		cfg.JSON = fc.JSON
	}
}

// Execute runs the root command with ctx.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
