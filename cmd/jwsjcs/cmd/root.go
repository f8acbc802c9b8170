// Package cmd implements the jwsjcs CLI commands.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vitalvas/jwsjcs/jws"
)

// Version is set at build time.
var Version = "0.1.0"

// options carries global flags and the resolved config to subcommands.
type options struct {
	configPath        string
	logLevel          string
	signatureProperty string
	maxDepth          int
	noColor           bool

	config *Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "jwsjcs",
		Short: "Sign and verify JSON objects with JWS over canonical JSON",
		Long: `jwsjcs signs JSON objects by canonicalizing them (RFC 8785 style) and
embedding a detached JWS compact envelope in a "signature" property.

Configuration is read from --config, the JWSJCS_CONFIG environment variable,
or the default config file, in that order. Flags override config values.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/jwsjcs/config.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.signatureProperty, "signature-property", jws.DefaultSignatureProperty, "Object member that holds the signature")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "Maximum nesting depth of signed documents (0 = unlimited)")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newKeygenCmd(opts),
		newCanonicalizeCmd(opts),
		newSignCmd(opts),
		newVerifyCmd(opts),
	)

	return rootCmd
}

// init loads the config file and applies it beneath explicitly set flags.
func (o *options) init(cmd *cobra.Command) error {
	path, explicit := resolveConfigPath(o.configPath)

	cfg, err := LoadConfig(path, explicit)
	if err != nil {
		return err
	}

	o.config = cfg

	flags := cmd.Flags()

	if !flags.Changed("log-level") && cfg.LogLevel != "" {
		o.logLevel = cfg.LogLevel
	}

	if !flags.Changed("signature-property") && cfg.SignatureProperty != "" {
		o.signatureProperty = cfg.SignatureProperty
	}

	if !flags.Changed("max-depth") && cfg.MaxDepth != 0 {
		o.maxDepth = cfg.MaxDepth
	}

	if o.maxDepth < 0 {
		return fmt.Errorf("--max-depth must not be negative")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", o.logLevel, err)
	}

	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if o.noColor {
		color.NoColor = true
	}

	o.logger.Debug("configuration loaded", "path", path, "explicit", explicit)

	return nil
}

// Execute runs the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}

	return err
}
