package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/terassyi/rover/internal/client"
	"github.com/terassyi/rover/internal/env"
	"github.com/terassyi/rover/internal/houston"
	"github.com/terassyi/rover/internal/printer"
)

// globalOptions holds the persistent flags and the process environment
// shared by every subcommand.
type globalOptions struct {
	profile  string
	logLevel string
	output   string
	noColor  bool

	format printer.Format

	env    env.Lookuper
	stdin  io.Reader
	stderr io.Writer
}

func newRootCmd(o *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rover",
		Short: "Work with graphs in the Apollo graph registry",
		Long: `Rover is a CLI for working with graphs and subgraphs published
to the Apollo graph registry.

Credentials are stored per profile:
  rover config auth              Save an API key to the default profile
  rover config auth --profile p  Save an API key to profile "p"`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: o.setup,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&o.profile, "profile", houston.DefaultProfile, "Name of the configuration profile to use")
	cmd.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to $"+env.LogLevel.String())
	cmd.PersistentFlags().StringVarP(&o.output, "output", "o", string(printer.FormatText), "Output format (text, json, yaml)")
	cmd.PersistentFlags().BoolVar(&o.noColor, "no-color", false, "Disable colored output")
	_ = cmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	cmd.AddCommand(
		newConfigCmd(o),
		newGraphCmd(o),
		newSubgraphCmd(o),
		newVersionCmd(o),
		newCompletionCmd(),
	)
	return cmd
}

// setup validates the global flags and installs the logger.
func (o *globalOptions) setup(_ *cobra.Command, _ []string) error {
	format, err := printer.ParseFormat(o.output)
	if err != nil {
		return err
	}
	o.format = format

	level := o.logLevel
	if level == "" {
		level = env.Get(o.env, env.LogLevel, "warn")
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(o.stderr, &slog.HandlerOptions{Level: parseLogLevel(level)})))
	return nil
}

// noColorOutput reports whether errors written to stderr must be uncolored.
func (o *globalOptions) noColorOutput() bool {
	if o.noColor {
		return true
	}
	f, ok := o.stderr.(*os.File)
	if !ok {
		return true
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

// houstonConfig resolves the config home.
func (o *globalOptions) houstonConfig() (*houston.Config, error) {
	return houston.NewConfig("", o.env)
}

// newClient builds a registry client authenticated with the selected profile.
func (o *globalOptions) newClient(cfg *houston.Config) (*client.Client, error) {
	key, err := houston.GetAPIKey(cfg, o.profile)
	if err != nil {
		return nil, err
	}
	endpoint := env.Get(o.env, env.RegistryURL, client.DefaultEndpoint)
	return client.New(endpoint, client.WithAPIKey(key), client.WithClientVersion(version)), nil
}

// graphRef resolves the graph ref given on the command line, falling back
// to the default graph of the selected profile.
func (o *globalOptions) graphRef(cfg *houston.Config, args []string) (client.GraphRef, error) {
	if len(args) > 0 {
		return client.ParseGraphRef(args[0])
	}

	p, err := houston.LoadProfile(cfg, o.profile, houston.LoadOptions{})
	if err != nil {
		return client.GraphRef{}, err
	}
	if p.DefaultGraph == "" {
		return client.GraphRef{}, fmt.Errorf("no graph ref given and profile %q has no default graph; run `rover config set-graph <graph-ref>`", o.profile)
	}
	return client.ParseGraphRef(p.DefaultGraph)
}

// parseLogLevel converts a string log level to slog.Level.
// Accepted values: "debug", "info", "warn", "error" (case-insensitive).
// Defaults to slog.LevelWarn for unrecognized values.
func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
