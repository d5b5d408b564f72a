package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terassyi/rover/internal/client"
	"github.com/terassyi/rover/internal/houston"
	"github.com/terassyi/rover/internal/printer"
)

func newConfigCmd(o *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration profiles",
	}
	cmd.AddCommand(
		newConfigAuthCmd(o),
		newConfigListCmd(o),
		newConfigShowCmd(o),
		newConfigDeleteCmd(o),
		newConfigClearCmd(o),
		newConfigSetGraphCmd(o),
		newConfigWhoAmICmd(o),
	)
	return cmd
}

func newConfigAuthCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Save an API key to a profile",
		Long: `Save an API key to a profile.

The key is read from standard input. Create a personal API key in
Apollo Studio under user settings, then paste it when prompted:

  rover config auth
  echo "$KEY" | rover config auth --profile ci`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.houstonConfig()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Paste your API key for profile %q: ", o.profile)
			key, err := readLine(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr())

			if err := houston.SetAPIKey(cfg, o.profile, key); err != nil {
				return err
			}
			cmd.Printf("Successfully saved API key to profile %q.\n", o.profile)
			return nil
		},
	}
}

// readLine reads a single non-empty line from the command's stdin.
func readLine(cmd *cobra.Command) (string, error) {
	sc := bufio.NewScanner(cmd.InOrStdin())
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}
		return "", errors.New("no API key provided")
	}
	line := strings.TrimSpace(sc.Text())
	if line == "" {
		return "", errors.New("no API key provided")
	}
	return line, nil
}

func newConfigListCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configuration profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.houstonConfig()
			if err != nil {
				return err
			}
			names, err := houston.ListProfiles(cfg)
			if err != nil {
				return err
			}
			return printer.PrintProfiles(cmd.OutOrStdout(), names, o.format)
		},
	}
}

func newConfigShowCmd(o *globalOptions) *cobra.Command {
	var sensitive bool

	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show a configuration profile",
		Long: `Show a configuration profile.

The API key is only printed with --sensitive.

Examples:
  rover config show
  rover config show staging --sensitive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := o.profile
			if len(args) > 0 {
				name = args[0]
			}

			cfg, err := o.houstonConfig()
			if err != nil {
				return err
			}
			p, err := houston.LoadProfile(cfg, name, houston.LoadOptions{Sensitive: sensitive})
			if err != nil {
				return err
			}
			return printer.PrintProfile(cmd.OutOrStdout(), p, o.format)
		},
	}
	cmd.Flags().BoolVar(&sensitive, "sensitive", false, "Include the API key")
	return cmd
}

func newConfigDeleteCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a configuration profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.houstonConfig()
			if err != nil {
				return err
			}
			if err := houston.DeleteProfile(cfg, args[0]); err != nil {
				return err
			}
			cmd.Printf("Deleted profile %q.\n", args[0])
			return nil
		},
	}
}

func newConfigClearCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every configuration profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.houstonConfig()
			if err != nil {
				return err
			}
			if err := cfg.Clear(); err != nil {
				return err
			}
			cmd.Println("Deleted all profiles.")
			return nil
		},
	}
}

func newConfigSetGraphCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-graph <graph-ref>",
		Short: "Set the default graph of a profile",
		Long: `Set the graph ref that graph and subgraph commands use when none is given.

Examples:
  rover config set-graph my-graph@prod
  rover config set-graph my-graph --profile staging`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := client.ParseGraphRef(args[0])
			if err != nil {
				return err
			}
			cfg, err := o.houstonConfig()
			if err != nil {
				return err
			}
			if err := houston.SetDefaultGraph(cfg, o.profile, ref.String()); err != nil {
				return err
			}
			cmd.Printf("Default graph of profile %q set to %s.\n", o.profile, ref)
			return nil
		},
	}
}

func newConfigWhoAmICmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity of the profile's API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.houstonConfig()
			if err != nil {
				return err
			}
			c, err := o.newClient(cfg)
			if err != nil {
				return err
			}
			id, err := c.WhoAmI(cmd.Context())
			if err != nil {
				return err
			}
			return printer.PrintIdentity(cmd.OutOrStdout(), id, o.format)
		},
	}
}
