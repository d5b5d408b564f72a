package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/terassyi/rover/internal/printer"
)

// schemaDocument is the structured output of fetch commands.
type schemaDocument struct {
	GraphRef string `json:"graphRef" yaml:"graphRef"`
	Subgraph string `json:"subgraph,omitempty" yaml:"subgraph,omitempty"`
	SDL      string `json:"sdl" yaml:"sdl"`
}

func newGraphCmd(o *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Work with graphs",
	}
	cmd.AddCommand(
		newGraphFetchCmd(o),
		newGraphCheckCmd(o),
		newGraphListCmd(o),
	)
	return cmd
}

func newGraphFetchCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [graph-ref]",
		Short: "Fetch the schema of a graph variant",
		Long: `Fetch the schema published to a graph variant.

The graph ref is "name" or "name@variant"; the variant defaults to "current".
Without an argument the profile's default graph is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.houstonConfig()
			if err != nil {
				return err
			}
			ref, err := o.graphRef(cfg, args)
			if err != nil {
				return err
			}
			c, err := o.newClient(cfg)
			if err != nil {
				return err
			}

			sdl, err := c.FetchGraph(cmd.Context(), ref)
			if err != nil {
				return err
			}
			return printSchema(cmd.OutOrStdout(), schemaDocument{GraphRef: ref.String(), SDL: sdl}, o.format)
		},
	}
}

func newGraphCheckCmd(o *globalOptions) *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "check [graph-ref] --schema <file>",
		Short: "Check a proposed schema against a graph variant",
		Long: `Check a proposed schema against the operations recently run on a graph variant.

Use "--schema -" to read the schema from standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sdl, err := readSchema(cmd, schemaPath)
			if err != nil {
				return err
			}

			cfg, err := o.houstonConfig()
			if err != nil {
				return err
			}
			ref, err := o.graphRef(cfg, args)
			if err != nil {
				return err
			}
			c, err := o.newClient(cfg)
			if err != nil {
				return err
			}

			result, err := c.CheckGraph(cmd.Context(), ref, sdl)
			if err != nil {
				return err
			}
			if err := printer.PrintCheckResult(cmd.OutOrStdout(), result, o.format); err != nil {
				return err
			}
			if result.Failed() {
				return fmt.Errorf("schema check failed for %s", ref)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "Path to the proposed schema, or - for stdin")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func newGraphListCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <graph>",
		Short: "List the variants of a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.houstonConfig()
			if err != nil {
				return err
			}
			c, err := o.newClient(cfg)
			if err != nil {
				return err
			}

			variants, err := c.ListVariants(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printer.PrintVariants(cmd.OutOrStdout(), args[0], variants, o.format)
		},
	}
}

// readSchema reads the schema at path, or stdin for "-".
func readSchema(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read schema from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read schema: %w", err)
	}
	return string(data), nil
}

// printSchema writes fetched SDL. Text output is the raw document.
func printSchema(w io.Writer, doc schemaDocument, format printer.Format) error {
	switch format {
	case printer.FormatJSON, printer.FormatYAML:
		return printer.PrintDocument(w, doc, format)
	default:
		_, err := io.WriteString(w, ensureNewline(doc.SDL))
		return err
	}
}

func ensureNewline(s string) string {
	if s == "" || s[len(s)-1] == '\n' {
		return s
	}
	return s + "\n"
}
