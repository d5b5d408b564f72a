package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/terassyi/rover/internal/printer"
)

// maxConcurrentFetches bounds the number of in-flight subgraph fetches.
const maxConcurrentFetches = 4

func newSubgraphCmd(o *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subgraph",
		Short: "Work with the subgraphs of a federated graph",
	}
	cmd.AddCommand(
		newSubgraphListCmd(o),
		newSubgraphFetchCmd(o),
	)
	return cmd
}

func newSubgraphListCmd(o *globalOptions) *cobra.Command {
	var wide bool

	cmd := &cobra.Command{
		Use:   "list [graph-ref]",
		Short: "List the subgraphs of a federated graph variant",
		Args:  cobra.MaximumNArgs(1),
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

			subgraphs, err := c.ListSubgraphs(cmd.Context(), ref)
			if err != nil {
				return err
			}
			return printer.PrintSubgraphs(cmd.OutOrStdout(), subgraphs, wide, o.format)
		},
	}
	cmd.Flags().BoolVar(&wide, "wide", false, "Show the update timestamp and schema size")
	return cmd
}

func newSubgraphFetchCmd(o *globalOptions) *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:   "fetch [graph-ref] --name <subgraph>",
		Short: "Fetch the schema of one or more subgraphs",
		Long: `Fetch the schema of one or more subgraphs.

Repeat --name to fetch several subgraphs at once:
  rover subgraph fetch my-graph@prod --name accounts --name products`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(names) == 0 {
				return errors.New("at least one --name is required")
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

			docs := make([]schemaDocument, len(names))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(maxConcurrentFetches)
			for i, name := range names {
				g.Go(func() error {
					sdl, err := c.FetchSubgraph(ctx, ref, name)
					if err != nil {
						return err
					}
					docs[i] = schemaDocument{GraphRef: ref.String(), Subgraph: name, SDL: sdl}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			return printSubgraphSchemas(cmd.OutOrStdout(), docs, o.format)
		},
	}
	cmd.Flags().StringArrayVar(&names, "name", nil, "Name of the subgraph to fetch (repeatable)")
	return cmd
}

// printSubgraphSchemas writes fetched subgraph SDL in the order requested.
func printSubgraphSchemas(w io.Writer, docs []schemaDocument, format printer.Format) error {
	if len(docs) == 1 {
		return printSchema(w, docs[0], format)
	}

	switch format {
	case printer.FormatJSON, printer.FormatYAML:
		return printer.PrintDocument(w, docs, format)
	default:
		for i, d := range docs {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "# subgraph: %s\n", d.Subgraph)
			if _, err := io.WriteString(w, ensureNewline(d.SDL)); err != nil {
				return err
			}
		}
		return nil
	}
}
