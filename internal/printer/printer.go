// Package printer renders rover's command results and errors for the terminal.
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/terassyi/rover/internal/client"
	"github.com/terassyi/rover/internal/houston"
)

// Format is an output format selected with --output.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves an --output value. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q, valid formats: text, json, yaml", s)
	}
}

// rowFormatter converts a result item into table columns.
type rowFormatter[T any] interface {
	// Headers returns the column header names.
	Headers(wide bool) []string
	// FormatRow converts a single item into column values.
	FormatRow(item *T, wide bool) []string
}

// printTable is the generic table-printing pipeline:
// header → rows → flush. Items are printed in the order given.
func printTable[T any](w io.Writer, items []T, wide bool, f rowFormatter[T]) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No resources found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(f.Headers(wide), "\t"))

	for i := range items {
		cols := f.FormatRow(&items[i], wide)
		fmt.Fprintln(tw, strings.Join(cols, "\t"))
	}

	tw.Flush()
}

// printResources handles the text/json/yaml dispatch for any item type.
func printResources[T any](w io.Writer, items []T, wide bool, format Format, f rowFormatter[T]) error {
	switch format {
	case FormatJSON:
		if items == nil {
			items = []T{}
		}
		return printJSON(w, items)
	case FormatYAML:
		if items == nil {
			items = []T{}
		}
		return printYAML(w, items)
	default:
		printTable(w, items, wide, f)
		return nil
	}
}

// printDocument handles the dispatch for a single value. text renders it
// with fn.
func printDocument(w io.Writer, v any, format Format, fn func(io.Writer)) error {
	switch format {
	case FormatJSON:
		return printJSON(w, v)
	case FormatYAML:
		return printYAML(w, v)
	default:
		fn(w)
		return nil
	}
}

// PrintDocument prints v as YAML for FormatYAML and as JSON otherwise.
func PrintDocument(w io.Writer, v any, format Format) error {
	if format == FormatYAML {
		return printYAML(w, v)
	}
	return printJSON(w, v)
}

// Common column header constants.
const (
	colName = "NAME"
	colURL  = "URL"
)

// --- Profile ---

// profileFormatter formats profile names for table output.
type profileFormatter struct{}

func (profileFormatter) Headers(_ bool) []string {
	return []string{colName}
}

func (profileFormatter) FormatRow(name *string, _ bool) []string {
	return []string{*name}
}

// PrintProfiles prints the names of the configured profiles.
func PrintProfiles(w io.Writer, names []string, format Format) error {
	return printResources(w, names, false, format, profileFormatter{})
}

// PrintProfile prints a single profile. The API key is printed only when
// the profile was loaded with it.
func PrintProfile(w io.Writer, p *houston.Profile, format Format) error {
	return printDocument(w, p, format, func(w io.Writer) {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "Profile:\t%s\n", p.Name)
		fmt.Fprintf(tw, "Default graph:\t%s\n", orNone(p.DefaultGraph))
		if p.APIKey != "" {
			fmt.Fprintf(tw, "API key:\t%s\n", p.APIKey)
		}
		tw.Flush()
	})
}

// PrintIdentity prints the actor an API key belongs to.
func PrintIdentity(w io.Writer, id *client.Identity, format Format) error {
	return printDocument(w, id, format, func(w io.Writer) {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "Key type:\t%s\n", id.Type)
		fmt.Fprintf(tw, "ID:\t%s\n", id.ID)
		fmt.Fprintf(tw, "Name:\t%s\n", orNone(id.Name))
		tw.Flush()
	})
}

// --- Variant ---

type variant struct {
	Graph   string `json:"graph" yaml:"graph"`
	Variant string `json:"variant" yaml:"variant"`
}

// variantFormatter formats graph variants for table output.
type variantFormatter struct{}

func (variantFormatter) Headers(_ bool) []string {
	return []string{"VARIANT", "GRAPH_REF"}
}

func (variantFormatter) FormatRow(v *variant, _ bool) []string {
	return []string{v.Variant, client.GraphRef{Name: v.Graph, Variant: v.Variant}.String()}
}

// PrintVariants prints the variants of graph.
func PrintVariants(w io.Writer, graph string, variants []string, format Format) error {
	items := make([]variant, 0, len(variants))
	for _, v := range variants {
		items = append(items, variant{Graph: graph, Variant: v})
	}
	return printResources(w, items, false, format, variantFormatter{})
}

// --- Subgraph ---

// subgraphFormatter formats subgraphs for table output.
type subgraphFormatter struct {
	now time.Time
}

func (subgraphFormatter) Headers(wide bool) []string {
	h := []string{colName, colURL, "LAST_UPDATED"}
	if wide {
		h = append(h, "UPDATED_AT", "SDL_BYTES")
	}
	return h
}

func (f subgraphFormatter) FormatRow(s *client.Subgraph, wide bool) []string {
	row := []string{s.Name, orNone(s.URL), formatAge(f.now, s.UpdatedAt)}
	if wide {
		updated := ""
		if !s.UpdatedAt.IsZero() {
			updated = s.UpdatedAt.UTC().Format(time.RFC3339)
		}
		row = append(row, updated, fmt.Sprint(len(s.SDL)))
	}
	return row
}

// PrintSubgraphs prints the subgraphs of a federated graph.
func PrintSubgraphs(w io.Writer, subgraphs []client.Subgraph, wide bool, format Format) error {
	return printResources(w, subgraphs, wide, format, subgraphFormatter{now: time.Now()})
}

// --- Check ---

// changeFormatter formats schema changes for table output.
type changeFormatter struct{}

func (changeFormatter) Headers(_ bool) []string {
	return []string{"CHANGE", "CODE", "DESCRIPTION"}
}

func (changeFormatter) FormatRow(c *client.Change, _ bool) []string {
	return []string{changeLabel(c.Severity), c.Code, c.Description}
}

// PrintCheckResult prints the outcome of a schema check.
func PrintCheckResult(w io.Writer, r *client.CheckResult, format Format) error {
	return printDocument(w, r, format, func(w io.Writer) {
		fmt.Fprintf(w, "Compared %d schema changes against %d operations\n", len(r.Changes), r.CheckedOperations)
		if len(r.Changes) > 0 {
			printTable(w, r.Changes, false, changeFormatter{})
		}
		if r.TargetURL != "" {
			fmt.Fprintf(w, "View full details at %s\n", r.TargetURL)
		}
	})
}

// --- Helpers ---

// changeLabel returns the display label for a change severity.
func changeLabel(s client.Severity) string {
	if s == client.SeverityFailure {
		return "FAIL"
	}
	return "PASS"
}

// formatAge returns a coarse human-readable age of t relative to now.
func formatAge(now, t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func orNone(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// printJSON outputs a value as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// printYAML outputs a value as YAML.
func printYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}
