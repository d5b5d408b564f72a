package printer

import (
	"fmt"
	"strings"

	"github.com/terassyi/rover/internal/env"
	"github.com/terassyi/rover/internal/errors"
)

const issueURL = "https://github.com/terassyi/rover/issues/new"

// SuggestionText renders a suggestion as a sentence for the terminal.
// It returns the empty string for a nil suggestion.
func SuggestionText(s errors.Suggestion) string {
	switch s := s.(type) {
	case nil:
		return ""
	case errors.SubmitIssue:
		return "This error was unexpected! Please submit an issue with any relevant details about what you were trying to do: " + issueURL
	case errors.CheckGraphNameAndAuth:
		return "Make sure your graph name is typed correctly, and that your API key is valid. (Are you using the right profile?)"
	case errors.RerunWithSensitive:
		return "Try re-running this command with the `--sensitive` flag."
	case errors.SetConfigHome:
		return fmt.Sprintf("You can override this path by setting the %s environment variable.", env.ConfigHome)
	case errors.CreateConfig:
		return "Try setting up a configuration profile by running `rover config auth`."
	case errors.MigrateConfigHomeOrCreateConfig:
		return fmt.Sprintf("If you've recently changed the %s environment variable, you may need to migrate your old configuration directory to the new path. "+
			"Otherwise, try setting up a new configuration profile by running `rover config auth`.", env.ConfigHome)
	case errors.ListProfiles:
		return "Try running `rover config list` to see the possible values for the `--profile` flag."
	case errors.UseFederatedGraph:
		return "Try running the command on a valid federated graph."
	case errors.RunGraphList:
		return fmt.Sprintf("Try running `rover graph list %s` to see the variants of %q that have a schema.", s.Graph, s.Graph)
	case errors.ProvideValidSubgraph:
		names := s.Subgraphs()
		if len(names) == 0 {
			return "No subgraphs have been published to this graph yet. Try `rover subgraph list` once one has."
		}
		return "Try running this command with one of the following valid subgraphs: [" + strings.Join(names, ", ") + "]"
	default:
		return ""
	}
}

// suggestionDocument is the structured form of a suggestion.
type suggestionDocument struct {
	Kind      string   `json:"kind" yaml:"kind"`
	Message   string   `json:"message" yaml:"message"`
	Graph     string   `json:"graph,omitempty" yaml:"graph,omitempty"`
	Subgraphs []string `json:"subgraphs,omitempty" yaml:"subgraphs,omitempty"`
}

func newSuggestionDocument(s errors.Suggestion) *suggestionDocument {
	if s == nil {
		return nil
	}
	doc := &suggestionDocument{Kind: s.Kind(), Message: SuggestionText(s)}
	switch s := s.(type) {
	case errors.RunGraphList:
		doc.Graph = s.Graph
	case errors.ProvideValidSubgraph:
		doc.Subgraphs = s.Subgraphs()
	}
	return doc
}
