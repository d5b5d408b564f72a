//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import (
	"strconv"
	"strings"
)

// Suggestion is a piece of actionable advice attached to an error.
// The set of implementations is closed; switch on the concrete type to
// render one. Values are immutable and never alias the error they came from.
type Suggestion interface {
	// Kind returns the variant name, e.g. "RunGraphList".
	Kind() string

	suggestion()
}

// SubmitIssue asks the user to report an unexpected failure.
type SubmitIssue struct{}

// CheckGraphNameAndAuth asks the user to check the graph name and their credentials.
type CheckGraphNameAndAuth struct{}

// RerunWithSensitive asks the user to re-run with sensitive values shown.
type RerunWithSensitive struct{}

// SetConfigHome points the user at the config home override variable.
type SetConfigHome struct{}

// CreateConfig asks the user to create a profile.
type CreateConfig struct{}

// MigrateConfigHomeOrCreateConfig is offered when no config exists but the
// config home override is set, so the old directory may need migrating.
type MigrateConfigHomeOrCreateConfig struct{}

// ListProfiles asks the user to list the profiles that exist.
type ListProfiles struct{}

// UseFederatedGraph asks the user to target a federated graph.
type UseFederatedGraph struct{}

// RunGraphList asks the user to list the variants of Graph.
type RunGraphList struct {
	Graph string
}

// ProvideValidSubgraph lists the subgraphs the user could have meant.
// It is comparable with ==, like every other Suggestion.
type ProvideValidSubgraph struct {
	// subgraphs holds each name as "<len>:<name>", concatenated in order.
	subgraphs string
}

// NewProvideValidSubgraph copies names into a ProvideValidSubgraph.
func NewProvideValidSubgraph(names []string) ProvideValidSubgraph {
	var sb strings.Builder
	for _, n := range names {
		sb.WriteString(strconv.Itoa(len(n)))
		sb.WriteByte(':')
		sb.WriteString(n)
	}
	return ProvideValidSubgraph{subgraphs: sb.String()}
}

// Subgraphs returns a copy of the valid subgraph names, in their original order.
func (s ProvideValidSubgraph) Subgraphs() []string {
	var names []string
	rest := s.subgraphs
	for rest != "" {
		size, tail, _ := strings.Cut(rest, ":")
		n, err := strconv.Atoi(size)
		if err != nil || n > len(tail) {
			break
		}
		names = append(names, tail[:n])
		rest = tail[n:]
	}
	return names
}

func (SubmitIssue) Kind() string                     { return "SubmitIssue" }
func (CheckGraphNameAndAuth) Kind() string           { return "CheckGraphNameAndAuth" }
func (RerunWithSensitive) Kind() string              { return "RerunWithSensitive" }
func (SetConfigHome) Kind() string                   { return "SetConfigHome" }
func (CreateConfig) Kind() string                    { return "CreateConfig" }
func (MigrateConfigHomeOrCreateConfig) Kind() string { return "MigrateConfigHomeOrCreateConfig" }
func (ListProfiles) Kind() string                    { return "ListProfiles" }
func (UseFederatedGraph) Kind() string               { return "UseFederatedGraph" }
func (RunGraphList) Kind() string                    { return "RunGraphList" }
func (ProvideValidSubgraph) Kind() string            { return "ProvideValidSubgraph" }

func (SubmitIssue) suggestion()                     {}
func (CheckGraphNameAndAuth) suggestion()           {}
func (RerunWithSensitive) suggestion()              {}
func (SetConfigHome) suggestion()                   {}
func (CreateConfig) suggestion()                    {}
func (MigrateConfigHomeOrCreateConfig) suggestion() {}
func (ListProfiles) suggestion()                    {}
func (UseFederatedGraph) suggestion()               {}
func (RunGraphList) suggestion()                    {}
func (ProvideValidSubgraph) suggestion()            {}
