//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import (
	"github.com/terassyi/rover/internal/client"
	"github.com/terassyi/rover/internal/env"
	"github.com/terassyi/rover/internal/houston"
)

// Metadata is the advice derived from an error.
// The zero value carries neither a suggestion nor a code.
type Metadata struct {
	Suggestion Suggestion
	Code       Code
}

// IsEmpty reports whether m carries neither a suggestion nor a code.
func (m Metadata) IsEmpty() bool {
	return m.Suggestion == nil && m.Code.IsZero()
}

// The kind switches below must cover every kind. These fail to compile
// when a kind is added to either family until the count is bumped here.
var (
	_ = [1]struct{}{}[client.KindCount-12]
	_ = [1]struct{}{}[houston.KindCount-9]
)

// Classifier derives Metadata from errors.
// It holds no state besides its environment and is safe for concurrent use.
type Classifier struct {
	env env.Lookuper
}

// NewClassifier creates a Classifier that reads the environment through l.
// A nil l reads the process environment.
func NewClassifier(l env.Lookuper) *Classifier {
	if l == nil {
		l = env.OS{}
	}
	return &Classifier{env: l}
}

var defaultClassifier = NewClassifier(env.OS{})

// NewMetadata classifies err against the process environment.
func NewMetadata(err error) Metadata {
	return defaultClassifier.Classify(err)
}

// Classify returns the Metadata for err. The chain is walked from the
// outside in and the first error of either family decides; causes wrapped
// inside it are not consulted. Among joined errors the client family wins.
// Errors from neither family, including nil, yield the zero Metadata.
func (c *Classifier) Classify(err error) Metadata {
	switch e := outermostFamily(err).(type) {
	case *client.Error:
		if e == nil {
			return Metadata{}
		}
		return Metadata{Suggestion: clientSuggestion(e)}
	case *houston.Problem:
		if e == nil {
			return Metadata{}
		}
		return Metadata{Suggestion: c.houstonSuggestion(e)}
	default:
		return Metadata{}
	}
}

// outermostFamily returns the first *client.Error or *houston.Problem met
// while unwrapping err, or nil.
func outermostFamily(err error) error {
	for err != nil {
		switch e := err.(type) {
		case *client.Error, *houston.Problem:
			return e
		case interface{ Unwrap() []error }:
			var problem error
			for _, joined := range e.Unwrap() {
				switch f := outermostFamily(joined).(type) {
				case *client.Error:
					return f
				case *houston.Problem:
					if problem == nil {
						problem = f
					}
				}
			}
			return problem
		case interface{ Unwrap() error }:
			err = e.Unwrap()
		default:
			return nil
		}
	}
	return nil
}

func clientSuggestion(err *client.Error) Suggestion {
	switch err.Kind {
	case client.KindInvalidJSON,
		client.KindInvalidHeaderName,
		client.KindInvalidHeaderValue,
		client.KindSendRequest,
		client.KindMalformedResponse,
		client.KindInvalidSeverity:
		return SubmitIssue{}
	case client.KindExpectedFederatedGraph:
		return UseFederatedGraph{}
	case client.KindNoSchemaForVariant:
		return RunGraphList{Graph: err.Graph}
	case client.KindNoSubgraphInGraph:
		return NewProvideValidSubgraph(err.ValidSubgraphs)
	case client.KindNoService:
		return CheckGraphNameAndAuth{}
	case client.KindAdhocError, client.KindGraphQL:
		return nil
	default:
		return nil
	}
}

func (c *Classifier) houstonSuggestion(p *houston.Problem) Suggestion {
	switch p.Kind {
	case houston.KindNoNonSensitiveConfigFound:
		return RerunWithSensitive{}
	case houston.KindCouldNotCreateConfigHome,
		houston.KindDefaultConfigDirNotFound,
		houston.KindInvalidOverrideConfigDir:
		return SetConfigHome{}
	case houston.KindNoConfigFound:
		// Read on every call; the override may change between invocations.
		if env.IsSet(c.env, env.ConfigHome) {
			return MigrateConfigHomeOrCreateConfig{}
		}
		return CreateConfig{}
	case houston.KindProfileNotFound:
		return ListProfiles{}
	case houston.KindTomlDeserialization,
		houston.KindTomlSerialization,
		houston.KindIOError:
		return SubmitIssue{}
	default:
		return nil
	}
}
