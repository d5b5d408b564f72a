package client

import (
	"fmt"
	"strings"
)

// Kind identifies a remote-operation failure.
type Kind int

const (
	// KindInvalidJSON means the registry answered with a body that is not JSON.
	KindInvalidJSON Kind = iota
	// KindInvalidHeaderName means a configured request header has an invalid name.
	KindInvalidHeaderName
	// KindInvalidHeaderValue means a configured request header has an invalid value.
	KindInvalidHeaderValue
	// KindSendRequest means the request never produced a response.
	KindSendRequest
	// KindMalformedResponse means a field the query depends on came back null.
	KindMalformedResponse
	// KindInvalidSeverity means a check result carried an unknown severity.
	KindInvalidSeverity
	// KindExpectedFederatedGraph means a federated-only operation targeted a non-federated graph.
	KindExpectedFederatedGraph
	// KindNoSchemaForVariant means the graph exists but the variant has no schema.
	KindNoSchemaForVariant
	// KindNoSubgraphInGraph means the requested subgraph is not part of the graph.
	KindNoSubgraphInGraph
	// KindNoService means the graph could not be found for the current credentials.
	KindNoService
	// KindAdhocError is a one-off failure described only by a message.
	KindAdhocError
	// KindGraphQL carries the error messages returned by the GraphQL endpoint.
	KindGraphQL

	kindCount
)

// KindCount is the number of defined kinds. Code that maps every kind
// should guard on it so a new kind fails to compile until it is handled.
const KindCount = kindCount

var kindNames = [...]string{
	KindInvalidJSON:            "InvalidJSON",
	KindInvalidHeaderName:      "InvalidHeaderName",
	KindInvalidHeaderValue:     "InvalidHeaderValue",
	KindSendRequest:            "SendRequest",
	KindMalformedResponse:      "MalformedResponse",
	KindInvalidSeverity:        "InvalidSeverity",
	KindExpectedFederatedGraph: "ExpectedFederatedGraph",
	KindNoSchemaForVariant:     "NoSchemaForVariant",
	KindNoSubgraphInGraph:      "NoSubgraphInGraph",
	KindNoService:              "NoService",
	KindAdhocError:             "AdhocError",
	KindGraphQL:                "GraphQL",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Error is returned by every Client operation.
// Only the fields relevant to Kind are populated.
type Error struct {
	Kind Kind

	// NullField is the response field that was unexpectedly null.
	NullField string
	// Header is the offending header name or value.
	Header string
	// Graph is the graph id the operation targeted.
	Graph string
	// InvalidVariant is the variant that has no schema.
	InvalidVariant string
	// InvalidSubgraph is the subgraph name that was requested.
	InvalidSubgraph string
	// ValidSubgraphs lists the subgraphs the graph does contain.
	ValidSubgraphs []string
	// Msg is the free-form message of AdhocError and GraphQL errors.
	Msg string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var msg string
	switch e.Kind {
	case KindInvalidJSON:
		msg = "could not parse JSON"
	case KindInvalidHeaderName:
		msg = fmt.Sprintf("invalid header name %q", e.Header)
	case KindInvalidHeaderValue:
		msg = fmt.Sprintf("invalid header value %q", e.Header)
	case KindSendRequest:
		msg = "could not connect"
	case KindMalformedResponse:
		msg = fmt.Sprintf("the response from the server was malformed: no data for %q", e.NullField)
	case KindInvalidSeverity:
		msg = "invalid ChangeSeverity"
	case KindExpectedFederatedGraph:
		msg = fmt.Sprintf("the graph %q is a non-federated graph; this operation is only supported for federated graphs", e.Graph)
	case KindNoSchemaForVariant:
		msg = fmt.Sprintf("the graph registry does not contain a schema for variant %q of graph %q", e.InvalidVariant, e.Graph)
	case KindNoSubgraphInGraph:
		msg = fmt.Sprintf("could not find subgraph %q", e.InvalidSubgraph)
	case KindNoService:
		msg = fmt.Sprintf("could not find graph %q with the provided credentials", e.Graph)
	case KindAdhocError, KindGraphQL:
		msg = e.Msg
	default:
		msg = fmt.Sprintf("unknown client error (%s)", e.Kind)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether the target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e == nil || t == nil {
		return e == t
	}
	return e.Kind == t.Kind
}

// NewInvalidJSONError creates an Error for an undecodable response body.
func NewInvalidJSONError(cause error) *Error {
	return &Error{Kind: KindInvalidJSON, Err: cause}
}

// NewInvalidHeaderNameError creates an Error for a header whose name cannot be sent.
func NewInvalidHeaderNameError(name string) *Error {
	return &Error{Kind: KindInvalidHeaderName, Header: name}
}

// NewInvalidHeaderValueError creates an Error for a header whose value cannot be sent.
func NewInvalidHeaderValueError(value string) *Error {
	return &Error{Kind: KindInvalidHeaderValue, Header: value}
}

// NewSendRequestError creates an Error for a transport failure.
func NewSendRequestError(cause error) *Error {
	return &Error{Kind: KindSendRequest, Err: cause}
}

// NewMalformedResponseError creates an Error for a null response field.
func NewMalformedResponseError(nullField string) *Error {
	return &Error{Kind: KindMalformedResponse, NullField: nullField}
}

// NewInvalidSeverityError creates an Error for an unrecognised change severity.
func NewInvalidSeverityError() *Error {
	return &Error{Kind: KindInvalidSeverity}
}

// NewExpectedFederatedGraphError creates an Error for a non-federated target graph.
func NewExpectedFederatedGraphError(graph string) *Error {
	return &Error{Kind: KindExpectedFederatedGraph, Graph: graph}
}

// NewNoSchemaForVariantError creates an Error for a variant without a schema.
func NewNoSchemaForVariantError(graph, invalidVariant string) *Error {
	return &Error{Kind: KindNoSchemaForVariant, Graph: graph, InvalidVariant: invalidVariant}
}

// NewNoSubgraphInGraphError creates an Error for an unknown subgraph.
func NewNoSubgraphInGraphError(invalidSubgraph string, validSubgraphs []string) *Error {
	return &Error{
		Kind:            KindNoSubgraphInGraph,
		InvalidSubgraph: invalidSubgraph,
		ValidSubgraphs:  validSubgraphs,
	}
}

// NewNoServiceError creates an Error for a graph that cannot be found.
func NewNoServiceError(graph string) *Error {
	return &Error{Kind: KindNoService, Graph: graph}
}

// NewAdhocError creates an Error described only by msg.
func NewAdhocError(msg string) *Error {
	return &Error{Kind: KindAdhocError, Msg: msg}
}

// NewGraphQLError creates an Error from the messages of a GraphQL errors array.
func NewGraphQLError(msgs ...string) *Error {
	return &Error{Kind: KindGraphQL, Msg: strings.Join(msgs, "\n")}
}
