// Package client talks to the Apollo graph registry over GraphQL.
// Every failure it returns is a *Error whose Kind says what went wrong.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"slices"

	"golang.org/x/net/http/httpguts"
)

// DefaultEndpoint is the public graph registry.
const DefaultEndpoint = "https://api.apollographql.com/graphql"

const clientName = "rover"

// Client sends GraphQL operations to the registry.
type Client struct {
	endpoint      string
	apiKey        string
	clientVersion string
	headers       map[string]string
	httpClient    *http.Client
}

// Option is a functional option for configuring Client.
type Option func(*Client)

// WithAPIKey sets the key sent in the x-api-key header.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHeader adds an extra request header.
// Names and values are validated when a request is sent.
func WithHeader(name, value string) Option {
	return func(c *Client) {
		c.headers[name] = value
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithClientVersion sets the apollographql-client-version header.
func WithClientVersion(v string) Option {
	return func(c *Client) {
		c.clientVersion = v
	}
}

// New creates a Client for the given endpoint.
// An empty endpoint selects DefaultEndpoint.
func New(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:      endpoint,
		clientVersion: "dev",
		headers:       make(map[string]string),
		httpClient:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the registry URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors,omitempty"`
}

// Post sends a GraphQL operation and decodes its data field into out.
func (c *Client) Post(ctx context.Context, query string, variables map[string]any, out any) error {
	req, err := c.newRequest(ctx, query, variables)
	if err != nil {
		return err
	}

	slog.Debug("sending graphql request", "endpoint", c.endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return NewSendRequestError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewSendRequestError(err)
	}

	slog.Debug("received graphql response", "status", resp.StatusCode, "bytes", len(body))

	var gr graphqlResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return NewSendRequestError(fmt.Errorf("unexpected status %d", resp.StatusCode))
		}
		return NewInvalidJSONError(err)
	}

	if len(gr.Errors) > 0 {
		msgs := make([]string, 0, len(gr.Errors))
		for _, e := range gr.Errors {
			msgs = append(msgs, e.Message)
		}
		return NewGraphQLError(msgs...)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return NewSendRequestError(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	if len(gr.Data) == 0 || bytes.Equal(gr.Data, []byte("null")) {
		return NewMalformedResponseError("data")
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(gr.Data, out); err != nil {
		return NewInvalidJSONError(err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, query string, variables map[string]any) (*http.Request, error) {
	// Sorted so the first invalid header reported is stable.
	for _, name := range slices.Sorted(maps.Keys(c.headers)) {
		if !httpguts.ValidHeaderFieldName(name) {
			return nil, NewInvalidHeaderNameError(name)
		}
		if value := c.headers[name]; !httpguts.ValidHeaderFieldValue(value) {
			return nil, NewInvalidHeaderValueError(value)
		}
	}

	payload, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, NewInvalidJSONError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, NewSendRequestError(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apollographql-client-name", clientName)
	req.Header.Set("apollographql-client-version", c.clientVersion)
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
	for name, value := range c.headers {
		req.Header.Set(name, value)
	}
	return req, nil
}
