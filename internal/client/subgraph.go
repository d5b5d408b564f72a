package client

import (
	"context"
	"time"
)

const subgraphsQuery = `query Subgraphs($graph: ID!, $variant: String!) {
  service(id: $graph) {
    implementingServices(graphVariant: $variant) {
      __typename
      ... on FederatedImplementingServices {
        services {
          name
          url
          updatedAt
          activePartialSchema {
            sdl
          }
        }
      }
    }
  }
}`

const (
	typeFederated    = "FederatedImplementingServices"
	typeNonFederated = "NonFederatedImplementingService"
)

// Subgraph is one service of a federated graph.
type Subgraph struct {
	Name      string    `json:"name" yaml:"name"`
	URL       string    `json:"url,omitempty" yaml:"url,omitempty"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
	SDL       string    `json:"-" yaml:"-"`
}

type subgraphsData struct {
	Service *struct {
		ImplementingServices *struct {
			Typename string `json:"__typename"`
			Services []struct {
				Name                string    `json:"name"`
				URL                 string    `json:"url"`
				UpdatedAt           time.Time `json:"updatedAt"`
				ActivePartialSchema struct {
					SDL string `json:"sdl"`
				} `json:"activePartialSchema"`
			} `json:"services"`
		} `json:"implementingServices"`
	} `json:"service"`
}

// ListSubgraphs returns the subgraphs of a federated graph in registry order.
func (c *Client) ListSubgraphs(ctx context.Context, ref GraphRef) ([]Subgraph, error) {
	var data subgraphsData
	if err := c.Post(ctx, subgraphsQuery, ref.variables(), &data); err != nil {
		return nil, err
	}
	if data.Service == nil {
		return nil, NewNoServiceError(ref.Name)
	}

	impl := data.Service.ImplementingServices
	if impl == nil {
		return nil, NewMalformedResponseError("implementingServices")
	}
	switch impl.Typename {
	case typeFederated:
	case typeNonFederated:
		return nil, NewExpectedFederatedGraphError(ref.Name)
	default:
		return nil, NewMalformedResponseError("implementingServices.__typename")
	}

	subgraphs := make([]Subgraph, 0, len(impl.Services))
	for _, s := range impl.Services {
		subgraphs = append(subgraphs, Subgraph{
			Name:      s.Name,
			URL:       s.URL,
			UpdatedAt: s.UpdatedAt,
			SDL:       s.ActivePartialSchema.SDL,
		})
	}
	return subgraphs, nil
}

// FetchSubgraph returns the SDL of a single subgraph.
// An unknown name yields a NoSubgraphInGraph error listing the valid names.
func (c *Client) FetchSubgraph(ctx context.Context, ref GraphRef, name string) (string, error) {
	subgraphs, err := c.ListSubgraphs(ctx, ref)
	if err != nil {
		return "", err
	}

	valid := make([]string, 0, len(subgraphs))
	for _, s := range subgraphs {
		if s.Name == name {
			return s.SDL, nil
		}
		valid = append(valid, s.Name)
	}
	return "", NewNoSubgraphInGraphError(name, valid)
}
