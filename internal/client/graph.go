package client

import (
	"context"
)

const graphFetchQuery = `query GraphFetch($graph: ID!, $variant: String!) {
  service(id: $graph) {
    schema(tag: $variant) {
      document
    }
  }
}`

type graphFetchData struct {
	Service *struct {
		Schema *struct {
			Document string `json:"document"`
		} `json:"schema"`
	} `json:"service"`
}

// FetchGraph returns the SDL of the schema published to ref.
func (c *Client) FetchGraph(ctx context.Context, ref GraphRef) (string, error) {
	var data graphFetchData
	if err := c.Post(ctx, graphFetchQuery, ref.variables(), &data); err != nil {
		return "", err
	}
	if data.Service == nil {
		return "", NewNoServiceError(ref.Name)
	}
	if data.Service.Schema == nil {
		return "", NewNoSchemaForVariantError(ref.Name, ref.Variant)
	}
	return data.Service.Schema.Document, nil
}

const whoAmIQuery = `query WhoAmI {
  me {
    __typename
    id
    ... on Service { title }
    ... on User { name }
  }
}`

// Identity describes the actor an API key belongs to.
type Identity struct {
	// Type is "User" for personal keys and "Service" for graph keys.
	Type string `json:"type" yaml:"type"`
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// WhoAmI returns the identity of the configured API key.
func (c *Client) WhoAmI(ctx context.Context) (*Identity, error) {
	var data struct {
		Me *struct {
			Typename string `json:"__typename"`
			ID       string `json:"id"`
			Title    string `json:"title"`
			Name     string `json:"name"`
		} `json:"me"`
	}
	if err := c.Post(ctx, whoAmIQuery, nil, &data); err != nil {
		return nil, err
	}
	if data.Me == nil {
		return nil, NewAdhocError("the API key is invalid or has been revoked")
	}

	id := &Identity{Type: data.Me.Typename, ID: data.Me.ID, Name: data.Me.Name}
	if id.Type == "Service" {
		id.Name = data.Me.Title
	}
	return id, nil
}

const graphVariantsQuery = `query GraphVariants($graph: ID!) {
  service(id: $graph) {
    variants {
      name
    }
  }
}`

// ListVariants returns the names of the variants of graph, in registry order.
func (c *Client) ListVariants(ctx context.Context, graph string) ([]string, error) {
	var data struct {
		Service *struct {
			Variants []struct {
				Name string `json:"name"`
			} `json:"variants"`
		} `json:"service"`
	}
	if err := c.Post(ctx, graphVariantsQuery, map[string]any{"graph": graph}, &data); err != nil {
		return nil, err
	}
	if data.Service == nil {
		return nil, NewNoServiceError(graph)
	}

	variants := make([]string, 0, len(data.Service.Variants))
	for _, v := range data.Service.Variants {
		variants = append(variants, v.Name)
	}
	return variants, nil
}
