package client

import (
	"context"
)

// Severity is the impact of a schema change on existing operations.
type Severity string

const (
	SeverityNotice  Severity = "NOTICE"
	SeverityWarning Severity = "WARNING"
	SeverityFailure Severity = "FAILURE"
)

// ParseSeverity converts a registry severity string.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityNotice, SeverityWarning, SeverityFailure:
		return Severity(s), nil
	default:
		return "", NewInvalidSeverityError()
	}
}

// Change is a single difference between the proposed and published schema.
type Change struct {
	Severity    Severity `json:"severity" yaml:"severity"`
	Code        string   `json:"code" yaml:"code"`
	Description string   `json:"description" yaml:"description"`
}

// CheckResult summarises a schema check.
type CheckResult struct {
	TargetURL         string   `json:"targetUrl,omitempty" yaml:"targetUrl,omitempty"`
	Severity          Severity `json:"severity" yaml:"severity"`
	CheckedOperations int      `json:"checkedOperations" yaml:"checkedOperations"`
	Changes           []Change `json:"changes" yaml:"changes"`
}

// Failed reports whether any change breaks existing operations.
func (r *CheckResult) Failed() bool {
	return r.Severity == SeverityFailure
}

const graphCheckQuery = `mutation GraphCheck($graph: ID!, $variant: String!, $sdl: String!) {
  service(id: $graph) {
    checkSchema(proposedSchemaDocument: $sdl, baseSchemaTag: $variant) {
      targetUrl
      diffToPrevious {
        severity
        numberOfCheckedOperations
        changes {
          severity
          code
          description
        }
      }
    }
  }
}`

type graphCheckData struct {
	Service *struct {
		CheckSchema *struct {
			TargetURL      string `json:"targetUrl"`
			DiffToPrevious struct {
				Severity                  string `json:"severity"`
				NumberOfCheckedOperations int    `json:"numberOfCheckedOperations"`
				Changes                   []struct {
					Severity    string `json:"severity"`
					Code        string `json:"code"`
					Description string `json:"description"`
				} `json:"changes"`
			} `json:"diffToPrevious"`
		} `json:"checkSchema"`
	} `json:"service"`
}

// CheckGraph checks a proposed schema against the variant named by ref.
func (c *Client) CheckGraph(ctx context.Context, ref GraphRef, sdl string) (*CheckResult, error) {
	vars := ref.variables()
	vars["sdl"] = sdl

	var data graphCheckData
	if err := c.Post(ctx, graphCheckQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.Service == nil {
		return nil, NewNoServiceError(ref.Name)
	}
	if data.Service.CheckSchema == nil {
		return nil, NewMalformedResponseError("checkSchema")
	}

	diff := data.Service.CheckSchema.DiffToPrevious
	overall, err := ParseSeverity(diff.Severity)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{
		TargetURL:         data.Service.CheckSchema.TargetURL,
		Severity:          overall,
		CheckedOperations: diff.NumberOfCheckedOperations,
		Changes:           make([]Change, 0, len(diff.Changes)),
	}
	for _, ch := range diff.Changes {
		sev, err := ParseSeverity(ch.Severity)
		if err != nil {
			return nil, err
		}
		result.Changes = append(result.Changes, Change{
			Severity:    sev,
			Code:        ch.Code,
			Description: ch.Description,
		})
	}
	return result, nil
}
