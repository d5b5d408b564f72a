package printer

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terassyi/rover/internal/client"
	"github.com/terassyi/rover/internal/houston"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"table", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatAge(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero", time.Time{}, "N/A"},
		{"seconds", now.Add(-10 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-49 * time.Hour), "2d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formatAge(now, tt.t))
		})
	}
}

func TestPrintProfiles(t *testing.T) {
	t.Parallel()

	t.Run("table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, PrintProfiles(&buf, []string{"default", "staging"}, FormatText))
		assert.Equal(t, "NAME\ndefault\nstaging\n", buf.String())
	})

	t.Run("empty table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, PrintProfiles(&buf, nil, FormatText))
		assert.Equal(t, "No resources found.\n", buf.String())
	})

	t.Run("empty json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, PrintProfiles(&buf, nil, FormatJSON))
		assert.Equal(t, "[]\n", buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, PrintProfiles(&buf, []string{"default"}, FormatYAML))

		var got []string
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, []string{"default"}, got)
	})
}

func TestPrintProfile(t *testing.T) {
	t.Parallel()

	t.Run("without api key", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, PrintProfile(&buf, &houston.Profile{Name: "default"}, FormatText))
		assert.Contains(t, buf.String(), "Profile:")
		assert.Contains(t, buf.String(), "N/A")
		assert.NotContains(t, buf.String(), "API key")
	})

	t.Run("with api key", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		p := &houston.Profile{Name: "default", APIKey: "service:g:abc", DefaultGraph: "g@prod"}
		require.NoError(t, PrintProfile(&buf, p, FormatText))
		assert.Contains(t, buf.String(), "service:g:abc")
		assert.Contains(t, buf.String(), "g@prod")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, PrintProfile(&buf, &houston.Profile{Name: "default", DefaultGraph: "g"}, FormatJSON))
		assert.JSONEq(t, `{"name":"default","defaultGraph":"g"}`, buf.String())
	})
}

func TestPrintIdentity(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, PrintIdentity(&buf, &client.Identity{Type: "User", ID: "u1", Name: "Ada"}, FormatText))
	assert.Contains(t, buf.String(), "User")
	assert.Contains(t, buf.String(), "Ada")
}

func TestPrintVariants(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, PrintVariants(&buf, "my-graph", []string{"prod", "current"}, FormatText))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[1]), "my-graph@prod")
	assert.Contains(t, string(lines[2]), "my-graph@current")
}

func TestPrintSubgraphs(t *testing.T) {
	t.Parallel()

	subgraphs := []client.Subgraph{
		{Name: "products", URL: "http://products", UpdatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), SDL: "type P"},
		{Name: "accounts"},
	}

	t.Run("keeps registry order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, PrintSubgraphs(&buf, subgraphs, false, FormatText))

		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		require.Len(t, lines, 3)
		assert.Contains(t, string(lines[0]), "LAST_UPDATED")
		assert.Contains(t, string(lines[1]), "products")
		assert.Contains(t, string(lines[2]), "accounts")
		assert.NotContains(t, string(lines[0]), "SDL_BYTES")
	})

	t.Run("wide", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, PrintSubgraphs(&buf, subgraphs, true, FormatText))
		assert.Contains(t, buf.String(), "SDL_BYTES")
		assert.Contains(t, buf.String(), "2024-01-02T03:04:05Z")
	})

	t.Run("json omits sdl", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, PrintSubgraphs(&buf, subgraphs, false, FormatJSON))

		var got []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "products", got[0]["name"])
		assert.NotContains(t, got[0], "SDL")
	})
}

func TestPrintCheckResult(t *testing.T) {
	t.Parallel()

	r := &client.CheckResult{
		TargetURL:         "https://studio.example/check/1",
		Severity:          client.SeverityFailure,
		CheckedOperations: 7,
		Changes: []client.Change{
			{Severity: client.SeverityFailure, Code: "FIELD_REMOVED", Description: "Query.a was removed"},
			{Severity: client.SeverityNotice, Code: "FIELD_ADDED", Description: "Query.b was added"},
		},
	}

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, PrintCheckResult(&buf, r, FormatText))
		out := buf.String()
		assert.Contains(t, out, "Compared 2 schema changes against 7 operations")
		assert.Contains(t, out, "FAIL")
		assert.Contains(t, out, "PASS")
		assert.Contains(t, out, "View full details at https://studio.example/check/1")
	})

	t.Run("no changes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, PrintCheckResult(&buf, &client.CheckResult{Severity: client.SeverityNotice}, FormatText))
		assert.Equal(t, "Compared 0 schema changes against 0 operations\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, PrintCheckResult(&buf, r, FormatJSON))
		assert.Contains(t, buf.String(), `"severity": "FAILURE"`)
	})
}

func TestPrintDocument(t *testing.T) {
	t.Parallel()

	doc := struct {
		SDL string `json:"sdl" yaml:"sdl"`
	}{SDL: "type Query { a: Int }"}

	var buf bytes.Buffer
	require.NoError(t, PrintDocument(&buf, doc, FormatJSON))
	assert.JSONEq(t, `{"sdl":"type Query { a: Int }"}`, buf.String())

	buf.Reset()
	require.NoError(t, PrintDocument(&buf, doc, FormatYAML))

	var got map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "type Query { a: Int }", got["sdl"])
}
