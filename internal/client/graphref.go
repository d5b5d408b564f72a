package client

import (
	"fmt"
	"strings"
)

// DefaultVariant is used when a graph ref names no variant.
const DefaultVariant = "current"

// GraphRef identifies a variant of a graph, written as "name@variant".
type GraphRef struct {
	Name    string
	Variant string
}

// ParseGraphRef parses "name" or "name@variant".
func ParseGraphRef(s string) (GraphRef, error) {
	name, variant, found := strings.Cut(s, "@")
	if name == "" {
		return GraphRef{}, fmt.Errorf("invalid graph ref %q: graph name must not be empty", s)
	}
	if found {
		if variant == "" {
			return GraphRef{}, fmt.Errorf("invalid graph ref %q: variant must not be empty", s)
		}
		if strings.Contains(variant, "@") {
			return GraphRef{}, fmt.Errorf("invalid graph ref %q: expected at most one '@'", s)
		}
	} else {
		variant = DefaultVariant
	}
	return GraphRef{Name: name, Variant: variant}, nil
}

// String returns the ref in "name@variant" form.
func (r GraphRef) String() string {
	return r.Name + "@" + r.Variant
}

func (r GraphRef) variables() map[string]any {
	return map[string]any{
		"graph":   r.Name,
		"variant": r.Variant,
	}
}
