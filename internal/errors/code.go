//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

// Code is a stable, user-facing identifier for a well-known failure class.
// The empty Code means no code is assigned. A Code never implies a Suggestion;
// the two are attached independently.
type Code string

// String returns the code, or the empty string when none is assigned.
func (c Code) String() string {
	return string(c)
}

// IsZero reports whether no code is assigned.
func (c Code) IsZero() bool {
	return c == ""
}
