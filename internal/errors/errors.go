// Package errors classifies failures returned by rover's subsystems and
// attaches remediation advice to them. It does no formatting of its own;
// the printer package renders the advice for the terminal.
//
//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

// RoverError is an error annotated with the Metadata derived from it.
type RoverError struct {
	// Err is the original error.
	Err error

	// Metadata is computed once, when the error is wrapped.
	Metadata Metadata
}

// Error implements the error interface.
func (e *RoverError) Error() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

// Unwrap returns the original error.
func (e *RoverError) Unwrap() error {
	return e.Err
}

// Suggestion returns the attached suggestion, or nil.
func (e *RoverError) Suggestion() Suggestion {
	return e.Metadata.Suggestion
}

// Code returns the attached code, or the empty Code.
func (e *RoverError) Code() Code {
	return e.Metadata.Code
}

// Wrap classifies err against the process environment.
// It returns nil for a nil err and err itself when it is already a *RoverError.
func Wrap(err error) *RoverError {
	return defaultClassifier.Wrap(err)
}

// Wrap classifies err with c.
// It returns nil for a nil err and err itself when it is already a *RoverError.
func (c *Classifier) Wrap(err error) *RoverError {
	if err == nil {
		return nil
	}
	if re, ok := err.(*RoverError); ok {
		return re
	}
	return &RoverError{Err: err, Metadata: c.Classify(err)}
}
