package houston

import "fmt"

// Kind identifies a configuration problem.
type Kind int

const (
	// KindNoNonSensitiveConfigFound means a profile holds only sensitive values
	// and was loaded without asking for them.
	KindNoNonSensitiveConfigFound Kind = iota
	// KindCouldNotCreateConfigHome means the config home could not be created.
	KindCouldNotCreateConfigHome
	// KindDefaultConfigDirNotFound means the platform has no user config directory.
	KindDefaultConfigDirNotFound
	// KindInvalidOverrideConfigDir means the override path is not a directory.
	KindInvalidOverrideConfigDir
	// KindNoConfigFound means no profiles exist under the config home.
	KindNoConfigFound
	// KindProfileNotFound means the named profile does not exist.
	KindProfileNotFound
	// KindTomlDeserialization means a profile file could not be parsed.
	KindTomlDeserialization
	// KindTomlSerialization means a profile could not be encoded.
	KindTomlSerialization
	// KindIOError is any other filesystem failure.
	KindIOError

	kindCount
)

// KindCount is the number of defined kinds.
const KindCount = kindCount

var kindNames = [...]string{
	KindNoNonSensitiveConfigFound: "NoNonSensitiveConfigFound",
	KindCouldNotCreateConfigHome:  "CouldNotCreateConfigHome",
	KindDefaultConfigDirNotFound:  "DefaultConfigDirNotFound",
	KindInvalidOverrideConfigDir:  "InvalidOverrideConfigDir",
	KindNoConfigFound:             "NoConfigFound",
	KindProfileNotFound:           "ProfileNotFound",
	KindTomlDeserialization:       "TomlDeserialization",
	KindTomlSerialization:         "TomlSerialization",
	KindIOError:                   "IOError",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Problem is returned by every configuration operation.
type Problem struct {
	Kind Kind

	// Path is the file or directory involved, when there is one.
	Path string
	// Profile is the profile name for KindProfileNotFound.
	Profile string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (p *Problem) Error() string {
	if p == nil {
		return "<nil>"
	}
	var msg string
	switch p.Kind {
	case KindNoNonSensitiveConfigFound:
		msg = fmt.Sprintf("no non-sensitive configuration found at %s", p.Path)
	case KindCouldNotCreateConfigHome:
		msg = fmt.Sprintf("could not create config directory at %s", p.Path)
	case KindDefaultConfigDirNotFound:
		msg = "could not determine the default configuration directory"
	case KindInvalidOverrideConfigDir:
		msg = fmt.Sprintf("invalid config directory override %s: not a directory", p.Path)
	case KindNoConfigFound:
		msg = fmt.Sprintf("no configuration found at %s", p.Path)
	case KindProfileNotFound:
		msg = fmt.Sprintf("there is no profile named %q", p.Profile)
	case KindTomlDeserialization:
		msg = withPath("could not parse TOML", p.Path)
	case KindTomlSerialization:
		msg = withPath("could not serialize TOML", p.Path)
	case KindIOError:
		msg = withPath("IO error", p.Path)
	default:
		msg = fmt.Sprintf("unknown configuration problem (%s)", p.Kind)
	}
	if p.Err != nil {
		return msg + ": " + p.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (p *Problem) Unwrap() error {
	if p == nil {
		return nil
	}
	return p.Err
}

// Is reports whether the target is a *Problem of the same kind.
func (p *Problem) Is(target error) bool {
	t, ok := target.(*Problem)
	if !ok {
		return false
	}
	if p == nil || t == nil {
		return p == t
	}
	return p.Kind == t.Kind
}

func withPath(msg, path string) string {
	if path == "" {
		return msg
	}
	return msg + " at " + path
}

func newProblem(kind Kind, path string, cause error) *Problem {
	return &Problem{Kind: kind, Path: path, Err: cause}
}

// NewProfileNotFound creates a Problem for a missing profile.
func NewProfileNotFound(name string) *Problem {
	return &Problem{Kind: KindProfileNotFound, Profile: name}
}

// NewNoConfigFound creates a Problem for a config home with no profiles.
func NewNoConfigFound(path string) *Problem {
	return newProblem(KindNoConfigFound, path, nil)
}

// NewNoNonSensitiveConfigFound creates a Problem for a profile that holds
// only sensitive values.
func NewNoNonSensitiveConfigFound(path string) *Problem {
	return newProblem(KindNoNonSensitiveConfigFound, path, nil)
}

// NewIOError wraps a filesystem failure.
func NewIOError(path string, cause error) *Problem {
	return newProblem(KindIOError, path, cause)
}

// NewCouldNotCreateConfigHome creates a Problem for a config home that cannot be created.
func NewCouldNotCreateConfigHome(path string, cause error) *Problem {
	return newProblem(KindCouldNotCreateConfigHome, path, cause)
}

// NewDefaultConfigDirNotFound creates a Problem for a platform without a user config directory.
func NewDefaultConfigDirNotFound(cause error) *Problem {
	return newProblem(KindDefaultConfigDirNotFound, "", cause)
}

// NewInvalidOverrideConfigDir creates a Problem for an override path that is not a directory.
func NewInvalidOverrideConfigDir(path string) *Problem {
	return newProblem(KindInvalidOverrideConfigDir, path, nil)
}

// NewTomlDeserialization wraps a TOML decoding failure.
func NewTomlDeserialization(path string, cause error) *Problem {
	return newProblem(KindTomlDeserialization, path, cause)
}

// NewTomlSerialization wraps a TOML encoding failure.
func NewTomlSerialization(path string, cause error) *Problem {
	return newProblem(KindTomlSerialization, path, cause)
}
