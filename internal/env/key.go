// Package env names the environment variables rover reads and provides
// a small lookup abstraction over the process environment.
package env

import "os"

// Key is the name of an environment variable recognised by rover.
type Key string

const (
	// ConfigHome overrides the directory rover stores profiles in.
	ConfigHome Key = "APOLLO_CONFIG_HOME"
	// APIKey overrides the API key of the selected profile.
	APIKey Key = "APOLLO_KEY"
	// RegistryURL overrides the graph registry endpoint.
	RegistryURL Key = "APOLLO_REGISTRY_URL"
	// LogLevel sets the default log level.
	LogLevel Key = "APOLLO_LOG_LEVEL"
)

// String returns the variable name.
func (k Key) String() string {
	return string(k)
}

// Lookuper reports the value of an environment variable and whether it is set.
// Implementations must be safe for concurrent use.
type Lookuper interface {
	Lookup(key Key) (string, bool)
}

// OS reads the process environment.
type OS struct{}

// Lookup implements Lookuper.
func (OS) Lookup(key Key) (string, bool) {
	return os.LookupEnv(key.String())
}

// Map is an in-memory Lookuper, mostly useful in tests.
// A nil Map has no variables set.
type Map map[Key]string

// Lookup implements Lookuper.
func (m Map) Lookup(key Key) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Get returns the value of key, or fallback when it is unset.
// A variable set to the empty string is returned as-is.
func Get(l Lookuper, key Key, fallback string) string {
	if l == nil {
		l = OS{}
	}
	if v, ok := l.Lookup(key); ok {
		return v
	}
	return fallback
}

// IsSet reports whether key is present, regardless of its value.
func IsSet(l Lookuper, key Key) bool {
	if l == nil {
		l = OS{}
	}
	_, ok := l.Lookup(key)
	return ok
}
