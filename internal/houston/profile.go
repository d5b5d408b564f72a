package houston

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/terassyi/rover/internal/env"
)

const (
	// DefaultProfile is used when no profile is selected.
	DefaultProfile = "default"

	sensitiveFile = ".sensitive"
	configFile    = "config.toml"
)

// sensitive is the content of a profile's .sensitive file.
type sensitive struct {
	APIKey string `toml:"api_key"`
}

// profileConfig is the content of a profile's config.toml file.
type profileConfig struct {
	DefaultGraph string `toml:"default_graph,omitempty"`
}

// Profile is a named set of credentials and defaults.
type Profile struct {
	Name string `json:"name" yaml:"name"`
	// APIKey is only populated when loaded with LoadOptions.Sensitive.
	APIKey       string `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
	DefaultGraph string `json:"defaultGraph,omitempty" yaml:"defaultGraph,omitempty"`
}

// LoadOptions controls which parts of a profile are read.
type LoadOptions struct {
	Sensitive bool
}

func validateProfileName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid profile name %q", name)
	}
	return nil
}

// LoadProfile reads the named profile.
func LoadProfile(c *Config, name string, opts LoadOptions) (*Profile, error) {
	if err := validateProfileName(name); err != nil {
		return nil, err
	}
	dir := c.profileDir(name)
	if err := requireDir(dir, name); err != nil {
		return nil, err
	}

	p := &Profile{Name: name}

	var pc profileConfig
	found, err := readTOML(filepath.Join(dir, configFile), &pc)
	if err != nil {
		return nil, err
	}
	p.DefaultGraph = pc.DefaultGraph

	if opts.Sensitive {
		var s sensitive
		if _, err := readTOML(filepath.Join(dir, sensitiveFile), &s); err != nil {
			return nil, err
		}
		p.APIKey = s.APIKey
	} else if !found {
		return nil, NewNoNonSensitiveConfigFound(dir)
	}

	return p, nil
}

// GetAPIKey returns the API key for the named profile.
// $APOLLO_KEY takes precedence over the stored key.
func GetAPIKey(c *Config, name string) (string, error) {
	if key, ok := c.lookup.Lookup(env.APIKey); ok && key != "" {
		return key, nil
	}

	p, err := LoadProfile(c, name, LoadOptions{Sensitive: true})
	if err != nil {
		return "", err
	}
	if p.APIKey == "" {
		return "", fmt.Errorf("profile %q has no API key; run `rover config auth --profile %s`", name, name)
	}
	return p.APIKey, nil
}

// SetAPIKey stores an API key in the named profile, creating it if needed.
func SetAPIKey(c *Config, name, key string) error {
	return c.updateProfile(name, func(dir string) error {
		return writeTOML(filepath.Join(dir, sensitiveFile), sensitive{APIKey: key}, 0600)
	})
}

// SetDefaultGraph stores the graph ref commands fall back to for the named profile.
func SetDefaultGraph(c *Config, name, graph string) error {
	return c.updateProfile(name, func(dir string) error {
		path := filepath.Join(dir, configFile)
		var pc profileConfig
		if _, err := readTOML(path, &pc); err != nil {
			return err
		}
		pc.DefaultGraph = graph
		return writeTOML(path, pc, 0644)
	})
}

// ListProfiles returns the sorted names of all profiles.
func ListProfiles(c *Config) ([]string, error) {
	dir := c.ProfilesDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewNoConfigFound(dir)
		}
		return nil, NewIOError(dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, NewNoConfigFound(dir)
	}
	slices.Sort(names)
	return names, nil
}

// DeleteProfile removes the named profile.
func DeleteProfile(c *Config, name string) error {
	if err := validateProfileName(name); err != nil {
		return err
	}
	dir := c.profileDir(name)
	if err := requireDir(dir, name); err != nil {
		return err
	}

	unlock, err := c.lock()
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.RemoveAll(dir); err != nil {
		return NewIOError(dir, err)
	}
	return nil
}

// updateProfile runs fn on the profile directory under the config lock.
func (c *Config) updateProfile(name string, fn func(dir string) error) error {
	if err := validateProfileName(name); err != nil {
		return err
	}

	unlock, err := c.lock()
	if err != nil {
		return err
	}
	defer unlock()

	dir := c.profileDir(name)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return NewIOError(dir, err)
	}
	return fn(dir)
}

func requireDir(dir, name string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewProfileNotFound(name)
		}
		return NewIOError(dir, err)
	}
	if !fi.IsDir() {
		return NewProfileNotFound(name)
	}
	return nil
}

// readTOML decodes path into v. A missing file is not an error; found is false.
func readTOML(path string, v any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, NewIOError(path, err)
	}
	if err := toml.Unmarshal(data, v); err != nil {
		return true, NewTomlDeserialization(path, err)
	}
	return true, nil
}

// writeTOML encodes v and writes it to path atomically.
func writeTOML(path string, v any, perm os.FileMode) error {
	data, err := toml.Marshal(v)
	if err != nil {
		return NewTomlSerialization(path, err)
	}

	// Write to temp file first
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return NewIOError(tmpPath, err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // Clean up on failure
		return NewIOError(path, err)
	}
	return nil
}
