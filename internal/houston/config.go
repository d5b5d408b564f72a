// Package houston manages rover's on-disk configuration: the config home
// directory and the profiles stored beneath it.
// Every failure it returns is a *Problem.
package houston

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/terassyi/rover/internal/env"
)

const (
	appDirName  = "rover"
	profilesDir = "profiles"
	lockFile    = ".lock"
)

// Config is a resolved config home.
type Config struct {
	home   string
	lookup env.Lookuper
}

// NewConfig resolves and creates the config home.
// The directory is, in order: override, $APOLLO_CONFIG_HOME, then
// rover/ under the user's config directory.
func NewConfig(override string, lookup env.Lookuper) (*Config, error) {
	if lookup == nil {
		lookup = env.OS{}
	}

	home := override
	if home == "" {
		home, _ = lookup.Lookup(env.ConfigHome)
	}

	if home != "" {
		if fi, err := os.Stat(home); err == nil && !fi.IsDir() {
			return nil, NewInvalidOverrideConfigDir(home)
		}
	} else {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, NewDefaultConfigDirNotFound(err)
		}
		home = filepath.Join(base, appDirName)
	}

	if err := os.MkdirAll(home, 0755); err != nil {
		return nil, NewCouldNotCreateConfigHome(home, err)
	}

	slog.Debug("using config home", "path", home)
	return &Config{home: home, lookup: lookup}, nil
}

// Home returns the config home directory.
func (c *Config) Home() string {
	return c.home
}

// ProfilesDir returns the directory holding one subdirectory per profile.
func (c *Config) ProfilesDir() string {
	return filepath.Join(c.home, profilesDir)
}

func (c *Config) profileDir(name string) string {
	return filepath.Join(c.ProfilesDir(), name)
}

// Clear removes every profile.
func (c *Config) Clear() error {
	unlock, err := c.lock()
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.RemoveAll(c.ProfilesDir()); err != nil {
		return NewIOError(c.ProfilesDir(), err)
	}
	return nil
}

// lock takes the exclusive config lock and returns its release func.
// Returns an IOError if another process holds the lock.
func (c *Config) lock() (func(), error) {
	path := filepath.Join(c.home, lockFile)
	fl := flock.New(path)

	locked, err := fl.TryLock()
	if err != nil {
		return nil, NewIOError(path, fmt.Errorf("failed to acquire lock: %w", err))
	}
	if !locked {
		return nil, NewIOError(path, errors.New("another rover process is modifying the configuration"))
	}

	return func() {
		if err := fl.Unlock(); err != nil {
			slog.Warn("failed to release config lock", "path", path, "error", err)
		}
	}, nil
}
