package clientcli

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile is a named gallery server together with the board that
// images requests use when no board ID is given.
type Profile struct {
	Name     string        `yaml:"-"`
	Endpoint string        `yaml:"endpoint"`
	BoardID  string        `yaml:"board_id,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

// Config returns the connection settings the profile contributes.
func (p Profile) Config() Config {
	return Config{Endpoint: p.Endpoint, BoardID: p.BoardID, Timeout: p.Timeout}
}

// Profiles is the profile file, keyed by profile name:
//
//	default: home
//	profiles:
//	  home:
//	    endpoint: http://localhost:5000
//	    board_id: "470072049909241031"
//	  pages:
//	    endpoint: https://me.github.io
//	    timeout: 30s
type Profiles struct {
	Default string             `yaml:"default,omitempty"`
	Entries map[string]Profile `yaml:"profiles"`
}

// ReadProfiles loads the profile file at path. A missing file is an empty set.
func ReadProfiles(path string) (*Profiles, error) {
	data, err := os.ReadFile(filepath.Clean(path)) //#nosec G304 -- user-provided config file
	if errors.Is(err, fs.ErrNotExist) {
		return &Profiles{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}

	var ps Profiles
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return nil, fmt.Errorf("parse profiles %s: %w", path, err)
	}
	return &ps, nil
}

// Write stores the profiles at path with owner-only permissions.
func (ps *Profiles) Write(path string) error {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}

	data, err := yaml.Marshal(ps)
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// Resolve returns the named profile. An empty name selects the default
// profile, or the only profile when there is just one.
func (ps *Profiles) Resolve(name string) (Profile, error) {
	if len(ps.Entries) == 0 {
		return Profile{}, ErrNoProfiles
	}

	if name == "" {
		name = ps.Default
	}
	if name == "" {
		if len(ps.Entries) > 1 {
			return Profile{}, ErrNoDefaultProfile
		}
		for only := range ps.Entries {
			name = only
		}
	}

	p, ok := ps.Entries[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	p.Name = name
	return p, nil
}

// Put stores p under p.Name and reports whether it replaced an existing profile.
// The first profile stored becomes the default.
func (ps *Profiles) Put(p Profile) (replaced bool) {
	if ps.Entries == nil {
		ps.Entries = make(map[string]Profile)
	}
	name := p.Name
	p.Name = ""
	_, replaced = ps.Entries[name]
	ps.Entries[name] = p
	if len(ps.Entries) == 1 {
		ps.Default = name
	}
	return replaced
}

// Delete removes the named profile. Removing the default leaves no default.
func (ps *Profiles) Delete(name string) error {
	if _, ok := ps.Entries[name]; !ok {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	delete(ps.Entries, name)
	if ps.Default == name {
		ps.Default = ""
	}
	return nil
}

// Use makes the named profile the default.
func (ps *Profiles) Use(name string) error {
	if _, ok := ps.Entries[name]; !ok {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	ps.Default = name
	return nil
}

// List returns every profile sorted by name.
func (ps *Profiles) List() []Profile {
	names := slices.Sorted(maps.Keys(ps.Entries))
	out := make([]Profile, 0, len(names))
	for _, name := range names {
		p := ps.Entries[name]
		p.Name = name
		out = append(out, p)
	}
	return out
}
