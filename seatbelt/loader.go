// Copyright 2026 The Secure Notebook Authors
// SPDX-License-Identifier: Apache-2.0

package seatbelt

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// ProfileLoader loads and resolves named permission profiles.
type ProfileLoader struct {
	configs  []*ProfilesConfig
	resolved map[string]*Profile
	logger   *slog.Logger
}

// NewProfileLoader creates a new profile loader.
func NewProfileLoader() *ProfileLoader {
	return &ProfileLoader{
		configs:  make([]*ProfilesConfig, 0),
		resolved: make(map[string]*Profile),
	}
}

// SetLogger enables verbose logging during profile loading.
func (l *ProfileLoader) SetLogger(logger *slog.Logger) {
	l.logger = logger
}

// log is a helper that only logs if a logger is configured.
func (l *ProfileLoader) log(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Info(msg, args...)
	}
}

// LoadDefaults loads the built-in default profiles.
func (l *ProfileLoader) LoadDefaults() error {
	l.log("loading built-in default profiles")
	config, err := ParseProfilesConfig([]byte(defaultProfilesYAML))
	if err != nil {
		return fmt.Errorf("failed to parse default profiles: %w", err)
	}
	l.configs = append(l.configs, config)
	l.log("loaded default profiles", "count", len(config.Profiles))
	return nil
}

// LoadFile loads profiles from a YAML or JSONC file.
func (l *ProfileLoader) LoadFile(path string) error {
	l.log("loading profiles from file", "path", path)
	config, err := LoadProfilesConfig(path)
	if err != nil {
		l.log("failed to load profiles", "path", path, "error", err)
		return err
	}
	l.configs = append(l.configs, config)
	l.log("loaded profiles from file", "path", path, "count", len(config.Profiles))
	return nil
}

// LoadDirectory loads all profile files from a directory.
func (l *ProfileLoader) LoadDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Directory doesn't exist - not an error.
		}
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml", ".json", ".jsonc":
		default:
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := l.LoadFile(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	return nil
}

// Resolve resolves a profile by name, applying inheritance.
// Later-loaded configs override earlier ones.
func (l *ProfileLoader) Resolve(name string) (*Profile, error) {
	l.log("resolving profile", "name", name)

	if profile, ok := l.resolved[name]; ok {
		return profile, nil
	}

	// Find profile in configs (last one wins).
	var baseProfile *Profile
	for _, config := range l.configs {
		if profile, ok := config.Profiles[name]; ok {
			baseProfile = profile
		}
	}

	if baseProfile == nil {
		return nil, fmt.Errorf("profile not found: %s", name)
	}

	var profile *Profile
	if baseProfile.Inherit != "" {
		l.log("resolving parent profile", "child", name, "parent", baseProfile.Inherit)
		parent, err := l.Resolve(baseProfile.Inherit)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve parent profile %q: %w", baseProfile.Inherit, err)
		}
		profile = MergeProfiles(parent, baseProfile)
	} else {
		profile = baseProfile.Clone()
	}

	l.resolved[name] = profile
	l.log("profile resolved",
		"name", name,
		"allow_read", len(profile.AllowRead),
		"allow_write", len(profile.AllowWrite),
	)
	return profile, nil
}

// List returns all available profile names.
func (l *ProfileLoader) List() []string {
	names := make(map[string]bool)
	for _, config := range l.configs {
		for name := range config.Profiles {
			names[name] = true
		}
	}

	result := make([]string, 0, len(names))
	for name := range names {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// ConfigSearchPaths returns the paths to search for profile configs.
func ConfigSearchPaths() []string {
	paths := []string{}

	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "secure-notebook", "profiles.yaml"))
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		paths = append(paths, filepath.Join(xdgConfig, "secure-notebook", "profiles.yaml"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "secure-notebook", "profiles.yaml"))
	}

	paths = append(paths, "/etc/secure-notebook/profiles.yaml")

	return paths
}

// LoadFromSearchPaths creates a loader and loads profiles from standard
// locations, defaults first.
func LoadFromSearchPaths() (*ProfileLoader, error) {
	return LoadFromSearchPathsWithLogger(nil)
}

// LoadFromSearchPathsWithLogger creates a loader with optional verbose logging.
func LoadFromSearchPathsWithLogger(logger *slog.Logger) (*ProfileLoader, error) {
	loader := NewProfileLoader()
	loader.SetLogger(logger)

	if err := loader.LoadDefaults(); err != nil {
		return nil, err
	}

	for _, path := range ConfigSearchPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := loader.LoadFile(path); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", path, err)
			}
		} else {
			loader.log("profile config not found", "path", path)
		}
	}

	return loader, nil
}

// defaultProfilesYAML contains the built-in profile definitions.
const defaultProfilesYAML = `
profiles:
  notebook:
    description: "Interactive kernel with workspace access and network"
    allow_read:
      - ${WORKSPACE}
    allow_write:
      - ${WORKSPACE}
    allow_network: true
    allow_run:
      - python
      - jupyter

  notebook-offline:
    description: "Interactive kernel without network access"
    inherit: notebook
    allow_network: false

  # Not derived from notebook: list categories replace on inheritance,
  # so an empty child list would keep the parent's writes.
  notebook-readonly:
    description: "Read-only kernel for reviewing notebooks"
    allow_read:
      - ${WORKSPACE}
    allow_run:
      - python
      - jupyter
`
