// Copyright 2026 The Secure Notebook Authors
// SPDX-License-Identifier: Apache-2.0

package seatbelt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Profile is a declarative permission profile as loaded from a YAML or
// JSONC file. Entries are unvalidated declarations; validation happens
// when the profile is converted to a [PermissionSet].
type Profile struct {
	Name        string   `yaml:"name"         json:"name"`
	Description string   `yaml:"description"  json:"description"`
	Inherit     string   `yaml:"inherit,omitempty"      json:"inherit,omitempty"`
	AllowRead   []string `yaml:"allow_read,omitempty"   json:"allow_read,omitempty"`
	DenyRead    []string `yaml:"deny_read,omitempty"    json:"deny_read,omitempty"`
	AllowWrite  []string `yaml:"allow_write,omitempty"  json:"allow_write,omitempty"`
	DenyWrite   []string `yaml:"deny_write,omitempty"   json:"deny_write,omitempty"`
	AllowRun    []string `yaml:"allow_run,omitempty"    json:"allow_run,omitempty"`
	DenyRun     []string `yaml:"deny_run,omitempty"     json:"deny_run,omitempty"`

	// AllowNetwork is a pointer so a child profile can explicitly turn
	// the flag off when inheriting from a networked parent.
	AllowNetwork *bool `yaml:"allow_network,omitempty" json:"allow_network,omitempty"`
}

// ProfilesConfig is the root of a profiles file.
type ProfilesConfig struct {
	Profiles map[string]*Profile `yaml:"profiles" json:"profiles"`
}

// ParseProfilesConfig parses YAML profile definitions.
func ParseProfilesConfig(data []byte) (*ProfilesConfig, error) {
	var config ProfilesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}
	nameProfiles(&config)
	return &config, nil
}

// ParseProfilesConfigJSONC parses JSONC (JSON with comments and
// trailing commas) profile definitions.
func ParseProfilesConfigJSONC(data []byte) (*ProfilesConfig, error) {
	var config ProfilesConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}
	nameProfiles(&config)
	return &config, nil
}

// nameProfiles fills each profile's Name from its map key.
func nameProfiles(config *ProfilesConfig) {
	for name, profile := range config.Profiles {
		if profile != nil && profile.Name == "" {
			profile.Name = name
		}
	}
}

// LoadProfilesConfig loads a profiles file, dispatching on extension:
// .yaml/.yml via YAML, .json/.jsonc via JSONC.
func LoadProfilesConfig(path string) (*ProfilesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}
	switch filepath.Ext(path) {
	case ".json", ".jsonc":
		return ParseProfilesConfigJSONC(data)
	default:
		return ParseProfilesConfig(data)
	}
}

// Clone creates a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	clone := &Profile{
		Name:        p.Name,
		Description: p.Description,
		Inherit:     p.Inherit,
	}
	clone.AllowRead = append([]string(nil), p.AllowRead...)
	clone.DenyRead = append([]string(nil), p.DenyRead...)
	clone.AllowWrite = append([]string(nil), p.AllowWrite...)
	clone.DenyWrite = append([]string(nil), p.DenyWrite...)
	clone.AllowRun = append([]string(nil), p.AllowRun...)
	clone.DenyRun = append([]string(nil), p.DenyRun...)
	if p.AllowNetwork != nil {
		v := *p.AllowNetwork
		clone.AllowNetwork = &v
	}
	return clone
}

// MergeProfiles merges child profile settings into parent. A non-empty
// child list replaces the parent's list for that category (the same
// last-set-wins semantics as the PermissionSet setters); an explicit
// child allow_network overrides the parent's.
func MergeProfiles(parent, child *Profile) *Profile {
	result := parent.Clone()
	result.Name = child.Name
	result.Inherit = ""

	if child.Description != "" {
		result.Description = child.Description
	}
	if len(child.AllowRead) > 0 {
		result.AllowRead = append([]string(nil), child.AllowRead...)
	}
	if len(child.DenyRead) > 0 {
		result.DenyRead = append([]string(nil), child.DenyRead...)
	}
	if len(child.AllowWrite) > 0 {
		result.AllowWrite = append([]string(nil), child.AllowWrite...)
	}
	if len(child.DenyWrite) > 0 {
		result.DenyWrite = append([]string(nil), child.DenyWrite...)
	}
	if len(child.AllowRun) > 0 {
		result.AllowRun = append([]string(nil), child.AllowRun...)
	}
	if len(child.DenyRun) > 0 {
		result.DenyRun = append([]string(nil), child.DenyRun...)
	}
	if child.AllowNetwork != nil {
		v := *child.AllowNetwork
		result.AllowNetwork = &v
	}

	return result
}

// Variables holds the variable values for expansion in profiles.
type Variables map[string]string

var varPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Expand expands ${VAR} references using the Variables map, falling
// back to environment variables. Unknown variables are left as-is so
// they fail loudly at path validation instead of silently matching
// nothing.
func (v Variables) Expand(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := v[name]; ok {
			return val
		}
		if val := os.Getenv(name); val != "" {
			return val
		}
		return match
	})
}

// ExpandProfile expands all variables in a profile's path and program
// entries.
func (v Variables) ExpandProfile(p *Profile) *Profile {
	result := p.Clone()
	for _, list := range [][]string{
		result.AllowRead, result.DenyRead,
		result.AllowWrite, result.DenyWrite,
		result.AllowRun, result.DenyRun,
	} {
		for i := range list {
			list[i] = v.Expand(list[i])
		}
	}
	return result
}

// DefaultVariables returns the default variable set. WORKSPACE is the
// directory the kernel works in, defaulting to the current directory.
func DefaultVariables() Variables {
	workspace := os.Getenv("SECURE_NOTEBOOK_WORKSPACE")
	if workspace == "" {
		if cwd, err := os.Getwd(); err == nil {
			workspace = cwd
		}
	}
	return Variables{
		"WORKSPACE": workspace,
		"HOME":      os.Getenv("HOME"),
	}
}

// ToPermissionSet expands the profile with vars and routes every
// category through the validating PermissionSet setters. The first
// missing path or unsafe token aborts the conversion.
func (p *Profile) ToPermissionSet(vars Variables) (*PermissionSet, error) {
	expanded := vars.ExpandProfile(p)

	perms := NewPermissionSet()
	if len(expanded.AllowRead) > 0 {
		if err := perms.AllowRead(expanded.AllowRead); err != nil {
			return nil, fmt.Errorf("profile %q allow_read: %w", p.Name, err)
		}
	}
	if len(expanded.DenyRead) > 0 {
		if err := perms.DenyRead(expanded.DenyRead); err != nil {
			return nil, fmt.Errorf("profile %q deny_read: %w", p.Name, err)
		}
	}
	if len(expanded.AllowWrite) > 0 {
		if err := perms.AllowWrite(expanded.AllowWrite); err != nil {
			return nil, fmt.Errorf("profile %q allow_write: %w", p.Name, err)
		}
	}
	if len(expanded.DenyWrite) > 0 {
		if err := perms.DenyWrite(expanded.DenyWrite); err != nil {
			return nil, fmt.Errorf("profile %q deny_write: %w", p.Name, err)
		}
	}
	if expanded.AllowNetwork != nil && *expanded.AllowNetwork {
		perms.AllowNetwork()
	}
	if len(expanded.AllowRun) > 0 {
		if err := perms.AllowRun(expanded.AllowRun); err != nil {
			return nil, fmt.Errorf("profile %q allow_run: %w", p.Name, err)
		}
	}
	if len(expanded.DenyRun) > 0 {
		if err := perms.DenyRun(expanded.DenyRun); err != nil {
			return nil, fmt.Errorf("profile %q deny_run: %w", p.Name, err)
		}
	}

	return perms, nil
}

// Validate checks that a profile's declarations are structurally sound
// without touching the filesystem: tokens must be grammar-safe after
// they stop being variable references.
func (p *Profile) Validate() error {
	var problems []string
	check := func(category string, entries []string) {
		for i, entry := range entries {
			if strings.Contains(entry, "${") {
				continue // unresolved variable, expanded later
			}
			if err := checkToken(entry); err != nil {
				problems = append(problems, fmt.Sprintf("%s[%d]: %v", category, i, err))
			}
		}
	}
	check("allow_read", p.AllowRead)
	check("deny_read", p.DenyRead)
	check("allow_write", p.AllowWrite)
	check("deny_write", p.DenyWrite)
	check("allow_run", p.AllowRun)
	check("deny_run", p.DenyRun)

	if len(problems) > 0 {
		return fmt.Errorf("profile %q validation failed:\n  %s", p.Name, strings.Join(problems, "\n  "))
	}
	return nil
}
