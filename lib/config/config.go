// Copyright 2026 The Secure Notebook Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvVar is the environment variable naming the config file.
const EnvVar = "SECURE_NOTEBOOK_CONFIG"

// Config is the master configuration for secure-notebook.
type Config struct {
	// Sandbox configures profile selection and the baseline template.
	Sandbox SandboxConfig `yaml:"sandbox"`
}

// SandboxConfig configures the policy generator.
type SandboxConfig struct {
	// DefaultProfile is the permission profile used when none is
	// specified. Default: notebook.
	DefaultProfile string `yaml:"default_profile"`

	// ProfilesFile is the path to a permission profiles file, loaded
	// in addition to the built-in defaults.
	ProfilesFile string `yaml:"profiles_file"`

	// TemplateFile is the path to a baseline template, replacing the
	// embedded default.
	TemplateFile string `yaml:"template_file"`

	// Workspace is the directory granted to kernels via ${WORKSPACE}.
	Workspace string `yaml:"workspace"`
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Sandbox: SandboxConfig{
			DefaultProfile: "notebook",
		},
	}
}

// LoadFile loads configuration from a YAML file. Missing fields keep
// their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Load loads configuration from the file named by SECURE_NOTEBOOK_CONFIG,
// or returns defaults when the variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
