// Copyright 2026 The Secure Notebook Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Sandbox.DefaultProfile != "notebook" {
		t.Errorf("default profile: %q", cfg.Sandbox.DefaultProfile)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
sandbox:
  default_profile: notebook-offline
  profiles_file: /etc/secure-notebook/site.yaml
  workspace: /srv/notebooks
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Sandbox.DefaultProfile != "notebook-offline" {
		t.Errorf("default_profile: %q", cfg.Sandbox.DefaultProfile)
	}
	if cfg.Sandbox.ProfilesFile != "/etc/secure-notebook/site.yaml" {
		t.Errorf("profiles_file: %q", cfg.Sandbox.ProfilesFile)
	}
	if cfg.Sandbox.Workspace != "/srv/notebooks" {
		t.Errorf("workspace: %q", cfg.Sandbox.Workspace)
	}
}

func TestLoadUnsetEnv(t *testing.T) {
	t.Setenv(EnvVar, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sandbox.DefaultProfile != "notebook" {
		t.Errorf("unset env should return defaults, got %q", cfg.Sandbox.DefaultProfile)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
