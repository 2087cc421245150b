// Copyright 2026 The Secure Notebook Authors
// SPDX-License-Identifier: Apache-2.0

package seatbelt

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// Sandbox launches commands under a generated profile via sandbox-exec.
// The profile text is generated once at construction; the sandbox only
// consumes the string and never re-validates the permission set.
type Sandbox struct {
	profile  string
	minified string
	logger   *slog.Logger
}

// Config holds configuration for creating a new Sandbox.
type Config struct {
	// Template is the baseline profile text. Empty means
	// DefaultTemplate.
	Template string

	// Permissions is the permission set to generate rules from.
	Permissions *PermissionSet

	// Logger for sandbox operations.
	Logger *slog.Logger
}

// New creates a new Sandbox from a template and permission set.
func New(config Config) (*Sandbox, error) {
	if config.Permissions == nil {
		return nil, fmt.Errorf("permissions are required")
	}

	template := config.Template
	if template == "" {
		template = DefaultTemplate
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	profile := Generate(template, config.Permissions)
	return &Sandbox{
		profile:  profile,
		minified: Minify(profile),
		logger:   logger,
	}, nil
}

// Profile returns the generated profile text.
func (s *Sandbox) Profile() string {
	return s.profile
}

// Command creates an exec.Cmd that runs command under sandbox-exec.
// The profile is passed minified via -p so it survives as a single
// argument. Useful for custom I/O handling or testing.
func (s *Sandbox) Command(ctx context.Context, command []string) (*exec.Cmd, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("command is required")
	}

	sandboxExec, err := SandboxExecPath()
	if err != nil {
		return nil, err
	}

	args := append([]string{"-p", s.minified}, command...)
	return exec.CommandContext(ctx, sandboxExec, args...), nil
}

// Run executes a command in the sandbox with inherited stdio. A
// non-zero exit from the confined command is returned as an *ExitError.
func (s *Sandbox) Run(ctx context.Context, command []string) error {
	cmd, err := s.Command(ctx, command)
	if err != nil {
		return err
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	s.logger.Info("running sandboxed command",
		"command", command,
		"profile_bytes", len(s.minified),
	)

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("sandboxed command failed: %w", err)
	}

	return nil
}

// DryRun returns the full argv that Run would execute, without running
// it.
func (s *Sandbox) DryRun(command []string) ([]string, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("command is required")
	}

	sandboxExec, err := SandboxExecPath()
	if err != nil {
		return nil, err
	}

	argv := []string{sandboxExec, "-p", s.minified}
	return append(argv, command...), nil
}

// SandboxExecPath returns the path to the sandbox-exec executable.
func SandboxExecPath() (string, error) {
	paths := []string{
		"/usr/bin/sandbox-exec",
		"/usr/local/bin/sandbox-exec",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("sandbox-exec"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("sandbox-exec not found in standard locations")
}

// ExitError represents a non-zero exit from the sandboxed command.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}

// IsExitError checks if an error is an ExitError and returns the code.
func IsExitError(err error) (int, bool) {
	if exitErr, ok := err.(*ExitError); ok {
		return exitErr.Code, true
	}
	return 0, false
}
