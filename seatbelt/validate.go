// Copyright 2026 The Secure Notebook Authors
// SPDX-License-Identifier: Apache-2.0

package seatbelt

import (
	"fmt"
	"io"
	"os"
	"runtime"
)

// ValidationResult holds the result of a validation check.
type ValidationResult struct {
	Name    string
	Passed  bool
	Message string
	Warning bool // True if this is a warning, not an error.
}

// Validator performs pre-flight validation before launching a sandbox.
type Validator struct {
	results []ValidationResult
	errors  int
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{
		results: make([]ValidationResult, 0),
	}
}

// Results returns all validation results.
func (v *Validator) Results() []ValidationResult {
	return v.results
}

// HasErrors returns true if any validation failed.
func (v *Validator) HasErrors() bool {
	return v.errors > 0
}

// pass records a successful validation.
func (v *Validator) pass(name, message string) {
	v.results = append(v.results, ValidationResult{
		Name:    name,
		Passed:  true,
		Message: message,
	})
}

// warn records a warning (not a failure).
func (v *Validator) warn(name, message string) {
	v.results = append(v.results, ValidationResult{
		Name:    name,
		Passed:  true,
		Message: message,
		Warning: true,
	})
}

// fail records a validation failure.
func (v *Validator) fail(name, message string) {
	v.results = append(v.results, ValidationResult{
		Name:    name,
		Passed:  false,
		Message: message,
	})
	v.errors++
}

// ValidateAll runs all validation checks for a profile and template.
func (v *Validator) ValidateAll(profile *Profile, template string, vars Variables) {
	v.ValidateSandboxExec()
	v.ValidateTemplate(template)
	v.ValidateProfile(profile)
	v.ValidateProfilePaths(profile, vars)
}

// ValidateSandboxExec checks that sandbox-exec is available. Off macOS
// this is a warning: profiles can still be generated and inspected,
// just not enforced.
func (v *Validator) ValidateSandboxExec() {
	path, err := SandboxExecPath()
	if err != nil {
		if runtime.GOOS != "darwin" {
			v.warn("sandbox-exec", fmt.Sprintf("not found (host is %s; profiles can be generated but not enforced)", runtime.GOOS))
		} else {
			v.fail("sandbox-exec", "not found in standard locations")
		}
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		v.fail("sandbox-exec", fmt.Sprintf("cannot stat %s: %v", path, err))
		return
	}
	if info.Mode()&0111 == 0 {
		v.fail("sandbox-exec", fmt.Sprintf("%s is not executable", path))
		return
	}

	v.pass("sandbox-exec", fmt.Sprintf("available: %s", path))
}

// ValidateTemplate checks that the baseline template is present.
func (v *Validator) ValidateTemplate(template string) {
	if template == "" {
		v.fail("template", "baseline template is empty")
		return
	}
	if Minify(template) == "" {
		v.fail("template", "baseline template contains only comments and blank lines")
		return
	}
	v.pass("template", fmt.Sprintf("%d bytes", len(template)))
}

// ValidateProfile checks the profile's declarations for grammar safety.
func (v *Validator) ValidateProfile(profile *Profile) {
	if profile == nil {
		v.fail("profile", "profile is nil")
		return
	}

	if err := profile.Validate(); err != nil {
		v.fail("profile", err.Error())
		return
	}

	v.pass("profile", fmt.Sprintf("loaded: %s", profile.Name))
}

// ValidateProfilePaths checks that every declared filesystem path
// exists after variable expansion. Unlike the PermissionSet setters
// this collects every missing path instead of stopping at the first,
// so a single validate run reports everything wrong with a profile.
func (v *Validator) ValidateProfilePaths(profile *Profile, vars Variables) {
	if profile == nil {
		return
	}

	expanded := vars.ExpandProfile(profile)
	categories := []struct {
		name  string
		paths []string
	}{
		{"allow_read", expanded.AllowRead},
		{"deny_read", expanded.DenyRead},
		{"allow_write", expanded.AllowWrite},
		{"deny_write", expanded.DenyWrite},
	}

	for _, cat := range categories {
		for _, path := range cat.paths {
			if _, err := os.Stat(path); err != nil {
				if os.IsNotExist(err) {
					v.fail(cat.name, fmt.Sprintf("path does not exist: %s", path))
				} else {
					v.fail(cat.name, fmt.Sprintf("cannot access %s: %v", path, err))
				}
				continue
			}
		}
	}
}

// PrintResults writes validation results to a writer.
func (v *Validator) PrintResults(w io.Writer) {
	for _, r := range v.results {
		var prefix string
		if r.Passed {
			if r.Warning {
				prefix = "⚠"
			} else {
				prefix = "✓"
			}
		} else {
			prefix = "✗"
		}
		fmt.Fprintf(w, "%s %s: %s\n", prefix, r.Name, r.Message)
	}

	fmt.Fprintln(w)
	if v.HasErrors() {
		fmt.Fprintf(w, "Validation failed with %d error(s)\n", v.errors)
	} else {
		fmt.Fprintln(w, "Ready to run sandbox")
	}
}
