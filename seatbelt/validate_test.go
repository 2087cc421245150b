// Copyright 2026 The Secure Notebook Authors
// SPDX-License-Identifier: Apache-2.0

package seatbelt

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestValidatorTemplate(t *testing.T) {
	v := NewValidator()
	v.ValidateTemplate("")
	if !v.HasErrors() {
		t.Error("empty template must fail")
	}

	v = NewValidator()
	v.ValidateTemplate("; nothing but comments\n\n")
	if !v.HasErrors() {
		t.Error("comment-only template must fail")
	}

	v = NewValidator()
	v.ValidateTemplate(DefaultTemplate)
	if v.HasErrors() {
		t.Error("default template should pass")
	}
}

func TestValidatorProfileTokens(t *testing.T) {
	v := NewValidator()
	v.ValidateProfile(&Profile{Name: "bad", AllowRun: []string{`rm;rf`}})
	if !v.HasErrors() {
		t.Error("unsafe token must fail validation")
	}
}

func TestValidatorCollectsAllMissingPaths(t *testing.T) {
	dir := t.TempDir()
	missingA := filepath.Join(dir, "a")
	missingB := filepath.Join(dir, "b")

	profile := &Profile{
		Name:      "test",
		AllowRead: []string{missingA, dir},
		DenyWrite: []string{missingB},
	}

	v := NewValidator()
	v.ValidateProfilePaths(profile, Variables{})

	if !v.HasErrors() {
		t.Fatal("missing paths must fail")
	}

	failures := 0
	for _, r := range v.Results() {
		if !r.Passed {
			failures++
		}
	}
	if failures != 2 {
		t.Errorf("validator should report every missing path, got %d failures", failures)
	}
}

func TestValidatorPrintResults(t *testing.T) {
	v := NewValidator()
	v.ValidateTemplate(DefaultTemplate)
	v.ValidateProfile(&Profile{Name: "ok"})

	var buf strings.Builder
	v.PrintResults(&buf)

	out := buf.String()
	if !strings.Contains(out, "Ready to run sandbox") {
		t.Errorf("missing success footer:\n%s", out)
	}

	v.fail("check", "boom")
	buf.Reset()
	v.PrintResults(&buf)
	if !strings.Contains(buf.String(), "Validation failed with 1 error(s)") {
		t.Errorf("missing failure footer:\n%s", buf.String())
	}
}
