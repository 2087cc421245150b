// Copyright 2026 The Secure Notebook Authors
// SPDX-License-Identifier: Apache-2.0

package seatbelt

import (
	"strings"
	"testing"
)

func TestFileRules(t *testing.T) {
	out := FileRules(AccessFileRead, []string{"/tmp/allowed"}, []string{"/tmp/denied"})

	if !strings.Contains(out, `(deny file-read* (subpath "/tmp/denied"))`) {
		t.Error("missing deny statement")
	}
	if !strings.Contains(out, "(allow file-read*)") {
		t.Error("missing allow block opener")
	}
	if !strings.Contains(out, `    (subpath "/tmp/allowed")`) {
		t.Error("missing allow subpath clause")
	}

	// Deny statements precede the allow block.
	denyIdx := strings.Index(out, "(deny")
	allowIdx := strings.Index(out, "(allow")
	if denyIdx > allowIdx {
		t.Errorf("deny statement at %d should precede allow block at %d", denyIdx, allowIdx)
	}
}

func TestFileRulesDenyOnly(t *testing.T) {
	out := FileRules(AccessFileWrite, nil, []string{"/tmp/denied"})

	if !strings.Contains(out, `(deny file-write* (subpath "/tmp/denied"))`) {
		t.Error("missing deny statement")
	}
	if strings.Contains(out, "(allow") {
		t.Errorf("deny-only category must not emit an allow block, got:\n%s", out)
	}
}

func TestFileRulesEmpty(t *testing.T) {
	if out := FileRules(AccessFileRead, nil, nil); out != "" {
		t.Errorf("empty category emitted %q", out)
	}
}

func TestFileRulesPreservesOrder(t *testing.T) {
	out := FileRules(AccessFileRead, []string{"/b", "/a", "/c"}, nil)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	want := []string{
		"(allow file-read*)",
		`    (subpath "/b")`,
		`    (subpath "/a")`,
		`    (subpath "/c")`,
		")",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), out)
	}
	for i, line := range want {
		if lines[i] != line {
			t.Errorf("line %d: got %q, want %q", i, lines[i], line)
		}
	}
}

func TestNetworkRule(t *testing.T) {
	if out := NetworkRule(true); out != "(allow network*)\n" {
		t.Errorf("got %q", out)
	}
	if out := NetworkRule(false); out != "" {
		t.Errorf("network-off emitted %q", out)
	}
}

func TestExecRules(t *testing.T) {
	out := ExecRules([]string{"jupyter", "python"}, []string{"bash"})

	if !strings.Contains(out, `(deny process-exec (literal "bash"))`) {
		t.Error("missing deny statement")
	}
	if !strings.Contains(out, "(allow process-exec\n") {
		t.Error("missing allow block opener")
	}
	if !strings.Contains(out, `    (literal "jupyter")`) {
		t.Error("missing jupyter literal")
	}
	if !strings.Contains(out, `    (literal "python")`) {
		t.Error("missing python literal")
	}
}

func TestExecRulesEmpty(t *testing.T) {
	if out := ExecRules(nil, nil); out != "" {
		t.Errorf("empty category emitted %q", out)
	}
}
