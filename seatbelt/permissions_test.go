// Copyright 2026 The Secure Notebook Authors
// SPDX-License-Identifier: Apache-2.0

package seatbelt

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestPathSettersRejectMissingPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	setters := map[string]func(*PermissionSet, []string) error{
		"AllowRead":  (*PermissionSet).AllowRead,
		"DenyRead":   (*PermissionSet).DenyRead,
		"AllowWrite": (*PermissionSet).AllowWrite,
		"DenyWrite":  (*PermissionSet).DenyWrite,
	}

	for name, set := range setters {
		t.Run(name, func(t *testing.T) {
			perms := NewPermissionSet()
			err := set(perms, []string{missing})
			if err == nil {
				t.Fatal("expected error for missing path")
			}

			var notFound *PathNotFoundError
			if !errors.As(err, &notFound) {
				t.Fatalf("expected *PathNotFoundError, got %T: %v", err, err)
			}
			if notFound.Path != missing {
				t.Errorf("error carries path %q, want %q", notFound.Path, missing)
			}
			if !errors.Is(err, fs.ErrNotExist) {
				t.Error("error should unwrap to fs.ErrNotExist")
			}
			if !perms.Empty() {
				t.Error("failed setter must leave the set unchanged")
			}
		})
	}
}

func TestPathSettersFailFast(t *testing.T) {
	dir := t.TempDir()
	missingFirst := filepath.Join(dir, "missing-first")
	missingSecond := filepath.Join(dir, "missing-second")

	perms := NewPermissionSet()
	err := perms.AllowRead([]string{dir, missingFirst, missingSecond})
	if err == nil {
		t.Fatal("expected error")
	}

	var notFound *PathNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *PathNotFoundError, got %T", err)
	}
	if notFound.Path != missingFirst {
		t.Errorf("validation should stop at the first missing path, reported %q", notFound.Path)
	}
}

func TestSetterReplacesList(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	perms := NewPermissionSet()
	if err := perms.AllowRead([]string{first}); err != nil {
		t.Fatalf("AllowRead: %v", err)
	}
	if err := perms.AllowRead([]string{second}); err != nil {
		t.Fatalf("AllowRead: %v", err)
	}

	if len(perms.allowRead) != 1 || perms.allowRead[0] != second {
		t.Errorf("setter must replace, not append: %v", perms.allowRead)
	}
}

func TestFailedSetterKeepsPriorValue(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "gone")

	perms := NewPermissionSet()
	if err := perms.DenyWrite([]string{dir}); err != nil {
		t.Fatalf("DenyWrite: %v", err)
	}
	if err := perms.DenyWrite([]string{missing}); err == nil {
		t.Fatal("expected error")
	}

	if len(perms.denyWrite) != 1 || perms.denyWrite[0] != dir {
		t.Errorf("failed setter must keep prior value, got %v", perms.denyWrite)
	}
}

func TestUnsafeTokensRejected(t *testing.T) {
	for _, token := range []string{`py"thon`, "py)thon", "py;thon", "py\nthon"} {
		perms := NewPermissionSet()
		err := perms.AllowRun([]string{token})
		if err == nil {
			t.Errorf("token %q should be rejected", token)
			continue
		}
		var unsafe *UnsafeTokenError
		if !errors.As(err, &unsafe) {
			t.Errorf("token %q: expected *UnsafeTokenError, got %T", token, err)
		}
		if !perms.Empty() {
			t.Errorf("token %q: failed setter must leave the set unchanged", token)
		}
	}
}

func TestUnsafePathRejectedBeforeStat(t *testing.T) {
	// The path cannot exist, but the grammar check must fire first so
	// the caller learns the real problem.
	perms := NewPermissionSet()
	err := perms.AllowRead([]string{`/tmp/evil";(allow default)`})
	if err == nil {
		t.Fatal("expected error")
	}
	var unsafe *UnsafeTokenError
	if !errors.As(err, &unsafe) {
		t.Fatalf("expected *UnsafeTokenError, got %T: %v", err, err)
	}
}

func TestRunSettersSkipExistenceCheck(t *testing.T) {
	// Programs are literal identifiers, not filesystem paths.
	perms := NewPermissionSet()
	if err := perms.AllowRun([]string{"definitely-not-on-disk"}); err != nil {
		t.Fatalf("AllowRun should not check existence: %v", err)
	}
	if err := perms.DenyRun([]string{"also-not-on-disk"}); err != nil {
		t.Fatalf("DenyRun should not check existence: %v", err)
	}
}

func TestEmpty(t *testing.T) {
	perms := NewPermissionSet()
	if !perms.Empty() {
		t.Error("new set should be empty")
	}
	perms.AllowNetwork()
	if perms.Empty() {
		t.Error("set with network flag is not empty")
	}
}
