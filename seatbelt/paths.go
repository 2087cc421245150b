// Copyright 2026 The Secure Notebook Authors
// SPDX-License-Identifier: Apache-2.0

package seatbelt

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// PathNotFoundError reports a declared path that did not exist at
// validation time. It unwraps to fs.ErrNotExist so callers can branch
// with errors.Is.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path does not exist: %s", e.Path)
}

func (e *PathNotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

// UnsafeTokenError reports a path or program string containing an SBPL
// grammar metacharacter. Such strings are rejected at set time rather
// than escaped: a double quote, parenthesis, or semicolon inside an
// emitted token would corrupt the profile or be silently truncated by
// minification.
type UnsafeTokenError struct {
	Token string
}

func (e *UnsafeTokenError) Error() string {
	return fmt.Sprintf("unsafe token %q: contains SBPL metacharacter", e.Token)
}

// unsafeChars are the characters that break the emitted grammar. The
// semicolon is included because minification treats it as a comment
// start even inside quoted strings.
const unsafeChars = `"();` + "\n"

// checkToken rejects strings that cannot be embedded in a quoted SBPL
// token verbatim.
func checkToken(token string) error {
	if strings.ContainsAny(token, unsafeChars) {
		return &UnsafeTokenError{Token: token}
	}
	return nil
}

// validatePaths checks that every path exists on the local filesystem
// and returns the paths unchanged, in caller order. Validation is
// fail-fast: the first missing path aborts with a *PathNotFoundError
// and the remaining paths are not checked. Existence is a stat call
// only; nothing is read, followed, or re-checked later.
func validatePaths(paths []string) ([]string, error) {
	validated := make([]string, 0, len(paths))
	for _, path := range paths {
		if err := checkToken(path); err != nil {
			return nil, err
		}
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return nil, &PathNotFoundError{Path: path}
			}
			return nil, fmt.Errorf("cannot stat %s: %w", path, err)
		}
		validated = append(validated, path)
	}
	return validated, nil
}

// validatePrograms checks program identifiers for grammar safety only.
// Programs are matched by literal string in the emitted policy, so no
// filesystem or PATH resolution is performed.
func validatePrograms(programs []string) ([]string, error) {
	validated := make([]string, 0, len(programs))
	for _, prog := range programs {
		if err := checkToken(prog); err != nil {
			return nil, err
		}
		validated = append(validated, prog)
	}
	return validated, nil
}
