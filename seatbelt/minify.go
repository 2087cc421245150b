// Copyright 2026 The Secure Notebook Authors
// SPDX-License-Identifier: Apache-2.0

package seatbelt

import "strings"

// Minify collapses profile text to a single line so it survives
// transport through environments that mangle embedded newlines, such as
// a shell argument to sandbox-exec -p. Each line is truncated at the
// first semicolon (the SBPL comment delimiter), trimmed, and dropped if
// empty; the survivors are joined with single spaces.
//
// This is a purely textual transform. It does not parse the profile's
// nested parentheses, so a semicolon inside a quoted path would be
// treated as a comment start and the rest of that line lost. Tokens
// containing semicolons are rejected at set time for exactly this
// reason. Minify is idempotent and its result contains no newlines.
func Minify(profile string) string {
	var kept []string
	for _, line := range strings.Split(profile, "\n") {
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, " ")
}
