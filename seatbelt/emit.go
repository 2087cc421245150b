// Copyright 2026 The Secure Notebook Authors
// SPDX-License-Identifier: Apache-2.0

package seatbelt

import (
	"fmt"
	"strings"
)

// Access-type tokens for the file categories.
const (
	AccessFileRead  = "file-read*"
	AccessFileWrite = "file-write*"
)

// FileRules emits the SBPL fragment for one file category. Deny
// statements come first, one per path, emitted unconditionally so an
// explicit restriction takes effect whether or not a broader allow
// block exists; the kernel's subpath precedence makes a deny-of-subpath
// override an allow-of-category regardless of textual order. A single
// allow block follows with one subpath clause per allowed path. An
// empty allow list emits no allow block at all.
func FileRules(accessType string, allow, deny []string) string {
	var b strings.Builder

	for _, path := range deny {
		fmt.Fprintf(&b, "(deny %s (subpath \"%s\"))\n", accessType, path)
	}

	if len(allow) > 0 {
		fmt.Fprintf(&b, "(allow %s)\n", accessType)
		for _, path := range allow {
			fmt.Fprintf(&b, "    (subpath \"%s\")\n", path)
		}
		b.WriteString(")\n")
	}

	return b.String()
}

// NetworkRule emits the network fragment: a single allow statement when
// the flag is set, nothing otherwise. The model has no deny-network
// side.
func NetworkRule(allow bool) string {
	if allow {
		return "(allow network*)\n"
	}
	return ""
}

// ExecRules emits the process-exec fragment. It has the same shape as
// [FileRules] but matches literal program identifiers instead of
// subpaths.
func ExecRules(allow, deny []string) string {
	var b strings.Builder

	for _, prog := range deny {
		fmt.Fprintf(&b, "(deny process-exec (literal \"%s\"))\n", prog)
	}

	if len(allow) > 0 {
		b.WriteString("(allow process-exec\n")
		for _, prog := range allow {
			fmt.Fprintf(&b, "    (literal \"%s\")\n", prog)
		}
		b.WriteString(")\n")
	}

	return b.String()
}
