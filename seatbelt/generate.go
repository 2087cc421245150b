// Copyright 2026 The Secure Notebook Authors
// SPDX-License-Identifier: Apache-2.0

package seatbelt

import (
	_ "embed"
	"strings"
)

// DefaultTemplate is the embedded baseline profile for notebook
// kernels. It establishes a default-deny posture with the minimal
// process bootstrap a kernel needs; generated rules are appended after
// it. The text is consumed verbatim and never validated here.
//
//go:embed notebook_default.sb
var DefaultTemplate string

// Generate produces the full profile text: the template followed by
// file-read rules, file-write rules, the network rule, and process-exec
// rules, in that fixed order. No separator is inserted beyond what each
// fragment contributes, and the template itself is never validated; the
// caller must supply a template whose trailing state is compatible with
// appended rules. Output is deterministic: identical inputs yield
// byte-identical text. An empty permission set returns the template
// unchanged.
func Generate(template string, perms *PermissionSet) string {
	var b strings.Builder
	b.WriteString(template)

	b.WriteString(FileRules(AccessFileRead, perms.allowRead, perms.denyRead))
	b.WriteString(FileRules(AccessFileWrite, perms.allowWrite, perms.denyWrite))
	b.WriteString(NetworkRule(perms.allowNet))
	b.WriteString(ExecRules(perms.allowRun, perms.denyRun))

	return b.String()
}
