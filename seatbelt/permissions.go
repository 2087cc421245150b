// Copyright 2026 The Secure Notebook Authors
// SPDX-License-Identifier: Apache-2.0

package seatbelt

// PermissionSet accumulates allow/deny lists for the four policy
// categories: file reads, file writes, network, and process execution.
// A set is created empty, mutated through its category setters, and
// consumed by [Generate]. Each setter replaces its category's list
// wholesale (last set wins); a failed setter leaves the prior value
// untouched. Categories are independent: nothing prevents the same path
// from appearing in both the allow and deny list of a category, and the
// kernel's own precedence (more specific subpath wins) resolves the
// overlap.
type PermissionSet struct {
	allowRead  []string
	denyRead   []string
	allowWrite []string
	denyWrite  []string
	allowNet   bool
	allowRun   []string
	denyRun    []string
}

// NewPermissionSet returns an empty permission set. An empty set
// generates no rules: [Generate] returns the template unchanged.
func NewPermissionSet() *PermissionSet {
	return &PermissionSet{}
}

// AllowRead grants read access under each path. Every path must exist
// at call time; the first missing path aborts the call with a
// *PathNotFoundError and the previous allow-read list is kept.
func (p *PermissionSet) AllowRead(paths []string) error {
	validated, err := validatePaths(paths)
	if err != nil {
		return err
	}
	p.allowRead = validated
	return nil
}

// DenyRead denies read access under each path, overriding any broader
// allow. Paths are validated like [PermissionSet.AllowRead].
func (p *PermissionSet) DenyRead(paths []string) error {
	validated, err := validatePaths(paths)
	if err != nil {
		return err
	}
	p.denyRead = validated
	return nil
}

// AllowWrite grants write access under each path. Paths are validated
// like [PermissionSet.AllowRead].
func (p *PermissionSet) AllowWrite(paths []string) error {
	validated, err := validatePaths(paths)
	if err != nil {
		return err
	}
	p.allowWrite = validated
	return nil
}

// DenyWrite denies write access under each path, overriding any broader
// allow. Paths are validated like [PermissionSet.AllowRead].
func (p *PermissionSet) DenyWrite(paths []string) error {
	validated, err := validatePaths(paths)
	if err != nil {
		return err
	}
	p.denyWrite = validated
	return nil
}

// AllowNetwork grants outbound and inbound network access. The model is
// one-directional: there is no corresponding deny, and the flag cannot
// be cleared once set within a single set's lifecycle.
func (p *PermissionSet) AllowNetwork() {
	p.allowNet = true
}

// AllowRun grants execution of the listed programs. Programs are
// literal identifiers matched by exact string in the policy; they are
// not resolved against the filesystem or PATH. Tokens containing SBPL
// metacharacters are rejected with an *UnsafeTokenError.
func (p *PermissionSet) AllowRun(programs []string) error {
	validated, err := validatePrograms(programs)
	if err != nil {
		return err
	}
	p.allowRun = validated
	return nil
}

// DenyRun denies execution of the listed programs. Programs are handled
// like [PermissionSet.AllowRun].
func (p *PermissionSet) DenyRun(programs []string) error {
	validated, err := validatePrograms(programs)
	if err != nil {
		return err
	}
	p.denyRun = validated
	return nil
}

// Empty reports whether the set would generate no rules.
func (p *PermissionSet) Empty() bool {
	return len(p.allowRead) == 0 && len(p.denyRead) == 0 &&
		len(p.allowWrite) == 0 && len(p.denyWrite) == 0 &&
		!p.allowNet &&
		len(p.allowRun) == 0 && len(p.denyRun) == 0
}
