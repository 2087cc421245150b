// Copyright 2026 The Secure Notebook Authors
// SPDX-License-Identifier: Apache-2.0

// Package seatbelt generates SBPL ("Seatbelt") policy text for macOS
// sandbox-exec, confining notebook kernels and similar interactive
// processes.
//
// The central type is [PermissionSet], a per-category accumulator of
// allow/deny lists for file reads, file writes, network access, and
// process execution. Filesystem categories validate that every declared
// path exists at set time; execution categories store literal program
// identifiers with no resolution. [Generate] appends the emitted rules
// for all four categories, in a fixed order, to a baseline template
// (typically [DefaultTemplate], an embedded default-deny baseline).
// [Minify] collapses a generated profile to a single line so it survives
// transport as a shell argument.
//
// Named permission profiles are YAML- or JSONC-declared [Profile] values
// with single inheritance, loaded through [ProfileLoader] and converted
// to a validated PermissionSet via [Profile.ToPermissionSet]. [Sandbox]
// wraps sandbox-exec to launch a command under a generated profile, and
// [Validator] performs pre-flight checks before doing so.
//
// Matching is literal only: paths are matched by the kernel's subpath
// semantics and programs by exact string. The package never expands glob
// patterns and never escapes grammar metacharacters; tokens containing
// characters that would corrupt the emitted grammar (double quote,
// parentheses, semicolon, newline) are rejected at set time instead.
//
// The package does not enforce policy (that is the kernel's seatbelt
// layer) and does not parse SBPL beyond emitting well-formed fragments.
package seatbelt
