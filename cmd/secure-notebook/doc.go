// Copyright 2026 The Secure Notebook Authors
// SPDX-License-Identifier: Apache-2.0

// Secure-notebook generates SBPL sandbox profiles for notebook kernels
// and launches commands under them via macOS sandbox-exec. It provides
// subcommands to generate and minify profiles, validate a configuration
// before use, inspect the available permission profiles, and run a
// kernel inside the resulting sandbox.
package main
