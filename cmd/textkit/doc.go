// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for textkit.
//
// Every command in the coreutils registry becomes a subcommand
// (textkit cat, textkit wc, ...). The binary also dispatches on its own name,
// so a symlink called "head" or "textkit-head" behaves like "textkit head".
// The sh subcommand runs POSIX scripts with the same tools as builtins.
package cmd
