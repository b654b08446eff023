// SPDX-License-Identifier: MPL-2.0

// Package coreutils implements the textkit text and filesystem utilities.
//
// # Supported Commands
//
//   - cat: Print files, optionally numbering all or only non-blank lines
//   - find: Walk directory trees filtered by entry type and name pattern
//   - head: Print the first lines or bytes of each input
//   - uniq: Collapse adjacent duplicate lines, optionally with counts
//   - wc: Count lines, words, bytes and characters
//
// Each command is registered in DefaultRegistry and can be driven either from
// the textkit CLI (which binds the same flags onto Cobra commands) or from the
// virtual shell, where Registry.Run parses the flags itself.
//
// # Input Sources
//
// The path token "-" resolves to the HandlerContext's standard input; any other
// token is opened relative to HandlerContext.Dir. Lines are split on '\n' only
// and every LineRecord reports the exact number of bytes it consumed.
//
// # Error Format
//
// Errors returned from Registry.Run are prefixed with "[textkit] <cmd>:":
//
//	[textkit] uniq: missing.txt: open missing.txt: no such file or directory
//
// Non-fatal failures (a path that cannot be opened by a multi-input command,
// an unreadable directory during find) are written to the diagnostics logger
// and processing continues with the next path.
package coreutils
