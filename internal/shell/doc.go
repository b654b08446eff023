// SPDX-License-Identifier: MPL-2.0

// Package shell runs POSIX shell scripts with the mvdan/sh interpreter.
//
// Commands found in the coreutils registry (cat, head, uniq, wc, find) run
// in-process. Everything else falls through to host binaries on PATH.
package shell
