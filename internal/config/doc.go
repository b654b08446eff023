// SPDX-License-Identifier: MPL-2.0

// Package config handles textkit configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/textkit/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/textkit/config.cue on macOS, %APPDATA%\textkit\config.cue
// on Windows), falling back to ./config.cue. Every key can be overridden with a
// TEXTKIT_-prefixed environment variable (TEXTKIT_HEAD_LINES, TEXTKIT_LOG_LEVEL, ...).
//
// The file is validated against an embedded CUE schema (config_schema.cue) before it is
// merged over the defaults.
package config
