// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"github.com/spf13/pflag"
)

type (
	// Command defines the interface for textkit utility implementations.
	Command interface {
		// Name returns the command name (e.g., "cat", "wc").
		Name() string

		// Short returns a one-line description for help output.
		Short() string

		// Usage returns the positional argument synopsis (e.g., "[FILE]...").
		Usage() string

		// NewParser returns a fresh flag parser for one invocation.
		NewParser() Parser

		// SupportedFlags returns the flags this implementation supports.
		SupportedFlags() []FlagInfo
	}

	// Parser binds a command's flags onto a flag set and turns the parsed
	// state into a validated Invocation. The same Parser drives both the
	// Cobra command tree and Registry.Run.
	Parser interface {
		Bind(fs *pflag.FlagSet)
		Invocation(fs *pflag.FlagSet, args []string) (Invocation, error)
	}

	// Invocation is a fully configured command run.
	Invocation func(hc *HandlerContext) error

	// FlagInfo describes a supported flag for a textkit command.
	FlagInfo struct {
		// Name is the long flag name without dashes (e.g., "number").
		Name string
		// ShortName is the single-character alias (e.g., "n").
		// Empty if no short form exists.
		ShortName string
		// Description explains what the flag does.
		Description string
		// TakesValue indicates if the flag requires a value (e.g., -n 10).
		TakesValue bool
	}

	// baseCommand provides the descriptive half of Command.
	baseCommand struct {
		name  string
		short string
		usage string
		flags []FlagInfo
	}
)

// Name returns the command name.
func (b *baseCommand) Name() string {
	return b.name
}

// Short returns the one-line description.
func (b *baseCommand) Short() string {
	return b.short
}

// Usage returns the positional argument synopsis.
func (b *baseCommand) Usage() string {
	return b.usage
}

// SupportedFlags returns the flags supported by this command.
func (b *baseCommand) SupportedFlags() []FlagInfo {
	return b.flags
}

// Execute turns the state of an already parsed flag set into an Invocation
// and runs it. Errors carry the "[textkit] <name>: " prefix. The Cobra
// command tree calls this directly after Cobra has parsed the flags.
func Execute(hc *HandlerContext, name string, parser Parser, fs *pflag.FlagSet, args []string) error {
	inv, err := parser.Invocation(fs, args)
	if err != nil {
		return wrapError(name, err)
	}
	return wrapError(name, inv(hc))
}
