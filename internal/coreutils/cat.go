// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

type (
	// CatConfig configures a cat run. NumberAll and NumberNonblank are
	// mutually exclusive.
	CatConfig struct {
		Files          []string
		NumberAll      bool
		NumberNonblank bool
	}

	// catCommand implements the cat utility.
	catCommand struct {
		baseCommand
	}

	catParser struct {
		number   bool
		nonblank bool
	}
)

func init() {
	RegisterDefault(newCatCommand())
}

// newCatCommand creates a new cat command.
func newCatCommand() *catCommand {
	return &catCommand{
		baseCommand: baseCommand{
			name:  "cat",
			short: "Concatenate files and print them to standard output",
			usage: "[FILE]...",
			flags: []FlagInfo{
				{Name: "number", ShortName: "n", Description: "number all output lines"},
				{Name: "number-nonblank", ShortName: "b", Description: "number non-blank output lines"},
			},
		},
	}
}

// NewParser returns a parser for cat flags.
func (c *catCommand) NewParser() Parser {
	return &catParser{}
}

func (p *catParser) Bind(fs *pflag.FlagSet) {
	fs.BoolVarP(&p.number, "number", "n", false, "number all output lines")
	fs.BoolVarP(&p.nonblank, "number-nonblank", "b", false, "number non-blank output lines")
}

func (p *catParser) Invocation(_ *pflag.FlagSet, args []string) (Invocation, error) {
	if p.number && p.nonblank {
		return nil, conflictError("number", "number-nonblank")
	}
	cfg := CatConfig{
		Files:          orStdin(args),
		NumberAll:      p.number,
		NumberNonblank: p.nonblank,
	}
	return func(hc *HandlerContext) error { return Cat(hc, cfg) }, nil
}

// Cat prints every line of every file in cfg.Files. Files that cannot be
// opened are reported and skipped; a read failure aborts the run.
func Cat(hc *HandlerContext, cfg CatConfig) error {
	out := hc.stdout()
	return EachSource(hc, cfg.Files, hc.diagnostics("cat"), func(src *Source, _, _ int) error {
		return catSource(out, src, cfg)
	})
}

// catSource prints src line by line. The line index restarts for every file.
func catSource(out io.Writer, src *Source, cfg CatConfig) error {
	index := 0
	for {
		rec, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line := rec.Content()
		switch {
		case cfg.NumberAll:
			index++
			fmt.Fprintf(out, "%6d\t%s\n", index, line)
		case cfg.NumberNonblank:
			if line == "" {
				fmt.Fprintln(out)
				continue
			}
			index++
			fmt.Fprintf(out, "%6d\t%s\n", index, line)
		default:
			fmt.Fprintln(out, line)
		}
	}
}
