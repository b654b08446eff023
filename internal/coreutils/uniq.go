// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

type (
	// UniqConfig configures a uniq run over a single input.
	UniqConfig struct {
		// Input is the path token to read ("-" for stdin).
		Input string
		// Output is an optional file path receiving the result instead of stdout.
		Output string
		// ShowCount prefixes every line with its run length.
		ShowCount bool
	}

	// uniqCommand implements the uniq utility.
	uniqCommand struct {
		baseCommand
	}

	uniqParser struct {
		count bool
	}

	// lineRun is a completed run of equal adjacent lines.
	lineRun struct {
		line  string
		count int
	}

	// runState accumulates the current run. A zero count means no line has
	// been seen yet.
	runState struct {
		current lineRun
	}
)

func init() {
	RegisterDefault(newUniqCommand())
}

// newUniqCommand creates a new uniq command.
func newUniqCommand() *uniqCommand {
	return &uniqCommand{
		baseCommand: baseCommand{
			name:  "uniq",
			short: "Collapse adjacent duplicate lines",
			usage: "[IN_FILE] [OUT_FILE]",
			flags: []FlagInfo{
				{Name: "count", ShortName: "c", Description: "prefix lines by the number of occurrences"},
			},
		},
	}
}

// NewParser returns a parser for uniq flags.
func (c *uniqCommand) NewParser() Parser {
	return &uniqParser{}
}

func (p *uniqParser) Bind(fs *pflag.FlagSet) {
	fs.BoolVarP(&p.count, "count", "c", false, "prefix lines by the number of occurrences")
}

func (p *uniqParser) Invocation(_ *pflag.FlagSet, args []string) (Invocation, error) {
	if len(args) > 2 {
		return nil, &ConfigError{Message: fmt.Sprintf("extra operand %q", args[2])}
	}

	cfg := UniqConfig{Input: StdinToken, ShowCount: p.count}
	if len(args) > 0 {
		cfg.Input = args[0]
	}
	if len(args) > 1 {
		cfg.Output = args[1]
	}
	return func(hc *HandlerContext) error { return Uniq(hc, cfg) }, nil
}

// observe feeds line into the state. When line ends the current run, the
// completed run is returned with ok set.
func (s *runState) observe(line string) (done lineRun, ok bool) {
	if s.current.count > 0 && sameLine(s.current.line, line) {
		s.current.count++
		return lineRun{}, false
	}
	done, ok = s.current, s.current.count > 0
	s.current = lineRun{line: line, count: 1}
	return done, ok
}

// finish returns the pending run, if any, and resets the state.
func (s *runState) finish() (lineRun, bool) {
	done := s.current
	s.current = lineRun{}
	return done, done.count > 0
}

// sameLine compares two lines exactly, ignoring only a trailing carriage return.
func sameLine(a, b string) bool {
	return strings.TrimSuffix(a, "\r") == strings.TrimSuffix(b, "\r")
}

// Uniq collapses adjacent equal lines of cfg.Input. Failing to open the input
// or the output is fatal since there is nothing else to process.
func Uniq(hc *HandlerContext, cfg UniqConfig) error {
	src, err := OpenSource(hc, cfg.Input)
	if err != nil {
		return err
	}

	return drainSource(src, func(src *Source) error {
		if cfg.Output == "" {
			return uniqSource(hc.stdout(), src, cfg.ShowCount)
		}
		return uniqToFile(hc, src, cfg)
	})
}

func uniqToFile(hc *HandlerContext, src *Source, cfg UniqConfig) (err error) {
	f, err := os.Create(resolvePath(hc.Dir, cfg.Output))
	if err != nil {
		return &OpenError{Path: cfg.Output, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%s: %w", cfg.Output, closeErr)
		}
	}()

	return uniqSource(f, src, cfg.ShowCount)
}

func uniqSource(out io.Writer, src *Source, showCount bool) error {
	emit := func(r lineRun) {
		if showCount {
			fmt.Fprintf(out, "%4d %s\n", r.count, r.line)
		} else {
			fmt.Fprintln(out, r.line)
		}
	}

	var state runState
	for {
		rec, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if done, ok := state.observe(rec.Content()); ok {
			emit(done)
		}
	}

	if done, ok := state.finish(); ok {
		emit(done)
	}
	return nil
}
