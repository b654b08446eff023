// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/spf13/pflag"
	"golang.org/x/text/encoding/unicode"
)

// DefaultHeadLines is the line limit used when neither -n nor -c is given.
const DefaultHeadLines = 10

type (
	// HeadConfig configures a head run. Exactly one limit is active: when
	// Bytes is positive the run is byte-limited, otherwise Lines applies.
	HeadConfig struct {
		Files []string
		Lines int
		Bytes int
	}

	// headCommand implements the head utility.
	headCommand struct {
		baseCommand
	}

	headParser struct {
		lines string
		bytes string
	}
)

func init() {
	RegisterDefault(newHeadCommand())
}

// newHeadCommand creates a new head command.
func newHeadCommand() *headCommand {
	return &headCommand{
		baseCommand: baseCommand{
			name:  "head",
			short: "Print the first part of files",
			usage: "[FILE]...",
			flags: []FlagInfo{
				{Name: "lines", ShortName: "n", Description: "number of lines to print", TakesValue: true},
				{Name: "bytes", ShortName: "c", Description: "number of bytes to print", TakesValue: true},
			},
		},
	}
}

// NewParser returns a parser for head flags.
func (c *headCommand) NewParser() Parser {
	return &headParser{}
}

func (p *headParser) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&p.lines, "lines", "n", strconv.Itoa(DefaultHeadLines), "number of lines to print")
	fs.StringVarP(&p.bytes, "bytes", "c", "", "number of bytes to print")
}

func (p *headParser) Invocation(fs *pflag.FlagSet, args []string) (Invocation, error) {
	if fs.Changed("lines") && fs.Changed("bytes") {
		return nil, conflictError("lines", "bytes")
	}

	lines, err := parsePositiveInt(p.lines)
	if err != nil {
		return nil, &ConfigError{Flag: "lines", Value: p.lines, Message: "illegal line count -- " + p.lines}
	}

	cfg := HeadConfig{Files: orStdin(args), Lines: lines}
	if fs.Changed("bytes") {
		n, err := parsePositiveInt(p.bytes)
		if err != nil {
			return nil, &ConfigError{Flag: "bytes", Value: p.bytes, Message: "illegal byte count -- " + p.bytes}
		}
		cfg.Bytes = n
	}

	return func(hc *HandlerContext) error { return Head(hc, cfg) }, nil
}

// Head prints the first lines (or bytes) of each file in cfg.Files. With more
// than one file every block is preceded by a "==> name <==" header.
func Head(hc *HandlerContext, cfg HeadConfig) error {
	out := hc.stdout()
	return EachSource(hc, cfg.Files, hc.diagnostics("head"), func(src *Source, index, total int) error {
		if total > 1 {
			if index > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "==> %s <==\n", src.Name())
		}
		if cfg.Bytes > 0 {
			return headBytes(out, src, cfg.Bytes)
		}
		return headLines(out, src, cfg.Lines)
	})
}

// headLines copies up to n lines verbatim, stopping early at end of input.
func headLines(out io.Writer, src *Source, n int) error {
	for range n {
		rec, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		io.WriteString(out, rec.Text) //nolint:errcheck // stdout write errors are not reported per line
	}
	return nil
}

// headBytes reads at most n bytes as one chunk and prints it with invalid
// UTF-8 sequences replaced. The chunk is not line-aligned.
func headBytes(out io.Writer, src *Source, n int) error {
	buf := make([]byte, n)
	read, err := io.ReadFull(src, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return &ReadError{Path: src.Name(), Err: err}
	}
	out.Write(decodeLenient(buf[:read])) //nolint:errcheck // same policy as headLines
	return nil
}

// decodeLenient replaces invalid UTF-8 with U+FFFD. A character cut off at the
// end of b becomes a single U+FFFD; any other invalid byte is replaced on its
// own.
func decodeLenient(b []byte) []byte {
	cut := incompleteTail(b)
	// The replacing decoder never fails.
	decoded, _ := unicode.UTF8.NewDecoder().Bytes(b[:len(b)-cut])
	if cut > 0 {
		decoded = append(decoded, string(utf8.RuneError)...)
	}
	return decoded
}

// incompleteTail returns the length of the valid but unfinished encoding that
// ends b, or 0 when b ends on a character boundary.
func incompleteTail(b []byte) int {
	for n := 1; n < utf8.UTFMax && n <= len(b); n++ {
		start := len(b) - n
		if !utf8.RuneStart(b[start]) {
			continue
		}
		if utf8.FullRune(b[start:]) {
			return 0
		}
		return n
	}
	return 0
}

func parsePositiveInt(val string) (int, error) {
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%d is not positive", n)
	}
	return n, nil
}
