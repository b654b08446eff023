// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/pflag"
)

type (
	// WcConfig configures a wc run. When no selector is set the effective
	// selection is lines, words and bytes.
	WcConfig struct {
		Files []string
		Lines bool
		Words bool
		Bytes bool
		Chars bool
	}

	// FileInfo holds the counts for one input.
	FileInfo struct {
		Lines int
		Words int
		Bytes int
		Chars int
	}

	// wcCommand implements the wc (word count) utility.
	wcCommand struct {
		baseCommand
	}

	wcParser struct {
		lines bool
		words bool
		bytes bool
		chars bool
	}
)

func init() {
	RegisterDefault(newWcCommand())
}

// newWcCommand creates a new wc command.
func newWcCommand() *wcCommand {
	return &wcCommand{
		baseCommand: baseCommand{
			name:  "wc",
			short: "Print line, word, byte and character counts",
			usage: "[FILE]...",
			flags: []FlagInfo{
				{Name: "line", ShortName: "l", Description: "print line count"},
				{Name: "word", ShortName: "w", Description: "print word count"},
				{Name: "byte", ShortName: "c", Description: "print byte count"},
				{Name: "char", ShortName: "m", Description: "print character count"},
			},
		},
	}
}

// NewParser returns a parser for wc flags.
func (c *wcCommand) NewParser() Parser {
	return &wcParser{}
}

func (p *wcParser) Bind(fs *pflag.FlagSet) {
	fs.BoolVarP(&p.lines, "line", "l", false, "print line count")
	fs.BoolVarP(&p.words, "word", "w", false, "print word count")
	fs.BoolVarP(&p.bytes, "byte", "c", false, "print byte count")
	fs.BoolVarP(&p.chars, "char", "m", false, "print character count")
}

func (p *wcParser) Invocation(_ *pflag.FlagSet, args []string) (Invocation, error) {
	cfg := WcConfig{
		Files: orStdin(args),
		Lines: p.lines,
		Words: p.words,
		Bytes: p.bytes,
		Chars: p.chars,
	}
	return func(hc *HandlerContext) error { return Wc(hc, cfg) }, nil
}

// withDefaultSelection selects lines, words and bytes when nothing is selected.
func (c WcConfig) withDefaultSelection() WcConfig {
	if !c.Lines && !c.Words && !c.Bytes && !c.Chars {
		c.Lines, c.Words, c.Bytes = true, true, true
	}
	return c
}

func (fi *FileInfo) add(other FileInfo) {
	fi.Lines += other.Lines
	fi.Words += other.Words
	fi.Bytes += other.Bytes
	fi.Chars += other.Chars
}

// Wc prints one row of counts per file and a "total" row when more than one
// file was given. Unopenable files are reported and skipped; a file that fails
// mid-read is dropped from the output without a diagnostic.
func Wc(hc *HandlerContext, cfg WcConfig) error {
	cfg = cfg.withDefaultSelection()
	out := hc.stdout()
	diag := hc.diagnostics("wc")

	var total FileInfo
	err := EachSource(hc, cfg.Files, diag, func(src *Source, _, _ int) error {
		info, err := CountSource(src)
		if err != nil {
			diag.Debug("dropping row", "path", src.Name(), "err", err)
			return nil
		}
		writeCounts(out, info, src.Name(), cfg)
		total.add(info)
		return nil
	})
	if err != nil {
		return err
	}

	if len(cfg.Files) > 1 {
		writeCounts(out, total, "total", cfg)
	}
	return nil
}

// CountSource streams src and accumulates its counts. Bytes are the exact
// bytes consumed; characters are decoded UTF-8 scalars (an invalid byte counts
// as one character).
func CountSource(src *Source) (FileInfo, error) {
	var info FileInfo
	for {
		rec, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			return info, nil
		}
		if err != nil {
			return FileInfo{}, err
		}
		info.Lines++
		info.Words += len(strings.Fields(rec.Text))
		info.Bytes += rec.Size
		info.Chars += utf8.RuneCountInString(rec.Text)
	}
}

// writeCounts prints the selected columns in the order lines, words, bytes,
// chars followed by name.
func writeCounts(out io.Writer, info FileInfo, name string, cfg WcConfig) {
	var row strings.Builder
	if cfg.Lines {
		fmt.Fprintf(&row, "%8d", info.Lines)
	}
	if cfg.Words {
		fmt.Fprintf(&row, "%8d", info.Words)
	}
	if cfg.Bytes {
		fmt.Fprintf(&row, "%8d", info.Bytes)
	}
	if cfg.Chars {
		fmt.Fprintf(&row, "%8d", info.Chars)
	}
	fmt.Fprintf(out, "%s %s\n", row.String(), name)
}
