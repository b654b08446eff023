// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/pflag"
)

type (
	// FindConfig configures a find run.
	FindConfig struct {
		Roots []string
		Names []*regexp.Regexp
		Types []EntryType
	}

	// findCommand implements the find utility.
	findCommand struct {
		baseCommand
	}

	findParser struct {
		names []string
		types []string
	}
)

func init() {
	RegisterDefault(newFindCommand())
}

// newFindCommand creates a new find command.
func newFindCommand() *findCommand {
	return &findCommand{
		baseCommand: baseCommand{
			name:  "find",
			short: "Search for entries in a directory hierarchy",
			usage: "[PATH]...",
			flags: []FlagInfo{
				{Name: "name", ShortName: "n", Description: "match base name against a regular expression", TakesValue: true},
				{Name: "type", ShortName: "t", Description: "match entry type (f, d, l)", TakesValue: true},
			},
		},
	}
}

// NewParser returns a parser for find flags.
func (c *findCommand) NewParser() Parser {
	return &findParser{}
}

func (p *findParser) Bind(flags *pflag.FlagSet) {
	flags.StringArrayVarP(&p.names, "name", "n", nil, "match base name against a regular expression (repeatable)")
	flags.StringSliceVarP(&p.types, "type", "t", nil, "match entry type: f, d or l (repeatable)")
}

func (p *findParser) Invocation(_ *pflag.FlagSet, args []string) (Invocation, error) {
	names, err := ParseNamePatterns(p.names)
	if err != nil {
		return nil, err
	}

	types := make([]EntryType, 0, len(p.types))
	for _, tag := range p.types {
		t, err := ParseEntryType(tag)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	cfg := FindConfig{Roots: roots, Names: names, Types: types}
	return func(hc *HandlerContext) error { return Find(hc, cfg) }, nil
}

// Find walks every root and prints, per root, the entries passing both the
// type and the name filter. Traversal errors are reported and the affected
// subtree is skipped.
func Find(hc *HandlerContext, cfg FindConfig) error {
	out := hc.stdout()
	diag := hc.diagnostics("find")
	keep := AllOf(TypeIn(cfg.Types), NameMatchesAny(cfg.Names))

	for _, root := range cfg.Roots {
		var matched []string
		Walk(hc.Dir, root,
			func(e Entry) {
				if keep(e) {
					matched = append(matched, e.Path)
				}
			},
			func(err error) {
				diag.Error("cannot walk", "err", err)
			})
		fmt.Fprintln(out, strings.Join(matched, "\n"))
	}
	return nil
}

// Walk visits root and everything below it depth-first, in lexical order
// within each directory. A root that is not a directory yields one entry. A
// symlinked root is reported as a link but still descended; nested symlinks
// are reported as links and not descended. Paths handed to visit keep the root
// spelling as their prefix. Failures are passed to report as *TraversalError
// and never stop the walk.
func Walk(workDir, root string, visit func(Entry), report func(error)) {
	resolved := resolvePath(workDir, root)

	self, err := os.Lstat(resolved)
	if err != nil {
		report(&TraversalError{Path: root, Err: err})
		return
	}
	rootEntry := Entry{Path: root, Name: filepath.Base(root), Type: entryTypeOf(fs.FileInfoToDirEntry(self))}

	target := self
	if self.Mode()&fs.ModeSymlink != 0 {
		if target, err = os.Stat(resolved); err != nil {
			visit(rootEntry)
			report(&TraversalError{Path: root, Err: err})
			return
		}
	}
	if !target.IsDir() {
		visit(rootEntry)
		return
	}

	//nolint:errcheck // the callback never returns an error
	fs.WalkDir(os.DirFS(resolved), ".", func(p string, d fs.DirEntry, err error) error {
		if p == "." {
			visit(rootEntry)
			if err != nil {
				report(&TraversalError{Path: root, Err: err})
			}
			return nil
		}

		display := displayPath(root, p)
		if err != nil {
			report(&TraversalError{Path: display, Err: err})
			return nil
		}
		visit(Entry{Path: display, Name: d.Name(), Type: entryTypeOf(d)})
		return nil
	})
}

// displayPath joins a slash-separated path relative to root back onto root
// without cleaning the root prefix.
func displayPath(root, rel string) string {
	if rel == "." {
		return root
	}
	rel = filepath.FromSlash(rel)
	if strings.HasSuffix(root, "/") || strings.HasSuffix(root, string(filepath.Separator)) {
		return root + rel
	}
	return root + string(filepath.Separator) + rel
}
