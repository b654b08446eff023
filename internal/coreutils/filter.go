// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"fmt"
	"io/fs"
	"regexp"
)

const (
	// EntryOther is anything that is not a regular file, directory or symlink
	// (devices, sockets, pipes). It only passes an empty type filter.
	EntryOther EntryType = iota
	// EntryFile is a regular file (tag "f").
	EntryFile
	// EntryDir is a directory (tag "d").
	EntryDir
	// EntryLink is a symbolic link (tag "l").
	EntryLink
)

type (
	// EntryType classifies a filesystem entry.
	EntryType int

	// Entry is one filesystem object produced by Walk.
	Entry struct {
		// Path is the entry path, prefixed with the root as the user spelled it.
		Path string
		// Name is the base name matched by name patterns.
		Name string
		Type EntryType
	}

	// EntryPredicate reports whether an entry passes a filter.
	EntryPredicate func(Entry) bool
)

// String returns the single-letter tag of t.
func (t EntryType) String() string {
	switch t {
	case EntryFile:
		return "f"
	case EntryDir:
		return "d"
	case EntryLink:
		return "l"
	default:
		return "?"
	}
}

// ParseEntryType converts a tag (f, d or l) to an EntryType.
func ParseEntryType(tag string) (EntryType, error) {
	switch tag {
	case "f":
		return EntryFile, nil
	case "d":
		return EntryDir, nil
	case "l":
		return EntryLink, nil
	default:
		return EntryOther, &ConfigError{
			Flag:    "type",
			Value:   tag,
			Message: fmt.Sprintf("invalid value %q for --type (possible values: f, d, l)", tag),
		}
	}
}

// ParseNamePatterns compiles every pattern, failing on the first invalid one.
func ParseNamePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, &ConfigError{Flag: "name", Value: p, Message: fmt.Sprintf("invalid --name %q", p)}
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// entryTypeOf classifies a directory entry without following symlinks.
func entryTypeOf(d fs.DirEntry) EntryType {
	mode := d.Type()
	switch {
	case mode&fs.ModeSymlink != 0:
		return EntryLink
	case mode.IsDir():
		return EntryDir
	case mode.IsRegular():
		return EntryFile
	default:
		return EntryOther
	}
}

// AllOf passes an entry only when every predicate passes it.
func AllOf(preds ...EntryPredicate) EntryPredicate {
	return func(e Entry) bool {
		for _, pred := range preds {
			if !pred(e) {
				return false
			}
		}
		return true
	}
}

// TypeIn passes entries whose type is one of types. An empty set passes everything.
func TypeIn(types []EntryType) EntryPredicate {
	return func(e Entry) bool {
		if len(types) == 0 {
			return true
		}
		for _, t := range types {
			if e.Type == t {
				return true
			}
		}
		return false
	}
}

// NameMatchesAny passes entries whose base name matches at least one pattern.
// An empty set passes everything.
func NameMatchesAny(patterns []*regexp.Regexp) EntryPredicate {
	return func(e Entry) bool {
		if len(patterns) == 0 {
			return true
		}
		for _, re := range patterns {
			if re.MatchString(e.Name) {
				return true
			}
		}
		return false
	}
}
