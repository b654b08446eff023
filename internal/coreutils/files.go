// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// StdinToken is the path token that resolves to standard input.
const StdinToken = "-"

type (
	// LineRecord is a single line read from a Source.
	LineRecord struct {
		// Text is the line including its trailing newline, when present.
		Text string
		// Size is the exact number of bytes consumed to read the line.
		Size int
	}

	// Source is a sequential, line-buffered input stream resolved from a path token.
	Source struct {
		name   string
		reader *bufio.Reader
		closer io.Closer
	}

	// SourceFunc processes one opened source.
	// Parameters:
	//   - src: the opened input
	//   - index: 0-based position of the token in the argument list
	//   - total: number of tokens being processed
	SourceFunc func(src *Source, index, total int) error
)

// Content returns the line without its trailing newline.
func (l LineRecord) Content() string {
	return strings.TrimSuffix(l.Text, "\n")
}

// OpenSource resolves token to a readable stream. StdinToken yields hc.Stdin;
// any other token is opened as a file relative to hc.Dir. Failures are
// reported as *OpenError carrying the original token.
func OpenSource(hc *HandlerContext, token string) (*Source, error) {
	if token == StdinToken {
		stdin := hc.Stdin
		if stdin == nil {
			stdin = strings.NewReader("")
		}
		return &Source{name: token, reader: bufio.NewReader(stdin)}, nil
	}

	f, err := os.Open(resolvePath(hc.Dir, token))
	if err != nil {
		return nil, &OpenError{Path: token, Err: err}
	}
	return &Source{name: token, reader: bufio.NewReader(f), closer: f}, nil
}

// Name returns the token the source was opened from.
func (s *Source) Name() string {
	return s.name
}

// ReadLine returns the next line. A final line without a newline is returned
// as-is; io.EOF is returned once the stream is exhausted. Any other failure is
// a *ReadError.
func (s *Source) ReadLine() (LineRecord, error) {
	text, err := s.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return LineRecord{}, &ReadError{Path: s.name, Err: err}
	}
	if text == "" {
		return LineRecord{}, io.EOF
	}
	return LineRecord{Text: text, Size: len(text)}, nil
}

// Read implements io.Reader over the buffered stream.
func (s *Source) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

// Close releases the underlying file. Closing stdin is a no-op.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// EachSource opens every token in order and hands it to fn. Tokens that cannot
// be opened are reported on diag and skipped; an error returned by fn aborts
// the run. Each source is closed before the next token is opened.
func EachSource(hc *HandlerContext, tokens []string, diag *log.Logger, fn SourceFunc) error {
	total := len(tokens)
	for i, token := range tokens {
		src, err := OpenSource(hc, token)
		if err != nil {
			diag.Error("failed to open", "path", token, "err", errors.Unwrap(err))
			continue
		}

		diag.Debug("processing path", "path", token)
		if err := drainSource(src, func(s *Source) error { return fn(s, i, total) }); err != nil {
			return err
		}
	}
	return nil
}

// drainSource runs fn and closes src on every exit path. A close failure is
// returned only when fn itself succeeded.
func drainSource(src *Source, fn func(*Source) error) (err error) {
	defer func() {
		if closeErr := src.Close(); closeErr != nil && err == nil {
			err = &ReadError{Path: src.name, Err: closeErr}
		}
	}()

	return fn(src)
}

// orStdin returns tokens, or the stdin token when none were given.
func orStdin(tokens []string) []string {
	if len(tokens) == 0 {
		return []string{StdinToken}
	}
	return tokens
}

func resolvePath(workDir, path string) string {
	if workDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}
