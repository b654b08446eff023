// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/invowk/textkit/internal/testutil"
)

func numberedLines(n int) string {
	var content strings.Builder
	for i := 1; i <= n; i++ {
		content.WriteString("line " + itoa(i) + "\n")
	}
	return content.String()
}

func TestHeadCommand_SupportedFlags(t *testing.T) {
	t.Parallel()

	flags := newHeadCommand().SupportedFlags()
	want := map[string]bool{"lines": false, "bytes": false}
	for _, f := range flags {
		if _, ok := want[f.Name]; ok {
			want[f.Name] = true
			if !f.TakesValue {
				t.Errorf("--%s should take a value", f.Name)
			}
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("SupportedFlags() should include --%s", name)
		}
	}
}

func TestHeadCommand_Run_DefaultLines(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "test.txt", numberedLines(15))
	tio := newTestIO(dir, "")

	if err := DefaultRegistry.Run(tio.ctx(), []string{"head", "test.txt"}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(tio.stdout.String(), "\n"), "\n")
	if len(lines) != DefaultHeadLines {
		t.Fatalf("got %d lines, want %d", len(lines), DefaultHeadLines)
	}
	if lines[0] != "line 1" || lines[9] != "line 10" {
		t.Errorf("unexpected boundaries: first=%q last=%q", lines[0], lines[9])
	}
}

func TestHeadCommand_Run_LineLimitNeverExceeded(t *testing.T) {
	t.Parallel()

	for _, limit := range []int{1, 3, 7, 20} {
		t.Run(itoa(limit), func(t *testing.T) {
			t.Parallel()

			tio := newTestIO(t.TempDir(), numberedLines(7))
			if err := DefaultRegistry.Run(tio.ctx(), []string{"head", "-n", itoa(limit)}); err != nil {
				t.Fatalf("Run() returned error: %v", err)
			}

			got := strings.Count(tio.stdout.String(), "\n")
			want := min(limit, 7)
			if got != want {
				t.Errorf("printed %d lines, want %d", got, want)
			}
		})
	}
}

func TestHeadCommand_Run_PreservesMissingFinalNewline(t *testing.T) {
	t.Parallel()

	tio := newTestIO(t.TempDir(), "a\nb")
	if err := DefaultRegistry.Run(tio.ctx(), []string{"head"}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if got := tio.stdout.String(); got != "a\nb" {
		t.Errorf("output = %q, want %q", got, "a\nb")
	}
}

func TestHeadCommand_Run_Bytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		limit string
		want  string
	}{
		{name: "cuts mid line", input: "hello\nworld\n", limit: "8", want: "hello\nwo"},
		{name: "short input", input: "hi", limit: "100", want: "hi"},
		{name: "invalid utf8 replaced", input: "ab\xffcd", limit: "4", want: "ab\uFFFDc"},
		{name: "truncated rune replaced", input: "été", limit: "1", want: "\uFFFD"},
		{name: "truncated three-byte rune is one replacement", input: "a€b", limit: "3", want: "a\uFFFD"},
		{name: "truncated four-byte rune is one replacement", input: "😀", limit: "3", want: "\uFFFD"},
		{name: "interior invalid bytes replaced one each", input: "\xe2\x82Ab", limit: "3", want: "\uFFFD\uFFFDA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tio := newTestIO(t.TempDir(), tt.input)
			if err := DefaultRegistry.Run(tio.ctx(), []string{"head", "-c", tt.limit}); err != nil {
				t.Fatalf("Run() returned error: %v", err)
			}
			if got := tio.stdout.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHeadCommand_Run_ByteLimitNeverExceeded(t *testing.T) {
	t.Parallel()

	input := numberedLines(50)
	for _, limit := range []int{1, 5, 64, 1000} {
		tio := newTestIO(t.TempDir(), input)
		if err := DefaultRegistry.Run(tio.ctx(), []string{"head", "--bytes", itoa(limit)}); err != nil {
			t.Fatalf("Run() returned error: %v", err)
		}
		if got := tio.stdout.Len(); got > limit {
			t.Errorf("limit %d: printed %d bytes", limit, got)
		}
		if !utf8.Valid(tio.stdout.Bytes()) {
			t.Errorf("limit %d: output is not valid UTF-8", limit)
		}
	}
}

func TestHeadCommand_Run_MultipleFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "one.txt", "1a\n1b\n1c\n")
	testutil.WriteFile(t, dir, "two.txt", "2a\n")
	tio := newTestIO(dir, "")

	err := DefaultRegistry.Run(tio.ctx(), []string{"head", "-n", "2", "one.txt", "missing.txt", "two.txt"})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	want := "==> one.txt <==\n1a\n1b\n\n==> two.txt <==\n2a\n"
	if got := tio.stdout.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if !strings.Contains(tio.stderr.String(), "missing.txt") {
		t.Errorf("stderr should mention missing.txt, got %q", tio.stderr.String())
	}
}

func TestHeadCommand_Run_InvalidCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "zero lines", args: []string{"-n", "0"}, wantMsg: "illegal line count -- 0"},
		{name: "negative lines", args: []string{"-n", "-3"}, wantMsg: "illegal line count -- -3"},
		{name: "text lines", args: []string{"--lines", "ten"}, wantMsg: "illegal line count -- ten"},
		{name: "zero bytes", args: []string{"-c", "0"}, wantMsg: "illegal byte count -- 0"},
		{name: "both limits", args: []string{"-n", "1", "-c", "1"}, wantMsg: "cannot be used with"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tio := newTestIO(t.TempDir(), "data\n")
			err := DefaultRegistry.Run(tio.ctx(), append([]string{"head"}, tt.args...))
			if !errors.Is(err, ErrConfig) {
				t.Fatalf("Run() error = %v, want ErrConfig", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
			if tio.stdout.Len() != 0 {
				t.Errorf("no output expected, got %q", tio.stdout.String())
			}
		})
	}
}

func TestHead_ReadErrorIsFatal(t *testing.T) {
	t.Parallel()

	tio := newTestIO(t.TempDir(), "")
	tio.hc.Stdin = &failingReader{err: errBrokenPipe}

	err := Head(tio.hc, HeadConfig{Files: []string{StdinToken}, Bytes: 4})
	if !errors.Is(err, ErrRead) {
		t.Fatalf("Head() error = %v, want ErrRead", err)
	}
}
