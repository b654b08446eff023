// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/textkit/internal/config"
	"github.com/invowk/textkit/internal/coreutils"
	"github.com/invowk/textkit/internal/issue"
	"github.com/invowk/textkit/internal/testutil"
)

// stubConfigProvider returns a fixed configuration or error.
type stubConfigProvider struct {
	cfg *config.Config
	err error
}

func (s stubConfigProvider) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.cfg == nil {
		return config.DefaultConfig(), nil
	}
	return s.cfg, nil
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the command tree in-process with captured streams.
func runCLI(t *testing.T, provider ConfigProvider, stdin string, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{Config: provider, Stdout: &stdout, Stderr: &stderr})
	rootCmd := NewRootCommand(app)
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestToolCommands(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	notes := testutil.WriteFile(t, dir, "notes.txt", "alpha\n\nbeta\n")
	words := testutil.WriteFile(t, dir, "words.txt", "a\na\nb\na\n")

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{name: "cat numbers all lines", args: []string{"cat", "-n", notes}, want: "     1\talpha\n     2\t\n     3\tbeta\n"},
		{name: "cat numbers non-blank", args: []string{"cat", "-b", notes}, want: "     1\talpha\n\n     2\tbeta\n"},
		{name: "cat reads stdin token", stdin: "x\n", args: []string{"cat", "-"}, want: "x\n"},
		{name: "head lines", args: []string{"head", "-n", "1", notes}, want: "alpha\n"},
		{name: "head bytes", args: []string{"head", "-c", "3", notes}, want: "alp"},
		{name: "uniq counts runs", args: []string{"uniq", "-c", words}, want: "   2 a\n   1 b\n   1 a\n"},
		{name: "uniq from stdin", stdin: "z\nz\n", args: []string{"uniq"}, want: "z\n"},
		{name: "wc from stdin", stdin: "one two\nthree\n", args: []string{"wc", "-lw"}, want: "       2       3 -\n"},
		{name: "find by type", args: []string{"find", dir, "-t", "f", "-n", `^words`}, want: words + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := runCLI(t, stubConfigProvider{}, tt.stdin, tt.args...)
			if res.err != nil {
				t.Fatalf("Execute() error = %v (stderr %q)", res.err, res.stderr)
			}
			if res.stdout != tt.want {
				t.Errorf("stdout = %q, want %q", res.stdout, tt.want)
			}
		})
	}
}

func TestToolCommand_MissingFileIsNotFatal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	present := testutil.WriteFile(t, dir, "present.txt", "ok\n")
	missing := filepath.Join(dir, "missing.txt")

	res := runCLI(t, stubConfigProvider{}, "", "cat", missing, present)
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	if res.stdout != "ok\n" {
		t.Errorf("stdout = %q, want %q", res.stdout, "ok\n")
	}
	if !strings.Contains(res.stderr, "failed to open") || !strings.Contains(res.stderr, missing) {
		t.Errorf("stderr = %q, want an open diagnostic naming %s", res.stderr, missing)
	}
}

func TestHeadCommand_ConfigDefault(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Head.Lines = 2
	provider := stubConfigProvider{cfg: cfg}
	input := "1\n2\n3\n4\n"

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "configured default", args: []string{"head"}, want: "1\n2\n"},
		{name: "flag wins", args: []string{"head", "-n", "3"}, want: "1\n2\n3\n"},
		{name: "byte mode is not a conflict", args: []string{"head", "-c", "3"}, want: "1\n2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := runCLI(t, provider, input, tt.args...)
			if res.err != nil {
				t.Fatalf("Execute() error = %v", res.err)
			}
			if res.stdout != tt.want {
				t.Errorf("stdout = %q, want %q", res.stdout, tt.want)
			}
		})
	}
}

func TestToolCommand_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name      string
		args      []string
		wantKind  error
		wantIssue issue.Id
		wantMsg   string
	}{
		{
			name:      "invalid line count",
			args:      []string{"head", "-n", "0"},
			wantKind:  coreutils.ErrConfig,
			wantIssue: issue.InvalidArgumentId,
			wantMsg:   "failed to run head: [textkit] head: illegal line count -- 0",
		},
		{
			name:      "conflicting flags",
			args:      []string{"cat", "-n", "-b"},
			wantKind:  coreutils.ErrConfig,
			wantIssue: issue.InvalidArgumentId,
			wantMsg:   "cannot be used with",
		},
		{
			name:      "unknown flag",
			args:      []string{"wc", "--bogus"},
			wantKind:  coreutils.ErrConfig,
			wantIssue: issue.InvalidArgumentId,
			wantMsg:   "[textkit] wc: unknown flag: --bogus",
		},
		{
			name:      "invalid pattern",
			args:      []string{"find", dir, "-n", "("},
			wantKind:  coreutils.ErrConfig,
			wantIssue: issue.InvalidArgumentId,
			wantMsg:   "failed to run find",
		},
		{
			name:      "uniq input is fatal",
			args:      []string{"uniq", filepath.Join(dir, "missing.txt")},
			wantKind:  coreutils.ErrOpen,
			wantIssue: issue.FileNotFoundId,
			wantMsg:   "missing.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := runCLI(t, stubConfigProvider{}, "", tt.args...)
			if res.err == nil {
				t.Fatal("Execute() returned nil error")
			}
			if !errors.Is(res.err, tt.wantKind) {
				t.Errorf("errors.Is(err, %v) = false for %v", tt.wantKind, res.err)
			}

			var ae *issue.ActionableError
			if !errors.As(res.err, &ae) {
				t.Fatalf("error %T is not an ActionableError", res.err)
			}
			if ae.IssueId != tt.wantIssue {
				t.Errorf("IssueId = %d, want %d", ae.IssueId, tt.wantIssue)
			}
			if !strings.Contains(ae.Error(), tt.wantMsg) {
				t.Errorf("Error() = %q, want it to contain %q", ae.Error(), tt.wantMsg)
			}
		})
	}
}

func TestToolCommand_VerboseDiagnostics(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "a.txt", "a\n")

	quiet := runCLI(t, stubConfigProvider{}, "", "cat", path)
	if strings.Contains(quiet.stderr, "processing path") {
		t.Errorf("stderr without --verbose = %q, want no debug records", quiet.stderr)
	}

	loud := runCLI(t, stubConfigProvider{}, "", "--verbose", "cat", path)
	if !strings.Contains(loud.stderr, "processing path") {
		t.Errorf("stderr with --verbose = %q, want a debug record", loud.stderr)
	}

	cfg := config.DefaultConfig()
	cfg.Log.Level = config.LogLevelDebug
	configured := runCLI(t, stubConfigProvider{cfg: cfg}, "", "cat", path)
	if !strings.Contains(configured.stderr, "processing path") {
		t.Errorf("stderr with log.level=debug = %q, want a debug record", configured.stderr)
	}
}

func TestToolCommand_DiagnosticsFollowEarlierOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := testutil.WriteFile(t, dir, "a.txt", "first\n")
	second := testutil.WriteFile(t, dir, "b.txt", "second\n")
	missing := filepath.Join(dir, "missing.txt")

	var combined bytes.Buffer
	app := NewApp(Dependencies{Config: stubConfigProvider{}, Stdout: &combined, Stderr: &combined})
	rootCmd := NewRootCommand(app)
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.SetArgs([]string{"cat", first, missing, second})

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	got := combined.String()
	firstAt := strings.Index(got, "first\n")
	diagAt := strings.Index(got, "missing.txt")
	secondAt := strings.Index(got, "second\n")
	if firstAt < 0 || diagAt < 0 || secondAt < 0 {
		t.Fatalf("combined output missing a part: %q", got)
	}
	if firstAt >= diagAt || diagAt >= secondAt {
		t.Errorf("combined output out of order: %q", got)
	}
}
