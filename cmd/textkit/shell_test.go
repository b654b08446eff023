// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/invowk/textkit/internal/issue"
	"github.com/invowk/textkit/internal/testutil"
)

func TestShellCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	data := testutil.WriteFile(t, dir, "data.txt", "b\nb\na\n")
	script := testutil.WriteFile(t, dir, "count.sh", "uniq -c \"$1\"\n")

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{name: "inline pipeline", args: []string{"sh", "-c", "cat " + data + " | wc -l"}, want: "       3 -\n"},
		{name: "positional parameters", args: []string{"sh", "-c", `head -n 1 "$1"`, data}, want: "b\n"},
		{name: "script file", args: []string{"sh", script, data}, want: "   2 b\n   1 a\n"},
		{name: "script from stdin", stdin: "echo hi | wc -c\n", args: []string{"sh"}, want: "       3 -\n"},
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

func TestShellCommand_ExitStatus(t *testing.T) {
	t.Parallel()

	res := runCLI(t, stubConfigProvider{}, "", "sh", "-c", "exit 3")

	var exitErr *ExitError
	if !errors.As(res.err, &exitErr) {
		t.Fatalf("Execute() error = %v, want *ExitError", res.err)
	}
	if exitErr.Code != 3 || exitErr.Err != nil {
		t.Errorf("ExitError = {%d, %v}, want {3, <nil>}", exitErr.Code, exitErr.Err)
	}
}

func TestShellCommand_BuiltinFailure(t *testing.T) {
	t.Parallel()

	res := runCLI(t, stubConfigProvider{}, "", "sh", "-c", "head -n 0; echo status=$?")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	if res.stdout != "status=1\n" {
		t.Errorf("stdout = %q, want %q", res.stdout, "status=1\n")
	}
	if res.stderr != "[textkit] head: illegal line count -- 0\n" {
		t.Errorf("stderr = %q", res.stderr)
	}
}

func TestShellCommand_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      []string
		wantCode  int
		wantIssue issue.Id
	}{
		{name: "syntax error", args: []string{"sh", "-c", "if true; then echo x"}, wantCode: 2, wantIssue: issue.ScriptExecutionFailedId},
		{name: "missing script", args: []string{"sh", filepath.Join(t.TempDir(), "nope.sh")}, wantIssue: issue.FileNotFoundId},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := runCLI(t, stubConfigProvider{}, "", tt.args...)
			if res.err == nil {
				t.Fatal("Execute() returned nil error")
			}

			var ae *issue.ActionableError
			if !errors.As(res.err, &ae) {
				t.Fatalf("error %T is not an ActionableError", res.err)
			}
			if ae.IssueId != tt.wantIssue {
				t.Errorf("IssueId = %d, want %d", ae.IssueId, tt.wantIssue)
			}

			var exitErr *ExitError
			if tt.wantCode != 0 && (!errors.As(res.err, &exitErr) || exitErr.Code != tt.wantCode) {
				t.Errorf("error = %v, want exit code %d", res.err, tt.wantCode)
			}
		})
	}
}
