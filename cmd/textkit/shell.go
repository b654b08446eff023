// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"

	"github.com/invowk/textkit/internal/issue"
	"github.com/invowk/textkit/internal/shell"

	"github.com/spf13/cobra"
)

// newShellCommand creates the `textkit sh` command.
func newShellCommand(app *App) *cobra.Command {
	var script string

	shCmd := &cobra.Command{
		Use:   "sh [-c script | file] [args...]",
		Short: "Run a POSIX shell script with the textkit tools as builtins",
		Long: `Run a POSIX shell script in the built-in interpreter.

cat, head, uniq, wc and find resolve to the textkit implementations unless
shell.enable_builtins is false; every other command runs from PATH. The script
comes from -c, from a file, or from standard input. Remaining arguments become
the positional parameters $1, $2, ...

` + SubtitleStyle.Render("Examples:") + `
  textkit sh -c 'cat -n "$1" | head -n 3' notes.txt
  textkit sh build.sh
  echo 'wc -l *.txt' | textkit sh`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, app, script, cmd.Flags().Changed("command"), args)
		},
	}

	shCmd.Flags().StringVarP(&script, "command", "c", "", "read the script from this argument")
	// Flags after the script operand belong to the script.
	shCmd.Flags().SetInterspersed(false)

	return shCmd
}

func runShell(cmd *cobra.Command, app *App, script string, inline bool, args []string) error {
	settings := app.settings

	opts := []shell.Option{
		shell.WithRegistry(app.Registry),
		shell.WithBuiltins(settings.cfg.Shell.EnableBuiltins),
		shell.WithLogLevel(settings.logLevel()),
	}
	if wd, err := os.Getwd(); err == nil {
		opts = append(opts, shell.WithDir(wd))
	}
	runner := shell.New(opts...)

	stdio := shell.IO{
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}

	var (
		name = "-c"
		code int
		err  error
	)
	switch {
	case inline:
		code, err = runner.RunString(cmd.Context(), script, stdio, args)
	case len(args) > 0:
		name = args[0]
		f, openErr := os.Open(name)
		if openErr != nil {
			return issue.NewErrorContext().
				WithOperation("run script").
				WithResource(name).
				WithSuggestion("Check the script path for typos").
				WithIssue(issue.FileNotFoundId).
				Wrap(openErr).
				Build()
		}
		defer f.Close()
		code, err = runner.Run(cmd.Context(), name, f, stdio, args[1:])
	default:
		name = "<stdin>"
		code, err = runner.Run(cmd.Context(), name, cmd.InOrStdin(), stdio, nil)
	}

	if err != nil {
		return &ExitError{
			Code: code,
			Err: issue.NewErrorContext().
				WithOperation("run script").
				WithResource(name).
				WithSuggestion("Check the script syntax (POSIX shell)").
				WithIssue(issue.ScriptExecutionFailedId).
				Wrap(err).
				Build(),
		}
	}
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}
