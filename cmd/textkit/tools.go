// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/invowk/textkit/internal/config"
	"github.com/invowk/textkit/internal/coreutils"
	"github.com/invowk/textkit/internal/issue"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newToolCommand exposes a registry command as `textkit <tool>`. Cobra parses
// the flags bound by the tool's own Parser; the tool then runs exactly as it
// does inside the virtual shell.
func newToolCommand(app *App, tool coreutils.Command) *cobra.Command {
	parser := tool.NewParser()

	toolCmd := &cobra.Command{
		Use:   tool.Name() + " " + tool.Usage(),
		Short: tool.Short(),
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := app.settings
			applyConfigDefaults(cmd.Flags(), settings.cfg)

			dir, err := os.Getwd()
			if err != nil {
				dir = ""
			}

			out := bufio.NewWriter(cmd.OutOrStdout())
			stderr := stdoutFirstWriter{stdout: out, w: cmd.ErrOrStderr()}
			hc := &coreutils.HandlerContext{
				Stdin:     cmd.InOrStdin(),
				Stdout:    out,
				Stderr:    stderr,
				Dir:       dir,
				LookupEnv: os.LookupEnv,
				Logger:    log.NewWithOptions(stderr, log.Options{Level: settings.logLevel()}),
			}

			err = coreutils.Execute(hc, tool.Name(), parser, cmd.Flags(), args)
			if flushErr := out.Flush(); flushErr != nil && err == nil {
				err = flushErr
			}
			if err != nil {
				return toolError(tool.Name(), err)
			}
			return nil
		},
	}

	parser.Bind(toolCmd.Flags())
	return toolCmd
}

// stdoutFirstWriter flushes buffered stdout before every stderr write, so a
// diagnostic never overtakes output produced before it.
type stdoutFirstWriter struct {
	stdout *bufio.Writer
	w      io.Writer
}

func (s stdoutFirstWriter) Write(p []byte) (int, error) {
	_ = s.stdout.Flush() // a failed flush is reported after the run
	return s.w.Write(p)
}

// applyConfigDefaults replaces flag defaults with configured values. Flags set
// on the command line win; Value.Set leaves Changed false, so mutual
// exclusion checks still see only what the user typed.
func applyConfigDefaults(flags *pflag.FlagSet, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if f := flags.Lookup("lines"); f != nil && !f.Changed && f.Value.Type() == "string" {
		_ = f.Value.Set(strconv.Itoa(cfg.Head.Lines))
	}
}

// toolError wraps a fatal tool error with the catalog page and hints that
// match its kind.
func toolError(name string, err error) error {
	ec := issue.NewErrorContext().
		WithOperation("run " + name).
		Wrap(err)

	switch {
	case errors.Is(err, coreutils.ErrConfig):
		ec.WithIssue(issue.InvalidArgumentId).
			WithSuggestion(fmt.Sprintf("See 'textkit %s --help'", name))
	case errors.Is(err, coreutils.ErrOpen) && errors.Is(err, fs.ErrPermission):
		ec.WithIssue(issue.PermissionDeniedId).
			WithSuggestion("Check the permissions of the path")
	case errors.Is(err, coreutils.ErrOpen):
		ec.WithIssue(issue.FileNotFoundId).
			WithSuggestion("Check the path for typos")
	case errors.Is(err, coreutils.ErrRead):
		ec.WithIssue(issue.ReadFailedId)
	}
	return ec.Build()
}
