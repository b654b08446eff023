// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/invowk/textkit/internal/config"
	"github.com/invowk/textkit/internal/coreutils"
	"github.com/invowk/textkit/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// multiCallPrefix is stripped from the executable name before tool lookup,
// so "textkit-wc" dispatches like "wc".
const multiCallPrefix = "textkit-"

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the textkit command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	var (
		verbose bool
		cfgFile string
	)

	rootCmd := &cobra.Command{
		Use:   "textkit",
		Short: "Small text and filesystem tools with a built-in shell",
		Long: TitleStyle.Render("textkit") + SubtitleStyle.Render(" - Small text and filesystem tools with a built-in shell") + `

textkit bundles line-numbering cat, head, uniq, wc and a filtered find.
Every tool reads the paths it is given in order; the token "-" stands for
standard input. Paths that cannot be opened are reported and skipped.

Linking the binary as cat, head, uniq, wc, find (or textkit-<tool>) runs
that tool directly.

` + SubtitleStyle.Render("Examples:") + `
  textkit cat -n notes.txt          Number every line
  textkit head -c 64 data.bin       Print the first 64 bytes
  sort words.txt | textkit uniq -c  Count repeated lines
  textkit wc -lw *.go               Count lines and words
  textkit find . -n '\.go$' -t f    List Go files
  textkit sh -c 'cat a | wc -l'     Run a script with the tools as builtins`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.loadSettings(cmd.Context(), cfgFile, verbose)
			return nil
		},
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug diagnostics and detailed error pages")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/textkit/config.cue)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		if _, isTool := app.Registry.Lookup(cmd.Name()); !isTool {
			return err
		}
		return toolError(cmd.Name(), fmt.Errorf("[textkit] %s: %w", cmd.Name(), &coreutils.ConfigError{Message: err.Error()}))
	})

	for _, tool := range app.Registry.Commands() {
		rootCmd.AddCommand(newToolCommand(app, tool))
	}
	rootCmd.AddCommand(newShellCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newCompletionCommand())

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(dispatchArgs(app.Registry, os.Args[0], os.Args[1:]))

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.renderError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// dispatchArgs prepends the tool name to args when the executable itself is
// named after a registered tool.
func dispatchArgs(reg *coreutils.Registry, argv0 string, args []string) []string {
	name := strings.TrimSuffix(filepath.Base(argv0), ".exe")
	name = strings.TrimPrefix(name, multiCallPrefix)
	if _, ok := reg.Lookup(name); !ok {
		return args
	}
	return append([]string{name}, args...)
}

// loadSettings resolves the configuration for this invocation. A config that
// fails to load is reported as a warning and replaced by defaults.
func (a *App) loadSettings(ctx context.Context, cfgFile string, verbose bool) {
	opts := config.LoadOptions{ConfigFilePath: cfgFile}
	if wd, err := os.Getwd(); err == nil {
		opts.BaseDir = wd
	}

	cfg, err := a.Config.Load(ctx, opts)
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		cfg = config.DefaultConfig()
	}

	a.settings = runSettings{
		cfg:     cfg,
		opts:    opts,
		verbose: verbose || cfg.UI.Verbose,
	}
}

// renderError is the fang error handler. Script exit statuses are silent;
// actionable errors get their suggestions and, in verbose mode, the matching
// issue page.
func (a *App) renderError(w io.Writer, _ fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	verbose := a.settings.verbose
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))

	var ae *issue.ActionableError
	if !verbose || !errors.As(err, &ae) {
		return
	}
	page := ae.Issue()
	if page == nil {
		return
	}
	rendered, renderErr := page.Render(a.settings.glamourStyle())
	if renderErr != nil {
		return
	}
	fmt.Fprint(w, rendered)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
