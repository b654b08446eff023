// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/invowk/textkit/internal/coreutils"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ErrParse is matched by script syntax errors.
var ErrParse = errors.New("script syntax error")

type (
	// IO holds the standard streams of a script run.
	IO struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Runner executes scripts. The zero value is not usable; use New.
	Runner struct {
		registry       *coreutils.Registry
		enableBuiltins bool
		logLevel       log.Level
		dir            string
		env            []string
	}

	// Option configures a Runner.
	Option func(*Runner)
)

// New creates a Runner that resolves builtins from coreutils.DefaultRegistry,
// runs in the current directory and inherits the process environment.
func New(opts ...Option) *Runner {
	r := &Runner{
		registry:       coreutils.DefaultRegistry,
		enableBuiltins: true,
		logLevel:       log.InfoLevel,
		env:            os.Environ(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithRegistry sets the registry builtins are resolved from.
func WithRegistry(reg *coreutils.Registry) Option {
	return func(r *Runner) { r.registry = reg }
}

// WithBuiltins enables or disables in-process builtins.
func WithBuiltins(enabled bool) Option {
	return func(r *Runner) { r.enableBuiltins = enabled }
}

// WithLogLevel sets the minimum level of builtin diagnostics.
func WithLogLevel(level log.Level) Option {
	return func(r *Runner) { r.logLevel = level }
}

// WithDir sets the initial working directory.
func WithDir(dir string) Option {
	return func(r *Runner) { r.dir = dir }
}

// WithEnv replaces the inherited environment ("KEY=value" pairs).
func WithEnv(env []string) Option {
	return func(r *Runner) { r.env = env }
}

// Run parses src and executes it. name is used in syntax error positions;
// params become the positional parameters $1, $2, ...
//
// The returned exit code is the script's exit status. A non-nil error means
// the script could not be started (syntax error, interpreter setup) or was
// interrupted; in that case the code is 1 or 2.
func (r *Runner) Run(ctx context.Context, name string, src io.Reader, stdio IO, params []string) (int, error) {
	prog, err := syntax.NewParser().Parse(src, name)
	if err != nil {
		return 2, fmt.Errorf("%w: %w", ErrParse, err)
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(r.env...)),
		interp.StdIO(stdio.Stdin, stdio.Stdout, stdio.Stderr),
		interp.ExecHandlers(r.execHandler),
	}
	if r.dir != "" {
		opts = append(opts, interp.Dir(r.dir))
	}
	// "--" stops interp.Params from reading arguments like "-v" as shell options.
	opts = append(opts, interp.Params(append([]string{"--"}, params...)...))

	runner, err := interp.New(opts...)
	if err != nil {
		return 1, fmt.Errorf("failed to create interpreter: %w", err)
	}

	err = runner.Run(ctx, prog)
	if err == nil {
		return 0, nil
	}

	var exitStatus interp.ExitStatus
	if errors.As(err, &exitStatus) {
		return int(exitStatus), nil
	}
	return 1, fmt.Errorf("script execution failed: %w", err)
}

// RunString is Run for an inline script.
func (r *Runner) RunString(ctx context.Context, script string, stdio IO, params []string) (int, error) {
	return r.Run(ctx, "-c", strings.NewReader(script), stdio, params)
}

// execHandler handles external command execution.
func (r *Runner) execHandler(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		if r.enableBuiltins {
			if handled, err := r.tryBuiltin(ctx, args); handled {
				return err
			}
		}
		return next(ctx, args)
	}
}

// tryBuiltin runs args in-process when args[0] is registered.
//
//   - (false, nil): not a builtin; the caller falls back to a host binary.
//   - (true, nil): the builtin succeeded.
//   - (true, ExitStatus(1)): the builtin failed; its error was written to the
//     command's stderr and there is no fallback to a host binary.
func (r *Runner) tryBuiltin(ctx context.Context, args []string) (bool, error) {
	if len(args) == 0 || r.registry == nil {
		return false, nil
	}

	if _, found := r.registry.Lookup(args[0]); !found {
		return false, nil
	}

	hc := coreutils.ExtractHandlerContext(ctx)
	stderr := hc.Stderr
	if stderr == nil {
		stderr = io.Discard
	}
	// Diagnostics follow the command's own stderr so 2> redirections apply.
	hc.Logger = log.NewWithOptions(stderr, log.Options{Level: r.logLevel})

	if err := r.registry.Run(coreutils.WithHandlerContext(ctx, hc), args); err != nil {
		fmt.Fprintln(stderr, err)
		return true, interp.ExitStatus(1)
	}
	return true, nil
}
