// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/invowk/textkit/internal/config"
	"github.com/invowk/textkit/internal/coreutils"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: every Cobra command handler receives an App reference and reads
	// configuration and tools through it.
	App struct {
		Config   ConfigProvider
		Registry *coreutils.Registry
		stdout   io.Writer
		stderr   io.Writer

		// settings is resolved by the root command before any subcommand runs.
		settings runSettings
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config   ConfigProvider
		Registry *coreutils.Registry
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	// This abstraction enables testing with custom config sources or mock implementations.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// runSettings is the effective configuration of one invocation.
	runSettings struct {
		cfg     *config.Config
		opts    config.LoadOptions
		verbose bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Registry == nil {
		deps.Registry = coreutils.DefaultRegistry
	}

	return &App{
		Config:   deps.Config,
		Registry: deps.Registry,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
		settings: runSettings{cfg: config.DefaultConfig()},
	}
}

// logLevel returns the diagnostics level: debug when verbose, else the configured level.
func (s runSettings) logLevel() log.Level {
	if s.verbose {
		return log.DebugLevel
	}
	return s.cfg.Log.Level.Level()
}

// glamourStyle maps the configured color scheme to a glamour standard style.
func (s runSettings) glamourStyle() string {
	switch s.cfg.UI.ColorScheme {
	case config.ColorSchemeLight:
		return "light"
	case config.ColorSchemeDark:
		return "dark"
	default:
		return "auto"
	}
}
