// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/invowk/textkit/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `textkit config` command tree.
// Subcommands read the configuration resolved by the root command.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage textkit configuration",
		Long: `Manage textkit configuration.

Configuration is stored in:
  - Linux: ~/.config/textkit/config.cue
  - macOS: ~/Library/Application Support/textkit/config.cue
  - Windows: %APPDATA%\textkit\config.cue

A config.cue in the current directory is used when the config directory has
none. TEXTKIT_* environment variables (TEXTKIT_HEAD_LINES=20) override both.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.OutOrStdout(), app.settings)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd.OutOrStdout(), app.settings.opts)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd.OutOrStdout(), app.settings.opts)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), config.GenerateCUE(app.settings.cfg))
			return err
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, settings runSettings) error {
	cfg := settings.cfg

	// Style definitions using shared color palette
	headerStyle := TitleStyle
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, headerStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	cfgPath, err := config.ResolveFile(settings.opts)
	if err != nil || cfgPath == "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("log"))
	fmt.Fprintf(w, "  level: %s\n", valueStyle.Render(string(cfg.Log.Level)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("head"))
	fmt.Fprintf(w, "  lines: %s\n", valueStyle.Render(fmt.Sprintf("%d", cfg.Head.Lines)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("shell"))
	fmt.Fprintf(w, "  enable_builtins: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Shell.EnableBuiltins)))

	return nil
}

func showConfigPath(w io.Writer, opts config.LoadOptions) error {
	cfgPath, err := config.FilePath(opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Config directory: %s\n", filepath.Dir(cfgPath))
	fmt.Fprintf(w, "Config file: %s\n", cfgPath)
	return nil
}

func initConfig(w io.Writer, opts config.LoadOptions) error {
	cfgPath, created, err := config.CreateDefaultConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	if !created {
		fmt.Fprintf(w, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), cfgPath)
		return nil
	}
	fmt.Fprintf(w, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}
