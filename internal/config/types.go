// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"

	// DefaultHeadLines is the head line limit used when -n is not given.
	DefaultHeadLines = 10
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidHeadLines is returned when head.lines is not positive.
	ErrInvalidHeadLines = errors.New("invalid head line count")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// LogLevel is the minimum severity written to the diagnostics channel.
	LogLevel string

	// Config is the complete textkit configuration.
	Config struct {
		UI    UIConfig    `json:"ui" mapstructure:"ui"`
		Log   LogConfig   `json:"log" mapstructure:"log"`
		Head  HeadConfig  `json:"head" mapstructure:"head"`
		Shell ShellConfig `json:"shell" mapstructure:"shell"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables debug diagnostics and issue pages for fatal errors.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// ColorScheme selects the glamour style for issue pages.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}

	// LogConfig configures diagnostics.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}

	// HeadConfig configures the head tool.
	HeadConfig struct {
		// Lines is the default line limit.
		Lines int `json:"lines" mapstructure:"lines"`
	}

	// ShellConfig configures the virtual shell.
	ShellConfig struct {
		// EnableBuiltins resolves cat, head, uniq, wc and find to the textkit
		// implementations instead of host binaries.
		EnableBuiltins bool `json:"enable_builtins" mapstructure:"enable_builtins"`
	}

	// InvalidConfigError is returned when a loaded configuration (including
	// environment overrides) holds values the schema does not allow.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
		Log: LogConfig{
			Level: LogLevelInfo,
		},
		Head: HeadConfig{
			Lines: DefaultHeadLines,
		},
		Shell: ShellConfig{
			EnableBuiltins: true,
		},
	}
}

// Validate checks every field. Environment overrides bypass the CUE schema,
// so values are checked again after unmarshalling.
func (c *Config) Validate() error {
	var errs []error
	if !c.UI.ColorScheme.IsValid() {
		errs = append(errs, fmt.Errorf("%w %q (valid: auto, dark, light)", ErrInvalidColorScheme, c.UI.ColorScheme))
	}
	if !c.Log.Level.IsValid() {
		errs = append(errs, fmt.Errorf("%w %q (valid: debug, info, warn, error)", ErrInvalidLogLevel, c.Log.Level))
	}
	if c.Head.Lines <= 0 {
		errs = append(errs, fmt.Errorf("%w %d: must be greater than 0", ErrInvalidHeadLines, c.Head.Lines))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns the field errors for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// IsValid reports whether cs is one of the defined color schemes.
func (cs ColorScheme) IsValid() bool {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true
	default:
		return false
	}
}

// IsValid reports whether l is one of the defined log levels.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	default:
		return false
	}
}

// Level converts l to a charmbracelet/log level. Unknown values map to info.
func (l LogLevel) Level() log.Level {
	lvl, err := log.ParseLevel(string(l))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
