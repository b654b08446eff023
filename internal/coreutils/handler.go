// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/interp"
)

type (
	// HandlerContext provides execution context for textkit commands.
	HandlerContext struct {
		// Stdin is the input stream for the command.
		Stdin io.Reader
		// Stdout is the output stream for the command.
		Stdout io.Writer
		// Stderr is the diagnostics stream for the command.
		Stderr io.Writer
		// Dir is the current working directory. Relative paths are resolved against it.
		Dir string
		// LookupEnv retrieves environment variables.
		LookupEnv func(string) (string, bool)
		// Logger receives diagnostics. When nil, a logger writing to Stderr is created per command.
		Logger *log.Logger
	}

	// handlerContextKey is the context key for storing HandlerContext.
	handlerContextKey struct{}
)

// ExtractHandlerContext extracts the HandlerContext from mvdan/sh's context.
// This bridges the shell interpreter's context to textkit command execution.
func ExtractHandlerContext(ctx context.Context) *HandlerContext {
	hc := interp.HandlerCtx(ctx)
	return &HandlerContext{
		Stdin:  hc.Stdin,
		Stdout: hc.Stdout,
		Stderr: hc.Stderr,
		Dir:    hc.Dir,
		LookupEnv: func(name string) (string, bool) {
			v := hc.Env.Get(name)
			return v.Str, v.Set
		},
	}
}

// WithHandlerContext stores a HandlerContext in the context.
func WithHandlerContext(ctx context.Context, hc *HandlerContext) context.Context {
	return context.WithValue(ctx, handlerContextKey{}, hc)
}

// GetHandlerContext retrieves the HandlerContext from the context.
// If the context was created with WithHandlerContext, it returns that value.
// Otherwise, it extracts from mvdan/sh's handler context.
func GetHandlerContext(ctx context.Context) *HandlerContext {
	if hc, ok := ctx.Value(handlerContextKey{}).(*HandlerContext); ok {
		return hc
	}
	return ExtractHandlerContext(ctx)
}

func (hc *HandlerContext) stdout() io.Writer {
	if hc.Stdout == nil {
		return io.Discard
	}
	return hc.Stdout
}

func (hc *HandlerContext) stderr() io.Writer {
	if hc.Stderr == nil {
		return io.Discard
	}
	return hc.Stderr
}

// diagnostics returns the logger used for non-fatal failures of cmdName.
func (hc *HandlerContext) diagnostics(cmdName string) *log.Logger {
	if hc.Logger != nil {
		return hc.Logger.WithPrefix(cmdName)
	}
	return log.NewWithOptions(hc.stderr(), log.Options{Prefix: cmdName})
}
