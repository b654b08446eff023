// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/pflag"
	"golang.org/x/exp/slices"
)

// DefaultRegistry holds the five textkit tools, filled by the init functions of
// their implementation files.
var DefaultRegistry = NewRegistry()

// Registry is the named set of tools shared by the Cobra command tree and the
// virtual shell. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Command
}

// NewRegistry returns a Registry holding tools.
func NewRegistry(tools ...Command) *Registry {
	r := &Registry{tools: make(map[string]Command, len(tools))}
	for _, tool := range tools {
		r.Register(tool)
	}
	return r
}

// Register adds tool. A tool without a name, or one whose name is taken,
// panics: both are programming errors caught at init.
func (r *Registry) Register(tool Command) {
	name := tool.Name()
	if name == "" {
		panic("coreutils: tool registered without a name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.tools[name]; taken {
		panic(fmt.Sprintf("coreutils: tool %q registered twice", name))
	}
	r.tools[name] = tool
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// Commands returns every tool ordered by name.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	tools := make([]Command, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	r.mu.RUnlock()

	slices.SortFunc(tools, func(a, b Command) int { return cmp.Compare(a.Name(), b.Name()) })
	return tools
}

// Run executes argv in-process: argv[0] names the tool and argv[1:] are parsed
// with a fresh Parser from that tool. The HandlerContext is taken from ctx.
func (r *Registry) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return errors.New("[textkit] no tool named")
	}
	tool, ok := r.Lookup(argv[0])
	if !ok {
		return fmt.Errorf("[textkit] %s: command not found", argv[0])
	}
	return invoke(ctx, tool, argv[1:])
}

// RegisterDefault adds tool to DefaultRegistry.
func RegisterDefault(tool Command) {
	DefaultRegistry.Register(tool)
}

// invoke parses args with tool's flags and runs the resulting Invocation.
// Flag errors surface as *ConfigError; usage text goes to the context's stderr.
func invoke(ctx context.Context, tool Command, args []string) error {
	hc := GetHandlerContext(ctx)
	fs := pflag.NewFlagSet(tool.Name(), pflag.ContinueOnError)
	fs.SetOutput(hc.stderr())

	parser := tool.NewParser()
	parser.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return wrapError(tool.Name(), &ConfigError{Message: err.Error()})
	}
	return Execute(hc, tool.Name(), parser, fs, fs.Args())
}
