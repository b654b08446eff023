// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

type (
	// mockCommand is a test implementation of Command.
	mockCommand struct {
		baseCommand
		runFn  func(hc *HandlerContext) error
		called bool
		args   []string
	}

	// mockParser binds a single --flag and records the positional arguments.
	mockParser struct {
		cmd  *mockCommand
		flag bool
	}
)

func (m *mockCommand) NewParser() Parser { return &mockParser{cmd: m} }

func (p *mockParser) Bind(fs *pflag.FlagSet) {
	fs.BoolVarP(&p.flag, "flag", "f", false, "test flag")
}

func (p *mockParser) Invocation(_ *pflag.FlagSet, args []string) (Invocation, error) {
	return func(hc *HandlerContext) error {
		p.cmd.called = true
		p.cmd.args = args
		if p.cmd.runFn != nil {
			return p.cmd.runFn(hc)
		}
		return nil
	}, nil
}

func newMockCommand(name string) *mockCommand {
	return &mockCommand{baseCommand: baseCommand{name: name}}
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if n := len(r.Commands()); n != 0 {
		t.Errorf("NewRegistry() should be empty, got %d tools", n)
	}

	seeded := NewRegistry(newMockCommand("cat"), newMockCommand("wc"))
	if _, ok := seeded.Lookup("wc"); !ok {
		t.Error("NewRegistry(tools...) should register every tool")
	}
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	cmd := newMockCommand("test")

	r.Register(cmd)

	found, ok := r.Lookup("test")
	if !ok {
		t.Fatal("Lookup should find registered command")
	}
	if found != cmd {
		t.Error("Lookup returned wrong command")
	}
}

func TestRegistry_Register_Panics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing string
		register string
	}{
		{name: "duplicate", existing: "test", register: "test"},
		{name: "empty name", register: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewRegistry()
			if tt.existing != "" {
				r.Register(newMockCommand(tt.existing))
			}

			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			r.Register(newMockCommand(tt.register))
		})
	}
}

func TestRegistry_Lookup_NotFound(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(newMockCommand("cat"))

	for _, name := range []string{"git", "ls", ""} {
		cmd, ok := r.Lookup(name)
		if ok || cmd != nil {
			t.Errorf("Lookup(%q) = (%v, %v), want (nil, false)", name, cmd, ok)
		}
	}
}

func TestRegistry_Commands(t *testing.T) {
	t.Parallel()

	r := NewRegistry(newMockCommand("wc"), newMockCommand("cat"), newMockCommand("head"))

	if got := strings.Join(commandNames(r), ","); got != "cat,head,wc" {
		t.Errorf("Commands() = %s, want cat,head,wc", got)
	}
}

func TestRegistry_Run(t *testing.T) {
	t.Parallel()

	cmd := newMockCommand("wc")
	r := NewRegistry(cmd)

	if err := r.Run(context.Background(), []string{"wc", "-f", "a.txt", "b.txt"}); err != nil {
		t.Errorf("Run returned unexpected error: %v", err)
	}
	if !cmd.called {
		t.Fatal("command was not called")
	}
	if strings.Join(cmd.args, " ") != "a.txt b.txt" {
		t.Errorf("command received wrong args: %v", cmd.args)
	}
}

func TestRegistry_Run_NotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		argv []string
		want string
	}{
		{name: "unregistered", argv: []string{"nonexistent"}, want: "[textkit] nonexistent: command not found"},
		{name: "empty argv", argv: nil, want: "[textkit] no tool named"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := NewRegistry().Run(context.Background(), tt.argv)
			if err == nil {
				t.Fatal("Run should return an error")
			}
			if err.Error() != tt.want {
				t.Errorf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestRegistry_Run_PropagatesCommandError(t *testing.T) {
	t.Parallel()

	expectedErr := errors.New("something went wrong")
	cmd := newMockCommand("test")
	cmd.runFn = func(*HandlerContext) error { return expectedErr }

	err := NewRegistry(cmd).Run(context.Background(), []string{"test"})
	if !errors.Is(err, expectedErr) {
		t.Errorf("Run should propagate command error, got: %v", err)
	}
	if !strings.HasPrefix(err.Error(), "[textkit] test: ") {
		t.Errorf("error should carry the command prefix: %q", err.Error())
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	for i := range 10 {
		r.Register(newMockCommand(fmt.Sprintf("cmd%d", i)))
	}

	done := make(chan bool)
	for range 10 {
		go func() {
			for range 100 {
				r.Lookup("cmd5")
				r.Commands()
			}
			done <- true
		}()
	}

	for range 10 {
		<-done
	}
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	got := strings.Join(commandNames(DefaultRegistry), ",")
	if got != "cat,find,head,uniq,wc" {
		t.Errorf("DefaultRegistry.Commands() = %s, want cat,find,head,uniq,wc", got)
	}

	for _, cmd := range DefaultRegistry.Commands() {
		if cmd.Short() == "" {
			t.Errorf("%s has no description", cmd.Name())
		}
		if cmd.NewParser() == nil {
			t.Errorf("%s returned a nil parser", cmd.Name())
		}
	}
}

func TestRegistry_Run_UnknownFlag(t *testing.T) {
	t.Parallel()

	tio := newTestIO(t.TempDir(), "")
	err := DefaultRegistry.Run(tio.ctx(), []string{"cat", "--bogus"})
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("error = %v, want ErrConfig", err)
	}
	if !strings.HasPrefix(err.Error(), "[textkit] cat: ") {
		t.Errorf("error should carry the command prefix: %q", err.Error())
	}
}

func commandNames(r *Registry) []string {
	var names []string
	for _, cmd := range r.Commands() {
		names = append(names, cmd.Name())
	}
	return names
}
