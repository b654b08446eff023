// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
)

type (
	// testIO bundles a HandlerContext with its captured output streams.
	testIO struct {
		hc     *HandlerContext
		stdout *bytes.Buffer
		stderr *bytes.Buffer
	}

	// failingReader returns err after yielding data once.
	failingReader struct {
		data string
		err  error
		done bool
	}
)

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.done && r.data != "" {
		r.done = true
		return copy(p, r.data), nil
	}
	return 0, r.err
}

var errBrokenPipe = errors.New("broken pipe")

// newTestIO returns a HandlerContext rooted at dir reading stdin.
func newTestIO(dir, stdin string) *testIO {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &testIO{
		hc: &HandlerContext{
			Stdin:     strings.NewReader(stdin),
			Stdout:    stdout,
			Stderr:    stderr,
			Dir:       dir,
			LookupEnv: os.LookupEnv,
		},
		stdout: stdout,
		stderr: stderr,
	}
}

func (tio *testIO) ctx() context.Context {
	return WithHandlerContext(context.Background(), tio.hc)
}
