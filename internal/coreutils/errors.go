// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is matched by every ConfigError.
	ErrConfig = errors.New("invalid configuration")
	// ErrOpen is matched by every OpenError.
	ErrOpen = errors.New("cannot open input")
	// ErrRead is matched by every ReadError.
	ErrRead = errors.New("read failed")
	// ErrTraversal is matched by every TraversalError.
	ErrTraversal = errors.New("traversal failed")
)

type (
	// ConfigError reports an invalid flag value, an invalid pattern or
	// conflicting flags. It is raised before any I/O takes place.
	ConfigError struct {
		// Flag is the offending flag name without dashes (optional).
		Flag string
		// Value is the offending value (optional).
		Value string
		// Message is the user-facing description.
		Message string
	}

	// OpenError reports that a path token could not be opened.
	OpenError struct {
		// Path is the token as given by the user.
		Path string
		Err  error
	}

	// ReadError reports an I/O failure after a source was opened.
	ReadError struct {
		Path string
		Err  error
	}

	// TraversalError reports an entry that could not be visited while walking.
	TraversalError struct {
		Path string
		Err  error
	}
)

func (e *ConfigError) Error() string {
	return e.Message
}

// Is reports whether target is ErrConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Is reports whether target is ErrOpen.
func (e *OpenError) Is(target error) bool {
	return target == ErrOpen
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Is reports whether target is ErrRead.
func (e *ReadError) Is(target error) bool {
	return target == ErrRead
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *TraversalError) Unwrap() error { return e.Err }

// Is reports whether target is ErrTraversal.
func (e *TraversalError) Is(target error) bool {
	return target == ErrTraversal
}

// conflictError reports two mutually exclusive flags given together.
func conflictError(a, b string) *ConfigError {
	return &ConfigError{
		Flag:    a,
		Message: fmt.Sprintf("the argument '--%s' cannot be used with '--%s'", a, b),
	}
}

// wrapError wraps an error with the [textkit] prefix format.
// Returns nil if err is nil.
func wrapError(cmdName string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("[textkit] %s: %w", cmdName, err)
}
