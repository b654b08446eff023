// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// The helpers build small file trees under t.TempDir(): WriteFile, WriteTree,
// MustSymlink and MustChmod. Every helper fails the test immediately when the
// filesystem operation fails.
package testutil
