// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit code without printing an extra
// error message. When a command handler returns an ExitError, main
// exits with the specified code without printing the error string —
// the command is expected to have already written its own output.
//
// Classified errors (lib/errdefs) expose the same ExitCode interface
// but are printed: they carry the user-facing message naming the
// identifier, path, or hash that failed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this interface on
// returned errors to select the process exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}
