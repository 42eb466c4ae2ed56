// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tetra-pkg/tetra/cmd/tetra/cli"
	"github.com/tetra-pkg/tetra/cmd/tetra/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output return a cli.ExitError
		// with the desired code. Don't print a redundant "error:" line
		// for those. Classified errors (resolution misses, checksum
		// mismatches) carry a distinct exit code and a message worth
		// printing.
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode selects the process exit code for a failed run. Classified
// errors carry a kind-specific code anywhere in their chain; anything
// else exits 1.
func exitCode(err error) int {
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

func run() error {
	return commands.Root().Execute(os.Args[1:])
}
