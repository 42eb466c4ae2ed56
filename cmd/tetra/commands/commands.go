// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the tetra command tree.
//
// The root command keeps the original one-argument contract: a bare
// `tetra <identifier>` resolves the identifier and fetches its
// sources, exactly like `tetra fetch <identifier>`. Everything else
// is a named subcommand.
package commands

import (
	"fmt"

	cachecmd "github.com/tetra-pkg/tetra/cmd/tetra/cache"
	repocmd "github.com/tetra-pkg/tetra/cmd/tetra/repo"
	"github.com/tetra-pkg/tetra/cmd/tetra/cli"
	"github.com/tetra-pkg/tetra/lib/config"
)

// Root returns the root "tetra" command with all subcommands.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "tetra",
		Summary: "Resolve package recipes and fetch their sources into the content-addressed cache",
		Description: `tetra resolves a package identifier against the repository tree and
fetches the recipe's declared sources into a BLAKE3 content-addressed
cache. Every downloaded byte is verified against the digest declared
in the recipe before it is trusted.

Identifiers have the form repo/name@version:flavour1:flavour2#arch;
every segment except the name is optional.`,
		Usage: "tetra <identifier>\n  tetra <command> [flags]",
		Subcommands: []*cli.Command{
			fetchCommand(),
			resolveCommand(),
			repocmd.Command(),
			cachecmd.Command(),
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected a package identifier, got %d arguments", len(args))
			}
			return runFetch(args[0], fetchOptions{timeout: config.DefaultFetchTimeout})
		},
		Examples: []cli.Example{
			{
				Description: "Fetch the latest zlib sources from the default repository",
				Command:     "tetra zlib",
			},
			{
				Description: "Fetch a specific flavoured build for an explicit architecture",
				Command:     "tetra local/zlib@1.3.1:static#arm64",
			},
			{
				Description: "Inspect a recipe without fetching",
				Command:     "tetra resolve local/zlib@1.3.1",
			},
		},
	}
}
