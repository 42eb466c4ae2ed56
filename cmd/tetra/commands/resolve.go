// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/tetra-pkg/tetra/cmd/tetra/cli"
	"github.com/tetra-pkg/tetra/lib/cache"
	"github.com/tetra-pkg/tetra/lib/config"
)

func resolveCommand() *cli.Command {
	return &cli.Command{
		Name:    "resolve",
		Summary: "Resolve an identifier to its recipe and print it",
		Description: `Resolve a package identifier through the repository tree and print
the recipe it lands on: provenance fields, the document path, and the
declared sources with their digests. Nothing is fetched.`,
		Usage: "tetra resolve <identifier>",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one package identifier")
			}
			return runResolve(args[0])
		},
		Examples: []cli.Example{
			{
				Description: "Show what an identifier resolves to",
				Command:     "tetra resolve local/zlib@1.3.1:static",
			},
		},
	}
}

func runResolve(raw string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	rec, recipePath, err := resolveRecipe(cfg, raw)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", rec.Name)
	fmt.Fprintf(tw, "Version:\t%s\n", rec.Version)
	fmt.Fprintf(tw, "License:\t%s\n", rec.License)
	fmt.Fprintf(tw, "Maintainer:\t%s\n", rec.Maintainer)
	fmt.Fprintf(tw, "Recipe:\t%s\n", recipePath)
	tw.Flush()

	if len(rec.Sources) == 0 {
		fmt.Println("\nNo sources declared.")
		return nil
	}

	fmt.Println("\nSources:")
	for _, source := range rec.Sources {
		fmt.Printf("  %s\n    %s\n", source.URL(), cache.FormatHash(source.Checksum()))
	}
	return nil
}
