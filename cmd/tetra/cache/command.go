// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

// Package cache implements the "tetra cache" CLI subcommands for
// inspecting and verifying the content-addressed blob store.
package cache

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/tetra-pkg/tetra/cmd/tetra/cli"
	"github.com/tetra-pkg/tetra/lib/cache"
	"github.com/tetra-pkg/tetra/lib/config"
)

// Command returns the top-level "cache" command with all subcommands.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "cache",
		Summary: "Inspect the content-addressed source cache",
		Subcommands: []*cli.Command{
			listCommand(),
			verifyCommand(),
			statusCommand(),
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Summary: "List cached sources with their provenance",
		Description: `Replays the cache's provenance log and prints one line per
cached source: content hash, size, fetch time, and origin URL.

The log is advisory. Blobs fetched by interrupted runs may be
present in the store without a provenance record; "cache status"
counts those too.`,
		Usage: "tetra cache list",
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("cache list takes no arguments")
			}
			return runList()
		},
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:    "verify",
		Summary: "Rehash every cached blob and purge corrupt entries",
		Usage:   "tetra cache verify",
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("cache verify takes no arguments")
			}
			return runVerify()
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:    "status",
		Summary: "Show blob and byte totals for the cache",
		Usage:   "tetra cache status",
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("cache status takes no arguments")
			}
			return runStatus()
		},
	}
}

func openStore() (*cache.Cache, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	store, err := cache.New(cfg.CacheDir(), nil)
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}

func runList() error {
	store, _, err := openStore()
	if err != nil {
		return err
	}

	entries, err := store.ReadIndex()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No provenance records.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "HASH\tSIZE\tFETCHED\tURL\n")
	for _, entry := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n",
			cache.FormatHash(entry.Hash),
			entry.Size,
			entry.FetchedAt.Local().Format("2006-01-02 15:04:05"),
			entry.URL)
	}
	return tw.Flush()
}

func runVerify() error {
	store, _, err := openStore()
	if err != nil {
		return err
	}

	var checked, purged int
	err = store.Walk(func(hash cache.Hash, path string) error {
		checked++
		ok, err := store.Validate(hash)
		if err != nil {
			return err
		}
		if !ok {
			purged++
			fmt.Printf("purged %s\n", cache.FormatHash(hash))
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("%d blob(s) checked, %d purged.\n", checked, purged)
	return nil
}

func runStatus() error {
	store, cfg, err := openStore()
	if err != nil {
		return err
	}

	var blobs int
	var bytes int64
	err = store.Walk(func(hash cache.Hash, path string) error {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		blobs++
		bytes += info.Size()
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Cache:   %s\n", cfg.CacheDir())
	fmt.Printf("Blobs:   %d\n", blobs)
	fmt.Printf("Bytes:   %d\n", bytes)
	return nil
}
