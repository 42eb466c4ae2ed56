// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

// Package repo implements the "tetra repo" CLI subcommands for
// inspecting the repositories discovered under the tetra root.
package repo

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/tetra-pkg/tetra/cmd/tetra/cli"
	"github.com/tetra-pkg/tetra/lib/config"
	"github.com/tetra-pkg/tetra/lib/repository"
)

// Command returns the top-level "repo" command with all subcommands.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "repo",
		Summary: "Inspect discovered package repositories",
		Subcommands: []*cli.Command{
			listCommand(),
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Summary: "List repositories under the tetra root",
		Usage:   "tetra repo list",
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("repo list takes no arguments")
			}
			return runList()
		},
	}
}

func runList() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	repos, err := repository.Discover(cfg.RepoDir())
	if err != nil {
		return err
	}

	if len(repos) == 0 {
		fmt.Printf("No repositories under %s.\n", cfg.RepoDir())
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "ID\tNAME\tDESCRIPTION\n")
	for _, repo := range repos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", repo.ID, repo.Name, repo.Description)
	}
	return tw.Flush()
}
