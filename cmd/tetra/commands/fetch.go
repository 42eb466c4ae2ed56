// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"net/url"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/tetra-pkg/tetra/cmd/tetra/cli"
	"github.com/tetra-pkg/tetra/lib/cache"
	"github.com/tetra-pkg/tetra/lib/config"
	"github.com/tetra-pkg/tetra/lib/fetch"
	"github.com/tetra-pkg/tetra/lib/pkgid"
	"github.com/tetra-pkg/tetra/lib/recipe"
	"github.com/tetra-pkg/tetra/lib/repository"
)

type fetchOptions struct {
	timeout time.Duration
	verbose bool
}

func fetchCommand() *cli.Command {
	opts := fetchOptions{timeout: config.DefaultFetchTimeout}
	return &cli.Command{
		Name:    "fetch",
		Summary: "Resolve an identifier and fetch its sources into the cache",
		Description: `Resolve a package identifier to a recipe and fetch every declared
source into the content-addressed cache, in recipe order. Sources
already present and verified are not downloaded again. The first
failure aborts the run.`,
		Usage: "tetra fetch <identifier> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("fetch", pflag.ContinueOnError)
			flagSet.DurationVar(&opts.timeout, "fetch-timeout", opts.timeout,
				"per-source download timeout (0 disables)")
			flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one package identifier")
			}
			return runFetch(args[0], opts)
		},
		Examples: []cli.Example{
			{
				Description: "Fetch with a tight per-source timeout",
				Command:     "tetra fetch local/zlib@1.3.1 --fetch-timeout 30s",
			},
		},
	}
}

func runFetch(raw string, opts fetchOptions) error {
	logger := cli.NewCommandLogger(opts.verbose).With("command", "fetch")

	cfg, err := fetchConfig(opts)
	if err != nil {
		return err
	}
	if err := cfg.EnsureLayout(); err != nil {
		return err
	}

	rec, _, err := resolveRecipe(cfg, raw)
	if err != nil {
		return err
	}

	store, err := cache.New(cfg.CacheDir(), logger)
	if err != nil {
		return err
	}

	fetcher := fetch.New(store, cfg.ScratchDir(), logger)
	fetcher.Timeout = cfg.FetchTimeout
	fetcher.Progress = cli.NewTerminalProgress()

	// Ctrl-C aborts the in-flight transfer through the request context;
	// the scratch file's deferred release cleans up the partial bytes.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for _, source := range rec.Sources {
		if err := fetcher.Fetch(ctx, source, sourceLabel(source)); err != nil {
			return err
		}
	}

	fmt.Printf("%s: %d source(s) verified in cache\n", rec, len(rec.Sources))
	return nil
}

// fetchConfig loads the run configuration with the flag values
// applied. The timeout flag wins verbatim, including zero:
// "--fetch-timeout 0" means no per-source bound.
func fetchConfig(opts fetchOptions) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.FetchTimeout = opts.timeout
	return cfg, nil
}

// resolveRecipe runs the shared resolution pipeline: load config-level
// repository state, parse the identifier, walk the tree, parse the
// recipe. Returns the recipe and its document path.
func resolveRecipe(cfg *config.Config, raw string) (*recipe.Recipe, string, error) {
	repos, err := repository.Discover(cfg.RepoDir())
	if err != nil {
		return nil, "", err
	}

	id := pkgid.Parse(raw, cfg.DefaultArch)
	recipePath, err := repository.Resolve(repos, id)
	if err != nil {
		return nil, "", err
	}

	rec, err := recipe.Load(recipePath)
	if err != nil {
		return nil, "", err
	}
	return rec, recipePath, nil
}

// sourceLabel shortens a source URL to its final path element for
// progress display.
func sourceLabel(source recipe.Source) string {
	parsed, err := url.Parse(source.URL())
	if err != nil || path.Base(parsed.Path) == "." || path.Base(parsed.Path) == "/" {
		return source.URL()
	}
	return path.Base(parsed.Path)
}
