// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides the tetra root configuration.
//
// The configuration is constructed once at startup by [Load] and
// passed explicitly to every component that needs it — there is no
// package-level state and no hidden environment lookups past load
// time. The root directory is fixed to /var/tetra in production
// builds; development builds (the default) honor the TETRA_ROOT
// environment variable so tests and local work can point at a
// scratch tree. Build with -tags production to compile the override
// out entirely.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultRoot is the production root directory.
const DefaultRoot = "/var/tetra"

// DefaultFetchTimeout bounds a single source download. Zero disables
// the timeout; the CLI exposes it via --fetch-timeout.
const DefaultFetchTimeout = 15 * time.Minute

// Config holds everything the resolver, cache, and fetcher need to
// locate on-disk state. Construct it with [Load]; the struct is plain
// data and safe to copy.
type Config struct {
	// Root is the base directory for all tetra state.
	Root string

	// DefaultArch is the machine's default architecture, read from
	// <root>/arch. Empty when the arch file is absent; resolution then
	// only considers architecture-less recipes unless the identifier
	// names an architecture explicitly.
	DefaultArch string

	// FetchTimeout bounds each individual source download. Zero means
	// no timeout.
	FetchTimeout time.Duration
}

// Load builds the configuration: resolves the root directory for the
// current build mode and reads the default architecture file. A
// missing arch file is not an error; any other read failure is.
func Load() (*Config, error) {
	cfg := &Config{
		Root:         rootDir(),
		FetchTimeout: DefaultFetchTimeout,
	}

	data, err := os.ReadFile(cfg.ArchFile())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading arch file %s: %w", cfg.ArchFile(), err)
		}
	} else {
		cfg.DefaultArch = strings.TrimSpace(string(data))
	}

	return cfg, nil
}

// ArchFile is the plain-text default architecture file.
func (c *Config) ArchFile() string { return filepath.Join(c.Root, "arch") }

// RepoDir is the directory holding one subdirectory per repository.
func (c *Config) RepoDir() string { return filepath.Join(c.Root, "repo") }

// CacheDir is the content-addressed blob store.
func (c *Config) CacheDir() string { return filepath.Join(c.Root, "cache") }

// ScratchDir holds in-flight download scratch files.
func (c *Config) ScratchDir() string { return filepath.Join(c.Root, "tmp") }

// EnsureLayout creates the mutable directories (cache, tmp) if they
// do not exist. The repo tree is provisioned externally and is not
// created here.
func (c *Config) EnsureLayout() error {
	for _, dir := range []string{c.CacheDir(), c.ScratchDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}
