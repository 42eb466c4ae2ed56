// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReadsArchFile(t *testing.T) {
	root := t.TempDir()
	t.Setenv("TETRA_ROOT", root)

	if err := os.WriteFile(filepath.Join(root, "arch"), []byte("x86_64\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Root != root {
		t.Errorf("Root = %q, want %q", cfg.Root, root)
	}
	if cfg.DefaultArch != "x86_64" {
		t.Errorf("DefaultArch = %q, want %q (trimmed)", cfg.DefaultArch, "x86_64")
	}
}

func TestLoadMissingArchFile(t *testing.T) {
	t.Setenv("TETRA_ROOT", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultArch != "" {
		t.Errorf("DefaultArch = %q, want empty when the arch file is absent", cfg.DefaultArch)
	}
}

func TestPathLayout(t *testing.T) {
	cfg := &Config{Root: "/var/tetra"}

	if got, want := cfg.RepoDir(), "/var/tetra/repo"; got != want {
		t.Errorf("RepoDir = %q, want %q", got, want)
	}
	if got, want := cfg.CacheDir(), "/var/tetra/cache"; got != want {
		t.Errorf("CacheDir = %q, want %q", got, want)
	}
	if got, want := cfg.ScratchDir(), "/var/tetra/tmp"; got != want {
		t.Errorf("ScratchDir = %q, want %q", got, want)
	}
	if got, want := cfg.ArchFile(), "/var/tetra/arch"; got != want {
		t.Errorf("ArchFile = %q, want %q", got, want)
	}
}

func TestEnsureLayout(t *testing.T) {
	cfg := &Config{Root: t.TempDir()}

	if err := cfg.EnsureLayout(); err != nil {
		t.Fatalf("EnsureLayout failed: %v", err)
	}

	for _, dir := range []string{cfg.CacheDir(), cfg.ScratchDir()} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("directory %s does not exist: %v", dir, err)
		} else if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}

	// Idempotent.
	if err := cfg.EnsureLayout(); err != nil {
		t.Fatalf("second EnsureLayout failed: %v", err)
	}
}
