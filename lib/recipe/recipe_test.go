// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

package recipe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tetra-pkg/tetra/lib/cache"
	"github.com/tetra-pkg/tetra/lib/errdefs"
)

func writeRecipe(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipe.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCompleteRecipe(t *testing.T) {
	first := cache.HashBytes([]byte("first tarball"))
	second := cache.HashBytes([]byte("second tarball"))

	path := writeRecipe(t, `
name: zlib
version: "1.3.1"
license: Zlib
maintainer: someone@example.com
sources:
  - url: https://example.com/zlib-1.3.1.tar.gz
    hash: `+cache.FormatHash(first)+`
  - kind: remote
    url: https://example.com/zlib-extras.tar.gz
    hash: `+cache.FormatHash(second)+`
`)

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if r.Name != "zlib" {
		t.Errorf("Name = %q, want %q", r.Name, "zlib")
	}
	if r.Version != "1.3.1" {
		t.Errorf("Version = %q, want %q", r.Version, "1.3.1")
	}
	if r.License != "Zlib" {
		t.Errorf("License = %q, want %q", r.License, "Zlib")
	}
	if r.Maintainer != "someone@example.com" {
		t.Errorf("Maintainer = %q, want %q", r.Maintainer, "someone@example.com")
	}

	if len(r.Sources) != 2 {
		t.Fatalf("len(Sources) = %d, want 2", len(r.Sources))
	}
	if r.Sources[0].URL() != "https://example.com/zlib-1.3.1.tar.gz" {
		t.Errorf("Sources[0].URL = %q", r.Sources[0].URL())
	}
	if r.Sources[0].Checksum() != first {
		t.Error("Sources[0].Checksum does not match the declared digest")
	}
	if r.Sources[1].Checksum() != second {
		t.Error("Sources[1].Checksum does not match the declared digest")
	}
}

func TestLoadRecipeWithoutSources(t *testing.T) {
	path := writeRecipe(t, `
name: headers-only
version: "1.0"
license: MIT
maintainer: someone@example.com
`)

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(r.Sources) != 0 {
		t.Errorf("len(Sources) = %d, want 0", len(r.Sources))
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeRecipe(t, "name: [unclosed")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load succeeded on malformed YAML")
	}
	if !errdefs.IsKind(err, errdefs.RecipeParse) {
		t.Errorf("error kind = %v, want RecipeParse", errdefs.KindOf(err))
	}
}

func TestLoadInvalidHashDigest(t *testing.T) {
	path := writeRecipe(t, `
name: broken
version: "1.0"
sources:
  - url: https://example.com/broken.tar.gz
    hash: not-a-hex-digest
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load succeeded with an invalid hash digest")
	}
	if !errdefs.IsKind(err, errdefs.RecipeParse) {
		t.Errorf("error kind = %v, want RecipeParse", errdefs.KindOf(err))
	}
	if !strings.Contains(err.Error(), "broken.tar.gz") {
		t.Errorf("error %q does not name the offending source", err)
	}
}

func TestLoadUnknownSourceKind(t *testing.T) {
	path := writeRecipe(t, `
name: future
version: "1.0"
sources:
  - kind: carrier-pigeon
    url: https://example.com/x
    hash: `+cache.FormatHash(cache.HashBytes([]byte("x")))+`
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load succeeded with an unknown source kind")
	}
	if !errdefs.IsKind(err, errdefs.RecipeParse) {
		t.Errorf("error kind = %v, want RecipeParse", errdefs.KindOf(err))
	}
}

func TestLoadMissingSourceURL(t *testing.T) {
	path := writeRecipe(t, `
name: broken
version: "1.0"
sources:
  - hash: `+cache.FormatHash(cache.HashBytes([]byte("x")))+`
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load succeeded with a url-less remote source")
	}
}
