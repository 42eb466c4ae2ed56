// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

package pkgid

import (
	"reflect"
	"testing"
)

func TestParseFullForm(t *testing.T) {
	id := Parse("myrepo/foo@1.2:flavA:flavB#arm64", "x86_64")

	if id.Repo != "myrepo" {
		t.Errorf("Repo = %q, want %q", id.Repo, "myrepo")
	}
	if id.Name != "foo" {
		t.Errorf("Name = %q, want %q", id.Name, "foo")
	}
	if id.Version != "1.2" {
		t.Errorf("Version = %q, want %q", id.Version, "1.2")
	}
	if want := []string{"flavA", "flavB"}; !reflect.DeepEqual(id.Flavours, want) {
		t.Errorf("Flavours = %v, want %v", id.Flavours, want)
	}
	if id.Arch != "arm64" {
		t.Errorf("Arch = %q, want %q", id.Arch, "arm64")
	}
	if !id.ExplicitArch {
		t.Error("ExplicitArch = false, want true")
	}
}

func TestParseBareName(t *testing.T) {
	id := Parse("foo", "")

	if id.Repo != "default" {
		t.Errorf("Repo = %q, want %q", id.Repo, "default")
	}
	if id.Name != "foo" {
		t.Errorf("Name = %q, want %q", id.Name, "foo")
	}
	if id.Version != "latest" {
		t.Errorf("Version = %q, want %q", id.Version, "latest")
	}
	if len(id.Flavours) != 0 {
		t.Errorf("Flavours = %v, want empty", id.Flavours)
	}
	if id.Arch != "" {
		t.Errorf("Arch = %q, want empty", id.Arch)
	}
	if id.ExplicitArch {
		t.Error("ExplicitArch = true, want false")
	}
}

func TestParseFlavourWithoutVersion(t *testing.T) {
	// A ':' with no '@' can never introduce a version: the version is
	// forced to "latest" and the colon tail becomes the flavour list,
	// even when the first segment looks like a version string.
	id := Parse("foo:flavA", "")

	if id.Version != "latest" {
		t.Errorf("Version = %q, want %q", id.Version, "latest")
	}
	if want := []string{"flavA"}; !reflect.DeepEqual(id.Flavours, want) {
		t.Errorf("Flavours = %v, want %v", id.Flavours, want)
	}

	id = Parse("foo:1.2:flavA", "")
	if id.Version != "latest" {
		t.Errorf("Version = %q, want %q (colon segments are never versions)", id.Version, "latest")
	}
	if want := []string{"1.2", "flavA"}; !reflect.DeepEqual(id.Flavours, want) {
		t.Errorf("Flavours = %v, want %v", id.Flavours, want)
	}
}

func TestParseVersionWithoutFlavours(t *testing.T) {
	id := Parse("r/n@v", "")

	if id.Repo != "r" || id.Name != "n" {
		t.Errorf("Repo/Name = %q/%q, want r/n", id.Repo, id.Name)
	}
	if id.Version != "v" {
		t.Errorf("Version = %q, want %q", id.Version, "v")
	}
	if len(id.Flavours) != 0 {
		t.Errorf("Flavours = %v, want empty", id.Flavours)
	}
}

func TestParseDefaultArch(t *testing.T) {
	id := Parse("foo", "riscv64")

	if id.Arch != "riscv64" {
		t.Errorf("Arch = %q, want %q", id.Arch, "riscv64")
	}
	if id.ExplicitArch {
		t.Error("ExplicitArch = true for a defaulted arch, want false")
	}
}

func TestParseLastHashWins(t *testing.T) {
	// The architecture separator is the last '#', so a '#' inside an
	// earlier segment stays with that segment.
	id := Parse("weird#name#arm64", "")

	if id.Name != "weird#name" {
		t.Errorf("Name = %q, want %q", id.Name, "weird#name")
	}
	if id.Arch != "arm64" {
		t.Errorf("Arch = %q, want %q", id.Arch, "arm64")
	}
}

func TestParseEmptyVersionSegment(t *testing.T) {
	// "foo@" leaves the version segment empty, which falls back to
	// "latest".
	id := Parse("foo@", "")

	if id.Version != "latest" {
		t.Errorf("Version = %q, want %q", id.Version, "latest")
	}
}

func TestParseEmptyName(t *testing.T) {
	// Parse never fails: an empty name is allowed through and rejected
	// later by the resolver.
	id := Parse("", "")

	if id.Name != "" {
		t.Errorf("Name = %q, want empty", id.Name)
	}
	if id.Repo != "default" || id.Version != "latest" {
		t.Errorf("Repo/Version = %q/%q, want default/latest", id.Repo, id.Version)
	}
}

func TestStringRoundtrip(t *testing.T) {
	id := Parse("myrepo/foo@1.2:flavA:flavB#arm64", "")

	if got, want := id.String(), "myrepo/foo@1.2:flavA:flavB#arm64"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	// Defaulted segments are rendered explicitly, except the arch.
	id = Parse("foo", "x86_64")
	if got, want := id.String(), "default/foo@latest"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
