// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

// Package pkgid implements the package identifier grammar. An
// identifier is the short string a user supplies to name a package
// build:
//
//	repo/name@version:flavour1:flavour2#arch
//
// Every segment except the name is optional. The repo defaults to
// "default", the version to "latest", the flavour list to empty, and
// the architecture to the caller-supplied default (normally read from
// the root's arch file).
//
// Parsing is a pure string transform with no I/O and no failure mode:
// malformed input falls through to defaults and surfaces later as a
// resolution error naming the identifier. See [Parse] for the exact
// grammar, including the deliberate asymmetry between '@' and ':'.
package pkgid

import "strings"

// ID is a parsed package identifier. IDs are immutable once parsed;
// the zero value is not meaningful.
type ID struct {
	// Repo is the repository to resolve against ("default" when the
	// identifier carries no repo/ prefix).
	Repo string

	// Name is the bare package name.
	Name string

	// Version is the requested version ("latest" when absent).
	Version string

	// Flavours are build-variant tags in declared order. Order is
	// significant: each flavour is a nested directory level on the
	// path to the recipe.
	Flavours []string

	// Arch is the requested architecture. Empty means no architecture
	// was requested and none was supplied as a default; the resolver
	// then falls back to the architecture-less recipe.
	Arch string

	// ExplicitArch is true when the architecture came from a #arch
	// suffix in the input rather than from the default. Explicit
	// architectures never fall back during resolution.
	ExplicitArch bool
}

// Parse parses a raw identifier string. defaultArch is used when the
// input has no #arch suffix; pass "" when no default is known.
//
// The grammar is applied left to right:
//
//  1. Everything after the last '#' is the architecture.
//  2. On the remainder, everything before the first '/' is the repo.
//  3. On the remainder, the first '@' separates the name from a
//     combined "version:flavour…" tail. When there is no '@' but
//     there is a ':', the name ends at the first ':' and the version
//     is forced to "latest" — a bare ":flavour" tail can never name a
//     version, even if its first segment looks like one.
//  4. The tail splits on ':' into the version followed by flavours.
//
// Parse never fails. An empty name is allowed through and is rejected
// by the resolver as a package-not-found.
func Parse(raw string, defaultArch string) ID {
	id := ID{Repo: "default", Version: "latest"}

	rest := raw
	if pos := strings.LastIndexByte(rest, '#'); pos >= 0 {
		id.Arch = rest[pos+1:]
		id.ExplicitArch = true
		rest = rest[:pos]
	} else {
		id.Arch = defaultArch
	}

	if pos := strings.IndexByte(rest, '/'); pos >= 0 {
		id.Repo = rest[:pos]
		rest = rest[pos+1:]
	}

	var tail string
	switch atPos, colonPos := strings.IndexByte(rest, '@'), strings.IndexByte(rest, ':'); {
	case atPos >= 0:
		id.Name = rest[:atPos]
		tail = rest[atPos+1:]
	case colonPos >= 0:
		// Flavours without a version: the tail is reinterpreted with
		// an implicit "latest" version.
		id.Name = rest[:colonPos]
		tail = "latest:" + rest[colonPos+1:]
	default:
		id.Name = rest
		tail = "latest"
	}

	parts := strings.Split(tail, ":")
	if parts[0] != "" {
		id.Version = parts[0]
	}
	if len(parts) > 1 {
		id.Flavours = parts[1:]
	}

	return id
}

// String renders the canonical identifier form, always including the
// repo and version segments. The architecture is included only when
// it was explicit in the input.
func (id ID) String() string {
	var b strings.Builder
	b.WriteString(id.Repo)
	b.WriteByte('/')
	b.WriteString(id.Name)
	b.WriteByte('@')
	b.WriteString(id.Version)
	for _, flavour := range id.Flavours {
		b.WriteByte(':')
		b.WriteString(flavour)
	}
	if id.ExplicitArch {
		b.WriteByte('#')
		b.WriteString(id.Arch)
	}
	return b.String()
}
