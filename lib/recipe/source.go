// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

package recipe

import (
	"fmt"

	"github.com/tetra-pkg/tetra/lib/cache"
)

// Source is one declared source in a recipe: something with a URL to
// fetch and an expected content hash to verify against.
//
// The set of source kinds is closed: every variant lives in this
// package (enforced by the unexported marker method), and consumers
// can exhaustively type-switch over them. Today the only kind is
// [RemoteSource]; mirror lists and local paths are plausible future
// variants behind the same capability pair.
type Source interface {
	// URL is where the source's bytes come from.
	URL() string

	// Checksum is the declared content hash. Verification of every
	// fetched byte happens against this digest.
	Checksum() cache.Hash

	isSource()
}

// RemoteSource is a source fetched over HTTP(S) whose digest is
// declared verbatim in the recipe document as hex text.
type RemoteSource struct {
	url      string
	checksum cache.Hash
}

// NewRemoteSource creates a remote source with an already parsed
// digest. Used by tests; recipe documents go through [Load].
func NewRemoteSource(url string, checksum cache.Hash) RemoteSource {
	return RemoteSource{url: url, checksum: checksum}
}

// URL returns the remote location.
func (s RemoteSource) URL() string { return s.url }

// Checksum returns the declared digest.
func (s RemoteSource) Checksum() cache.Hash { return s.checksum }

func (s RemoteSource) isSource() {}

// sourceDoc is the YAML shape of one sources[] entry. The kind field
// is optional and defaults to "remote", the only kind today.
type sourceDoc struct {
	Kind string `yaml:"kind"`
	URL  string `yaml:"url"`
	Hash string `yaml:"hash"`
}

// toSource converts a document entry into its tagged variant.
func (d sourceDoc) toSource() (Source, error) {
	switch d.Kind {
	case "", "remote":
		if d.URL == "" {
			return nil, fmt.Errorf("remote source has no url")
		}
		checksum, err := cache.ParseHash(d.Hash)
		if err != nil {
			return nil, fmt.Errorf("remote source %s: %w", d.URL, err)
		}
		return RemoteSource{url: d.URL, checksum: checksum}, nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", d.Kind)
	}
}
