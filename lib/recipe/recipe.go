// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

// Package recipe models build recipes: the YAML documents describing
// a package's provenance fields and the remote sources to fetch.
package recipe

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tetra-pkg/tetra/lib/errdefs"
)

// Recipe is a parsed recipe document.
type Recipe struct {
	Name       string
	Version    string
	License    string
	Maintainer string

	// Sources are the declared sources in document order. Fetch order
	// follows this order exactly.
	Sources []Source
}

// recipeDoc is the YAML shape of a recipe document.
type recipeDoc struct {
	Name       string      `yaml:"name"`
	Version    string      `yaml:"version"`
	License    string      `yaml:"license"`
	Maintainer string      `yaml:"maintainer"`
	Sources    []sourceDoc `yaml:"sources"`
}

// Load reads and parses the recipe document at path. Malformed YAML,
// an unknown source kind, and an invalid hash digest are all recipe
// parse errors; they name the document and the offending source. The
// declared hashes are parsed here, eagerly, so a recipe with a bad
// digest fails before any network traffic.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errdefs.Wrap(errdefs.IO, err, "reading recipe %s", path)
	}

	var doc recipeDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errdefs.Wrap(errdefs.RecipeParse, err, "recipe %s", path)
	}

	r := &Recipe{
		Name:       doc.Name,
		Version:    doc.Version,
		License:    doc.License,
		Maintainer: doc.Maintainer,
	}

	for i, source := range doc.Sources {
		parsed, err := source.toSource()
		if err != nil {
			return nil, errdefs.Wrap(errdefs.RecipeParse, err, "recipe %s: source %d", path, i)
		}
		r.Sources = append(r.Sources, parsed)
	}

	return r, nil
}

// String renders the recipe's identity line for logs and CLI output.
func (r *Recipe) String() string {
	return fmt.Sprintf("%s@%s", r.Name, r.Version)
}
