// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

// Package repository discovers package repositories under the tetra
// root and resolves package identifiers against them.
//
// A repository is a directory under <root>/repo containing a
// repo.yaml metadata document and a pkgs/ tree laid out as
// <firstChar>/<name>/<version>/<flavour…>/[<arch>/]recipe.yaml.
// Resolution walks that tree segment by segment so each kind of miss
// (unknown package, unknown version, unknown flavour combination,
// unpublished architecture) is reported as its own error kind.
package repository

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tetra-pkg/tetra/lib/errdefs"
)

// repoFileName is the repository metadata document.
const repoFileName = "repo.yaml"

// Repository is a discovered package repository.
type Repository struct {
	// ID is the repository's directory name under <root>/repo. It is
	// always derived from the filesystem entry; an id-like field in
	// the metadata document is ignored.
	ID string

	// Name and Description come from the metadata document.
	Name        string
	Description string

	// PackagesRoot is the repository's pkgs directory.
	PackagesRoot string
}

// repoDoc is the YAML shape of repo.yaml.
type repoDoc struct {
	Name string `yaml:"name"`
	Desc string `yaml:"desc"`
}

// Discover scans repoDir for repositories, once per process
// invocation. Directories without a repo.yaml are not repositories
// and are skipped; a missing repoDir yields an empty list. A
// malformed metadata document is a parse error naming the document.
func Discover(repoDir string) ([]Repository, error) {
	entries, err := os.ReadDir(repoDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errdefs.Wrap(errdefs.IO, err, "reading repository directory %s", repoDir)
	}

	var repos []Repository
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		docPath := filepath.Join(repoDir, entry.Name(), repoFileName)
		data, err := os.ReadFile(docPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errdefs.Wrap(errdefs.IO, err, "reading repository document %s", docPath)
		}

		var doc repoDoc
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errdefs.Wrap(errdefs.RecipeParse, err, "repository document %s", docPath)
		}

		repos = append(repos, Repository{
			ID:           entry.Name(),
			Name:         doc.Name,
			Description:  doc.Desc,
			PackagesRoot: filepath.Join(repoDir, entry.Name(), "pkgs"),
		})
	}

	return repos, nil
}

// Find returns the repository whose ID matches id.
func Find(repos []Repository, id string) (Repository, error) {
	for _, repo := range repos {
		if repo.ID == id {
			return repo, nil
		}
	}
	return Repository{}, errdefs.New(errdefs.RepositoryNotFound, "%q", id)
}
