// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

package repository

import (
	"os"
	"path/filepath"

	"github.com/tetra-pkg/tetra/lib/errdefs"
	"github.com/tetra-pkg/tetra/lib/pkgid"
)

// recipeFileName is the recipe document inside a resolved directory.
const recipeFileName = "recipe.yaml"

// Resolve walks the repository tree from repos to the recipe document
// for id and returns its path. Every distinct kind of miss is its own
// error kind, checked in walk order: unknown repository, unknown
// package, unknown version, unknown flavour combination, and finally
// the recipe document itself.
//
// Architecture handling is asymmetric. An architecture named
// explicitly in the identifier must be published by the package —
// there is no fallback. A defaulted architecture falls back to the
// architecture-less recipe when the package does not publish an
// architecture-specific one.
func Resolve(repos []Repository, id pkgid.ID) (string, error) {
	repo, err := Find(repos, id.Repo)
	if err != nil {
		return "", err
	}

	if id.Name == "" {
		return "", errdefs.New(errdefs.PackageNotFound, "%s: empty package name", id)
	}

	// <pkgs>/<firstChar>/<name> — checked as a unit: a missing shard
	// directory and a missing package directory mean the same thing.
	packageDir := filepath.Join(repo.PackagesRoot, id.Name[:1], id.Name)
	if !isDir(packageDir) {
		return "", errdefs.New(errdefs.PackageNotFound, "%s: no package %q in repository %q", id, id.Name, repo.ID)
	}

	versionDir := filepath.Join(packageDir, id.Version)
	if !isDir(versionDir) {
		return "", errdefs.New(errdefs.VersionNotFound, "%s: package %q has no version %q", id, id.Name, id.Version)
	}

	// Flavours nest in declared order; an empty list is a no-op.
	recipeDir := versionDir
	for _, flavour := range id.Flavours {
		recipeDir = filepath.Join(recipeDir, flavour)
	}
	if !isDir(recipeDir) {
		return "", errdefs.New(errdefs.FlavourNotFound, "%s: flavour combination %v not published", id, id.Flavours)
	}

	if id.ExplicitArch {
		path := filepath.Join(recipeDir, id.Arch, recipeFileName)
		if !isFile(path) {
			return "", errdefs.New(errdefs.ArchitectureNotSupplied, "%s: package does not publish a build for %q", id, id.Arch)
		}
		return path, nil
	}

	if id.Arch != "" {
		if path := filepath.Join(recipeDir, id.Arch, recipeFileName); isFile(path) {
			return path, nil
		}
	}
	if path := filepath.Join(recipeDir, recipeFileName); isFile(path) {
		return path, nil
	}

	return "", errdefs.New(errdefs.RecipeNotFound, "%s: no recipe document at %s", id, recipeDir)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
