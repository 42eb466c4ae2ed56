// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

// Package cache implements the content-addressed blob store.
//
// Every blob lives at <dir>/<hex[0:2]>/<hex>, where hex is the
// BLAKE3 digest of the blob's own bytes. The two-character prefix is
// a 256-way fan-out that bounds per-directory entry counts. The
// invariant the store maintains is that a blob's filename always
// equals the hash of its content: validation rehashes the full file,
// and a blob that fails to match is purged on sight rather than ever
// being served.
//
// Blobs enter the cache through [Cache.Insert], which atomically
// renames a fully written scratch file into place and re-verifies it.
// The scratch lifecycle itself is handled by [TempFile].
package cache

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tetra-pkg/tetra/lib/errdefs"
)

// Cache is a content-addressed blob store rooted at a single
// directory. Methods are safe for use by a single process invocation;
// there is no cross-process locking.
type Cache struct {
	dir    string
	logger *slog.Logger
}

// New creates a Cache rooted at dir. The directory is created if it
// does not exist. A nil logger discards log output.
func New(dir string, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errdefs.Wrap(errdefs.IO, err, "creating cache directory %s", dir)
	}
	return &Cache{dir: dir, logger: logger}, nil
}

// Dir returns the cache root directory.
func (c *Cache) Dir() string { return c.dir }

// BlobPath returns the deterministic storage path for a hash:
// <dir>/<hex[0:2]>/<hex>.
func (c *Cache) BlobPath(hash Hash) string {
	hex := FormatHash(hash)
	return filepath.Join(c.dir, hex[:2], hex)
}

// Validate reports whether a verified blob for hash is present.
//
// Absence is a plain miss (false, nil). A present blob is rehashed in
// full; on mismatch the blob is purged — a corrupted or stale entry
// is never valid cache state — and the call reports a miss. Only
// unexpected filesystem failures produce an error.
func (c *Cache) Validate(hash Hash) (bool, error) {
	path := c.BlobPath(hash)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errdefs.Wrap(errdefs.IO, err, "stat cache entry %s", path)
	}
	if info.IsDir() {
		return false, errdefs.New(errdefs.IO, "cache entry %s is a directory", path)
	}

	computed, err := HashFile(path)
	if err != nil {
		return false, errdefs.Wrap(errdefs.IO, err, "hashing cache entry %s", path)
	}

	if computed != hash {
		// Self-healing: purge the corrupt entry and treat it as a miss.
		if err := os.Remove(path); err != nil {
			return false, errdefs.Wrap(errdefs.IO, err, "purging corrupt cache entry %s", path)
		}
		c.logger.Warn("purged corrupt cache entry",
			"path", path,
			"expected", FormatHash(hash),
			"actual", FormatHash(computed))
		return false, nil
	}

	return true, nil
}

// Insert commits a fully written scratch file into the cache under
// expected. The fan-out directory is created if needed, the scratch
// file is atomically renamed into place (replacing any prior content
// at that path), and the blob is re-verified.
//
// On verification failure the relocated blob is purged before the
// checksum-mismatch error is returned — the cache never stably holds
// a blob whose content does not match its name. The scratch file no
// longer exists at its original path after a successful rename, so
// the owner's deferred release becomes a no-op.
func (c *Cache) Insert(tmp *TempFile, expected Hash) error {
	if err := tmp.Close(); err != nil {
		return errdefs.Wrap(errdefs.IO, err, "closing scratch file %s", tmp.Path())
	}

	path := c.BlobPath(expected)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errdefs.Wrap(errdefs.IO, err, "creating cache fan-out directory %s", filepath.Dir(path))
	}

	if err := os.Rename(tmp.Path(), path); err != nil {
		return errdefs.Wrap(errdefs.IO, err, "committing %s to cache", tmp.Path())
	}

	// Re-verify the relocated blob. Validate purges on mismatch, so a
	// miss here means the bad blob is already gone.
	ok, err := c.Validate(expected)
	if err != nil {
		return fmt.Errorf("verifying inserted blob: %w", err)
	}
	if !ok {
		return errdefs.New(errdefs.ChecksumMismatch, "inserted blob does not hash to %s", FormatHash(expected))
	}

	return nil
}

// Walk calls fn for every blob in the store, passing the hash parsed
// from the filename and the blob path. Files that do not look like
// blob entries (wrong name length, non-hex, the index log) are
// skipped. Used by cache maintenance commands.
func (c *Cache) Walk(fn func(hash Hash, path string) error) error {
	prefixes, err := os.ReadDir(c.dir)
	if err != nil {
		return errdefs.Wrap(errdefs.IO, err, "reading cache directory %s", c.dir)
	}

	for _, prefix := range prefixes {
		if !prefix.IsDir() || len(prefix.Name()) != 2 {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(c.dir, prefix.Name()))
		if err != nil {
			return errdefs.Wrap(errdefs.IO, err, "reading cache fan-out directory %s", prefix.Name())
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			hash, err := ParseHash(entry.Name())
			if err != nil {
				continue
			}
			if err := fn(hash, filepath.Join(c.dir, prefix.Name(), entry.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}
