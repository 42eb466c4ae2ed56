// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/tetra-pkg/tetra/lib/codec"
	"github.com/tetra-pkg/tetra/lib/errdefs"
)

// indexFileName is the provenance log inside the cache directory. The
// name can never collide with a blob entry: blob paths always have a
// two-character fan-out directory between the cache root and the file.
const indexFileName = "index.log"

// maxIndexRecordSize bounds a single record so a corrupt length
// prefix cannot cause an absurd allocation during replay.
const maxIndexRecordSize = 1 << 20

// IndexEntry records where a cached blob came from. The index is
// purely advisory: blobs are self-describing (filename = content
// hash), so a missing or stale index never affects cache
// correctness. It serves the cache list and status commands.
type IndexEntry struct {
	// Hash is the blob's content hash.
	Hash Hash `cbor:"hash"`

	// URL is the remote source the blob was fetched from.
	URL string `cbor:"url"`

	// Size is the blob size in bytes.
	Size int64 `cbor:"size"`

	// FetchedAt is when the blob was committed to the cache.
	FetchedAt time.Time `cbor:"fetched_at"`
}

// IndexPath returns the provenance log path.
func (c *Cache) IndexPath() string {
	return filepath.Join(c.dir, indexFileName)
}

// AppendIndex appends one provenance record to the log: a 4-byte
// big-endian length prefix followed by the CBOR-encoded entry. The
// write goes through a single O_APPEND write call, so records from
// concurrent invocations do not interleave mid-record.
func (c *Cache) AppendIndex(entry IndexEntry) error {
	encoded, err := codec.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding index record: %w", err)
	}

	record := make([]byte, 4+len(encoded))
	binary.BigEndian.PutUint32(record[:4], uint32(len(encoded)))
	copy(record[4:], encoded)

	file, err := os.OpenFile(c.IndexPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errdefs.Wrap(errdefs.IO, err, "opening cache index %s", c.IndexPath())
	}
	defer file.Close()

	if _, err := file.Write(record); err != nil {
		return errdefs.Wrap(errdefs.IO, err, "appending to cache index %s", c.IndexPath())
	}
	return nil
}

// ReadIndex replays the provenance log. A missing log yields no
// entries. A truncated tail (crash mid-append) is tolerated: replay
// stops at the last complete record. Later records for the same hash
// supersede earlier ones.
func (c *Cache) ReadIndex() ([]IndexEntry, error) {
	file, err := os.Open(c.IndexPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errdefs.Wrap(errdefs.IO, err, "opening cache index %s", c.IndexPath())
	}
	defer file.Close()

	var entries []IndexEntry
	latest := make(map[Hash]int)

	for {
		var prefix [4]byte
		if _, err := io.ReadFull(file, prefix[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return nil, errdefs.Wrap(errdefs.IO, err, "reading cache index %s", c.IndexPath())
		}

		length := binary.BigEndian.Uint32(prefix[:])
		if length == 0 || length > maxIndexRecordSize {
			c.logger.Warn("cache index record has implausible length, stopping replay",
				"path", c.IndexPath(), "length", length)
			break
		}

		encoded := make([]byte, length)
		if _, err := io.ReadFull(file, encoded); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				// Torn tail from an interrupted append.
				c.logger.Warn("cache index ends mid-record, stopping replay", "path", c.IndexPath())
				break
			}
			return nil, errdefs.Wrap(errdefs.IO, err, "reading cache index %s", c.IndexPath())
		}

		var entry IndexEntry
		if err := codec.Unmarshal(encoded, &entry); err != nil {
			c.logger.Warn("skipping undecodable cache index record", "path", c.IndexPath(), "error", err)
			continue
		}

		if i, seen := latest[entry.Hash]; seen {
			entries[i] = entry
			continue
		}
		latest[entry.Hash] = len(entries)
		entries = append(entries, entry)
	}

	return entries, nil
}
