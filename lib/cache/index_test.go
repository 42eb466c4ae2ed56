// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"os"
	"testing"
	"time"
)

func TestIndexAppendAndReplay(t *testing.T) {
	c := newTestCache(t)

	entries := []IndexEntry{
		{Hash: HashBytes([]byte("a")), URL: "https://example.com/a.tar.gz", Size: 100, FetchedAt: time.Now().UTC().Truncate(time.Second)},
		{Hash: HashBytes([]byte("b")), URL: "https://example.com/b.tar.gz", Size: 200, FetchedAt: time.Now().UTC().Truncate(time.Second)},
	}
	for _, entry := range entries {
		if err := c.AppendIndex(entry); err != nil {
			t.Fatalf("AppendIndex failed: %v", err)
		}
	}

	replayed, err := c.ReadIndex()
	if err != nil {
		t.Fatalf("ReadIndex failed: %v", err)
	}
	if len(replayed) != len(entries) {
		t.Fatalf("ReadIndex returned %d entries, want %d", len(replayed), len(entries))
	}
	for i, entry := range entries {
		if replayed[i].Hash != entry.Hash {
			t.Errorf("entry %d Hash = %s, want %s", i, replayed[i].Hash, entry.Hash)
		}
		if replayed[i].URL != entry.URL {
			t.Errorf("entry %d URL = %q, want %q", i, replayed[i].URL, entry.URL)
		}
		if replayed[i].Size != entry.Size {
			t.Errorf("entry %d Size = %d, want %d", i, replayed[i].Size, entry.Size)
		}
		if !replayed[i].FetchedAt.Equal(entry.FetchedAt) {
			t.Errorf("entry %d FetchedAt = %v, want %v", i, replayed[i].FetchedAt, entry.FetchedAt)
		}
	}
}

func TestIndexMissingLog(t *testing.T) {
	c := newTestCache(t)

	entries, err := c.ReadIndex()
	if err != nil {
		t.Fatalf("ReadIndex failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("ReadIndex returned %d entries for a missing log", len(entries))
	}
}

func TestIndexToleratesTruncatedTail(t *testing.T) {
	c := newTestCache(t)

	if err := c.AppendIndex(IndexEntry{Hash: HashBytes([]byte("complete")), URL: "u", Size: 1}); err != nil {
		t.Fatal(err)
	}

	// Simulate a crash mid-append: a length prefix promising more
	// bytes than the file holds.
	file, err := os.OpenFile(c.IndexPath(), os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := file.Write([]byte{0x00, 0x00, 0x01, 0x00, 0xde, 0xad}); err != nil {
		t.Fatal(err)
	}
	file.Close()

	entries, err := c.ReadIndex()
	if err != nil {
		t.Fatalf("ReadIndex failed on a torn log: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("ReadIndex returned %d entries, want 1 (the complete record)", len(entries))
	}
}

func TestIndexLaterRecordSupersedes(t *testing.T) {
	c := newTestCache(t)

	hash := HashBytes([]byte("refetched"))
	if err := c.AppendIndex(IndexEntry{Hash: hash, URL: "https://old.example.com", Size: 1}); err != nil {
		t.Fatal(err)
	}
	if err := c.AppendIndex(IndexEntry{Hash: hash, URL: "https://new.example.com", Size: 1}); err != nil {
		t.Fatal(err)
	}

	entries, err := c.ReadIndex()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("ReadIndex returned %d entries, want 1 deduplicated", len(entries))
	}
	if entries[0].URL != "https://new.example.com" {
		t.Errorf("URL = %q, want the later record to win", entries[0].URL)
	}
}
