// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"fmt"
	"log/slog"
	"os"
)

// TempFile is a scratch file for an in-flight download, owned
// exclusively by one fetch operation. The file is created in the
// scratch directory with the expected content hash as its name prefix
// plus a random unique suffix, so two concurrent invocations fetching
// the same source never interleave writes to the same path. The final
// cache path stays purely hash-addressed.
//
// The owner must defer [TempFile.Release] immediately after creation.
// Release removes the file on every exit path unless a successful
// [Cache.Insert] already renamed it away, in which case it is a
// no-op. A failed removal is logged, never returned: cleanup must not
// mask the outcome of the operation that owned the file.
type TempFile struct {
	path   string
	file   *os.File
	closed bool
	logger *slog.Logger
}

// NewTempFile creates a scratch file in scratchDir keyed by the
// expected hash. A nil logger discards log output.
func NewTempFile(scratchDir string, key Hash, logger *slog.Logger) (*TempFile, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	file, err := os.CreateTemp(scratchDir, FormatHash(key)+"-*")
	if err != nil {
		return nil, fmt.Errorf("creating scratch file in %s: %w", scratchDir, err)
	}
	return &TempFile{path: file.Name(), file: file, logger: logger}, nil
}

// Path returns the scratch file's location.
func (t *TempFile) Path() string { return t.path }

// Write streams downloaded bytes into the scratch file.
func (t *TempFile) Write(p []byte) (int, error) {
	return t.file.Write(p)
}

// Close flushes and closes the underlying file. Idempotent; called by
// [Cache.Insert] before the rename and safe to call again from
// Release.
func (t *TempFile) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	return t.file.Close()
}

// Release closes the file if still open and removes it if it still
// exists at its scratch path. Call via defer so the guarantee holds
// on success, early return, and propagated failure alike.
func (t *TempFile) Release() {
	if err := t.Close(); err != nil {
		t.logger.Warn("closing scratch file failed", "path", t.path, "error", err)
	}
	if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
		t.logger.Warn("removing scratch file failed", "path", t.path, "error", err)
	}
}
