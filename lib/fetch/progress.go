// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

package fetch

import "io"

// Progress receives transfer progress for one source fetch. The core
// has no opinion on rendering: the CLI draws a terminal bar, tests
// pass [NopProgress] or a recorder.
//
// Calls arrive strictly ordered per source: either one Cached, or one
// Start, zero or more Advance, one Done. Done receives the final
// outcome so a renderer can finish the line differently for success
// and failure.
type Progress interface {
	// Cached reports that the source was already present and verified
	// in the cache; no transfer happens.
	Cached(label string)

	// Start begins a transfer. total is the expected byte count, or
	// -1 when the server did not declare one.
	Start(label string, total int64)

	// Advance reports n additional bytes transferred.
	Advance(n int)

	// Done ends the transfer with its final outcome.
	Done(err error)
}

// NopProgress discards all progress reporting.
type NopProgress struct{}

func (NopProgress) Cached(string)       {}
func (NopProgress) Start(string, int64) {}
func (NopProgress) Advance(int)         {}
func (NopProgress) Done(error)          {}

// progressReader wraps the transport body and forwards byte counts to
// a Progress as they are read.
type progressReader struct {
	r        io.Reader
	progress Progress
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.progress.Advance(n)
	}
	return n, err
}
