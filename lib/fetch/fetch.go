// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

// Package fetch streams declared recipe sources into the
// content-addressed cache.
//
// A fetch is sequential and blocking: sources are fetched one at a
// time in recipe-declared order, each transfer streamed through a
// scratch file and committed to the cache only after its bytes verify
// against the declared digest. A source already present in the cache
// (and passing validation) is not fetched again.
package fetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tetra-pkg/tetra/lib/cache"
	"github.com/tetra-pkg/tetra/lib/errdefs"
	"github.com/tetra-pkg/tetra/lib/recipe"
)

// Fetcher downloads sources into a cache. Construct with [New];
// exported fields may be adjusted before the first Fetch call.
type Fetcher struct {
	// Client is the HTTP transport. Defaults to http.DefaultClient.
	Client *http.Client

	// Progress receives transfer progress. Defaults to [NopProgress].
	Progress Progress

	// Timeout bounds a single source transfer. Zero means no bound
	// beyond the caller's context.
	Timeout time.Duration

	store      *cache.Cache
	scratchDir string
	logger     *slog.Logger
}

// New creates a Fetcher that commits into store and stages in-flight
// downloads under scratchDir. A nil logger discards log output.
func New(store *cache.Cache, scratchDir string, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Fetcher{
		Client:     http.DefaultClient,
		Progress:   NopProgress{},
		store:      store,
		scratchDir: scratchDir,
		logger:     logger,
	}
}

// FetchAll fetches every source of the recipe in declared order. The
// first failure aborts: remaining sources are not attempted.
func (f *Fetcher) FetchAll(ctx context.Context, r *recipe.Recipe) error {
	for _, source := range r.Sources {
		if err := f.Fetch(ctx, source, source.URL()); err != nil {
			return err
		}
	}
	return nil
}

// Fetch ensures one source is present and verified in the cache.
//
// A validated cache hit returns immediately. Otherwise the remote
// content is streamed into a scratch file — released on every exit
// path — and committed via the cache's atomic insert. Transport
// failures, unexpected HTTP statuses, and checksum mismatches each
// surface as their taxonomy kind; label is used for progress
// reporting only.
func (f *Fetcher) Fetch(ctx context.Context, source recipe.Source, label string) error {
	checksum := source.Checksum()

	cached, err := f.store.Validate(checksum)
	if err != nil {
		return err
	}
	if cached {
		f.logger.Debug("source already cached", "url", source.URL(), "hash", checksum)
		f.Progress.Cached(label)
		return nil
	}

	tmp, err := cache.NewTempFile(f.scratchDir, checksum, f.logger)
	if err != nil {
		return errdefs.Wrap(errdefs.IO, err, "staging download for %s", source.URL())
	}
	defer tmp.Release()

	written, err := f.download(ctx, source.URL(), label, tmp)
	if err != nil {
		return err
	}

	if err := f.store.Insert(tmp, checksum); err != nil {
		return err
	}

	// Provenance is advisory: a failed index append never fails a
	// fetch that already committed a verified blob.
	entry := cache.IndexEntry{
		Hash:      checksum,
		URL:       source.URL(),
		Size:      written,
		FetchedAt: time.Now().UTC(),
	}
	if err := f.store.AppendIndex(entry); err != nil {
		f.logger.Warn("recording cache provenance failed", "url", source.URL(), "error", err)
	}

	f.logger.Info("fetched source", "url", source.URL(), "bytes", written, "hash", checksum)
	return nil
}

// download streams the URL's content into the scratch file, reporting
// progress as bytes arrive. Returns the byte count written.
func (f *Fetcher) download(ctx context.Context, url, label string, tmp *cache.TempFile) (written int64, err error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, errdefs.Wrap(errdefs.Transport, err, "building request for %s", url)
	}

	response, err := f.Client.Do(request)
	if err != nil {
		return 0, errdefs.Wrap(errdefs.Transport, err, "fetching %s", url)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return 0, errdefs.New(errdefs.Transport, "fetching %s: unexpected status %s", url, response.Status)
	}

	f.Progress.Start(label, response.ContentLength)
	defer func() { f.Progress.Done(err) }()

	// Progress counts on the read side; the sink records its own
	// failures so a disk error is classified as IO, not Transport.
	sink := &errTrackingWriter{w: tmp}
	written, err = io.Copy(sink, &progressReader{r: response.Body, progress: f.Progress})
	if err != nil {
		if sink.err != nil {
			return written, errdefs.Wrap(errdefs.IO, sink.err, "writing download of %s", url)
		}
		return written, errdefs.Wrap(errdefs.Transport, err, "streaming %s", url)
	}

	return written, nil
}

// errTrackingWriter remembers whether a copy failure originated on
// the write side.
type errTrackingWriter struct {
	w   io.Writer
	err error
}

func (t *errTrackingWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil {
		t.err = err
	}
	return n, err
}
