// Package zipbundle adapts a yearly zip archive to the ingest.Bundle
// interface. The ingester never sees zip internals, only named openable
// entries.
package zipbundle

import (
	"archive/zip"
	"fmt"
	"io"

	"github.com/brclimate/inmet-etl/internal/ingest"
)

// Bundle exposes a zip archive's files as ingest entries.
type Bundle struct {
	entries []ingest.Entry
	closer  io.Closer
}

// Open opens the yearly archive at path. Failure here is the fatal
// bundle-level error; per-entry problems surface later, entry by entry.
func Open(path string) (*Bundle, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open bundle %s: %w", path, err)
	}
	return &Bundle{entries: wrapEntries(&zr.Reader), closer: zr}, nil
}

// New wraps an already-open zip reader, used by tests and fixture tooling.
func New(zr *zip.Reader) *Bundle {
	return &Bundle{entries: wrapEntries(zr)}
}

// Entries returns every archive entry in archive order. Eligibility
// filtering is the ingester's concern.
func (b *Bundle) Entries() []ingest.Entry {
	return b.entries
}

// Close releases the underlying archive file, if any.
func (b *Bundle) Close() error {
	if b.closer != nil {
		return b.closer.Close()
	}
	return nil
}

func wrapEntries(zr *zip.Reader) []ingest.Entry {
	entries := make([]ingest.Entry, 0, len(zr.File))
	for _, f := range zr.File {
		entries = append(entries, zipEntry{f: f})
	}
	return entries
}

type zipEntry struct {
	f *zip.File
}

func (e zipEntry) Name() string { return e.f.Name }

func (e zipEntry) IsDir() bool { return e.f.FileInfo().IsDir() }

func (e zipEntry) Open() (io.ReadCloser, error) { return e.f.Open() }
