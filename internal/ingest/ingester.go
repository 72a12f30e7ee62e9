// Package ingest turns a yearly station bundle into one unified dataset.
//
// Files are decoded concurrently; results merge after all workers join, in
// bundle discovery order, so one file's rows never interleave with another's.
// Per-file failures are logged and counted but never abort the pass: one
// corrupt station file must not invalidate the year's dataset.
package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/charmap"

	"github.com/brclimate/inmet-etl/internal/domain"
	"github.com/brclimate/inmet-etl/internal/observability"
)

// Entry is one independently openable file inside a bundle.
type Entry interface {
	Name() string
	IsDir() bool
	Open() (io.ReadCloser, error)
}

// Bundle is a collection of named station file entries for one year.
// The bundle supplier owns transport and container format; the ingester only
// sees openable entries.
type Bundle interface {
	Entries() []Entry
}

var (
	// ErrNoEligibleEntries means the bundle opened fine but holds no station
	// files. Distinct from an unreadable bundle, which surfaces as the
	// bundle adapter's open error.
	ErrNoEligibleEntries = errors.New("bundle contains no eligible station files")

	// ErrEmptyDataset means every eligible file was skipped or decoded to
	// zero rows. Aggregating an empty dataset is undefined; callers stop here.
	ErrEmptyDataset = errors.New("no rows survived ingestion")
)

// Entries under this prefix are zip resource forks, not station data.
const macOSMetadataPrefix = "__MACOSX"

// FileFailure records one station file that could not be processed.
type FileFailure struct {
	Name string
	Err  error
}

// Report summarizes one ingestion pass.
type Report struct {
	FilesProcessed int
	FilesSkipped   int
	RowCount       int
	RowsDropped    int
	Failures       []FileFailure
	Duration       time.Duration
	CompletedAt    time.Time
}

// Ingester decodes eligible bundle entries into a unified dataset.
type Ingester struct {
	logger  *slog.Logger
	metrics *observability.Metrics
	workers int
	ready   atomic.Bool
}

// New creates an Ingester with a decode fan-out of workers.
func New(logger *slog.Logger, metrics *observability.Metrics, workers int) *Ingester {
	if workers < 1 {
		workers = 1
	}
	return &Ingester{
		logger:  logger,
		metrics: metrics,
		workers: workers,
	}
}

// CheckReadiness returns nil once a pass has produced a non-empty dataset.
func (ing *Ingester) CheckReadiness(_ context.Context) error {
	if !ing.ready.Load() {
		return errors.New("no ingestion pass has completed yet")
	}
	return nil
}

// fileResult holds one entry's decoded output. Results are slotted by entry
// index so the merged dataset preserves bundle discovery order regardless of
// worker scheduling.
type fileResult struct {
	station *domain.StationDescriptor
	rows    []domain.MeasurementRow
	dropped int
	failure *FileFailure
}

// Ingest processes every eligible entry of the bundle and returns the unified
// dataset plus a run report. Cancellation is cooperative between files: a
// file already being decoded completes (or fails) atomically, queued files
// are abandoned and the context error is returned. The report is non-nil
// whenever the pass ran, including the ErrEmptyDataset case.
func (ing *Ingester) Ingest(ctx context.Context, bundle Bundle) (*domain.UnifiedDataset, *Report, error) {
	start := clock.Now()

	ing.metrics.IngestRunning.Set(1)
	defer ing.metrics.IngestRunning.Set(0)

	eligible := eligibleEntries(bundle.Entries())
	if len(eligible) == 0 {
		return nil, nil, ErrNoEligibleEntries
	}
	ing.logger.Info("ingestion started", "entries", len(eligible), "workers", ing.workers)

	results := make([]fileResult, len(eligible))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ing.workers)
	for i, entry := range eligible {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = ing.processEntry(entry)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		ing.logger.Info("ingestion cancelled", "reason", err)
		return nil, nil, err
	}

	dataset := domain.NewUnifiedDataset()
	report := &Report{}
	for _, res := range results {
		switch {
		case res.failure != nil:
			report.Failures = append(report.Failures, *res.failure)
			report.FilesSkipped++
		case len(res.rows) == 0:
			report.FilesSkipped++
		default:
			dataset.Append(res.station, res.rows)
			report.FilesProcessed++
		}
		report.RowsDropped += res.dropped
	}

	report.RowCount = dataset.Len()
	report.CompletedAt = clock.Now()
	report.Duration = report.CompletedAt.Sub(start)

	if dataset.Len() == 0 {
		return nil, report, ErrEmptyDataset
	}

	ing.ready.Store(true)
	return dataset, report, nil
}

// processEntry decodes one station file. All failures are contained here:
// they are logged, counted, and reported, never propagated.
func (ing *Ingester) processEntry(entry Entry) fileResult {
	start := time.Now()

	station, rows, dropped, err := decodeEntry(entry)
	if err != nil {
		ing.logger.Warn("skipping station file", "entry", entry.Name(), "error", err)
		ing.metrics.FilesSkipped.Inc()
		return fileResult{failure: &FileFailure{Name: entry.Name(), Err: err}}
	}

	ing.metrics.FileProcessingDuration.Observe(time.Since(start).Seconds())
	ing.metrics.RowsDropped.Add(float64(dropped))

	if len(rows) == 0 {
		ing.logger.Debug("station file has no usable rows", "entry", entry.Name())
		ing.metrics.FilesSkipped.Inc()
		return fileResult{dropped: dropped}
	}

	ing.metrics.FilesProcessed.Inc()
	ing.metrics.RowsDecoded.Add(float64(len(rows)))
	ing.logger.Debug("station file decoded",
		"entry", entry.Name(),
		"station", station.Name,
		"rows", len(rows),
		"dropped", dropped,
	)
	return fileResult{station: station, rows: rows, dropped: dropped}
}

// decodeEntry opens the entry, decodes its Latin-1 stream, and runs the
// header and body readers back to back on the same stream.
func decodeEntry(entry Entry) (*domain.StationDescriptor, []domain.MeasurementRow, int, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("open entry: %w", err)
	}
	defer rc.Close()

	r := bufio.NewReader(charmap.ISO8859_1.NewDecoder().Reader(rc))

	station, err := domain.ReadStationMetadata(r)
	if err != nil {
		return nil, nil, 0, err
	}

	rows, dropped, err := domain.DecodeRecords(r)
	if err != nil {
		return nil, nil, 0, err
	}
	return station, rows, dropped, nil
}

// eligibleEntries filters the bundle down to station files: non-directory
// entries with a .csv suffix, excluding zip platform metadata.
func eligibleEntries(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".csv") {
			continue
		}
		if strings.HasPrefix(name, macOSMetadataPrefix) {
			continue
		}
		out = append(out, e)
	}
	return out
}
