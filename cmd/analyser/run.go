package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"

	httpadapter "github.com/brclimate/inmet-etl/internal/adapter/http"
	"github.com/brclimate/inmet-etl/internal/adapter/inmet"
	kafkaadapter "github.com/brclimate/inmet-etl/internal/adapter/kafka"
	"github.com/brclimate/inmet-etl/internal/adapter/zipbundle"
	"github.com/brclimate/inmet-etl/internal/aggregate"
	"github.com/brclimate/inmet-etl/internal/config"
	"github.com/brclimate/inmet-etl/internal/ingest"
	"github.com/brclimate/inmet-etl/internal/observability"
)

var (
	flagYear       int
	flagZip        string
	flagNoDownload bool
	flagOverwrite  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Ingest one year's archive and print monthly regional means",
	RunE:  runAnalysis,
}

func init() {
	runCmd.Flags().IntVar(&flagYear, "year", 0, "year of the archive to process")
	runCmd.Flags().StringVar(&flagZip, "zip", "", "path to a local archive, skips downloading")
	runCmd.Flags().BoolVar(&flagNoDownload, "no-download", false, "require a cached archive, never hit the portal")
	runCmd.Flags().BoolVar(&flagOverwrite, "overwrite", false, "re-download even if the archive is cached")
	_ = runCmd.MarkFlagRequired("year")
	rootCmd.AddCommand(runCmd)
}

func runAnalysis(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ing := ingest.New(logger, metrics, cfg.Workers)

	// Operational endpoint, enabled only when an address is configured. A
	// batch run does not need it; a scheduled run under an orchestrator does.
	if cfg.HTTPAddr != "" {
		srv := httpadapter.NewServer(cfg.HTTPAddr, ing, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown error", "error", err)
			}
		}()
	}

	archivePath, err := resolveArchive(ctx, cfg, logger)
	if err != nil {
		return err
	}

	bundle, err := zipbundle.Open(archivePath)
	if err != nil {
		return err
	}
	defer bundle.Close()

	dataset, report, err := ing.Ingest(ctx, bundle)
	if report != nil {
		logger.Info("ingestion finished",
			"files_processed", report.FilesProcessed,
			"files_skipped", report.FilesSkipped,
			"rows", report.RowCount,
			"rows_dropped", report.RowsDropped,
			"duration", report.Duration,
		)
		for _, f := range report.Failures {
			logger.Warn("station file failed", "entry", f.Name, "error", f.Err)
		}
	}
	if err != nil {
		return fmt.Errorf("ingest %s: %w", archivePath, err)
	}

	if cfg.ExportEnabled {
		writer := kafkaadapter.NewWriter(cfg, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		exported, err := writer.ExportDataset(ctx, dataset)
		metrics.RowsExported.Add(float64(exported))
		if err != nil {
			return fmt.Errorf("export dataset: %w", err)
		}
	}

	entries := aggregate.MonthlyRegionalMeans(dataset, aggregate.PortugueseMonths)
	renderReport(os.Stdout, flagYear, entries)
	return nil
}

// resolveArchive produces a local archive path from the flags: an explicit
// --zip wins, --no-download requires the cached file, otherwise the portal
// client fetches (or reuses) the year's archive.
func resolveArchive(ctx context.Context, cfg *config.Config, logger *slog.Logger) (string, error) {
	if flagZip != "" {
		return flagZip, nil
	}

	if flagNoDownload {
		path := filepath.Join(cfg.DataDir, fmt.Sprintf("%d.zip", flagYear))
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("--no-download set but archive missing: %w", err)
		}
		logger.Info("using cached archive", "path", path)
		return path, nil
	}

	client := inmet.NewClient(cfg.BaseURL, cfg.DownloadTimeout, logger)
	return client.FetchYear(ctx, flagYear, cfg.DataDir, flagOverwrite)
}

// renderReport prints the aggregation in reading order: regions alphabetical,
// months ascending inside each region.
func renderReport(w io.Writer, year int, entries []aggregate.Entry) {
	fmt.Fprintf(w, "--- Médias de Temperatura e Umidade para %d ---\n", year)

	currentRegion := ""
	for _, e := range entries {
		if e.Region != currentRegion {
			currentRegion = e.Region
			fmt.Fprintf(w, "\nRegião %s:\n", e.Region)
		}
		fmt.Fprintf(w, "  %s (temperatura %s°C / umidade %s%%)\n",
			capitalize(e.MonthName), formatMean(e.MeanTemperature), formatMean(e.MeanHumidity))
	}
}

// formatMean renders a mean, or "--" for a month where every row left the
// field undefined.
func formatMean(v *float64) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf("%.2f", *v)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
