package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// ingestion pipeline.
type Metrics struct {
	FilesProcessed prometheus.Counter
	FilesSkipped   prometheus.Counter
	RowsDecoded    prometheus.Counter
	RowsDropped    prometheus.Counter
	RowsExported   prometheus.Counter
	IngestRunning  prometheus.Gauge

	FileProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FilesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "inmet_etl",
			Name:      "files_processed_total",
			Help:      "Station files decoded into at least one row.",
		}),
		FilesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "inmet_etl",
			Name:      "files_skipped_total",
			Help:      "Station files skipped: bad header, processing error, or no usable rows.",
		}),
		RowsDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "inmet_etl",
			Name:      "rows_decoded_total",
			Help:      "Normalized measurement rows appended to the dataset.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "inmet_etl",
			Name:      "rows_dropped_total",
			Help:      "Body rows discarded: all fields undefined or unparsable timestamp.",
		}),
		RowsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "inmet_etl",
			Name:      "rows_exported_total",
			Help:      "Normalized rows published to the Kafka export topic.",
		}),
		IngestRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "inmet_etl",
			Name:      "ingest_running",
			Help:      "1 while an ingestion pass is active, 0 otherwise.",
		}),
		FileProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "inmet_etl",
			Name:      "file_processing_duration_seconds",
			Help:      "Duration of decoding one station file, header and body.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}),
	}

	prometheus.MustRegister(
		m.FilesProcessed,
		m.FilesSkipped,
		m.RowsDecoded,
		m.RowsDropped,
		m.RowsExported,
		m.IngestRunning,
		m.FileProcessingDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FilesProcessed:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "inmet_etl", Name: "files_processed_total"}),
		FilesSkipped:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "inmet_etl", Name: "files_skipped_total"}),
		RowsDecoded:            prometheus.NewCounter(prometheus.CounterOpts{Namespace: "inmet_etl", Name: "rows_decoded_total"}),
		RowsDropped:            prometheus.NewCounter(prometheus.CounterOpts{Namespace: "inmet_etl", Name: "rows_dropped_total"}),
		RowsExported:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "inmet_etl", Name: "rows_exported_total"}),
		IngestRunning:          prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "inmet_etl", Name: "ingest_running"}),
		FileProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "inmet_etl", Name: "file_processing_duration_seconds"}),
	}
}
