package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

const maxWorkers = 128

// Config holds all service settings, populated from environment variables.
// The year to process is a CLI argument, not configuration.
type Config struct {
	LogLevel  string
	LogFormat string

	// HTTPAddr enables the health/metrics endpoint when non-empty.
	HTTPAddr        string
	ShutdownTimeout time.Duration

	DataDir         string
	BaseURL         string
	DownloadTimeout time.Duration
	Workers         int

	// Kafka export of the normalized dataset, enabled implicitly by setting
	// KAFKA_BROKERS and overridable via KAFKA_EXPORT_ENABLED.
	KafkaBrokers     []string
	KafkaExportTopic string
	ExportEnabled    bool
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	downloadTimeout, err := parseDurationEnv("DOWNLOAD_TIMEOUT", "5m")
	if err != nil {
		return nil, err
	}

	workers, err := parseWorkers()
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	exportEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_EXPORT_ENABLED"); v != "" {
		exportEnabled = v == "true"
	}

	cfg := &Config{
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		HTTPAddr:        os.Getenv("HTTP_ADDR"),
		ShutdownTimeout: shutdownTimeout,
		DataDir:         envOrDefault("DATA_DIR", "data"),
		BaseURL:         envOrDefault("INMET_BASE_URL", "https://portal.inmet.gov.br/uploads/dadoshistoricos"),
		DownloadTimeout: downloadTimeout,
		Workers:         workers,

		KafkaBrokers:     brokers,
		KafkaExportTopic: envOrDefault("KAFKA_EXPORT_TOPIC", "normalized-station-rows"),
		ExportEnabled:    exportEnabled,
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want json or text", cfg.LogFormat)
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("INMET_BASE_URL is required")
	}
	if cfg.ExportEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_EXPORT_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.ExportEnabled && cfg.KafkaExportTopic == "" {
		return nil, errors.New("KAFKA_EXPORT_TOPIC is required when export is enabled")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

// parseWorkers bounds the per-file decode fan-out. The default follows
// available parallelism; archives hold a few hundred small files, so more
// than maxWorkers buys nothing.
func parseWorkers() (int, error) {
	s := os.Getenv("WORKERS")
	if s == "" {
		return runtime.GOMAXPROCS(0), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > maxWorkers {
		return 0, fmt.Errorf("invalid WORKERS: want 1-%d", maxWorkers)
	}
	return n, nil
}

func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
