package config

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "https://portal.inmet.gov.br/uploads/dadoshistoricos", cfg.BaseURL)
	assert.Equal(t, 5*time.Minute, cfg.DownloadTimeout)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Workers)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "normalized-station-rows", cfg.KafkaExportTopic)
	assert.False(t, cfg.ExportEnabled)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("DATA_DIR", "/tmp/archives")
	t.Setenv("INMET_BASE_URL", "http://localhost:8081/fixtures")
	t.Setenv("DOWNLOAD_TIMEOUT", "90s")
	t.Setenv("WORKERS", "4")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_EXPORT_TOPIC", "custom-rows")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/tmp/archives", cfg.DataDir)
	assert.Equal(t, "http://localhost:8081/fixtures", cfg.BaseURL)
	assert.Equal(t, 90*time.Second, cfg.DownloadTimeout)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-rows", cfg.KafkaExportTopic)
	assert.True(t, cfg.ExportEnabled)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeDownloadTimeout(t *testing.T) {
	t.Setenv("DOWNLOAD_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOWNLOAD_TIMEOUT")
}

func TestLoad_InvalidWorkers(t *testing.T) {
	t.Setenv("WORKERS", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WORKERS")
}

func TestLoad_WorkersTooLarge(t *testing.T) {
	t.Setenv("WORKERS", "9999")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WORKERS")
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestLoad_ExportEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_EXPORT_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoad_BrokersImplyExport(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "localhost:9092")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.ExportEnabled)
}

func TestLoad_ExportExplicitlyDisabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "localhost:9092")
	t.Setenv("KAFKA_EXPORT_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.ExportEnabled)
}
