// Package kafka publishes normalized station rows to a Kafka topic for
// downstream consumers. The export sink is optional; the pipeline runs the
// same without it.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/brclimate/inmet-etl/internal/config"
	"github.com/brclimate/inmet-etl/internal/domain"
)

// exportBatchSize bounds a single WriteMessages call. Yearly archives carry
// millions of rows; one giant batch would exceed broker message limits.
const exportBatchSize = 500

// ExportRecord is the wire shape of one normalized measurement row.
type ExportRecord struct {
	WMOCode   string             `json:"wmo_code"`
	Region    string             `json:"region"`
	State     string             `json:"state"`
	Station   string             `json:"station"`
	Timestamp time.Time          `json:"timestamp"`
	Values    map[string]float64 `json:"values"`
}

// Writer produces export records to the configured topic.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the export topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaExportTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// ExportDataset publishes every row of the dataset, batched. Returns the
// number of rows published; on error the count covers fully acked batches
// only.
func (w *Writer) ExportDataset(ctx context.Context, ds *domain.UnifiedDataset) (int, error) {
	rows := ds.Rows()
	exported := 0
	for start := 0; start < len(rows); start += exportBatchSize {
		end := min(start+exportBatchSize, len(rows))

		msgs := make([]kafkago.Message, 0, end-start)
		for _, row := range rows[start:end] {
			msg, err := serializeToMessage(row)
			if err != nil {
				return exported, err
			}
			msgs = append(msgs, msg)
		}
		if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
			return exported, fmt.Errorf("publish export batch: %w", err)
		}
		exported += len(msgs)
	}
	w.logger.Info("dataset exported", "rows", exported)
	return exported, nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals one dataset row into a Kafka message. The
// station's WMO code keys the message so one station's rows stay on one
// partition in order.
func serializeToMessage(row domain.DatasetRow) (kafkago.Message, error) {
	rec := ExportRecord{
		WMOCode:   row.Station.WMOCode,
		Region:    row.Station.Region,
		State:     row.Station.State,
		Station:   row.Station.Name,
		Timestamp: row.Row.Timestamp,
		Values:    row.Row.Values,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize export record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rec.WMOCode),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "region", Value: []byte(rec.Region)},
			{Key: "measured_at", Value: []byte(rec.Timestamp.Format(time.RFC3339))},
		},
	}, nil
}
