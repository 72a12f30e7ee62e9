package domain

import "time"

// StationDescriptor identifies the weather station a file originates from.
// It is read once per file and shared by reference across all rows decoded
// from that file; it never mutates after [ReadStationMetadata] returns it.
type StationDescriptor struct {
	Region  string
	State   string
	Name    string
	WMOCode string

	// Coordinates and altitude are nil when the header value does not parse.
	Latitude  *float64
	Longitude *float64
	Altitude  *float64

	// Founded is nil when the header date matches neither accepted format.
	Founded *time.Time
}

// MeasurementRow is one normalized observation at minute precision.
// Values maps canonical field names to parsed measurements; a field absent
// from the map is undefined (sentinel or unparsable in the source).
type MeasurementRow struct {
	Timestamp time.Time
	Values    map[string]float64
}

// Value returns the measurement for a canonical field and whether it is defined.
func (r MeasurementRow) Value(field string) (float64, bool) {
	v, ok := r.Values[field]
	return v, ok
}

// DatasetRow pairs a measurement row with its originating station.
type DatasetRow struct {
	Station *StationDescriptor
	Row     MeasurementRow
}

// UnifiedDataset is the append-only result of one ingestion pass over a
// yearly bundle. The ingester appends one file's rows at a time, so rows from
// a single file are always contiguous; after ingestion the dataset is
// read-only.
type UnifiedDataset struct {
	rows []DatasetRow
}

// NewUnifiedDataset returns an empty dataset.
func NewUnifiedDataset() *UnifiedDataset {
	return &UnifiedDataset{}
}

// Append attaches station to every row and adds them to the dataset.
func (d *UnifiedDataset) Append(station *StationDescriptor, rows []MeasurementRow) {
	for _, r := range rows {
		d.rows = append(d.rows, DatasetRow{Station: station, Row: r})
	}
}

// Rows returns the dataset rows in insertion order. Callers must not modify
// the returned slice.
func (d *UnifiedDataset) Rows() []DatasetRow {
	return d.rows
}

// Len returns the number of rows in the dataset.
func (d *UnifiedDataset) Len() int {
	return len(d.rows)
}
