package domain

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// relevantColumns bounds the body to the columns that carry known fields:
// date, hour, and the 17 measurements. Trailing columns (and the empty column
// produced by a trailing semicolon) are dropped.
const relevantColumns = 19

const timestampLayout = "2006-01-02 15:04"

var (
	hourColonRe  = regexp.MustCompile(`^\d{2}:\d{2}$`)
	hourDigitsRe = regexp.MustCompile(`^\d{4}$`)
	hourUTCRe    = regexp.MustCompile(`^\d{2} UTC$`)
	hourPrefixRe = regexp.MustCompile(`^\d{2}`)
)

// Missing-value sentinels, matched on the raw cell before decimal-comma
// conversion so a literal "-9999,0" never parses as -9999.0.
var sentinels = map[string]struct{}{
	"-9999":   {},
	"-9999,0": {},
}

// DecodeRecords parses the measurement body that follows the 8-line station
// header. The first line read is the real column header, normalized via
// [NormalizeColumn]. Sentinel and unparsable cells leave their field
// undefined; rows where all 17 canonical fields are undefined, and rows whose
// date+hour do not reconcile into a valid timestamp, are dropped and counted.
// Row order is preserved. An unreadable body is a file-level error for the
// caller to handle.
func DecodeRecords(r io.Reader) (rows []MeasurementRow, dropped int, err error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read column header: %w", err)
	}
	if len(header) > relevantColumns {
		header = header[:relevantColumns]
	}

	cols := make([]string, len(header))
	for i, label := range header {
		cols[i] = NormalizeColumn(label)
	}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read record: %w", err)
		}

		row, ok := decodeRow(cols, record)
		if !ok {
			dropped++
			continue
		}
		rows = append(rows, row)
	}

	return rows, dropped, nil
}

// decodeRow builds one normalized row. It reports false for rows that must
// be dropped: all canonical fields undefined, or an unparsable timestamp.
func decodeRow(cols []string, record []string) (MeasurementRow, bool) {
	if len(record) > relevantColumns {
		record = record[:relevantColumns]
	}

	values := make(map[string]float64, len(CanonicalFields))
	var rawDate, rawHour string

	for i, name := range cols {
		if i >= len(record) {
			break
		}
		switch name {
		case fieldDate:
			rawDate = strings.TrimSpace(record[i])
		case fieldHour:
			rawHour = strings.TrimSpace(record[i])
		default:
			if !IsCanonicalField(name) {
				continue
			}
			if v, ok := parseMeasurement(record[i]); ok {
				values[name] = v
			}
		}
	}

	if len(values) == 0 {
		return MeasurementRow{}, false
	}

	ts, ok := reconcileTimestamp(rawDate, rawHour)
	if !ok {
		return MeasurementRow{}, false
	}

	return MeasurementRow{Timestamp: ts, Values: values}, true
}

// parseMeasurement coerces one numeric cell: sentinel, empty, and unparsable
// values are undefined, never an error and never zero.
func parseMeasurement(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if _, isSentinel := sentinels[s]; isSentinel {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// reconcileTimestamp combines the raw date and hour cells into one timestamp
// at minute precision. The date must be in ISO order; slashes are normalized
// to dashes so both "2020-01-01" and "2020/01/01" parse. Other date layouts
// do not reconcile and the row is dropped.
func reconcileTimestamp(rawDate, rawHour string) (time.Time, bool) {
	date := strings.ReplaceAll(rawDate, "/", "-")
	ts, err := time.Parse(timestampLayout, date+" "+fixHour(rawHour))
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// fixHour normalizes the hour cell to "HH:MM". The fallback chain must run
// in this order; the inputs are ambiguous free text and the later branches
// would misread the earlier forms.
func fixHour(hour string) string {
	switch {
	case hourColonRe.MatchString(hour):
		return hour
	case hourDigitsRe.MatchString(hour):
		return hour[:2] + ":" + hour[2:]
	case hourUTCRe.MatchString(hour):
		return hour[:2] + ":00"
	default:
		if m := hourPrefixRe.FindString(hour); m != "" {
			return m + ":00"
		}
		return "00:00"
	}
}
