package domain

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// headerLines is the fixed size of the station metadata block.
const headerLines = 8

// HeaderError reports a malformed or truncated station metadata block.
// It is file-scoped: the caller skips the whole file and continues the run.
type HeaderError struct {
	Line int
	Err  error
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("station header line %d: %v", e.Line, e.Err)
}

func (e *HeaderError) Unwrap() error { return e.Err }

var (
	foundingISORe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	foundingShortRe = regexp.MustCompile(`^\d{2}/\d{2}/\d{2}$`)
)

// ReadStationMetadata consumes the 8 "label;value" header lines of a station
// file and returns its descriptor. Coordinate, altitude, and founding-date
// values that fail to parse degrade to nil; a missing line or a line that
// does not split into exactly label;value fails the whole header with a
// *HeaderError. On success the reader is positioned at line 9, the body's
// column header.
func ReadStationMetadata(r *bufio.Reader) (*StationDescriptor, error) {
	values := make([]string, headerLines)
	for i := range headerLines {
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return nil, &HeaderError{Line: i + 1, Err: err}
		}
		line = strings.TrimRight(line, "\r\n")

		parts := strings.Split(line, ";")
		if len(parts) != 2 {
			return nil, &HeaderError{Line: i + 1, Err: fmt.Errorf("expected label;value, got %d fields", len(parts))}
		}
		values[i] = strings.TrimSpace(parts[1])
	}

	return &StationDescriptor{
		Region:    values[0],
		State:     values[1],
		Name:      values[2],
		WMOCode:   values[3],
		Latitude:  parseDecimalComma(values[4]),
		Longitude: parseDecimalComma(values[5]),
		Altitude:  parseDecimalComma(values[6]),
		Founded:   parseFoundingDate(values[7]),
	}, nil
}

// parseDecimalComma parses a comma-decimal number, returning nil on failure.
func parseDecimalComma(s string) *float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseFoundingDate accepts exactly the two founding-date formats observed in
// the archives, "YYYY-MM-DD" and "DD/MM/YY". Anything else returns nil; the
// source is too inconsistent to infer further formats from.
func parseFoundingDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	switch {
	case foundingISORe.MatchString(s):
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return &t
		}
	case foundingShortRe.MatchString(s):
		if t, err := time.Parse("02/01/06", s); err == nil {
			return &t
		}
	}
	return nil
}
