// Package aggregate reduces a unified dataset into monthly regional means.
package aggregate

import (
	"sort"
	"time"

	"github.com/brclimate/inmet-etl/internal/domain"
)

// PortugueseMonths is the default month-name table for rendered reports.
// Month names are an explicit input rather than a process-wide locale
// setting, so callers can swap languages without touching global state.
var PortugueseMonths = [12]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// Entry is the mean air temperature and relative humidity for one region in
// one calendar month. A nil mean says every contributing row left that field
// undefined; it is never zero and never an error.
type Entry struct {
	Region          string
	Month           int
	MonthName       string
	MeanTemperature *float64
	MeanHumidity    *float64
}

// accumulator sums one group's defined values. Undefined values contribute
// to neither the sum nor the count, so they cannot drag a mean toward zero.
type accumulator struct {
	tempSum float64
	tempN   int
	humSum  float64
	humN    int
}

func (a *accumulator) add(row domain.MeasurementRow) {
	if v, ok := row.Value(domain.FieldAirTemperature); ok {
		a.tempSum += v
		a.tempN++
	}
	if v, ok := row.Value(domain.FieldHumidity); ok {
		a.humSum += v
		a.humN++
	}
}

func mean(sum float64, n int) *float64 {
	if n == 0 {
		return nil
	}
	m := sum / float64(n)
	return &m
}

// MonthlyRegionalMeans groups the dataset by (region, calendar month) and
// computes the arithmetic mean of air temperature and relative humidity per
// group. Every row counts equally regardless of station. Months with no
// contributing rows are omitted. Output order is deterministic: regions
// lexicographic, then months ascending.
func MonthlyRegionalMeans(ds *domain.UnifiedDataset, monthNames [12]string) []Entry {
	type groupKey struct {
		region string
		month  time.Month
	}

	groups := make(map[groupKey]*accumulator)
	for _, row := range ds.Rows() {
		k := groupKey{region: row.Station.Region, month: row.Row.Timestamp.Month()}
		acc := groups[k]
		if acc == nil {
			acc = &accumulator{}
			groups[k] = acc
		}
		acc.add(row.Row)
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].region != keys[j].region {
			return keys[i].region < keys[j].region
		}
		return keys[i].month < keys[j].month
	})

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		acc := groups[k]
		entries = append(entries, Entry{
			Region:          k.region,
			Month:           int(k.month),
			MonthName:       monthNames[k.month-1],
			MeanTemperature: mean(acc.tempSum, acc.tempN),
			MeanHumidity:    mean(acc.humSum, acc.humN),
		})
	}
	return entries
}
