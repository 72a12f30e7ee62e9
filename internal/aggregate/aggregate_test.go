package aggregate_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brclimate/inmet-etl/internal/aggregate"
	"github.com/brclimate/inmet-etl/internal/domain"
)

var (
	stationNE = &domain.StationDescriptor{Region: "NE", State: "BA", Name: "SALVADOR", WMOCode: "A401"}
	stationS  = &domain.StationDescriptor{Region: "S", State: "RS", Name: "PORTO ALEGRE", WMOCode: "A801"}
)

func row(month time.Month, temp, hum *float64) domain.MeasurementRow {
	values := map[string]float64{}
	if temp != nil {
		values[domain.FieldAirTemperature] = *temp
	}
	if hum != nil {
		values[domain.FieldHumidity] = *hum
	}
	// Keep the row valid even when both means' inputs are undefined.
	if len(values) == 0 {
		values[domain.FieldPrecipitation] = 0
	}
	return domain.MeasurementRow{
		Timestamp: time.Date(2020, month, 10, 12, 0, 0, 0, time.UTC),
		Values:    values,
	}
}

func f(v float64) *float64 { return &v }

func TestMonthlyRegionalMeans(t *testing.T) {
	ds := domain.NewUnifiedDataset()
	ds.Append(stationNE, []domain.MeasurementRow{
		row(time.January, f(20), f(80)),
		row(time.January, f(22), nil),
		row(time.January, nil, f(70)),
		row(time.March, f(30), f(60)),
	})
	ds.Append(stationS, []domain.MeasurementRow{
		row(time.January, f(15), f(90)),
	})

	entries := aggregate.MonthlyRegionalMeans(ds, aggregate.PortugueseMonths)
	require.Len(t, entries, 3)

	// Regions lexicographic, months ascending; February omitted, not zeroed.
	assert.Equal(t, "NE", entries[0].Region)
	assert.Equal(t, 1, entries[0].Month)
	assert.Equal(t, "janeiro", entries[0].MonthName)
	assert.Equal(t, "NE", entries[1].Region)
	assert.Equal(t, 3, entries[1].Month)
	assert.Equal(t, "março", entries[1].MonthName)
	assert.Equal(t, "S", entries[2].Region)
	assert.Equal(t, 1, entries[2].Month)

	require.NotNil(t, entries[0].MeanTemperature)
	assert.InDelta(t, 21.0, *entries[0].MeanTemperature, 1e-9)
	require.NotNil(t, entries[0].MeanHumidity)
	assert.InDelta(t, 75.0, *entries[0].MeanHumidity, 1e-9)

	require.NotNil(t, entries[2].MeanTemperature)
	assert.InDelta(t, 15.0, *entries[2].MeanTemperature, 1e-9)
}

func TestMonthlyRegionalMeans_AllUndefinedFieldYieldsNilMean(t *testing.T) {
	ds := domain.NewUnifiedDataset()
	ds.Append(stationNE, []domain.MeasurementRow{
		row(time.July, nil, f(55)),
		row(time.July, nil, f(65)),
	})

	entries := aggregate.MonthlyRegionalMeans(ds, aggregate.PortugueseMonths)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].MeanTemperature)
	require.NotNil(t, entries[0].MeanHumidity)
	assert.InDelta(t, 60.0, *entries[0].MeanHumidity, 1e-9)
}

// Shuffling row order must not change any computed mean.
func TestMonthlyRegionalMeans_RowOrderCommutative(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	var rows []domain.MeasurementRow
	for i := range 200 {
		month := time.Month(i%12 + 1)
		var temp, hum *float64
		if i%3 != 0 {
			temp = f(float64(i%40) + 0.5)
		}
		if i%4 != 0 {
			hum = f(float64(i%100) + 0.25)
		}
		rows = append(rows, row(month, temp, hum))
	}

	ordered := domain.NewUnifiedDataset()
	ordered.Append(stationNE, rows)

	shuffledRows := make([]domain.MeasurementRow, len(rows))
	copy(shuffledRows, rows)
	rng.Shuffle(len(shuffledRows), func(i, j int) {
		shuffledRows[i], shuffledRows[j] = shuffledRows[j], shuffledRows[i]
	})
	shuffled := domain.NewUnifiedDataset()
	shuffled.Append(stationNE, shuffledRows)

	want := aggregate.MonthlyRegionalMeans(ordered, aggregate.PortugueseMonths)
	got := aggregate.MonthlyRegionalMeans(shuffled, aggregate.PortugueseMonths)

	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("aggregation depends on row order (-want +got):\n%s", diff)
	}
}

func TestMonthlyRegionalMeans_CustomMonthNames(t *testing.T) {
	english := [12]string{
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	}

	ds := domain.NewUnifiedDataset()
	ds.Append(stationS, []domain.MeasurementRow{row(time.December, f(28), f(50))})

	entries := aggregate.MonthlyRegionalMeans(ds, english)
	require.Len(t, entries, 1)
	assert.Equal(t, 12, entries[0].Month)
	assert.Equal(t, "december", entries[0].MonthName)
}
