// Command genmock generates a synthetic yearly INMET archive for test
// fixtures. Entries use the real station file layout: an 8-line Latin-1
// descriptor header followed by semicolon-separated hourly rows with
// decimal commas and -9999 sentinels. After writing, it ingests the archive
// with the actual pipeline packages so the printed stats match real
// behavior.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/2020.zip -year 2020
package main

import (
	"archive/zip"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/brclimate/inmet-etl/internal/adapter/zipbundle"
	"github.com/brclimate/inmet-etl/internal/aggregate"
	"github.com/brclimate/inmet-etl/internal/ingest"
	"github.com/brclimate/inmet-etl/internal/observability"
)

type stationDef struct {
	region  string
	state   string
	name    string
	wmo     string
	lat     string
	lon     string
	alt     string
	founded string
}

var stations = []stationDef{
	{"NE", "BA", "SALVADOR", "A401", "-13,01", "-38,51", "51,41", "2000-05-13"},
	{"NE", "PE", "RECIFE", "A301", "-8,05", "-34,95", "11,3", "2004-11-01"},
	{"S", "RS", "PORTO ALEGRE", "A801", "-30,05", "-51,17", "41,18", "2000-09-22"},
	{"SE", "SP", "SAO PAULO - MIRANTE", "A701", "-23,49", "-46,62", "786,0", "2006-07-10"},
	{"CO", "DF", "BRASILIA", "A001", "-15,78", "-47,92", "1159,54", "2000-05-07"},
	{"N", "AM", "MANAUS", "A101", "-3,10", "-60,01", "67,0", "2000-05-13"},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the archive fixture")
	year := flag.Int("year", 2020, "year to stamp on generated rows")
	seed := flag.Int64("seed", 42, "rng seed, fixed for reproducible fixtures")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	if err := writeArchive(*out, *year, rand.New(rand.NewSource(*seed))); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote fixture: %s", *out)

	return printStats(*out)
}

func writeArchive(path string, year int, rng *rand.Rand) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	// Real archives carry stray non-station entries; the ingester must skip
	// them, so the fixture includes them.
	if err := writeEntry(zw, "leiame.txt", "Dados históricos INMET.\n"); err != nil {
		return err
	}
	if err := writeEntry(zw, "__MACOSX/._INMET_NE_BA_A401.CSV", "\x00\x05\x16\x07"); err != nil {
		return err
	}

	for _, st := range stations {
		name := fmt.Sprintf("INMET_%s_%s_%s_%s_01-01-%d_A_31-12-%d.CSV",
			st.region, st.state, st.wmo, st.name, year, year)
		if err := writeEntry(zw, name, stationFile(st, year, rng)); err != nil {
			return err
		}
	}

	return zw.Close()
}

// writeEntry stores one Latin-1 encoded entry. Encoding at write time keeps
// the fixture byte-faithful to portal archives, accents included.
func writeEntry(zw *zip.Writer, name, content string) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	enc := charmap.ISO8859_1.NewEncoder().Writer(w)
	_, err = io.WriteString(enc, content)
	return err
}

func stationFile(st stationDef, year int, rng *rand.Rand) string {
	var b strings.Builder
	fmt.Fprintf(&b, "REGIÃO:;%s\n", st.region)
	fmt.Fprintf(&b, "UF:;%s\n", st.state)
	fmt.Fprintf(&b, "ESTAÇÃO:;%s\n", st.name)
	fmt.Fprintf(&b, "CODIGO (WMO):;%s\n", st.wmo)
	fmt.Fprintf(&b, "LATITUDE:;%s\n", st.lat)
	fmt.Fprintf(&b, "LONGITUDE:;%s\n", st.lon)
	fmt.Fprintf(&b, "ALTITUDE:;%s\n", st.alt)
	fmt.Fprintf(&b, "DATA DE FUNDAÇÃO:;%s\n", st.founded)
	b.WriteString("Data;Hora UTC;PRECIPITAÇÃO TOTAL, HORÁRIO (mm);" +
		"TEMPERATURA DO AR - BULBO SECO, HORARIA (°C);" +
		"UMIDADE RELATIVA DO AR, HORARIA (%);" +
		"VENTO, VELOCIDADE HORARIA (m/s);\n")

	// First day of each month, four rows a day. Small but spans the whole
	// year, so monthly grouping has material per month.
	for month := 1; month <= 12; month++ {
		for hour := 0; hour < 24; hour += 6 {
			fmt.Fprintf(&b, "%d/%02d/01;%02d00 UTC;%s;%s;%s;%s;\n",
				year, month, hour,
				measurement(rng, 0, 12, 10),
				measurement(rng, 12, 38, 5),
				measurement(rng, 40, 100, 5),
				measurement(rng, 0, 9, 8),
			)
		}
	}
	return b.String()
}

// measurement renders a decimal-comma value in [lo, hi), or a -9999 sentinel
// roughly once per sentinelOneIn rows.
func measurement(rng *rand.Rand, lo, hi float64, sentinelOneIn int) string {
	if rng.Intn(sentinelOneIn) == 0 {
		return "-9999"
	}
	v := lo + rng.Float64()*(hi-lo)
	return strings.ReplaceAll(fmt.Sprintf("%.1f", v), ".", ",")
}

// printStats runs the generated archive through the real ingester and prints
// the numbers test assertions care about.
func printStats(path string) error {
	bundle, err := zipbundle.Open(path)
	if err != nil {
		return err
	}
	defer bundle.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ing := ingest.New(logger, observability.NewMetricsForTesting(), 4)

	dataset, report, err := ing.Ingest(context.Background(), bundle)
	if err != nil {
		return fmt.Errorf("ingesting fixture: %w", err)
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Files processed: %d, skipped: %d\n", report.FilesProcessed, report.FilesSkipped)
	fmt.Printf("Rows: %d, dropped: %d\n", report.RowCount, report.RowsDropped)

	entries := aggregate.MonthlyRegionalMeans(dataset, aggregate.PortugueseMonths)
	fmt.Printf("Groups: %d\n", len(entries))
	for _, e := range entries {
		fmt.Printf("  %s %s: temp=%s hum=%s\n",
			e.Region, e.MonthName, fmtMean(e.MeanTemperature), fmtMean(e.MeanHumidity))
	}
	return nil
}

func fmtMean(v *float64) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf("%.2f", *v)
}
