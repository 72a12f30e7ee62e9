// Package domain models INMET historical weather station data.
//
// # Data Source
//
// INMET (Instituto Nacional de Meteorologia) publishes one zip archive per
// year at https://portal.inmet.gov.br/uploads/dadoshistoricos/{year}.zip.
// Each archive holds one CSV file per automatic weather station, encoded in
// ISO-8859-1, delimited by semicolons, with a comma as the decimal separator.
//
// # Station File Layout
//
// Every station file starts with a fixed 8-line metadata header of
// "label;value" pairs, in this order:
//
//	REGIÃO / UF / ESTAÇÃO / CODIGO (WMO) / LATITUDE / LONGITUDE /
//	ALTITUDE / DATA DE FUNDAÇÃO
//
// Line 9 is the real column header; data rows follow. Only the first 19
// columns are meaningful: the date, the hour, and 17 measurement columns.
//
// # Format Drift
//
// The archive format drifts between release years, so decoding normalizes:
//
//	Column headers: wording, punctuation, and accent usage vary
//	  ("PRECIPITAÇÃO TOTAL, HORÁRIO (mm)" vs "PRECIPITACAO TOTAL, HORARIO (mm)").
//	  Headers map to canonical field names by ordered prefix patterns; see
//	  [NormalizeColumn].
//	Dates: "2020-01-01" in some years, "2020/01/01" in others. Slashes are
//	  normalized to dashes before parsing; any other layout drops the row.
//	Hours: "HH:MM", "HHMM", and "HH UTC" all appear. The fallback chain takes
//	  a leading two-digit hour with minute 00 for anything else recognizable,
//	  and midnight as the last resort.
//	Missing data: the literal sentinels -9999 and -9999,0 mean "not measured"
//	  and are distinct from a parsed zero. They are matched on the raw cell
//	  before decimal-comma conversion.
//
// # Founding Date
//
// The header founding date appears as "YYYY-MM-DD" or "DD/MM/YY" depending on
// the station. Exactly those two literal formats are accepted; anything else
// leaves the field unset rather than failing the header.
package domain
