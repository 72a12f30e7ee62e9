package domain

import (
	"regexp"
	"strings"
)

// schemaRule maps one source header pattern to its canonical field name.
type schemaRule struct {
	pattern   *regexp.Regexp
	canonical string
}

// schemaRules is evaluated top to bottom, first match wins. Order encodes
// specificity: a pattern must appear before any more general pattern that
// would also match its labels (the three pressure variants, for example, are
// disambiguated purely by declaration order). Patterns are prefix-anchored
// and spell out accent variants because accent usage drifts across archive
// years.
var schemaRules = []schemaRule{
	{regexp.MustCompile(`^data`), fieldDate},
	{regexp.MustCompile(`^hora`), fieldHour},
	{regexp.MustCompile(`^precipita[çc][ãa]o`), FieldPrecipitation},
	{regexp.MustCompile(`^press[ãa]o atmosf[ée]rica ao n[íi]vel`), FieldPressure},
	{regexp.MustCompile(`^press[ãa]o atmosf[ée]rica m[áa]x`), FieldPressureMax},
	{regexp.MustCompile(`^press[ãa]o atmosf[ée]rica m[íi]n`), FieldPressureMin},
	{regexp.MustCompile(`^radia[çc][ãa]o`), FieldRadiation},
	{regexp.MustCompile(`^temperatura do ar`), FieldAirTemperature},
	{regexp.MustCompile(`^temperatura do ponto de orvalho`), FieldDewPoint},
	{regexp.MustCompile(`^temperatura m[áa]x`), FieldTemperatureMax},
	{regexp.MustCompile(`^temperatura m[íi]n`), FieldTemperatureMin},
	{regexp.MustCompile(`^temperatura orvalho m[áa]x`), FieldDewPointMax},
	{regexp.MustCompile(`^temperatura orvalho m[íi]n`), FieldDewPointMin},
	{regexp.MustCompile(`^umidade rel\. m[áa]x`), FieldHumidityMax},
	{regexp.MustCompile(`^umidade rel\. m[íi]n`), FieldHumidityMin},
	{regexp.MustCompile(`^umidade relativa do ar`), FieldHumidity},
	{regexp.MustCompile(`^vento, dire[çc][ãa]o`), FieldWindDirection},
	{regexp.MustCompile(`^vento, rajada`), FieldWindGust},
	{regexp.MustCompile(`^vento, velocidade`), FieldWindSpeed},
}

// NormalizeColumn maps a raw column header label to its canonical field name.
// Matching is case-insensitive and accent-tolerant. Unrecognized labels pass
// through lower-cased; the body decoder only reads known names, so unknown
// columns are dropped there rather than failing here. Canonical names map to
// themselves, which makes normalization idempotent.
func NormalizeColumn(label string) string {
	name := strings.ToLower(strings.TrimSpace(label))
	for _, rule := range schemaRules {
		if rule.pattern.MatchString(name) {
			return rule.canonical
		}
	}
	return name
}
