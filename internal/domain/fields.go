package domain

// Canonical measurement field names. Source column headers vary release to
// release; [NormalizeColumn] maps them onto this fixed set.
const (
	FieldPrecipitation  = "precipitacao"
	FieldPressure       = "pressao_atmosferica"
	FieldPressureMax    = "pressao_atmosferica_maxima"
	FieldPressureMin    = "pressao_atmosferica_minima"
	FieldRadiation      = "radiacao"
	FieldAirTemperature = "temperatura_ar"
	FieldDewPoint       = "temperatura_orvalho"
	FieldTemperatureMax = "temperatura_maxima"
	FieldTemperatureMin = "temperatura_minima"
	FieldDewPointMax    = "temperatura_orvalho_maxima"
	FieldDewPointMin    = "temperatura_orvalho_minima"
	FieldHumidityMax    = "umidade_relativa_maxima"
	FieldHumidityMin    = "umidade_relativa_minima"
	FieldHumidity       = "umidade_relativa"
	FieldWindDirection  = "vento_direcao"
	FieldWindGust       = "vento_rajada"
	FieldWindSpeed      = "vento_velocidade"
)

// The raw date and time columns are not measurements; they are consumed
// during timestamp reconciliation and never appear in MeasurementRow.Values.
const (
	fieldDate = "data"
	fieldHour = "hora"
)

// CanonicalFields lists the 17 measurement fields a normalized row may carry.
var CanonicalFields = []string{
	FieldPrecipitation,
	FieldPressure,
	FieldPressureMax,
	FieldPressureMin,
	FieldRadiation,
	FieldAirTemperature,
	FieldDewPoint,
	FieldTemperatureMax,
	FieldTemperatureMin,
	FieldDewPointMax,
	FieldDewPointMin,
	FieldHumidityMax,
	FieldHumidityMin,
	FieldHumidity,
	FieldWindDirection,
	FieldWindGust,
	FieldWindSpeed,
}

var canonicalSet = func() map[string]struct{} {
	s := make(map[string]struct{}, len(CanonicalFields))
	for _, f := range CanonicalFields {
		s[f] = struct{}{}
	}
	return s
}()

// IsCanonicalField reports whether name is one of the 17 measurement fields.
func IsCanonicalField(name string) bool {
	_, ok := canonicalSet[name]
	return ok
}
