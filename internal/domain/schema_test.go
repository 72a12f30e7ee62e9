package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		label    string
		expected string
	}{
		{"Data", "data"},
		{"DATA (YYYY-MM-DD)", "data"},
		{"Hora UTC", "hora"},
		{"HORA (UTC)", "hora"},
		{"PRECIPITAÇÃO TOTAL, HORÁRIO (mm)", FieldPrecipitation},
		{"PRECIPITACAO TOTAL, HORARIO (mm)", FieldPrecipitation},
		{"PRESSAO ATMOSFERICA AO NIVEL DA ESTACAO, HORARIA (mB)", FieldPressure},
		{"PRESSÃO ATMOSFERICA MAX.NA HORA ANT. (AUT) (mB)", FieldPressureMax},
		{"PRESSÃO ATMOSFERICA MIN. NA HORA ANT. (AUT) (mB)", FieldPressureMin},
		{"RADIACAO GLOBAL (Kj/m²)", FieldRadiation},
		{"TEMPERATURA DO AR - BULBO SECO, HORARIA (°C)", FieldAirTemperature},
		{"TEMPERATURA DO PONTO DE ORVALHO (°C)", FieldDewPoint},
		{"TEMPERATURA MÁXIMA NA HORA ANT. (AUT) (°C)", FieldTemperatureMax},
		{"TEMPERATURA MÍNIMA NA HORA ANT. (AUT) (°C)", FieldTemperatureMin},
		{"TEMPERATURA ORVALHO MAX. NA HORA ANT. (AUT) (°C)", FieldDewPointMax},
		{"TEMPERATURA ORVALHO MIN. NA HORA ANT. (AUT) (°C)", FieldDewPointMin},
		{"UMIDADE REL. MAX. NA HORA ANT. (AUT) (%)", FieldHumidityMax},
		{"UMIDADE REL. MIN. NA HORA ANT. (AUT) (%)", FieldHumidityMin},
		{"UMIDADE RELATIVA DO AR, HORARIA (%)", FieldHumidity},
		{"VENTO, DIREÇÃO HORARIA (gr) (° (gr))", FieldWindDirection},
		{"VENTO, RAJADA MAXIMA (m/s)", FieldWindGust},
		{"VENTO, VELOCIDADE HORARIA (m/s)", FieldWindSpeed},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeColumn(tt.label))
		})
	}
}

// The sea-level pressure pattern is more specific than the max/min variants;
// a label must land on its own rule, not a more general neighbor.
func TestNormalizeColumn_Specificity(t *testing.T) {
	assert.Equal(t, FieldPressure, NormalizeColumn("Pressão atmosférica ao nível da estação"))
	assert.Equal(t, FieldPressureMax, NormalizeColumn("Pressão atmosférica máx. na hora ant."))
	assert.Equal(t, FieldDewPoint, NormalizeColumn("Temperatura do ponto de orvalho"))
	assert.Equal(t, FieldDewPointMax, NormalizeColumn("Temperatura orvalho máx. na hora ant."))
}

func TestNormalizeColumn_Idempotent(t *testing.T) {
	for _, field := range CanonicalFields {
		assert.Equal(t, field, NormalizeColumn(field), "canonical name %q must normalize to itself", field)
	}
	assert.Equal(t, "data", NormalizeColumn("data"))
	assert.Equal(t, "hora", NormalizeColumn("hora"))
}

func TestNormalizeColumn_UnknownPassthrough(t *testing.T) {
	assert.Equal(t, "coluna desconhecida (x)", NormalizeColumn("Coluna Desconhecida (X)"))
	assert.Equal(t, "", NormalizeColumn("  "))
}
