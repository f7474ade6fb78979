package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Almacen-api/internal/domain/pricing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// TestNormalizeLine_ConversionDeMoneda línea en USD a 10.00 con tasa 35.0
// sobre documento en TRY: unitario 350 y total 350 por cantidad 1.
func TestNormalizeLine_ConversionDeMoneda(t *testing.T) {
	rate := dec("35.0")
	line := pricing.NormalizeLine("USD", dec("10.00"), &rate, "TRY", dec("1"))

	assert.True(t, line.UnitPrice.Equal(dec("350")), "unitario: %s", line.UnitPrice)
	assert.True(t, line.Total.Equal(dec("350")), "total: %s", line.Total)
}

// TestNormalizeLine_MismaMonedaIgnoraTasa si la línea ya está en la moneda
// del documento el precio pasa tal cual; una tasa residual de 2.0 NO se
// aplica.
func TestNormalizeLine_MismaMonedaIgnoraTasa(t *testing.T) {
	rate := dec("2.0")
	line := pricing.NormalizeLine("TRY", dec("10.00"), &rate, "TRY", dec("3"))

	assert.True(t, line.UnitPrice.Equal(dec("10.00")))
	assert.True(t, line.Total.Equal(dec("30.00")))
}

// TestNormalizeLine_TasaAusenteVale1 sin tasa la conversión usa 1: el precio
// cruza de moneda sin cambiar de magnitud.
func TestNormalizeLine_TasaAusenteVale1(t *testing.T) {
	line := pricing.NormalizeLine("USD", dec("10.00"), nil, "TRY", dec("2"))

	assert.True(t, line.UnitPrice.Equal(dec("10.00")))
	assert.True(t, line.Total.Equal(dec("20.00")))
}

// TestNormalizeLine_IntermediosSinRedondear los intermedios conservan toda la
// precisión; redondear es asunto de la capa de presentación.
func TestNormalizeLine_IntermediosSinRedondear(t *testing.T) {
	rate := dec("1.3333")
	line := pricing.NormalizeLine("USD", dec("9.99"), &rate, "TRY", dec("7"))

	// 9.99 * 1.3333 = 13.319667 exacto, sin pérdida binaria.
	require.True(t, line.UnitPrice.Equal(dec("13.319667")), "unitario: %s", line.UnitPrice)
	assert.True(t, line.Total.Equal(dec("93.237669")), "total: %s", line.Total)

	// Solo al mostrar se corta a 2 decimales.
	assert.Equal(t, "13.32", line.UnitPrice.Round(2).String())
	assert.Equal(t, "93.24", line.Total.Round(2).String())
}

// TestValidCurrency códigos ISO 4217 reales pasan, inventados no.
func TestValidCurrency(t *testing.T) {
	assert.True(t, pricing.ValidCurrency("TRY"))
	assert.True(t, pricing.ValidCurrency("USD"))
	assert.False(t, pricing.ValidCurrency("XYZ"))
	assert.False(t, pricing.ValidCurrency(""))
}
