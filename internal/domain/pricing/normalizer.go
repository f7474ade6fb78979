package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Line es una línea ya expresada en la moneda del documento.
// Los valores van sin redondear; el redondeo a la precisión de display
// (normalmente 2 decimales) se hace recién en la capa de salida, nunca en
// los intermedios, para no acumular error de redondeo en la cadena
// descuento -> conversión -> total.
type Line struct {
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// NormalizeLine convierte el precio unitario de una línea a la moneda del
// documento y calcula el total.
//
// Misma moneda: pasa sin tocar, la tasa se ignora aunque venga distinta de 1
// (una línea en la moneda del documento jamás se reescala). Moneda distinta:
// unitPrice * tasa; tasa nil vale 1 (para líneas realmente extranjeras la
// tasa la debe aportar el caller; su ausencia es un error del caller, no se
// corrige acá).
func NormalizeLine(lineCurrency string, unitPrice decimal.Decimal, exchangeRate *decimal.Decimal, documentCurrency string, quantity decimal.Decimal) Line {
	normalized := unitPrice
	if lineCurrency != documentCurrency {
		rate := decimal.NewFromInt(1)
		if exchangeRate != nil {
			rate = *exchangeRate
		}
		normalized = unitPrice.Mul(rate)
	}
	return Line{
		UnitPrice: normalized,
		Total:     quantity.Mul(normalized),
	}
}

// ValidCurrency indica si el código es una moneda ISO 4217 conocida.
func ValidCurrency(code string) bool {
	_, err := currency.ParseISO(code)
	return err == nil
}
