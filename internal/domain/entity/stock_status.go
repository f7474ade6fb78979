package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Salud del stock derivada del balance actual y el nivel crítico.
const (
	HealthGreen  = "GREEN"
	HealthOrange = "ORANGE"
	HealthRed    = "RED"
)

// umbral naranja = nivel crítico * 1.5
var orangeFactor = decimal.NewFromFloat(1.5)

// StockStatusRecord es la vista materializada del stock por clave de agregación.
// Se crea de forma perezosa con el primer movimiento de la clave y se actualiza
// con cada movimiento posterior. CurrentStock y Health NO se persisten: se
// derivan siempre de TotalEntry/TotalOutput/CriticalLevel.
type StockStatusRecord struct {
	Key           AggregationKey
	TotalEntry    decimal.Decimal
	TotalOutput   decimal.Decimal
	CriticalLevel decimal.Decimal
	UpdatedAt     time.Time
}

// NewStockStatusRecord crea el registro vacío para una clave no vista antes.
func NewStockStatusRecord(key AggregationKey) *StockStatusRecord {
	return &StockStatusRecord{
		Key:           key,
		TotalEntry:    decimal.Zero,
		TotalOutput:   decimal.Zero,
		CriticalLevel: decimal.Zero,
	}
}

// CurrentStock devuelve el balance actual. Invariante: siempre igual a
// TotalEntry - TotalOutput; nunca se almacena como campo independiente.
func (r *StockStatusRecord) CurrentStock() decimal.Decimal {
	return r.TotalEntry.Sub(r.TotalOutput)
}

// Health deriva la salud del stock. Es función pura de
// (CurrentStock, CriticalLevel); derivarla dos veces da el mismo resultado.
//
//	stock <= 0                  -> RED (agotado, independiente del nivel crítico)
//	stock <= crítico            -> RED
//	stock <= crítico * 1.5      -> ORANGE
//	resto                       -> GREEN
//
// Con nivel crítico 0 las dos comparaciones intermedias nunca aplican, así que
// el registro es GREEN salvo que esté agotado.
func (r *StockStatusRecord) Health() string {
	stock := r.CurrentStock()
	if stock.LessThanOrEqual(decimal.Zero) {
		return HealthRed
	}
	if r.CriticalLevel.GreaterThan(decimal.Zero) {
		if stock.LessThanOrEqual(r.CriticalLevel) {
			return HealthRed
		}
		if stock.LessThanOrEqual(r.CriticalLevel.Mul(orangeFactor)) {
			return HealthOrange
		}
	}
	return HealthGreen
}
