// Package ledger contiene los servicios de dominio puros del libro de stock:
// validación de movimientos y chequeo de saldo suficiente.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// InsufficientStockError rechazo de una salida por saldo insuficiente.
// Lleva el disponible junto al solicitado para que la UI muestre ambos.
type InsufficientStockError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %s, solicitado %s",
		e.Available.String(), e.Requested.String())
}

// Is permite errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == domain.ErrInsufficientStock
}

// ValidateMovement valida un movimiento antes de admitirlo al libro.
// Chequeo puro, sin efectos: tipo conocido, cantidad positiva y precio
// unitario no negativo en entradas. El chequeo de saldo suficiente es aparte
// (CheckOutput) porque necesita el registro de stock bloqueado en la misma
// transacción.
func ValidateMovement(m *entity.Movement) error {
	switch m.Kind {
	case entity.MovementKindEntry, entity.MovementKindOutput:
	default:
		return domain.ErrInvalidInput
	}
	if !m.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrNonPositiveQuantity
	}
	if m.IsEntry() && m.UnitPrice != nil && m.UnitPrice.LessThan(decimal.Zero) {
		return domain.ErrNegativeUnitPrice
	}
	if m.CriticalLevelHint.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// CheckOutput verifica que aplicar una salida de qty no deje el balance
// negativo. Debe evaluarse contra el registro bloqueado (FOR UPDATE) dentro
// de la misma transacción que aplica la actualización; hacerlo por fuera es
// la carrera de lost-update clásica.
func CheckOutput(record *entity.StockStatusRecord, qty decimal.Decimal) error {
	available := record.CurrentStock()
	if available.LessThan(qty) {
		return &InsufficientStockError{Available: available, Requested: qty}
	}
	return nil
}

// Apply muta el registro según el movimiento ya validado. En entradas suma
// TotalEntry y, si viene un nivel crítico > 0, lo pisa (last-write-wins,
// incluso si el nuevo es menor). En salidas suma TotalOutput; el caller es
// responsable de haber pasado CheckOutput antes.
func Apply(record *entity.StockStatusRecord, m *entity.Movement) {
	if m.IsEntry() {
		record.TotalEntry = record.TotalEntry.Add(m.Quantity)
		if m.CriticalLevelHint.GreaterThan(decimal.Zero) {
			record.CriticalLevel = m.CriticalLevelHint
		}
		return
	}
	record.TotalOutput = record.TotalOutput.Add(m.Quantity)
}
