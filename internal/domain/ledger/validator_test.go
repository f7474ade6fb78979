package ledger_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/ledger"
)

func testKey() entity.AggregationKey {
	return entity.AggregationKey{TenantID: "t1", MaterialName: "Tornillo"}
}

func entry(qty int64) *entity.Movement {
	return &entity.Movement{Key: testKey(), Kind: entity.MovementKindEntry, Quantity: decimal.NewFromInt(qty)}
}

func output(qty int64) *entity.Movement {
	return &entity.Movement{Key: testKey(), Kind: entity.MovementKindOutput, Quantity: decimal.NewFromInt(qty)}
}

// ── ValidateMovement ──────────────────────────────────────────────────────────

func TestValidateMovement_CantidadNoPositiva(t *testing.T) {
	assert.ErrorIs(t, ledger.ValidateMovement(entry(0)), domain.ErrNonPositiveQuantity)
	assert.ErrorIs(t, ledger.ValidateMovement(output(-5)), domain.ErrNonPositiveQuantity)
	assert.NoError(t, ledger.ValidateMovement(entry(1)))
}

func TestValidateMovement_PrecioUnitarioNegativo(t *testing.T) {
	m := entry(10)
	negativo := decimal.NewFromInt(-3)
	m.UnitPrice = &negativo
	assert.ErrorIs(t, ledger.ValidateMovement(m), domain.ErrNegativeUnitPrice)

	cero := decimal.Zero
	m.UnitPrice = &cero
	assert.NoError(t, ledger.ValidateMovement(m))
}

func TestValidateMovement_TipoDesconocido(t *testing.T) {
	m := entry(10)
	m.Kind = "TRANSFER"
	assert.ErrorIs(t, ledger.ValidateMovement(m), domain.ErrInvalidInput)
}

// ── CheckOutput ───────────────────────────────────────────────────────────────

// TestCheckOutput_StockInsuficiente salida de 10 contra balance 5: rechazo
// con disponible=5 y solicitado=10, para que la UI muestre ambos.
func TestCheckOutput_StockInsuficiente(t *testing.T) {
	record := entity.NewStockStatusRecord(testKey())
	record.TotalEntry = decimal.NewFromInt(5)

	err := ledger.CheckOutput(record, decimal.NewFromInt(10))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insuf *ledger.InsufficientStockError
	require.True(t, errors.As(err, &insuf))
	assert.True(t, insuf.Available.Equal(decimal.NewFromInt(5)))
	assert.True(t, insuf.Requested.Equal(decimal.NewFromInt(10)))
}

// TestCheckOutput_SalidaExacta dejar el balance exactamente en cero es válido.
func TestCheckOutput_SalidaExacta(t *testing.T) {
	record := entity.NewStockStatusRecord(testKey())
	record.TotalEntry = decimal.NewFromInt(10)
	assert.NoError(t, ledger.CheckOutput(record, decimal.NewFromInt(10)))
}

// ── Apply ─────────────────────────────────────────────────────────────────────

// TestApply_EntradaConNivelCritico el hint > 0 pisa el nivel crítico
// (last-write-wins) incluso cuando el nuevo es menor que el anterior.
func TestApply_EntradaConNivelCritico(t *testing.T) {
	record := entity.NewStockStatusRecord(testKey())

	m := entry(100)
	m.CriticalLevelHint = decimal.NewFromInt(20)
	ledger.Apply(record, m)
	assert.True(t, record.TotalEntry.Equal(decimal.NewFromInt(100)))
	assert.True(t, record.CriticalLevel.Equal(decimal.NewFromInt(20)))

	m2 := entry(50)
	m2.CriticalLevelHint = decimal.NewFromInt(5) // menor que el vigente
	ledger.Apply(record, m2)
	assert.True(t, record.CriticalLevel.Equal(decimal.NewFromInt(5)))

	m3 := entry(10) // sin hint: no cambia el nivel
	ledger.Apply(record, m3)
	assert.True(t, record.CriticalLevel.Equal(decimal.NewFromInt(5)))
}

// TestApply_NoDeduplica aplicar dos veces "el mismo" movimiento suma dos
// veces: cada llamada es un hecho nuevo, esta capa no deduplica.
func TestApply_NoDeduplica(t *testing.T) {
	record := entity.NewStockStatusRecord(testKey())
	m := entry(10)
	ledger.Apply(record, m)
	ledger.Apply(record, m)
	assert.True(t, record.TotalEntry.Equal(decimal.NewFromInt(20)))
}

// TestApply_InvarianteBalance tras cualquier secuencia el balance es
// exactamente entradas - salidas.
func TestApply_InvarianteBalance(t *testing.T) {
	record := entity.NewStockStatusRecord(testKey())
	ledger.Apply(record, entry(100))
	ledger.Apply(record, output(30))
	ledger.Apply(record, entry(7))
	ledger.Apply(record, output(50))

	assert.True(t, record.CurrentStock().Equal(decimal.NewFromInt(27)))
	assert.True(t, record.CurrentStock().Equal(record.TotalEntry.Sub(record.TotalOutput)))
}
