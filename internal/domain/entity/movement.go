package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de stock.
const (
	MovementKindEntry  = "ENTRY"  // entrada
	MovementKindOutput = "OUTPUT" // salida
)

// Movement representa un hecho inmutable del libro de stock (entrada o salida).
// Nunca se edita ni se borra después de admitido; las correcciones se modelan
// como movimientos nuevos. Eso es lo que hace reproducible el agregado.
type Movement struct {
	ID                string
	Key               AggregationKey
	Kind              string
	Quantity          decimal.Decimal  // siempre > 0; el signo lo da Kind
	Unit              string           // solo display; la conversión de unidades es externa
	UnitPrice         *decimal.Decimal // solo entradas, >= 0
	CriticalLevelHint decimal.Decimal  // nivel crítico sugerido por el catálogo (0 = sin cambio)
	OccurredAt        time.Time
	CreatedAt         time.Time
	CreatedBy         string
}

// IsEntry indica si el movimiento suma stock.
func (m *Movement) IsEntry() bool {
	return m.Kind == MovementKindEntry
}
