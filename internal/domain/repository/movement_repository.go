package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// MovementFilter filtros para listar el historial de movimientos.
// MaterialName es obligatorio; las dimensiones opcionales solo filtran
// cuando están presentes (ausente como filtro = no filtrar, distinto de
// ausente como valor de clave).
type MovementFilter struct {
	MaterialName string
	Warehouse    *string
	SKU          *string
	Variant      *string
	BinCode      *string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// MovementRepository puerto de persistencia del libro de movimientos.
// Solo inserta y lista: los movimientos son hechos inmutables, sin update
// ni delete.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	List(ctx context.Context, tenantID string, filter MovementFilter) ([]*entity.Movement, error)
}
