package ledger

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El chequeo de saldo y la actualización de
// totales viven dentro del mismo límite transaccional; esa atomicidad es el
// corazón del libro de stock.
//
// El runner traduce fallas de serialización/deadlock a
// domain.ErrConcurrencyConflict y fallas de conexión a
// domain.ErrStorageUnavailable, para que este paquete decida reintentos sin
// conocer el driver.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		statusRepo repository.StockStatusRepository,
	) error) error
}
