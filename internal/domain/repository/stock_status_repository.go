package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StockStatusRepository puerto de persistencia de la vista materializada de
// stock por clave de agregación. Usado dentro de transacciones para
// garantizar consistencia lectura-chequeo-escritura.
type StockStatusRepository interface {
	// Get devuelve el registro o nil si la clave nunca tuvo movimientos.
	Get(ctx context.Context, key entity.AggregationKey) (*entity.StockStatusRecord, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Para claves no vistas
	// devuelve el registro en cero, listo para la creación perezosa.
	GetForUpdate(ctx context.Context, key entity.AggregationKey) (*entity.StockStatusRecord, error)
	Upsert(ctx context.Context, record *entity.StockStatusRecord) error
	// ListByTenant lista los registros de la empresa (para el reporte de
	// stock crítico).
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.StockStatusRecord, error)
}
