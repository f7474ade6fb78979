package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockStatusRepository = (*StockStatusRepo)(nil)

// StockStatusRepo implementación de StockStatusRepository sobre PostgreSQL
// (usable con pool o tx). La clave primaria es el encoding canónico de la
// clave de agregación; las dimensiones se guardan además como columnas NULL-
// ables para poder filtrar (NULL = dimensión ausente, distinto de '').
type StockStatusRepo struct {
	q Querier
}

// NewStockStatusRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockStatusRepository(q Querier) *StockStatusRepo {
	return &StockStatusRepo{q: q}
}

// dimParam convierte una dimensión a parámetro SQL (NULL si está ausente).
func dimParam(d entity.Dimension) *string {
	if !d.Set {
		return nil
	}
	v := d.Value
	return &v
}

// dimScan convierte una columna NULLable a dimensión.
func dimScan(v *string) entity.Dimension {
	if v == nil {
		return entity.NoDim()
	}
	return entity.Dim(*v)
}

const stockStatusColumns = `tenant_id, material_name, warehouse, sku, variant, bin_code,
		total_entry, total_output, critical_level, updated_at`

func scanStatusRow(row pgx.Row) (*entity.StockStatusRecord, error) {
	var r entity.StockStatusRecord
	var warehouse, sku, variant, bin *string
	err := row.Scan(
		&r.Key.TenantID, &r.Key.MaterialName, &warehouse, &sku, &variant, &bin,
		&r.TotalEntry, &r.TotalOutput, &r.CriticalLevel, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Key.Warehouse = dimScan(warehouse)
	r.Key.SKU = dimScan(sku)
	r.Key.Variant = dimScan(variant)
	r.Key.BinCode = dimScan(bin)
	return &r, nil
}

// Get obtiene el registro de una clave, o nil si nunca tuvo movimientos.
func (r *StockStatusRepo) Get(ctx context.Context, key entity.AggregationKey) (*entity.StockStatusRecord, error) {
	query := `
		SELECT ` + stockStatusColumns + `
		FROM stock_status WHERE agg_key = $1`
	record, err := scanStatusRow(r.q.QueryRow(ctx, query, key.Canonical()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock status: %w", err)
	}
	return record, nil
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE).
// Para una clave no vista inserta primero la fila en cero (ON CONFLICT DO
// NOTHING) y vuelve a bloquear: dos primeros movimientos concurrentes de la
// misma clave también deben serializarse, no solo los de claves ya creadas.
func (r *StockStatusRepo) GetForUpdate(ctx context.Context, key entity.AggregationKey) (*entity.StockStatusRecord, error) {
	query := `
		SELECT ` + stockStatusColumns + `
		FROM stock_status WHERE agg_key = $1
		FOR UPDATE`
	record, err := scanStatusRow(r.q.QueryRow(ctx, query, key.Canonical()))
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get stock status for update: %w", err)
	}

	// Creación perezosa de la fila para poder tomar el lock.
	insert := `
		INSERT INTO stock_status (agg_key, tenant_id, material_name, warehouse, sku, variant, bin_code,
			total_entry, total_output, critical_level, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0, 0, now())
		ON CONFLICT (agg_key) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert,
		key.Canonical(), key.TenantID, key.MaterialName,
		dimParam(key.Warehouse), dimParam(key.SKU), dimParam(key.Variant), dimParam(key.BinCode),
	); err != nil {
		return nil, fmt.Errorf("init stock status row: %w", err)
	}
	record, err = scanStatusRow(r.q.QueryRow(ctx, query, key.Canonical()))
	if err != nil {
		return nil, fmt.Errorf("get stock status for update: %w", err)
	}
	return record, nil
}

// Upsert inserta o actualiza los totales del registro.
func (r *StockStatusRepo) Upsert(ctx context.Context, record *entity.StockStatusRecord) error {
	query := `
		INSERT INTO stock_status (agg_key, tenant_id, material_name, warehouse, sku, variant, bin_code,
			total_entry, total_output, critical_level, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		ON CONFLICT (agg_key)
		DO UPDATE SET total_entry = EXCLUDED.total_entry,
			total_output = EXCLUDED.total_output,
			critical_level = EXCLUDED.critical_level,
			updated_at = now()`
	k := record.Key
	_, err := r.q.Exec(ctx, query,
		k.Canonical(), k.TenantID, k.MaterialName,
		dimParam(k.Warehouse), dimParam(k.SKU), dimParam(k.Variant), dimParam(k.BinCode),
		record.TotalEntry, record.TotalOutput, record.CriticalLevel,
	)
	if err != nil {
		return fmt.Errorf("upsert stock status: %w", err)
	}
	return nil
}

// ListByTenant lista todos los registros de la empresa.
func (r *StockStatusRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.StockStatusRecord, error) {
	query := `
		SELECT ` + stockStatusColumns + `
		FROM stock_status WHERE tenant_id = $1
		ORDER BY material_name`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list stock status: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockStatusRecord
	for rows.Next() {
		record, err := scanStatusRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock status: %w", err)
		}
		list = append(list, record)
	}
	return list, rows.Err()
}
