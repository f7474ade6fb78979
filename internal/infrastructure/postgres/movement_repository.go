package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only: no hay UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento admitido.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO stock_movements (id, tenant_id, material_name, warehouse, sku, variant, bin_code,
			kind, quantity, unit, unit_price, critical_level_hint, occurred_at, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	createdBy := (*string)(nil)
	if m.CreatedBy != "" {
		createdBy = &m.CreatedBy
	}
	k := m.Key
	_, err := r.q.Exec(ctx, query,
		m.ID, k.TenantID, k.MaterialName,
		dimParam(k.Warehouse), dimParam(k.SKU), dimParam(k.Variant), dimParam(k.BinCode),
		m.Kind, m.Quantity, m.Unit, m.UnitPrice, m.CriticalLevelHint,
		m.OccurredAt, m.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// List lista movimientos de la empresa por material y filtros opcionales,
// más recientes primero. Un puntero nil en una dimensión significa "no
// filtrar por esa dimensión", no "dimensión ausente".
func (r *MovementRepo) List(ctx context.Context, tenantID string, f repository.MovementFilter) ([]*entity.Movement, error) {
	query := `
		SELECT id, tenant_id, material_name, warehouse, sku, variant, bin_code,
			kind, quantity, unit, unit_price, critical_level_hint, occurred_at, created_at, created_by
		FROM stock_movements WHERE tenant_id = $1 AND material_name = $2`
	args := []any{tenantID, f.MaterialName}
	pos := 3
	addDim := func(column string, v *string) {
		if v == nil {
			return
		}
		query += fmt.Sprintf(" AND %s = $%d", column, pos)
		args = append(args, *v)
		pos++
	}
	addDim("warehouse", f.Warehouse)
	addDim("sku", f.SKU)
	addDim("variant", f.Variant)
	addDim("bin_code", f.BinCode)
	if f.From != nil {
		query += fmt.Sprintf(" AND occurred_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND occurred_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY occurred_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var warehouse, sku, variant, bin, createdBy *string
		if err := rows.Scan(&m.ID, &m.Key.TenantID, &m.Key.MaterialName,
			&warehouse, &sku, &variant, &bin,
			&m.Kind, &m.Quantity, &m.Unit, &m.UnitPrice, &m.CriticalLevelHint,
			&m.OccurredAt, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Key.Warehouse = dimScan(warehouse)
		m.Key.SKU = dimScan(sku)
		m.Key.Variant = dimScan(variant)
		m.Key.BinCode = dimScan(bin)
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
