package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.PriceRuleRepository = (*PriceRuleRepo)(nil)

// PriceRuleRepo implementación del catálogo de reglas de precio sobre
// PostgreSQL. El alcance se guarda desagregado (scope_kind + customer_id /
// group_name) y se reconstruye como unión etiquetada al leer.
type PriceRuleRepo struct {
	q Querier
}

// NewPriceRuleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceRuleRepository(q Querier) *PriceRuleRepo {
	return &PriceRuleRepo{q: q}
}

const priceRuleColumns = `id, tenant_id, material_name, scope_kind, customer_id, group_name,
		price, currency, discount_percent, min_quantity, valid_from, valid_to, created_at`

func scanRule(row pgx.Row) (*entity.PriceRule, error) {
	var r entity.PriceRule
	var customerID, groupName *string
	err := row.Scan(
		&r.ID, &r.TenantID, &r.MaterialName, &r.Scope.Kind, &customerID, &groupName,
		&r.Price, &r.Currency, &r.DiscountPercent, &r.MinQuantity,
		&r.ValidFrom, &r.ValidTo, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if customerID != nil {
		r.Scope.CustomerID = *customerID
	}
	if groupName != nil {
		r.Scope.GroupName = *groupName
	}
	return &r, nil
}

// Create persiste una regla nueva.
func (r *PriceRuleRepo) Create(ctx context.Context, rule *entity.PriceRule) error {
	query := `
		INSERT INTO price_rules (id, tenant_id, material_name, scope_kind, customer_id, group_name,
			price, currency, discount_percent, min_quantity, valid_from, valid_to, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	var customerID, groupName *string
	if rule.Scope.CustomerID != "" {
		customerID = &rule.Scope.CustomerID
	}
	if rule.Scope.GroupName != "" {
		groupName = &rule.Scope.GroupName
	}
	_, err := r.q.Exec(ctx, query,
		rule.ID, rule.TenantID, rule.MaterialName, rule.Scope.Kind, customerID, groupName,
		rule.Price, rule.Currency, rule.DiscountPercent, rule.MinQuantity,
		rule.ValidFrom, rule.ValidTo, rule.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("create price rule: %w", err)
	}
	return nil
}

// GetByID obtiene una regla por ID dentro de la empresa, o nil si no existe.
func (r *PriceRuleRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.PriceRule, error) {
	query := `
		SELECT ` + priceRuleColumns + `
		FROM price_rules WHERE tenant_id = $1 AND id = $2`
	rule, err := scanRule(r.q.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price rule: %w", err)
	}
	return rule, nil
}

// ListByMaterial lista las reglas de un material (match exacto).
func (r *PriceRuleRepo) ListByMaterial(ctx context.Context, tenantID, materialName string) ([]*entity.PriceRule, error) {
	query := `
		SELECT ` + priceRuleColumns + `
		FROM price_rules WHERE tenant_id = $1 AND material_name = $2
		ORDER BY id`
	return r.list(ctx, query, tenantID, materialName)
}

// ListByTenant lista el catálogo completo de la empresa.
func (r *PriceRuleRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.PriceRule, error) {
	query := `
		SELECT ` + priceRuleColumns + `
		FROM price_rules WHERE tenant_id = $1
		ORDER BY material_name, id LIMIT $2 OFFSET $3`
	return r.list(ctx, query, tenantID, limit, offset)
}

func (r *PriceRuleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.PriceRule, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list price rules: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan price rule: %w", err)
		}
		list = append(list, rule)
	}
	return list, rows.Err()
}

// Delete elimina una regla del catálogo.
func (r *PriceRuleRepo) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM price_rules WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete price rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
