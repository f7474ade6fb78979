package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// PriceRuleRepository puerto de persistencia del catálogo de reglas de precio.
// El resolver no conoce este puerto: recibe la lista ya cargada. La lectura
// es sin locks; una regla recién creada puede tardar en verse (consistencia
// eventual aceptable, acotada por el TTL del caché).
type PriceRuleRepository interface {
	Create(ctx context.Context, rule *entity.PriceRule) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.PriceRule, error)
	ListByMaterial(ctx context.Context, tenantID, materialName string) ([]*entity.PriceRule, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.PriceRule, error)
	Delete(ctx context.Context, tenantID, id string) error
}
