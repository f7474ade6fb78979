package pricing

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RuleCache caché cache-aside del catálogo de reglas por empresa+material.
// Las fallas del caché no son fallas del caso de uso: un miss (o un Redis
// caído) solo significa ir a la base. La escritura de reglas invalida la
// clave; el TTL acota la ventana de consistencia eventual.
type RuleCache interface {
	Get(ctx context.Context, tenantID, materialName string) ([]*entity.PriceRule, bool)
	Set(ctx context.Context, tenantID, materialName string, rules []*entity.PriceRule)
	Invalidate(ctx context.Context, tenantID, materialName string)
}
