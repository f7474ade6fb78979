package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestInWindow_ExtremosInclusivos la vigencia incluye ambos extremos;
// un extremo ausente no acota.
func TestInWindow_ExtremosInclusivos(t *testing.T) {
	from := date(2026, 1, 1)
	to := date(2026, 12, 31)
	r := &entity.PriceRule{ValidFrom: &from, ValidTo: &to}

	assert.True(t, r.InWindow(from))
	assert.True(t, r.InWindow(to))
	assert.True(t, r.InWindow(date(2026, 6, 15)))
	assert.False(t, r.InWindow(date(2025, 12, 31)))
	assert.False(t, r.InWindow(date(2027, 1, 1)))

	sinLimites := &entity.PriceRule{}
	assert.True(t, sinLimites.InWindow(date(1990, 1, 1)))
	assert.True(t, sinLimites.InWindow(date(2090, 1, 1)))

	soloDesde := &entity.PriceRule{ValidFrom: &from}
	assert.False(t, soloDesde.InWindow(date(2025, 6, 1)))
	assert.True(t, soloDesde.InWindow(date(2027, 6, 1)))
}

// TestEffectiveUnitPrice_Descuento precio efectivo = precio * (1 - desc/100).
func TestEffectiveUnitPrice_Descuento(t *testing.T) {
	desc := decimal.NewFromInt(25)
	r := &entity.PriceRule{Price: decimal.NewFromInt(200), DiscountPercent: &desc}
	assert.True(t, r.EffectiveUnitPrice().Equal(decimal.NewFromInt(150)))

	sinDesc := &entity.PriceRule{Price: decimal.NewFromInt(200)}
	assert.True(t, sinDesc.EffectiveUnitPrice().Equal(decimal.NewFromInt(200)))
}

// TestRuleScope_Constructores la unión etiquetada no permite el estado
// ilegal "cliente y grupo a la vez".
func TestRuleScope_Constructores(t *testing.T) {
	c := entity.CustomerScope("C1")
	assert.Equal(t, entity.ScopeCustomer, c.Kind)
	assert.Equal(t, "C1", c.CustomerID)
	assert.Empty(t, c.GroupName)

	g := entity.GroupScope("mayoristas")
	assert.Equal(t, entity.ScopeGroup, g.Kind)
	assert.Empty(t, g.CustomerID)

	assert.Equal(t, entity.ScopeGeneral, entity.GeneralScope().Kind)
}
