package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// TestAggregationKey_AusenteNoEsVacio la ambigüedad "ausente vs string vacío"
// era una fuente real de colisiones de clave: una dimensión omitida y una
// dimensión presente con valor "" son claves DISTINTAS.
func TestAggregationKey_AusenteNoEsVacio(t *testing.T) {
	base := entity.AggregationKey{TenantID: "t1", MaterialName: "Tornillo"}

	sinBodega := base
	conBodegaVacia := base
	conBodegaVacia.Warehouse = entity.Dim("")

	assert.NotEqual(t, sinBodega, conBodegaVacia)
	assert.NotEqual(t, sinBodega.Canonical(), conBodegaVacia.Canonical())
}

// TestAggregationKey_Canonical_Estable el encoding canónico es determinista:
// la misma clave produce siempre el mismo texto.
func TestAggregationKey_Canonical_Estable(t *testing.T) {
	k := entity.AggregationKey{
		TenantID:     "t1",
		MaterialName: "Tornillo",
		Warehouse:    entity.Dim("BOD-1"),
		SKU:          entity.Dim("SKU-9"),
	}
	assert.Equal(t, k.Canonical(), k.Canonical())

	otra := k
	otra.Variant = entity.Dim("rojo")
	assert.NotEqual(t, k.Canonical(), otra.Canonical())
}

// TestAggregationKey_Canonical_EscapaSeparadores un material con "|" en el
// nombre no debe colisionar con otra clave que reparta el texto distinto.
func TestAggregationKey_Canonical_EscapaSeparadores(t *testing.T) {
	a := entity.AggregationKey{TenantID: "t1", MaterialName: "A|B", Warehouse: entity.Dim("C")}
	b := entity.AggregationKey{TenantID: "t1", MaterialName: "A", Warehouse: entity.Dim("B|C")}
	assert.NotEqual(t, a.Canonical(), b.Canonical())
}

// TestAggregationKey_UsableComoClaveDeMap la clave es comparable y sirve
// directamente como clave de map (canonical equality, sin concatenación ad-hoc).
func TestAggregationKey_UsableComoClaveDeMap(t *testing.T) {
	m := map[entity.AggregationKey]int{}
	k1 := entity.AggregationKey{TenantID: "t1", MaterialName: "Tornillo", Warehouse: entity.Dim("BOD-1")}
	k2 := entity.AggregationKey{TenantID: "t1", MaterialName: "Tornillo", Warehouse: entity.Dim("BOD-1")}
	m[k1] = 1
	m[k2]++
	assert.Len(t, m, 1)
	assert.Equal(t, 2, m[k1])
}
