package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/pricing"
)

var asOf = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func generalRule(id, material string, price int64) *entity.PriceRule {
	return &entity.PriceRule{
		ID:           id,
		MaterialName: material,
		Scope:        entity.GeneralScope(),
		Price:        decimal.NewFromInt(price),
		Currency:     "TRY",
	}
}

func customerRule(id, material, customerID string, price int64) *entity.PriceRule {
	r := generalRule(id, material, price)
	r.Scope = entity.CustomerScope(customerID)
	return r
}

func query(material string) pricing.Query {
	return pricing.Query{MaterialName: material, AsOf: asOf}
}

// TestResolve_SinReglas material sin reglas devuelve nil; no es error.
func TestResolve_SinReglas(t *testing.T) {
	assert.Nil(t, pricing.Resolve(query("Tornillo"), nil))
	assert.Nil(t, pricing.Resolve(query("Tornillo"), []*entity.PriceRule{generalRule("r1", "Tuerca", 10)}))
}

// TestResolve_PrioridadCliente con regla general a 10 TRY y regla del
// cliente C1 a 8 TRY: C1 recibe la suya, C2 recibe la general.
func TestResolve_PrioridadCliente(t *testing.T) {
	rules := []*entity.PriceRule{
		generalRule("r1", "Tornillo", 10),
		customerRule("r2", "Tornillo", "C1", 8),
	}

	q := query("Tornillo")
	q.CustomerID = "C1"
	got := pricing.Resolve(q, rules)
	require.NotNil(t, got)
	assert.Equal(t, "r2", got.ID)

	q.CustomerID = "C2"
	got = pricing.Resolve(q, rules)
	require.NotNil(t, got)
	assert.Equal(t, "r1", got.ID)
}

// TestResolve_PrioridadGrupo grupo gana a general pero pierde contra cliente.
func TestResolve_PrioridadGrupo(t *testing.T) {
	grupo := generalRule("r2", "Tornillo", 9)
	grupo.Scope = entity.GroupScope("mayoristas")
	rules := []*entity.PriceRule{
		generalRule("r1", "Tornillo", 10),
		grupo,
		customerRule("r3", "Tornillo", "C1", 8),
	}

	q := query("Tornillo")
	q.CustomerGroup = "mayoristas"
	got := pricing.Resolve(q, rules)
	require.NotNil(t, got)
	assert.Equal(t, "r2", got.ID)

	q.CustomerID = "C1"
	got = pricing.Resolve(q, rules)
	require.NotNil(t, got)
	assert.Equal(t, "r3", got.ID)
}

// TestResolve_EscopoNoCoincidenteNuncaSeDevuelve una regla de cliente que no
// es el de la consulta jamás se devuelve, aunque sea la mejor rankeada:
// el ranking ordena la consideración, no la elegibilidad.
func TestResolve_EscopoNoCoincidenteNuncaSeDevuelve(t *testing.T) {
	rules := []*entity.PriceRule{customerRule("r1", "Tornillo", "C1", 8)}

	q := query("Tornillo")
	q.CustomerID = "C2"
	assert.Nil(t, pricing.Resolve(q, rules))

	// Sin cliente en la consulta tampoco aplica la regla de cliente.
	assert.Nil(t, pricing.Resolve(query("Tornillo"), rules))
}

// TestResolve_QuantityBreak regla con mínimo 50 a 5 TRY y general a 9 TRY:
// cantidad 10 no alcanza el break y cae a la general; cantidad 60 lo cumple
// y el ranking normal decide.
func TestResolve_QuantityBreak(t *testing.T) {
	minQty := decimal.NewFromInt(50)
	break50 := customerRule("r1", "Tornillo", "C1", 5)
	break50.MinQuantity = &minQty
	rules := []*entity.PriceRule{break50, generalRule("r2", "Tornillo", 9)}

	q := query("Tornillo")
	q.CustomerID = "C1"

	qty10 := decimal.NewFromInt(10)
	q.Quantity = &qty10
	got := pricing.Resolve(q, rules)
	require.NotNil(t, got)
	assert.Equal(t, "r2", got.ID)

	qty60 := decimal.NewFromInt(60)
	q.Quantity = &qty60
	got = pricing.Resolve(q, rules)
	require.NotNil(t, got)
	assert.Equal(t, "r1", got.ID)
}

// TestResolve_FallbackPasadaB si TODAS las candidatas tienen break por
// encima de la cantidad, la Pasada B devuelve igual la mejor disponible:
// disponibilidad sobre estrictez, el caller decide cómo presentarla.
func TestResolve_FallbackPasadaB(t *testing.T) {
	minQty := decimal.NewFromInt(50)
	break50 := generalRule("r1", "Tornillo", 5)
	break50.MinQuantity = &minQty

	qty10 := decimal.NewFromInt(10)
	q := query("Tornillo")
	q.Quantity = &qty10

	got := pricing.Resolve(q, []*entity.PriceRule{break50})
	require.NotNil(t, got)
	assert.Equal(t, "r1", got.ID)
}

// TestResolve_VentanaDeVigencia fuera de la ventana la regla no es candidata;
// los extremos son inclusivos.
func TestResolve_VentanaDeVigencia(t *testing.T) {
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	futura := generalRule("r1", "Tornillo", 5)
	futura.ValidFrom = &from
	rules := []*entity.PriceRule{futura, generalRule("r2", "Tornillo", 9)}

	got := pricing.Resolve(query("Tornillo"), rules)
	require.NotNil(t, got)
	assert.Equal(t, "r2", got.ID)

	q := query("Tornillo")
	q.AsOf = from // primer día de vigencia: candidata, y gana por fecha más reciente
	got = pricing.Resolve(q, rules)
	require.NotNil(t, got)
	assert.Equal(t, "r1", got.ID)
}

// TestResolve_FiltroDeMoneda con moneda pedida solo califican reglas de esa
// moneda; sin moneda pedida el filtro no aplica.
func TestResolve_FiltroDeMoneda(t *testing.T) {
	usd := generalRule("r1", "Tornillo", 2)
	usd.Currency = "USD"
	rules := []*entity.PriceRule{usd, generalRule("r2", "Tornillo", 70)}

	q := query("Tornillo")
	q.Currency = "USD"
	got := pricing.Resolve(q, rules)
	require.NotNil(t, got)
	assert.Equal(t, "r1", got.ID)

	q.Currency = "EUR"
	assert.Nil(t, pricing.Resolve(q, rules))

	got = pricing.Resolve(query("Tornillo"), rules)
	require.NotNil(t, got)
	assert.Equal(t, "r1", got.ID) // sin filtro: desempate por ID
}

// TestResolve_FechaMasRecienteGana a igual prioridad gana el ValidFrom más
// reciente; una regla sin fecha ordena como la más antigua.
func TestResolve_FechaMasRecienteGana(t *testing.T) {
	enero := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	junio := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	vieja := generalRule("r1", "Tornillo", 10)
	vieja.ValidFrom = &enero
	nueva := generalRule("r2", "Tornillo", 12)
	nueva.ValidFrom = &junio
	sinFecha := generalRule("r0", "Tornillo", 8)

	got := pricing.Resolve(query("Tornillo"), []*entity.PriceRule{sinFecha, vieja, nueva})
	require.NotNil(t, got)
	assert.Equal(t, "r2", got.ID)
}

// TestResolve_DesempatePorID dos generales sin fechas: el orden de iteración
// del storage no decide; desempata el ID ascendente, estable entre corridas.
func TestResolve_DesempatePorID(t *testing.T) {
	a := generalRule("r-aaa", "Tornillo", 10)
	b := generalRule("r-bbb", "Tornillo", 12)

	got1 := pricing.Resolve(query("Tornillo"), []*entity.PriceRule{b, a})
	got2 := pricing.Resolve(query("Tornillo"), []*entity.PriceRule{a, b})
	require.NotNil(t, got1)
	assert.Equal(t, "r-aaa", got1.ID)
	assert.Equal(t, got1.ID, got2.ID)
}

// TestResolve_Determinista misma consulta y mismo catálogo: mismo resultado,
// siempre.
func TestResolve_Determinista(t *testing.T) {
	rules := []*entity.PriceRule{
		generalRule("r1", "Tornillo", 10),
		customerRule("r2", "Tornillo", "C1", 8),
		generalRule("r3", "Tornillo", 11),
	}
	q := query("Tornillo")
	q.CustomerID = "C1"

	first := pricing.Resolve(q, rules)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, pricing.Resolve(q, rules))
	}
}
