// Package pricing contiene el motor de reglas de precio y la normalización
// de líneas a la moneda del documento. Todo es puro: el catálogo de reglas
// llega ya cargado (y filtrado por empresa) desde el caller.
package pricing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Query parámetros de resolución de precio para una línea.
// CustomerID/CustomerGroup vacíos significan "sin cliente/grupo".
// Quantity nil desactiva el filtro de cantidad mínima; Currency vacía
// desactiva el filtro de moneda.
type Query struct {
	MaterialName  string
	CustomerID    string
	CustomerGroup string
	Quantity      *decimal.Decimal
	Currency      string
	AsOf          time.Time
}

// Resolve selecciona de forma determinista a lo sumo una regla aplicable.
// Nunca es error no encontrar regla: nil es una respuesta normal y el caller
// decide el fallback (típicamente precio explícito o cero).
//
// Dos pasadas:
//  1. candidatas: material exacto, vigentes en AsOf y de la moneda pedida.
//  2. Pasada A: además MinQuantity ausente o <= Quantity. Si queda vacía,
//     Pasada B repite el ranking sobre las candidatas SIN el filtro de
//     cantidad mínima: se prefiere devolver "la mejor regla disponible"
//     antes que nada, aunque el quantity break no se cumpla.
//
// Ranking: cliente > grupo > general; a igual prioridad gana el ValidFrom
// más reciente (ausente ordena como el más antiguo) y, como desempate
// estable, el ID de regla ascendente. Una regla de cliente/grupo que no
// coincide con la consulta nunca se devuelve: el ranking ordena la
// consideración, no la elegibilidad.
func Resolve(q Query, rules []*entity.PriceRule) *entity.PriceRule {
	candidates := make([]*entity.PriceRule, 0, len(rules))
	for _, r := range rules {
		if r.MaterialName != q.MaterialName {
			continue
		}
		if !r.InWindow(q.AsOf) {
			continue
		}
		if q.Currency != "" && r.Currency != q.Currency {
			continue
		}
		if !eligible(q, r) {
			continue
		}
		candidates = append(candidates, r)
	}

	// Pasada A: respetar el quantity break cuando hay cantidad.
	if q.Quantity != nil {
		passA := make([]*entity.PriceRule, 0, len(candidates))
		for _, r := range candidates {
			if r.MinQuantity == nil || r.MinQuantity.LessThanOrEqual(*q.Quantity) {
				passA = append(passA, r)
			}
		}
		if len(passA) > 0 {
			return best(q, passA)
		}
		// Pasada B: fallback sin el filtro de cantidad mínima.
	}
	return best(q, candidates)
}

// eligible indica si el alcance de la regla coincide con la consulta.
func eligible(q Query, r *entity.PriceRule) bool {
	switch r.Scope.Kind {
	case entity.ScopeCustomer:
		return q.CustomerID != "" && r.Scope.CustomerID == q.CustomerID
	case entity.ScopeGroup:
		return q.CustomerGroup != "" && r.Scope.GroupName == q.CustomerGroup
	case entity.ScopeGeneral:
		return true
	}
	return false
}

func scopePriority(r *entity.PriceRule) int {
	switch r.Scope.Kind {
	case entity.ScopeCustomer:
		return 0
	case entity.ScopeGroup:
		return 1
	}
	return 2
}

// best ordena las elegibles por prioridad de alcance, ValidFrom descendente
// y ID ascendente, y devuelve la primera.
func best(q Query, rules []*entity.PriceRule) *entity.PriceRule {
	if len(rules) == 0 {
		return nil
	}
	ranked := make([]*entity.PriceRule, len(rules))
	copy(ranked, rules)
	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := scopePriority(ranked[i]), scopePriority(ranked[j])
		if pi != pj {
			return pi < pj
		}
		fi, fj := ranked[i].ValidFrom, ranked[j].ValidFrom
		switch {
		case fi == nil && fj != nil:
			return false // sin fecha ordena como el más antiguo
		case fi != nil && fj == nil:
			return true
		case fi != nil && fj != nil && !fi.Equal(*fj):
			return fi.After(*fj)
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked[0]
}
