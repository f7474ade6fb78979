package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Alcance de una regla de precio.
const (
	ScopeCustomer = "CUSTOMER"
	ScopeGroup    = "GROUP"
	ScopeGeneral  = "GENERAL"
)

// RuleScope es la unión etiquetada Customer(id) | Group(nombre) | General.
// Antes el alcance eran dos campos nullable "mutuamente exclusivos por
// convención"; con la unión el estado ilegal (ambos presentes) no es
// representable. Construir siempre vía CustomerScope/GroupScope/GeneralScope.
type RuleScope struct {
	Kind       string
	CustomerID string // solo Kind == CUSTOMER
	GroupName  string // solo Kind == GROUP
}

// CustomerScope regla para un cliente concreto.
func CustomerScope(customerID string) RuleScope {
	return RuleScope{Kind: ScopeCustomer, CustomerID: customerID}
}

// GroupScope regla para un grupo de clientes.
func GroupScope(name string) RuleScope {
	return RuleScope{Kind: ScopeGroup, GroupName: name}
}

// GeneralScope regla sin restricción de cliente.
func GeneralScope() RuleScope {
	return RuleScope{Kind: ScopeGeneral}
}

// PriceRule es una regla de precio declarativa, definida por el administrador,
// independiente de los movimientos de stock. La resolución siempre se evalúa
// contra el catálogo vigente y la fecha actual; no se guarda historial
// point-in-time de reglas.
type PriceRule struct {
	ID              string
	TenantID        string
	MaterialName    string // match exacto
	Scope           RuleScope
	Price           decimal.Decimal // > 0
	Currency        string          // código ISO 4217
	DiscountPercent *decimal.Decimal
	MinQuantity     *decimal.Decimal // quantity break: cantidad mínima para aplicar
	ValidFrom       *time.Time       // nil = sin límite inferior
	ValidTo         *time.Time       // nil = sin límite superior
	CreatedAt       time.Time
}

// InWindow indica si la regla está vigente en la fecha dada.
// Ambos extremos son inclusivos; un extremo ausente no acota.
func (r *PriceRule) InWindow(asOf time.Time) bool {
	if r.ValidFrom != nil && asOf.Before(*r.ValidFrom) {
		return false
	}
	if r.ValidTo != nil && asOf.After(*r.ValidTo) {
		return false
	}
	return true
}

var percentBase = decimal.NewFromInt(100)

// EffectiveUnitPrice devuelve el precio con el descuento aplicado:
// Price * (1 - DiscountPercent/100). Sin descuento devuelve Price.
func (r *PriceRule) EffectiveUnitPrice() decimal.Decimal {
	if r.DiscountPercent == nil || r.DiscountPercent.IsZero() {
		return r.Price
	}
	factor := decimal.NewFromInt(1).Sub(r.DiscountPercent.Div(percentBase))
	return r.Price.Mul(factor)
}
