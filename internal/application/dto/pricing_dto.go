package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePriceRuleRequest body para POST /api/pricing/rules.
// Alcance: scope = CUSTOMER requiere customer_id, GROUP requiere group_name,
// GENERAL no lleva ninguno.
type CreatePriceRuleRequest struct {
	MaterialName    string           `json:"material_name"`
	Scope           string           `json:"scope"`
	CustomerID      string           `json:"customer_id,omitempty"`
	GroupName       string           `json:"group_name,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	Currency        string           `json:"currency"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	MinQuantity     *decimal.Decimal `json:"min_quantity,omitempty"`
	ValidFrom       *time.Time       `json:"valid_from,omitempty"`
	ValidTo         *time.Time       `json:"valid_to,omitempty"`
}

// PriceRuleDTO una regla del catálogo.
type PriceRuleDTO struct {
	ID              string           `json:"id"`
	MaterialName    string           `json:"material_name"`
	Scope           string           `json:"scope"`
	CustomerID      string           `json:"customer_id,omitempty"`
	GroupName       string           `json:"group_name,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	Currency        string           `json:"currency"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	MinQuantity     *decimal.Decimal `json:"min_quantity,omitempty"`
	ValidFrom       *time.Time       `json:"valid_from,omitempty"`
	ValidTo         *time.Time       `json:"valid_to,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// ResolvePriceRequest body para POST /api/pricing/resolve.
type ResolvePriceRequest struct {
	MaterialName  string           `json:"material_name"`
	CustomerID    string           `json:"customer_id,omitempty"`
	CustomerGroup string           `json:"customer_group,omitempty"`
	Quantity      *decimal.Decimal `json:"quantity,omitempty"`
	Currency      string           `json:"currency,omitempty"`
	AsOf          *time.Time       `json:"as_of,omitempty"`
}

// ResolvePriceResponse resultado de la resolución. Sin regla aplicable no es
// error: matched=false y rule ausente.
type ResolvePriceResponse struct {
	Matched bool          `json:"matched"`
	Rule    *PriceRuleDTO `json:"rule,omitempty"`
}

// QuoteLineRequest body para POST /api/pricing/quote. Si viene unit_price
// explícito no se consulta el catálogo; si no, se resuelve la regla y se
// aplica su descuento.
type QuoteLineRequest struct {
	MaterialName     string           `json:"material_name"`
	CustomerID       string           `json:"customer_id,omitempty"`
	CustomerGroup    string           `json:"customer_group,omitempty"`
	Quantity         decimal.Decimal  `json:"quantity"`
	UnitPrice        *decimal.Decimal `json:"unit_price,omitempty"`
	LineCurrency     string           `json:"line_currency,omitempty"`
	ExchangeRate     *decimal.Decimal `json:"exchange_rate,omitempty"`
	DocumentCurrency string           `json:"document_currency"`
}

// QuoteLineResponse línea normalizada a la moneda del documento.
// unit_price y total van redondeados a la precisión de display (2 decimales);
// el cálculo interno usa los intermedios sin redondear.
type QuoteLineResponse struct {
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	Currency    string          `json:"currency"`
	RuleID      string          `json:"rule_id,omitempty"`
	RuleMatched bool            `json:"rule_matched"`
	BreakNotMet bool            `json:"break_not_met,omitempty"`
}
