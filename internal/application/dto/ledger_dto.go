package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AggregationKeyDTO dimensiones de la clave de agregación en requests y
// respuestas. Los opcionales van como punteros: omitido (nil) es una clave
// distinta de presente-vacío ("").
type AggregationKeyDTO struct {
	MaterialName string  `json:"material_name" query:"material_name"`
	Warehouse    *string `json:"warehouse,omitempty" query:"warehouse"`
	SKU          *string `json:"sku,omitempty" query:"sku"`
	Variant      *string `json:"variant,omitempty" query:"variant"`
	BinCode      *string `json:"bin_code,omitempty" query:"bin_code"`
}

// ApplyMovementRequest body para POST /api/ledger/movements.
type ApplyMovementRequest struct {
	AggregationKeyDTO
	Kind              string           `json:"kind"` // ENTRY | OUTPUT
	Quantity          decimal.Decimal  `json:"quantity"`
	Unit              string           `json:"unit,omitempty"`
	UnitPrice         *decimal.Decimal `json:"unit_price,omitempty"`
	CriticalLevelHint decimal.Decimal  `json:"critical_level_hint,omitempty"`
	OccurredAt        *time.Time       `json:"occurred_at,omitempty"`
}

// StockStatusDTO respuesta con el registro de estado y su salud derivada.
type StockStatusDTO struct {
	AggregationKeyDTO
	TotalEntry    decimal.Decimal `json:"total_entry"`
	TotalOutput   decimal.Decimal `json:"total_output"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	CriticalLevel decimal.Decimal `json:"critical_level"`
	Health        string          `json:"health"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// MovementDTO un movimiento del historial.
type MovementDTO struct {
	ID string `json:"id"`
	AggregationKeyDTO
	Kind       string           `json:"kind"`
	Quantity   decimal.Decimal  `json:"quantity"`
	Unit       string           `json:"unit,omitempty"`
	UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
	CreatedBy  string           `json:"created_by,omitempty"`
}

// ListMovementsRequest filtros de historial (query params).
type ListMovementsRequest struct {
	AggregationKeyDTO
	From *time.Time `query:"from"`
	To   *time.Time `query:"to"`
	PageRequest
}

// InsufficientStockResponse detalle del rechazo por saldo insuficiente:
// la UI muestra disponible y solicitado lado a lado.
type InsufficientStockResponse struct {
	Code      string          `json:"code"`
	Message   string          `json:"message"`
	Available decimal.Decimal `json:"available"`
	Requested decimal.Decimal `json:"requested"`
}
