package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	apppricing "github.com/jhoicas/Almacen-api/internal/application/pricing"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	dompricing "github.com/jhoicas/Almacen-api/internal/domain/pricing"
)

// PricingHandler maneja las peticiones HTTP del motor de precios (protegido).
type PricingHandler struct {
	uc *apppricing.UseCase
}

// NewPricingHandler construye el handler.
func NewPricingHandler(uc *apppricing.UseCase) *PricingHandler {
	return &PricingHandler{uc: uc}
}

func ruleToDTO(r *entity.PriceRule) dto.PriceRuleDTO {
	return dto.PriceRuleDTO{
		ID:              r.ID,
		MaterialName:    r.MaterialName,
		Scope:           r.Scope.Kind,
		CustomerID:      r.Scope.CustomerID,
		GroupName:       r.Scope.GroupName,
		Price:           r.Price,
		Currency:        r.Currency,
		DiscountPercent: r.DiscountPercent,
		MinQuantity:     r.MinQuantity,
		ValidFrom:       r.ValidFrom,
		ValidTo:         r.ValidTo,
		CreatedAt:       r.CreatedAt,
	}
}

func pricingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNonPositiveQuantity),
		errors.Is(err, domain.ErrNegativeUnitPrice):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "regla no encontrada"})
	case errors.Is(err, domain.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE_UNAVAILABLE", Message: "almacenamiento no disponible, reintente"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// ResolvePrice godoc
// @Summary      Resolver la regla de precio aplicable
// @Description  Sin regla aplicable responde 200 con matched=false; no es error.
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResolvePriceRequest  true  "material_name; opcionales customer_id, customer_group, quantity, currency, as_of"
// @Success      200  {object}  dto.ResolvePriceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/pricing/resolve [post]
func (h *PricingHandler) ResolvePrice(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	var in dto.ResolvePriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	asOf := time.Now()
	if in.AsOf != nil {
		asOf = *in.AsOf
	}
	rule, err := h.uc.ResolvePrice(c.Context(), tenantID, dompricing.Query{
		MaterialName:  in.MaterialName,
		CustomerID:    in.CustomerID,
		CustomerGroup: in.CustomerGroup,
		Quantity:      in.Quantity,
		Currency:      in.Currency,
		AsOf:          asOf,
	})
	if err != nil {
		return pricingError(c, err)
	}
	if rule == nil {
		return c.JSON(dto.ResolvePriceResponse{Matched: false})
	}
	ruleDTO := ruleToDTO(rule)
	return c.JSON(dto.ResolvePriceResponse{Matched: true, Rule: &ruleDTO})
}

// QuoteLine godoc
// @Summary      Componer una línea en la moneda del documento
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuoteLineRequest  true  "material_name, quantity, document_currency; opcionales unit_price, line_currency, exchange_rate, customer_id, customer_group"
// @Success      200  {object}  dto.QuoteLineResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/pricing/quote [post]
func (h *PricingHandler) QuoteLine(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	var in dto.QuoteLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	quote, err := h.uc.ComposeLine(c.Context(), tenantID, apppricing.QuoteLineInput{
		MaterialName:     in.MaterialName,
		CustomerID:       in.CustomerID,
		CustomerGroup:    in.CustomerGroup,
		Quantity:         in.Quantity,
		UnitPrice:        in.UnitPrice,
		LineCurrency:     in.LineCurrency,
		ExchangeRate:     in.ExchangeRate,
		DocumentCurrency: in.DocumentCurrency,
	})
	if err != nil {
		return pricingError(c, err)
	}
	return c.JSON(dto.QuoteLineResponse{
		UnitPrice:   quote.UnitPrice,
		Total:       quote.Total,
		Currency:    quote.Currency,
		RuleID:      quote.RuleID,
		RuleMatched: quote.RuleMatched,
		BreakNotMet: quote.BreakNotMet,
	})
}

// CreateRule godoc
// @Summary      Crear regla de precio
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePriceRuleRequest  true  "material_name, scope (CUSTOMER|GROUP|GENERAL), price, currency"
// @Success      201  {object}  dto.PriceRuleDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/pricing/rules [post]
func (h *PricingHandler) CreateRule(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	var in dto.CreatePriceRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rule := &entity.PriceRule{
		TenantID:        tenantID,
		MaterialName:    in.MaterialName,
		Scope:           entity.RuleScope{Kind: in.Scope, CustomerID: in.CustomerID, GroupName: in.GroupName},
		Price:           in.Price,
		Currency:        in.Currency,
		DiscountPercent: in.DiscountPercent,
		MinQuantity:     in.MinQuantity,
		ValidFrom:       in.ValidFrom,
		ValidTo:         in.ValidTo,
	}
	if err := h.uc.CreateRule(c.Context(), rule); err != nil {
		return pricingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ruleToDTO(rule))
}

// ListRules godoc
// @Summary      Listar reglas de precio
// @Tags         pricing
// @Security     Bearer
// @Produce      json
// @Param        material_name  query  string  false  "Filtrar por material"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/pricing/rules [get]
func (h *PricingHandler) ListRules(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	rules, err := h.uc.ListRules(c.Context(), tenantID, c.Query("material_name"), page.Limit, page.Offset)
	if err != nil {
		return pricingError(c, err)
	}
	list := make([]dto.PriceRuleDTO, 0, len(rules))
	for _, r := range rules {
		list = append(list, ruleToDTO(r))
	}
	return c.JSON(fiber.Map{"total": len(list), "rules": list})
}

// DeleteRule godoc
// @Summary      Eliminar regla de precio
// @Tags         pricing
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la regla"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pricing/rules/{id} [delete]
func (h *PricingHandler) DeleteRule(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if err := h.uc.DeleteRule(c.Context(), tenantID, c.Params("id")); err != nil {
		return pricingError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
