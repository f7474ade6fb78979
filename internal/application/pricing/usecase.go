package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	dompricing "github.com/jhoicas/Almacen-api/internal/domain/pricing"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = int32(2) // precisión de display del documento
)

// UseCase orquesta el motor de reglas de precio: carga el catálogo (con
// caché), resuelve la regla, aplica descuento y normaliza a la moneda del
// documento. La resolución en sí es pura (domain/pricing); acá solo vive el
// acceso a datos.
type UseCase struct {
	ruleRepo repository.PriceRuleRepository
	cache    RuleCache
}

// NewUseCase construye el caso de uso de precios.
func NewUseCase(ruleRepo repository.PriceRuleRepository, cache RuleCache) *UseCase {
	return &UseCase{ruleRepo: ruleRepo, cache: cache}
}

// loadRules trae las reglas de un material vía caché cache-aside.
func (uc *UseCase) loadRules(ctx context.Context, tenantID, materialName string) ([]*entity.PriceRule, error) {
	if rules, ok := uc.cache.Get(ctx, tenantID, materialName); ok {
		return rules, nil
	}
	rules, err := uc.ruleRepo.ListByMaterial(ctx, tenantID, materialName)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(ctx, tenantID, materialName, rules)
	return rules, nil
}

// ResolvePrice resuelve la regla aplicable para la consulta. Devuelve nil sin
// error cuando ninguna regla aplica: el caller maneja "sin regla" como rama
// normal, no como excepción.
func (uc *UseCase) ResolvePrice(ctx context.Context, tenantID string, q dompricing.Query) (*entity.PriceRule, error) {
	if q.MaterialName == "" {
		return nil, domain.ErrInvalidInput
	}
	if q.AsOf.IsZero() {
		q.AsOf = time.Now()
	}
	rules, err := uc.loadRules(ctx, tenantID, q.MaterialName)
	if err != nil {
		return nil, err
	}
	return dompricing.Resolve(q, rules), nil
}

// QuoteLineInput entrada para componer una línea de documento.
type QuoteLineInput struct {
	MaterialName     string
	CustomerID       string
	CustomerGroup    string
	Quantity         decimal.Decimal
	UnitPrice        *decimal.Decimal // precio explícito: no se consulta el catálogo
	LineCurrency     string
	ExchangeRate     *decimal.Decimal
	DocumentCurrency string
}

// QuoteLine resultado de la composición: línea en moneda del documento,
// redondeada a la precisión de display recién al final.
type QuoteLine struct {
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	Currency    string
	RuleID      string
	RuleMatched bool
	BreakNotMet bool
}

// ComposeLine arma una línea: precio explícito o regla resuelta, descuento de
// la regla, conversión a moneda del documento y total. Los intermedios van
// sin redondear; solo la salida se redondea a 2 decimales.
//
// BreakNotMet marca las reglas elegidas por el fallback de la Pasada B:
// "precio mostrado pero el mínimo de cantidad no se cumple". Es información
// de presentación para el caller, no cambia la regla elegida.
func (uc *UseCase) ComposeLine(ctx context.Context, tenantID string, in QuoteLineInput) (*QuoteLine, error) {
	if in.DocumentCurrency == "" || !dompricing.ValidCurrency(in.DocumentCurrency) {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrNonPositiveQuantity
	}

	lineCurrency := in.LineCurrency
	if lineCurrency == "" {
		lineCurrency = in.DocumentCurrency
	}

	var unitPrice decimal.Decimal
	quote := &QuoteLine{Currency: in.DocumentCurrency}

	switch {
	case in.UnitPrice != nil:
		if in.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrNegativeUnitPrice
		}
		unitPrice = *in.UnitPrice
	default:
		qty := in.Quantity
		rule, err := uc.ResolvePrice(ctx, tenantID, dompricing.Query{
			MaterialName:  in.MaterialName,
			CustomerID:    in.CustomerID,
			CustomerGroup: in.CustomerGroup,
			Quantity:      &qty,
			Currency:      in.LineCurrency,
			AsOf:          time.Now(),
		})
		if err != nil {
			return nil, err
		}
		if rule == nil {
			// Sin regla: política del caller, precio cero.
			unitPrice = decimal.Zero
			lineCurrency = in.DocumentCurrency
		} else {
			unitPrice = rule.EffectiveUnitPrice()
			lineCurrency = rule.Currency
			quote.RuleID = rule.ID
			quote.RuleMatched = true
			quote.BreakNotMet = rule.MinQuantity != nil && rule.MinQuantity.GreaterThan(in.Quantity)
		}
	}

	line := dompricing.NormalizeLine(lineCurrency, unitPrice, in.ExchangeRate, in.DocumentCurrency, in.Quantity)
	quote.UnitPrice = line.UnitPrice.Round(two)
	quote.Total = line.Total.Round(two)
	return quote, nil
}

// CreateRule valida y persiste una regla nueva e invalida el caché del
// material. La exclusividad del alcance está garantizada por construcción de
// RuleScope; acá solo se chequea que el request traiga el campo que su
// alcance exige.
func (uc *UseCase) CreateRule(ctx context.Context, rule *entity.PriceRule) error {
	if rule.TenantID == "" || rule.MaterialName == "" {
		return domain.ErrInvalidInput
	}
	switch rule.Scope.Kind {
	case entity.ScopeCustomer:
		if rule.Scope.CustomerID == "" || rule.Scope.GroupName != "" {
			return domain.ErrInvalidInput
		}
	case entity.ScopeGroup:
		if rule.Scope.GroupName == "" || rule.Scope.CustomerID != "" {
			return domain.ErrInvalidInput
		}
	case entity.ScopeGeneral:
		if rule.Scope.CustomerID != "" || rule.Scope.GroupName != "" {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	if !rule.Price.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if !dompricing.ValidCurrency(rule.Currency) {
		return domain.ErrInvalidInput
	}
	if rule.DiscountPercent != nil &&
		(rule.DiscountPercent.LessThan(decimal.Zero) || rule.DiscountPercent.GreaterThan(hundred)) {
		return domain.ErrInvalidInput
	}
	if rule.MinQuantity != nil && !rule.MinQuantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if rule.ValidFrom != nil && rule.ValidTo != nil && rule.ValidTo.Before(*rule.ValidFrom) {
		return domain.ErrInvalidInput
	}

	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = time.Now()
	}
	if err := uc.ruleRepo.Create(ctx, rule); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx, rule.TenantID, rule.MaterialName)
	return nil
}

// ListRules lista el catálogo de la empresa; materialName vacío lista todo.
func (uc *UseCase) ListRules(ctx context.Context, tenantID, materialName string, limit, offset int) ([]*entity.PriceRule, error) {
	if materialName != "" {
		return uc.ruleRepo.ListByMaterial(ctx, tenantID, materialName)
	}
	return uc.ruleRepo.ListByTenant(ctx, tenantID, limit, offset)
}

// DeleteRule borra una regla e invalida el caché de su material.
func (uc *UseCase) DeleteRule(ctx context.Context, tenantID, id string) error {
	rule, err := uc.ruleRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if rule == nil {
		return domain.ErrNotFound
	}
	if err := uc.ruleRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx, tenantID, rule.MaterialName)
	return nil
}
