package http

import (
	"github.com/gofiber/fiber/v2"
	appledger "github.com/jhoicas/Almacen-api/internal/application/ledger"
	apppricing "github.com/jhoicas/Almacen-api/internal/application/pricing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger       *appledger.UseCase
	LedgerReport *appledger.ReportUseCase
	Pricing      *apppricing.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Todo el API es multi-tenant: va
// detrás del middleware de auth que resuelve la empresa del token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Libro de stock
	ledgerGroup := api.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.Ledger, deps.LedgerReport)
	ledgerGroup.Post("/movements", ledgerHandler.ApplyMovement)
	ledgerGroup.Get("/movements", ledgerHandler.ListMovements)
	ledgerGroup.Get("/status", ledgerHandler.ReadStatus)
	ledgerGroup.Get("/critical", ledgerHandler.ListCritical)

	// Motor de precios
	pricingGroup := api.Group("/pricing")
	pricingHandler := NewPricingHandler(deps.Pricing)
	pricingGroup.Post("/resolve", pricingHandler.ResolvePrice)
	pricingGroup.Post("/quote", pricingHandler.QuoteLine)
	pricingGroup.Post("/rules", pricingHandler.CreateRule)
	pricingGroup.Get("/rules", pricingHandler.ListRules)
	pricingGroup.Delete("/rules/:id", pricingHandler.DeleteRule)
}
