package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	appledger "github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	domledger "github.com/jhoicas/Almacen-api/internal/domain/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// LedgerHandler maneja las peticiones HTTP del libro de stock (protegido).
type LedgerHandler struct {
	uc     *appledger.UseCase
	report *appledger.ReportUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *appledger.UseCase, report *appledger.ReportUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc, report: report}
}

func dimFromPtr(v *string) entity.Dimension {
	if v == nil {
		return entity.NoDim()
	}
	return entity.Dim(*v)
}

func ptrFromDim(d entity.Dimension) *string {
	if !d.Set {
		return nil
	}
	v := d.Value
	return &v
}

func keyFromDTO(tenantID string, in dto.AggregationKeyDTO) entity.AggregationKey {
	return entity.AggregationKey{
		TenantID:     tenantID,
		MaterialName: in.MaterialName,
		Warehouse:    dimFromPtr(in.Warehouse),
		SKU:          dimFromPtr(in.SKU),
		Variant:      dimFromPtr(in.Variant),
		BinCode:      dimFromPtr(in.BinCode),
	}
}

func keyToDTO(key entity.AggregationKey) dto.AggregationKeyDTO {
	return dto.AggregationKeyDTO{
		MaterialName: key.MaterialName,
		Warehouse:    ptrFromDim(key.Warehouse),
		SKU:          ptrFromDim(key.SKU),
		Variant:      ptrFromDim(key.Variant),
		BinCode:      ptrFromDim(key.BinCode),
	}
}

func statusToDTO(r *entity.StockStatusRecord) dto.StockStatusDTO {
	return dto.StockStatusDTO{
		AggregationKeyDTO: keyToDTO(r.Key),
		TotalEntry:        r.TotalEntry,
		TotalOutput:       r.TotalOutput,
		CurrentStock:      r.CurrentStock(),
		CriticalLevel:     r.CriticalLevel,
		Health:            r.Health(),
		UpdatedAt:         r.UpdatedAt,
	}
}

func movementToDTO(m *entity.Movement) dto.MovementDTO {
	return dto.MovementDTO{
		ID:                m.ID,
		AggregationKeyDTO: keyToDTO(m.Key),
		Kind:              m.Kind,
		Quantity:          m.Quantity,
		Unit:              m.Unit,
		UnitPrice:         m.UnitPrice,
		OccurredAt:        m.OccurredAt,
		CreatedBy:         m.CreatedBy,
	}
}

// ApplyMovement godoc
// @Summary      Aplicar movimiento al libro de stock
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "material_name, kind (ENTRY|OUTPUT), quantity; dimensiones opcionales warehouse/sku/variant/bin_code"
// @Success      201  {object}  dto.StockStatusDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.InsufficientStockResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ledger/movements [post]
func (h *LedgerHandler) ApplyMovement(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	userID := GetUserID(c)
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.MaterialName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "material_name requerido"})
	}

	input := appledger.MovementInput{
		TenantID:          tenantID,
		UserID:            userID,
		Key:               keyFromDTO(tenantID, in.AggregationKeyDTO),
		Kind:              in.Kind,
		Quantity:          in.Quantity,
		Unit:              in.Unit,
		UnitPrice:         in.UnitPrice,
		CriticalLevelHint: in.CriticalLevelHint,
	}
	if in.OccurredAt != nil {
		input.OccurredAt = *in.OccurredAt
	}

	record, err := h.uc.ApplyMovement(c.Context(), input)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(statusToDTO(record))
}

// ledgerError mapea los errores del libro a códigos HTTP. El rechazo por
// stock insuficiente va con disponible y solicitado en el cuerpo.
func ledgerError(c *fiber.Ctx, err error) error {
	var insufficient *domledger.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusConflict).JSON(dto.InsufficientStockResponse{
			Code:      "INSUFFICIENT_STOCK",
			Message:   "stock insuficiente para la salida",
			Available: insufficient.Available,
			Requested: insufficient.Requested,
		})
	case errors.Is(err, domain.ErrNonPositiveQuantity),
		errors.Is(err, domain.ErrNegativeUnitPrice),
		errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
	case errors.Is(err, domain.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE_UNAVAILABLE", Message: "almacenamiento no disponible, reintente"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// ReadStatus godoc
// @Summary      Estado de stock de una clave de agregación
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        material_name  query  string  true   "Nombre exacto del material"
// @Param        warehouse      query  string  false  "Bodega (omitir = dimensión ausente)"
// @Param        sku            query  string  false  "SKU"
// @Param        variant        query  string  false  "Variante"
// @Param        bin_code       query  string  false  "Ubicación"
// @Success      200  {object}  dto.StockStatusDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/status [get]
func (h *LedgerHandler) ReadStatus(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	var in dto.AggregationKeyDTO
	if err := c.QueryParser(&in); err != nil || in.MaterialName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "material_name requerido"})
	}
	record, err := h.uc.ReadStatus(c.Context(), keyFromDTO(tenantID, in))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(statusToDTO(record))
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        material_name  query  string  true   "Nombre exacto del material"
// @Param        from           query  string  false  "Desde (RFC3339)"
// @Param        to             query  string  false  "Hasta (RFC3339)"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/ledger/movements [get]
func (h *LedgerHandler) ListMovements(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil || in.MaterialName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "material_name requerido"})
	}
	in.DefaultPage()

	movements, err := h.uc.ListMovements(c.Context(), tenantID, repository.MovementFilter{
		MaterialName: in.MaterialName,
		Warehouse:    in.Warehouse,
		SKU:          in.SKU,
		Variant:      in.Variant,
		BinCode:      in.BinCode,
		From:         in.From,
		To:           in.To,
		Limit:        in.Limit,
		Offset:       in.Offset,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	list := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		list = append(list, movementToDTO(m))
	}
	return c.JSON(fiber.Map{"total": len(list), "movements": list})
}

// ListCritical godoc
// @Summary      Reporte de stock crítico
// @Description  Claves en RED u ORANGE, las más urgentes primero.
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/ledger/critical [get]
func (h *LedgerHandler) ListCritical(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	records, err := h.report.ListCritical(c.Context(), tenantID)
	if err != nil {
		return ledgerError(c, err)
	}
	list := make([]dto.StockStatusDTO, 0, len(records))
	for _, r := range records {
		list = append(list, statusToDTO(r))
	}
	return c.JSON(fiber.Map{"total": len(list), "records": list})
}
