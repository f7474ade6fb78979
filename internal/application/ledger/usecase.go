package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	domledger "github.com/jhoicas/Almacen-api/internal/domain/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// maxApplyRetries reintentos ante conflicto de concurrencia antes de rendirse.
const maxApplyRetries = 3

// UseCase aplica movimientos al libro de stock de forma transaccional:
// bloqueo de fila (SELECT FOR UPDATE), chequeo de saldo y actualización de
// totales dentro de la misma transacción, con Commit/Rollback.
type UseCase struct {
	txRunner   TxRunner
	statusRepo repository.StockStatusRepository // lecturas fuera de transacción
	movRepo    repository.MovementRepository
	log        *logger.Logger
}

// NewUseCase construye el caso de uso del libro de stock.
func NewUseCase(txRunner TxRunner, statusRepo repository.StockStatusRepository, movRepo repository.MovementRepository, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, statusRepo: statusRepo, movRepo: movRepo, log: log}
}

// MovementInput entrada para aplicar un movimiento.
// Quantity siempre positiva; Kind distingue entrada de salida. UnitPrice solo
// aplica a entradas. CriticalLevelHint > 0 en una entrada pisa el nivel
// crítico de la clave (last-write-wins). OccurredAt en cero usa el reloj.
type MovementInput struct {
	TenantID          string
	UserID            string
	Key               entity.AggregationKey
	Kind              string
	Quantity          decimal.Decimal
	Unit              string
	UnitPrice         *decimal.Decimal
	CriticalLevelHint decimal.Decimal
	OccurredAt        time.Time
}

// ApplyMovement valida y admite un movimiento, devolviendo el registro de
// estado posterior a la actualización.
//
// Dos movimientos concurrentes sobre la MISMA clave se serializan por el lock
// de fila; sobre claves distintas no se bloquean entre sí. Si la transacción
// pierde una carrera (deadlock/serialización) se reintenta hasta
// maxApplyRetries veces de forma transparente; agotados los reintentos se
// responde ErrStorageUnavailable y el movimiento NO queda admitido.
func (uc *UseCase) ApplyMovement(ctx context.Context, input MovementInput) (*entity.StockStatusRecord, error) {
	now := time.Now()
	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}
	mov := &entity.Movement{
		ID:                uuid.New().String(),
		Key:               input.Key,
		Kind:              input.Kind,
		Quantity:          input.Quantity,
		Unit:              input.Unit,
		UnitPrice:         input.UnitPrice,
		CriticalLevelHint: input.CriticalLevelHint,
		OccurredAt:        occurredAt,
		CreatedAt:         now,
		CreatedBy:         input.UserID,
	}
	if err := domledger.ValidateMovement(mov); err != nil {
		return nil, err
	}

	var result *entity.StockStatusRecord
	var err error
	for attempt := 0; attempt <= maxApplyRetries; attempt++ {
		result, err = uc.applyOnce(ctx, mov, now)
		if err == nil || !errors.Is(err, domain.ErrConcurrencyConflict) {
			return result, err
		}
		uc.log.Warn().
			Str("movement_id", mov.ID).
			Str("key", mov.Key.Canonical()).
			Int("attempt", attempt+1).
			Msg("conflicto de concurrencia al aplicar movimiento, reintentando")
	}
	// Reintentos agotados: el caller no debe avanzar su cola más allá de este fallo.
	return nil, domain.ErrStorageUnavailable
}

func (uc *UseCase) applyOnce(ctx context.Context, mov *entity.Movement, now time.Time) (*entity.StockStatusRecord, error) {
	var result *entity.StockStatusRecord
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		statusRepo repository.StockStatusRepository,
	) error {
		record, err := statusRepo.GetForUpdate(ctx, mov.Key)
		if err != nil {
			return err
		}
		if !mov.IsEntry() {
			if err := domledger.CheckOutput(record, mov.Quantity); err != nil {
				return err
			}
		}
		domledger.Apply(record, mov)
		record.UpdatedAt = now
		if err := statusRepo.Upsert(ctx, record); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		result = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReadStatus devuelve el registro de estado de una clave, con la salud
// derivada fresca en cada lectura. Clave nunca vista: ErrNotFound.
func (uc *UseCase) ReadStatus(ctx context.Context, key entity.AggregationKey) (*entity.StockStatusRecord, error) {
	record, err := uc.statusRepo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

// ListMovements lista el historial de movimientos de la empresa (hechos
// inmutables, orden descendente por fecha).
func (uc *UseCase) ListMovements(ctx context.Context, tenantID string, filter repository.MovementFilter) ([]*entity.Movement, error) {
	if filter.MaterialName == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.List(ctx, tenantID, filter)
}
