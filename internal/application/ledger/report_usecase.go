package ledger

import (
	"context"
	"sort"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ReportUseCase arma el reporte de stock crítico de una empresa: las claves
// cuya salud no es verde, las agotadas primero.
type ReportUseCase struct {
	statusRepo repository.StockStatusRepository
}

// NewReportUseCase construye el caso de uso de reporte.
func NewReportUseCase(statusRepo repository.StockStatusRepository) *ReportUseCase {
	return &ReportUseCase{statusRepo: statusRepo}
}

func healthRank(h string) int {
	switch h {
	case entity.HealthRed:
		return 0
	case entity.HealthOrange:
		return 1
	}
	return 2
}

// ListCritical devuelve los registros en RED u ORANGE, ordenados por urgencia
// (RED antes que ORANGE, y dentro del mismo color el balance más bajo primero).
func (uc *ReportUseCase) ListCritical(ctx context.Context, tenantID string) ([]*entity.StockStatusRecord, error) {
	records, err := uc.statusRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	critical := make([]*entity.StockStatusRecord, 0, len(records))
	for _, r := range records {
		if r.Health() != entity.HealthGreen {
			critical = append(critical, r)
		}
	}
	sort.SliceStable(critical, func(i, j int) bool {
		hi, hj := healthRank(critical[i].Health()), healthRank(critical[j].Health())
		if hi != hj {
			return hi < hj
		}
		return critical[i].CurrentStock().LessThan(critical[j].CurrentStock())
	})
	return critical, nil
}
