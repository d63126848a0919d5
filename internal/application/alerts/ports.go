package alerts

import (
	"context"
	"time"

	"github.com/jhoicas/Abasto-api/internal/application/dto"
	"github.com/jhoicas/Abasto-api/internal/domain/entity"
)

// AlertCache cachea la respuesta de alertas por empresa con TTL corto.
// Get devuelve (nil, nil) en cache miss. Las implementaciones deben ser
// seguras para uso concurrente.
type AlertCache interface {
	Get(ctx context.Context, companyID int64) (*dto.LowStockAlertsResponse, error)
	Set(ctx context.Context, companyID int64, resp *dto.LowStockAlertsResponse, ttl time.Duration) error
	Invalidate(ctx context.Context, companyID int64) error
}

// ReportGenerator rinde las alertas como PDF de reposición para compras.
type ReportGenerator interface {
	GenerateLowStockReport(ctx context.Context, company *entity.Company, alerts []dto.LowStockAlertDTO, generatedAt time.Time) ([]byte, error)
}

// AlertExporter serializa las alertas a un documento XML para sistemas externos (ERP).
type AlertExporter interface {
	ExportLowStock(company *entity.Company, alerts []dto.LowStockAlertDTO, generatedAt time.Time) ([]byte, error)
}
