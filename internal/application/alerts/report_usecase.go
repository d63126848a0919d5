package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Abasto-api/internal/application/dto"
	"github.com/jhoicas/Abasto-api/internal/domain"
	"github.com/jhoicas/Abasto-api/internal/domain/entity"
	"github.com/jhoicas/Abasto-api/internal/domain/repository"
)

// ReportUseCase rinde las alertas de stock bajo como entregables de reposición:
// PDF imprimible para compras y XML para integración con ERPs.
type ReportUseCase struct {
	lowStock    *LowStockUseCase
	companyRepo repository.CompanyRepository
	generator   ReportGenerator
	exporter    AlertExporter
}

// NewReportUseCase construye el caso de uso de reportes de reposición.
func NewReportUseCase(
	lowStock *LowStockUseCase,
	companyRepo repository.CompanyRepository,
	generator ReportGenerator,
	exporter AlertExporter,
) *ReportUseCase {
	return &ReportUseCase{
		lowStock:    lowStock,
		companyRepo: companyRepo,
		generator:   generator,
		exporter:    exporter,
	}
}

// DownloadLowStockReport calcula las alertas vigentes y las rinde como PDF.
// Retorna (pdfBytes, filename, nil) si todo sale bien; domain.ErrNotFound si
// la empresa no existe.
func (uc *ReportUseCase) DownloadLowStockReport(ctx context.Context, companyID int64) ([]byte, string, error) {
	company, resp, err := uc.load(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	now := time.Now().UTC()
	pdfBytes, err := uc.generator.GenerateLowStockReport(ctx, company, resp.Alerts, now)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generación PDF fallida: %w", err)
	}
	filename := fmt.Sprintf("reposicion_%d_%s.pdf", company.ID, now.Format("20060102"))
	return pdfBytes, filename, nil
}

// ExportLowStockXML calcula las alertas vigentes y las serializa como XML.
func (uc *ReportUseCase) ExportLowStockXML(ctx context.Context, companyID int64) ([]byte, string, error) {
	company, resp, err := uc.load(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	now := time.Now().UTC()
	xmlBytes, err := uc.exporter.ExportLowStock(company, resp.Alerts, now)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: exportación XML fallida: %w", err)
	}
	filename := fmt.Sprintf("reposicion_%d_%s.xml", company.ID, now.Format("20060102"))
	return xmlBytes, filename, nil
}

func (uc *ReportUseCase) load(ctx context.Context, companyID int64) (*entity.Company, *dto.LowStockAlertsResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, nil, fmt.Errorf("reporte: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, nil, domain.ErrNotFound
	}
	resp, err := uc.lowStock.GetLowStockAlerts(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	return company, resp, nil
}
