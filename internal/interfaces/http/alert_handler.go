package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Abasto-api/internal/application/alerts"
	"github.com/jhoicas/Abasto-api/internal/application/dto"
	"github.com/jhoicas/Abasto-api/internal/domain"
)

// AlertHandler maneja las peticiones HTTP del motor de alertas de stock bajo.
type AlertHandler struct {
	lowStock *alerts.LowStockUseCase
	report   *alerts.ReportUseCase
}

// NewAlertHandler construye el handler. report puede ser nil si los entregables
// (PDF/XML) no están habilitados.
func NewAlertHandler(lowStock *alerts.LowStockUseCase, report *alerts.ReportUseCase) *AlertHandler {
	return &AlertHandler{lowStock: lowStock, report: report}
}

// GetLowStock godoc
// @Summary      Alertas de stock bajo de una empresa
// @Description  Posiciones por debajo del umbral de su tipo con salidas en los
//
//	últimos 30 días, ordenadas por déficit. Incluye proyección de días
//	hasta agotarse (999 = sin proyección) y proveedor a reordenar.
//
// @Tags         alerts
// @Produce      json
// @Param        id  path  int  true  "ID de la empresa"
// @Success      200  {object}  dto.LowStockAlertsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/alerts/low-stock [get]
func (h *AlertHandler) GetLowStock(c *fiber.Ctx) error {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
	}
	resp, err := h.lowStock.GetLowStockAlerts(c.Context(), companyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "error interno de almacenamiento"})
	}
	return c.JSON(resp)
}

// DownloadReport godoc
// @Summary      Reporte de reposición en PDF
// @Tags         alerts
// @Produce      application/pdf
// @Param        id  path  int  true  "ID de la empresa"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/alerts/low-stock/report [get]
func (h *AlertHandler) DownloadReport(c *fiber.Ctx) error {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
	}
	pdfBytes, filename, err := h.report.DownloadLowStockReport(c.Context(), companyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "error generando el reporte"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}

// ExportXML godoc
// @Summary      Exportar alertas como XML
// @Tags         alerts
// @Produce      application/xml
// @Param        id  path  int  true  "ID de la empresa"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/alerts/low-stock/export [get]
func (h *AlertHandler) ExportXML(c *fiber.Ctx) error {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
	}
	xmlBytes, filename, err := h.report.ExportLowStockXML(c.Context(), companyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "error generando la exportación"})
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(xmlBytes)
}
