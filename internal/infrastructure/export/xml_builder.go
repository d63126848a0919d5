// Package export serializa las alertas de stock bajo a XML para sistemas
// externos (ERP, compras). El documento es plano: un elemento por alerta.
package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/Abasto-api/internal/application/alerts"
	"github.com/jhoicas/Abasto-api/internal/application/dto"
	"github.com/jhoicas/Abasto-api/internal/domain/entity"
)

var _ alerts.AlertExporter = (*XMLExporter)(nil)

// XMLExporter implementa alerts.AlertExporter usando etree.
type XMLExporter struct{}

// NewXMLExporter construye el exportador.
func NewXMLExporter() *XMLExporter {
	return &XMLExporter{}
}

// ExportLowStock genera el documento LowStockReport y devuelve sus bytes.
func (e *XMLExporter) ExportLowStock(company *entity.Company, items []dto.LowStockAlertDTO, generatedAt time.Time) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("LowStockReport")
	root.CreateAttr("generated_at", generatedAt.UTC().Format(time.RFC3339))
	root.CreateAttr("company_id", strconv.FormatInt(company.ID, 10))
	root.CreateAttr("company_name", company.Name)
	root.CreateAttr("total_alerts", strconv.Itoa(len(items)))

	for _, a := range items {
		alert := root.CreateElement("Alert")

		product := alert.CreateElement("Product")
		product.CreateAttr("id", a.ProductID)
		product.CreateAttr("sku", a.SKU)
		product.SetText(a.ProductName)

		warehouse := alert.CreateElement("Warehouse")
		warehouse.CreateAttr("id", a.WarehouseID)
		warehouse.SetText(a.WarehouseName)

		alert.CreateElement("CurrentStock").SetText(strconv.FormatInt(a.CurrentStock, 10))
		alert.CreateElement("Threshold").SetText(strconv.Itoa(a.Threshold))
		alert.CreateElement("DaysUntilStockout").SetText(strconv.Itoa(a.DaysUntilStockout))

		supplier := alert.CreateElement("Supplier")
		if a.Supplier.ID != nil {
			supplier.CreateAttr("id", *a.Supplier.ID)
		}
		if a.Supplier.ContactEmail != nil {
			supplier.CreateAttr("contact_email", *a.Supplier.ContactEmail)
		}
		supplier.SetText(a.Supplier.Name)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("export: serializar XML: %w", err)
	}
	return out, nil
}
