// Package pdf implementa la generación del Reporte de Reposición en PDF
// para el área de compras.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  REPORTE DE REPOSICIÓN + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total de alertas + ventana de análisis             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Bodega | Stock | Umbral | Días      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: proveedores a contactar + leyenda                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Abasto-api/internal/application/alerts"
	"github.com/jhoicas/Abasto-api/internal/application/dto"
	"github.com/jhoicas/Abasto-api/internal/domain/alerting"
	"github.com/jhoicas/Abasto-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorUrgent  = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var _ alerts.ReportGenerator = (*MarotoReportGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa alerts.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateLowStockReport genera el PDF de reposición y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateLowStockReport(
	_ context.Context,
	company *entity.Company,
	items []dto.LowStockAlertDTO,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Reposición", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(len(items)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableAlertRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range supplierFooterRows(items) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la empresa (izq) y título + fecha (der).
func headerRow(company *entity.Company, generatedAt time.Time) core.Row {
	fecha := generatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Empresa #"+strconv.FormatInt(company.ID, 10), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE REPOSICIÓN", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// summaryRow: total de posiciones bajo umbral con consumo reciente.
func summaryRow(total int) core.Row {
	resumen := fmt.Sprintf(
		"%d posición(es) por debajo del umbral con salidas en los últimos 30 días. "+
			"Ordenadas por déficit: lo más crítico primero.", total)
	if total == 0 {
		resumen = "Sin posiciones que requieran reposición."
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New("RESUMEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(resumen, props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de alertas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Bodega", 2, align.Left),
		h("Stock", 1, align.Right),
		h("Umbral", 1, align.Right),
		h("Días", 1, align.Right),
		h("Prov.", 1, align.Center),
	)
}

// tableAlertRows: una fila por alerta. Los días de agotamiento en rojo
// cuando quedan menos de 7; el centinela 999 se muestra como guion.
func tableAlertRows(items []dto.LowStockAlertDTO) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, a := range items {
		diasColor := colorGray
		if a.DaysUntilStockout < 7 {
			diasColor = colorUrgent
		}
		prov := "Sí"
		if a.Supplier.ID == nil {
			prov = "—"
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				a.SKU,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				a.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				a.WarehouseName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				strconv.FormatInt(a.CurrentStock, 10),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				strconv.Itoa(a.Threshold),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				formatDays(a.DaysUntilStockout),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: diasColor},
			)),
			col.New(1).Add(text.New(
				prov,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
		))
	}
	return result
}

// supplierFooterRows: proveedores a contactar, sin repetir, más la leyenda.
func supplierFooterRows(items []dto.LowStockAlertDTO) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("PROVEEDORES A CONTACTAR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}

	seen := make(map[string]bool)
	for _, a := range items {
		if a.Supplier.ID == nil || seen[*a.Supplier.ID] {
			continue
		}
		seen[*a.Supplier.ID] = true
		contacto := a.Supplier.Name
		if a.Supplier.ContactEmail != nil {
			contacto += "  <" + *a.Supplier.ContactEmail + ">"
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("• "+contacto, props.Text{Size: 8, Top: 1, Left: 2}),
		)))
	}
	if len(seen) == 0 {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Ninguna posición tiene proveedor asignado.", props.Text{
				Size: 8, Top: 1, Left: 2, Color: colorGray,
			}),
		)))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Documento generado automáticamente a partir del inventario y su historial de salidas. "+
				"Las proyecciones de agotamiento asumen consumo constante.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatDays muestra la proyección de agotamiento; el centinela va como guion.
func formatDays(days int) string {
	if days >= alerting.StockoutHorizonSentinel {
		return "—"
	}
	return strconv.Itoa(days)
}
