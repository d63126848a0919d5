package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Abasto-api/internal/application/dto"
	"github.com/jhoicas/Abasto-api/internal/domain/repository"
)

// seedLowStock deja a la empresa 1 con las filas candidatas y su actividad de salida.
func seedLowStock(env *testEnv, rows []repository.LowStockRow, stats map[int64]repository.DecreaseStats) {
	env.positions.lowStock[1] = rows
	env.changes.stats = stats
}

func supplierRow() repository.LowStockRow {
	supplierID := int64(7)
	name := "Alimentos del Valle S.A.S"
	email := "ventas@alimentosdelvalle.co"
	return repository.LowStockRow{
		InventoryID:   50,
		ProductID:     100,
		ProductName:   "Arroz blanco 500 g",
		SKU:           "GR-ARR-500",
		WarehouseID:   3,
		WarehouseName: "Bodega Norte",
		Quantity:      5,
		Threshold:     20,
		SupplierID:    &supplierID,
		SupplierName:  &name,
		SupplierEmail: &email,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/companies/:id/alerts/low-stock
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: dos posiciones alertando, una con proveedor y otra sin → 200 con la
// proyección de agotamiento y el placeholder de proveedor.
func TestLowStockEndpoint_RespuestaCompleta(t *testing.T) {
	env := newTestEnv()
	second := supplierRow()
	second.InventoryID = 51
	second.ProductID = 101
	second.ProductName = "Panela en bloque"
	second.SKU = "GR-PAN-1000"
	second.Quantity = 8
	second.SupplierID = nil
	second.SupplierName = nil
	second.SupplierEmail = nil
	seedLowStock(env, []repository.LowStockRow{supplierRow(), second}, map[int64]repository.DecreaseStats{
		50: decreaseStats(4, "2"),
		51: decreaseStats(1, "1"),
	})

	resp := doGet(t, env.app, "/api/companies/1/alerts/low-stock")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.LowStockAlertsResponse
	decodeJSON(t, resp, &out)
	require.Equal(t, 2, out.TotalAlerts)

	first := out.Alerts[0]
	assert.Equal(t, "100", first.ProductID)
	assert.Equal(t, "GR-ARR-500", first.SKU)
	assert.Equal(t, "3", first.WarehouseID)
	assert.Equal(t, int64(5), first.CurrentStock)
	assert.Equal(t, 20, first.Threshold)
	assert.Equal(t, 2, first.DaysUntilStockout, "floor(5/2) días")
	require.NotNil(t, first.Supplier.ID)
	assert.Equal(t, "7", *first.Supplier.ID)

	assert.Equal(t, "Sin proveedor", out.Alerts[1].Supplier.Name)
	assert.Nil(t, out.Alerts[1].Supplier.ID)
	assert.Nil(t, out.Alerts[1].Supplier.ContactEmail)
}

// Caso 2: empresa sin posiciones alertando → 200 con lista vacía, nunca null.
func TestLowStockEndpoint_SinAlertas(t *testing.T) {
	env := newTestEnv()

	resp := doGet(t, env.app, "/api/companies/1/alerts/low-stock")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw := readBody(t, resp)
	assert.Contains(t, raw, `"alerts":[]`)
	assert.Contains(t, raw, `"total_alerts":0`)
}

// Caso 3: empresa inexistente → 404.
func TestLowStockEndpoint_EmpresaInexistente(t *testing.T) {
	env := newTestEnv()

	resp := doGet(t, env.app, "/api/companies/999/alerts/low-stock")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "NOT_FOUND")
}

// Caso 4: id no numérico → también 404, nunca 400.
func TestLowStockEndpoint_IDNoNumerico(t *testing.T) {
	env := newTestEnv()

	resp := doGet(t, env.app, "/api/companies/acme/alerts/low-stock")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entregables: PDF y XML
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStockReportEndpoint_DescargaPDF(t *testing.T) {
	env := newTestEnv()
	seedLowStock(env, []repository.LowStockRow{supplierRow()}, map[int64]repository.DecreaseStats{
		50: decreaseStats(4, "2"),
	})

	resp := doGet(t, env.app, "/api/companies/1/alerts/low-stock/report")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Regexp(t, `^attachment; filename="reposicion_1_\d{8}\.pdf"$`,
		resp.Header.Get("Content-Disposition"))
	assert.True(t, len(readBody(t, resp)) > 0)
}

func TestLowStockExportEndpoint_XML(t *testing.T) {
	env := newTestEnv()
	seedLowStock(env, []repository.LowStockRow{supplierRow()}, map[int64]repository.DecreaseStats{
		50: decreaseStats(4, "2"),
	})

	resp := doGet(t, env.app, "/api/companies/1/alerts/low-stock/export")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/xml", resp.Header.Get("Content-Type"))
	assert.Regexp(t, `^attachment; filename="reposicion_1_\d{8}\.xml"$`,
		resp.Header.Get("Content-Disposition"))

	raw := readBody(t, resp)
	assert.Contains(t, raw, `company_name="Distribuciones El Tesoro"`)
	assert.Contains(t, raw, `total_alerts="1"`)
	assert.Contains(t, raw, `sku="GR-ARR-500"`)
	assert.Contains(t, raw, "<DaysUntilStockout>2</DaysUntilStockout>")
}

func TestLowStockReportEndpoint_EmpresaInexistente(t *testing.T) {
	env := newTestEnv()

	resp := doGet(t, env.app, "/api/companies/999/alerts/low-stock/report")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
