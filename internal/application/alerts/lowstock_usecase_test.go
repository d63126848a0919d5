package alerts_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Abasto-api/internal/application/alerts"
	"github.com/jhoicas/Abasto-api/internal/application/dto"
	"github.com/jhoicas/Abasto-api/internal/domain"
	"github.com/jhoicas/Abasto-api/internal/domain/entity"
	"github.com/jhoicas/Abasto-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos del motor de alertas. El repositorio de
// inventario devuelve las filas del join ya ordenadas por déficit (ese es el
// contrato del puerto); el de cambios devuelve la agregación de salidas.
// ──────────────────────────────────────────────────────────────────────────────

type fakeCompanyRepo struct {
	companies map[int64]*entity.Company
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	return r.companies[id], nil
}

func (r *fakeCompanyRepo) List(_ context.Context, _, _ int) ([]*entity.Company, error) {
	return nil, nil
}

type fakeInventoryRepo struct {
	rows  []repository.LowStockRow
	calls int
}

func (r *fakeInventoryRepo) ListLowStockByCompany(_ context.Context, _ int64) ([]repository.LowStockRow, error) {
	r.calls++
	return r.rows, nil
}

func (r *fakeInventoryRepo) Create(_ context.Context, _ *entity.Inventory) error { return nil }

func (r *fakeInventoryRepo) GetByID(_ context.Context, _ int64) (*entity.Inventory, error) {
	return nil, nil
}

func (r *fakeInventoryRepo) GetByProductAndWarehouse(_ context.Context, _, _ int64) (*entity.Inventory, error) {
	return nil, nil
}

func (r *fakeInventoryRepo) GetForUpdate(_ context.Context, _, _ int64) (*entity.Inventory, error) {
	return nil, nil
}

func (r *fakeInventoryRepo) UpdateQuantity(_ context.Context, _, _ int64) error { return nil }

func (r *fakeInventoryRepo) ListByWarehouse(_ context.Context, _ int64, _, _ int) ([]repository.WarehouseStockRow, error) {
	return nil, nil
}

type fakeChangeRepo struct {
	stats      map[int64]repository.DecreaseStats
	calls      int
	gotIDs     []int64
	gotSince   time.Time
	gotReasons []string
}

func (r *fakeChangeRepo) DecreaseStatsSince(_ context.Context, ids []int64, since time.Time, reasons []string) (map[int64]repository.DecreaseStats, error) {
	r.calls++
	r.gotIDs = ids
	r.gotSince = since
	r.gotReasons = reasons
	return r.stats, nil
}

func (r *fakeChangeRepo) Create(_ context.Context, _ *entity.InventoryChange) error { return nil }

func (r *fakeChangeRepo) ListByInventory(_ context.Context, _ int64, _, _ int) ([]*entity.InventoryChange, error) {
	return nil, nil
}

type fakeCache struct {
	stored   map[int64]*dto.LowStockAlertsResponse
	getErr   error
	setCalls int
	lastTTL  time.Duration
}

func (c *fakeCache) Get(_ context.Context, companyID int64) (*dto.LowStockAlertsResponse, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.stored[companyID], nil
}

func (c *fakeCache) Set(_ context.Context, companyID int64, resp *dto.LowStockAlertsResponse, ttl time.Duration) error {
	c.setCalls++
	c.lastTTL = ttl
	c.stored[companyID] = resp
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, companyID int64) error {
	delete(c.stored, companyID)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Datos de apoyo
// ──────────────────────────────────────────────────────────────────────────────

const testCompanyID = int64(1)

func newCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[int64]*entity.Company{
		testCompanyID: {ID: testCompanyID, Name: "Distribuciones El Tesoro"},
	}}
}

// lowRow arma una fila candidata con proveedor asignado.
func lowRow(invID, productID int64, qty int64, threshold int) repository.LowStockRow {
	supplierID := int64(7)
	name := "Alimentos del Valle S.A.S"
	email := "ventas@alimentosdelvalle.co"
	return repository.LowStockRow{
		InventoryID:   invID,
		ProductID:     productID,
		ProductName:   "Arroz blanco 500 g",
		SKU:           "GR-ARR-500",
		WarehouseID:   3,
		WarehouseName: "Bodega Norte",
		Quantity:      qty,
		Threshold:     threshold,
		SupplierID:    &supplierID,
		SupplierName:  &name,
		SupplierEmail: &email,
	}
}

func stats(count int64, avg string) repository.DecreaseStats {
	return repository.DecreaseStats{Count: count, AvgDepletion: decimal.RequireFromString(avg)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GetLowStockAlerts
// ──────────────────────────────────────────────────────────────────────────────

func TestGetLowStockAlerts_EmpresaInexistente(t *testing.T) {
	inv := &fakeInventoryRepo{}
	uc := alerts.NewLowStockUseCase(newCompanyRepo(), inv, &fakeChangeRepo{}, nil, alerts.Config{})

	_, err := uc.GetLowStockAlerts(context.Background(), 999)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "empresa desconocida debe ser ErrNotFound")
	assert.Zero(t, inv.calls, "no se consultan candidatos de una empresa inexistente")
}

func TestGetLowStockAlerts_SinCandidatos(t *testing.T) {
	changes := &fakeChangeRepo{}
	uc := alerts.NewLowStockUseCase(newCompanyRepo(), &fakeInventoryRepo{}, changes, nil, alerts.Config{})

	resp, err := uc.GetLowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)

	assert.NotNil(t, resp.Alerts, "la lista vacía serializa como [] y no como null")
	assert.Empty(t, resp.Alerts)
	assert.Equal(t, 0, resp.TotalAlerts)
	assert.Zero(t, changes.calls, "sin candidatos no hay consulta de actividad")
}

// Caso: bajo umbral pero sin salidas en la ventana → no alerta. La posición
// pudo llegar ahí por carga inicial baja, no por ventas.
func TestGetLowStockAlerts_FiltraPosicionesSinSalidas(t *testing.T) {
	inv := &fakeInventoryRepo{rows: []repository.LowStockRow{
		lowRow(10, 100, 5, 20),
		lowRow(11, 101, 8, 20),
	}}
	changes := &fakeChangeRepo{stats: map[int64]repository.DecreaseStats{
		10: stats(4, "2"),
	}}
	uc := alerts.NewLowStockUseCase(newCompanyRepo(), inv, changes, nil, alerts.Config{})

	resp, err := uc.GetLowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)

	require.Equal(t, 1, resp.TotalAlerts, "sólo alerta la posición con salidas recientes")
	assert.Equal(t, "100", resp.Alerts[0].ProductID)
}

func TestGetLowStockAlerts_ProyeccionDeAgotamiento(t *testing.T) {
	inv := &fakeInventoryRepo{rows: []repository.LowStockRow{lowRow(10, 100, 5, 20)}}
	changes := &fakeChangeRepo{stats: map[int64]repository.DecreaseStats{
		10: stats(3, "2"),
	}}
	uc := alerts.NewLowStockUseCase(newCompanyRepo(), inv, changes, nil, alerts.Config{})

	resp, err := uc.GetLowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.Equal(t, 1, resp.TotalAlerts)

	alert := resp.Alerts[0]
	assert.Equal(t, 2, alert.DaysUntilStockout, "floor(5/2) = 2 días")
	assert.Equal(t, int64(5), alert.CurrentStock)
	assert.Equal(t, 20, alert.Threshold)
	assert.Equal(t, "GR-ARR-500", alert.SKU)
	assert.Equal(t, "Bodega Norte", alert.WarehouseName)
	assert.Equal(t, "3", alert.WarehouseID)
}

// Caso: hubo salidas pero el promedio agregado llega en cero → el
// centinela 999 evita la división por cero.
func TestGetLowStockAlerts_PromedioCeroUsaCentinela(t *testing.T) {
	inv := &fakeInventoryRepo{rows: []repository.LowStockRow{lowRow(10, 100, 5, 20)}}
	changes := &fakeChangeRepo{stats: map[int64]repository.DecreaseStats{
		10: stats(2, "0"),
	}}
	uc := alerts.NewLowStockUseCase(newCompanyRepo(), inv, changes, nil, alerts.Config{})

	resp, err := uc.GetLowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.Equal(t, 1, resp.TotalAlerts)
	assert.Equal(t, 999, resp.Alerts[0].DaysUntilStockout)
}

func TestGetLowStockAlerts_VentanaYRazonesConfigurables(t *testing.T) {
	inv := &fakeInventoryRepo{rows: []repository.LowStockRow{lowRow(10, 100, 5, 20)}}
	changes := &fakeChangeRepo{}
	uc := alerts.NewLowStockUseCase(newCompanyRepo(), inv, changes, nil, alerts.Config{
		WindowDays:  7,
		SaleReasons: []string{"sale"},
	})

	_, err := uc.GetLowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)

	require.Equal(t, 1, changes.calls)
	assert.Equal(t, []int64{10}, changes.gotIDs)
	assert.Equal(t, []string{"sale"}, changes.gotReasons)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, -7), changes.gotSince, time.Minute,
		"la ventana configurada manda sobre los 30 días por defecto")
}

func TestGetLowStockAlerts_VentanaPorDefecto30Dias(t *testing.T) {
	inv := &fakeInventoryRepo{rows: []repository.LowStockRow{lowRow(10, 100, 5, 20)}}
	changes := &fakeChangeRepo{}
	uc := alerts.NewLowStockUseCase(newCompanyRepo(), inv, changes, nil, alerts.Config{})

	_, err := uc.GetLowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, -30), changes.gotSince, time.Minute)
	assert.Nil(t, changes.gotReasons, "sin configurar, cualquier baja cuenta como salida")
}

func TestGetLowStockAlerts_ProveedorPresente(t *testing.T) {
	inv := &fakeInventoryRepo{rows: []repository.LowStockRow{lowRow(10, 100, 5, 20)}}
	changes := &fakeChangeRepo{stats: map[int64]repository.DecreaseStats{10: stats(1, "1")}}
	uc := alerts.NewLowStockUseCase(newCompanyRepo(), inv, changes, nil, alerts.Config{})

	resp, err := uc.GetLowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.Equal(t, 1, resp.TotalAlerts)

	sup := resp.Alerts[0].Supplier
	require.NotNil(t, sup.ID)
	assert.Equal(t, "7", *sup.ID)
	assert.Equal(t, "Alimentos del Valle S.A.S", sup.Name)
	require.NotNil(t, sup.ContactEmail)
	assert.Equal(t, "ventas@alimentosdelvalle.co", *sup.ContactEmail)
}

// Caso: producto sin proveedor asignado → el campo va con placeholder, nunca se omite.
func TestGetLowStockAlerts_SinProveedorUsaPlaceholder(t *testing.T) {
	row := lowRow(10, 100, 5, 20)
	row.SupplierID = nil
	row.SupplierName = nil
	row.SupplierEmail = nil
	inv := &fakeInventoryRepo{rows: []repository.LowStockRow{row}}
	changes := &fakeChangeRepo{stats: map[int64]repository.DecreaseStats{10: stats(1, "1")}}
	uc := alerts.NewLowStockUseCase(newCompanyRepo(), inv, changes, nil, alerts.Config{})

	resp, err := uc.GetLowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.Equal(t, 1, resp.TotalAlerts)

	sup := resp.Alerts[0].Supplier
	assert.Nil(t, sup.ID)
	assert.Equal(t, "Sin proveedor", sup.Name)
	assert.Nil(t, sup.ContactEmail)
}

func TestGetLowStockAlerts_PreservaOrdenDelJoin(t *testing.T) {
	inv := &fakeInventoryRepo{rows: []repository.LowStockRow{
		lowRow(10, 100, 2, 20),  // déficit 18
		lowRow(11, 101, 9, 20),  // déficit 11
		lowRow(12, 102, 15, 20), // déficit 5
	}}
	changes := &fakeChangeRepo{stats: map[int64]repository.DecreaseStats{
		10: stats(1, "1"), 11: stats(1, "1"), 12: stats(1, "1"),
	}}
	uc := alerts.NewLowStockUseCase(newCompanyRepo(), inv, changes, nil, alerts.Config{})

	resp, err := uc.GetLowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.Equal(t, 3, resp.TotalAlerts)

	assert.Equal(t, "100", resp.Alerts[0].ProductID, "mayor déficit primero")
	assert.Equal(t, "101", resp.Alerts[1].ProductID)
	assert.Equal(t, "102", resp.Alerts[2].ProductID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de caché
// ──────────────────────────────────────────────────────────────────────────────

func TestGetLowStockAlerts_CacheHitEvitaLaBase(t *testing.T) {
	cached := &dto.LowStockAlertsResponse{TotalAlerts: 2, Alerts: []dto.LowStockAlertDTO{{SKU: "A"}, {SKU: "B"}}}
	cache := &fakeCache{stored: map[int64]*dto.LowStockAlertsResponse{testCompanyID: cached}}
	inv := &fakeInventoryRepo{}
	uc := alerts.NewLowStockUseCase(newCompanyRepo(), inv, &fakeChangeRepo{}, cache, alerts.Config{CacheTTL: time.Minute})

	resp, err := uc.GetLowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)

	assert.Same(t, cached, resp)
	assert.Zero(t, inv.calls, "con cache hit no se consulta la base")
}

func TestGetLowStockAlerts_CacheMissCalculaYGuarda(t *testing.T) {
	cache := &fakeCache{stored: map[int64]*dto.LowStockAlertsResponse{}}
	inv := &fakeInventoryRepo{rows: []repository.LowStockRow{lowRow(10, 100, 5, 20)}}
	changes := &fakeChangeRepo{stats: map[int64]repository.DecreaseStats{10: stats(1, "1")}}
	uc := alerts.NewLowStockUseCase(newCompanyRepo(), inv, changes, cache, alerts.Config{CacheTTL: time.Minute})

	resp, err := uc.GetLowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalAlerts)

	assert.Equal(t, 1, cache.setCalls)
	assert.Equal(t, time.Minute, cache.lastTTL)

	// La segunda consulta dentro del TTL sale de la caché
	_, err = uc.GetLowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, 1, inv.calls, "la segunda lectura no vuelve a la base")
}

func TestGetLowStockAlerts_FalloDeCacheNoTumbaLaConsulta(t *testing.T) {
	cache := &fakeCache{stored: map[int64]*dto.LowStockAlertsResponse{}, getErr: errors.New("redis caído")}
	inv := &fakeInventoryRepo{rows: []repository.LowStockRow{lowRow(10, 100, 5, 20)}}
	changes := &fakeChangeRepo{stats: map[int64]repository.DecreaseStats{10: stats(1, "1")}}
	uc := alerts.NewLowStockUseCase(newCompanyRepo(), inv, changes, cache, alerts.Config{CacheTTL: time.Minute})

	resp, err := uc.GetLowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err, "un fallo de Redis degrada a consulta directa")
	assert.Equal(t, 1, resp.TotalAlerts)
}

func TestGetLowStockAlerts_TTLCeroNoGuarda(t *testing.T) {
	cache := &fakeCache{stored: map[int64]*dto.LowStockAlertsResponse{}}
	inv := &fakeInventoryRepo{rows: []repository.LowStockRow{lowRow(10, 100, 5, 20)}}
	changes := &fakeChangeRepo{stats: map[int64]repository.DecreaseStats{10: stats(1, "1")}}
	uc := alerts.NewLowStockUseCase(newCompanyRepo(), inv, changes, cache, alerts.Config{})

	_, err := uc.GetLowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)
	assert.Zero(t, cache.setCalls, "con TTL cero la caché queda de sólo lectura")
}
