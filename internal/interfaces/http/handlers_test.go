package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Abasto-api/internal/application/alerts"
	"github.com/jhoicas/Abasto-api/internal/application/catalog"
	"github.com/jhoicas/Abasto-api/internal/application/dto"
	"github.com/jhoicas/Abasto-api/internal/application/inventory"
	"github.com/jhoicas/Abasto-api/internal/application/usecase"
	"github.com/jhoicas/Abasto-api/internal/domain/entity"
	"github.com/jhoicas/Abasto-api/internal/domain/repository"
	"github.com/jhoicas/Abasto-api/internal/infrastructure/export"
	apphttp "github.com/jhoicas/Abasto-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de test: la API completa montada sobre repositorios en memoria.
// Los tx runners emulan Commit/Rollback con una foto previa del estado, así
// los tests de los endpoints pueden verificar la atomicidad de las escrituras.
// ──────────────────────────────────────────────────────────────────────────────

type memCompanyRepo struct {
	companies map[int64]*entity.Company
}

func (r *memCompanyRepo) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	return r.companies[id], nil
}

func (r *memCompanyRepo) List(_ context.Context, _, _ int) ([]*entity.Company, error) {
	return nil, nil
}

type memWarehouseRepo struct {
	warehouses map[int64]*entity.Warehouse
}

func (r *memWarehouseRepo) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	return r.warehouses[id], nil
}

func (r *memWarehouseRepo) ListByCompany(_ context.Context, companyID int64) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.warehouses {
		if w.CompanyID == companyID {
			out = append(out, w)
		}
	}
	return out, nil
}

type memSupplierRepo struct {
	suppliers map[int64]*entity.Supplier
}

func (r *memSupplierRepo) GetByID(_ context.Context, id int64) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}

func (r *memSupplierRepo) List(_ context.Context, _, _ int) ([]*entity.Supplier, error) {
	return nil, nil
}

type memTypeRepo struct {
	types map[int64]*entity.ProductType
}

func (r *memTypeRepo) GetByID(_ context.Context, id int64) (*entity.ProductType, error) {
	return r.types[id], nil
}

func (r *memTypeRepo) List(_ context.Context, _, _ int) ([]*entity.ProductType, error) {
	return nil, nil
}

type memProductRepo struct {
	products  []*entity.Product
	nextID    int64
	createErr error
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.products = append(r.products, &cp)
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	if offset >= len(r.products) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.products) {
		end = len(r.products)
	}
	return r.products[offset:end], nil
}

type memInventoryRepo struct {
	positions []*entity.Inventory
	nextID    int64
	createErr error
	lowStock  map[int64][]repository.LowStockRow
	stock     map[int64][]repository.WarehouseStockRow
}

func (r *memInventoryRepo) Create(_ context.Context, inv *entity.Inventory) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	inv.ID = r.nextID
	cp := *inv
	r.positions = append(r.positions, &cp)
	return nil
}

func (r *memInventoryRepo) GetByID(_ context.Context, id int64) (*entity.Inventory, error) {
	for _, p := range r.positions {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memInventoryRepo) GetByProductAndWarehouse(_ context.Context, productID, warehouseID int64) (*entity.Inventory, error) {
	for _, p := range r.positions {
		if p.ProductID == productID && p.WarehouseID == warehouseID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memInventoryRepo) GetForUpdate(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error) {
	return r.GetByProductAndWarehouse(ctx, productID, warehouseID)
}

func (r *memInventoryRepo) UpdateQuantity(_ context.Context, id, quantity int64) error {
	for _, p := range r.positions {
		if p.ID == id {
			p.Quantity = quantity
			return nil
		}
	}
	return nil
}

func (r *memInventoryRepo) ListByWarehouse(_ context.Context, warehouseID int64, _, _ int) ([]repository.WarehouseStockRow, error) {
	return r.stock[warehouseID], nil
}

func (r *memInventoryRepo) ListLowStockByCompany(_ context.Context, companyID int64) ([]repository.LowStockRow, error) {
	return r.lowStock[companyID], nil
}

type memChangeRepo struct {
	changes []*entity.InventoryChange
	nextID  int64
	stats   map[int64]repository.DecreaseStats
}

func (r *memChangeRepo) Create(_ context.Context, change *entity.InventoryChange) error {
	r.nextID++
	change.ID = r.nextID
	cp := *change
	r.changes = append(r.changes, &cp)
	return nil
}

// ListByInventory devuelve el historial de la posición, más reciente primero.
func (r *memChangeRepo) ListByInventory(_ context.Context, inventoryID int64, _, _ int) ([]*entity.InventoryChange, error) {
	var out []*entity.InventoryChange
	for i := len(r.changes) - 1; i >= 0; i-- {
		if r.changes[i].InventoryID == inventoryID {
			out = append(out, r.changes[i])
		}
	}
	return out, nil
}

func (r *memChangeRepo) DecreaseStatsSince(_ context.Context, _ []int64, _ time.Time, _ []string) (map[int64]repository.DecreaseStats, error) {
	return r.stats, nil
}

type memCatalogTx struct {
	products  *memProductRepo
	positions *memInventoryRepo
}

func (tx *memCatalogTx) RunCatalog(_ context.Context, fn func(repository.ProductRepository, repository.InventoryRepository) error) error {
	products := append([]*entity.Product(nil), tx.products.products...)
	positions := append([]*entity.Inventory(nil), tx.positions.positions...)

	if err := fn(tx.products, tx.positions); err != nil {
		tx.products.products = products
		tx.positions.positions = positions
		return err
	}
	return nil
}

type memInventoryTx struct {
	positions *memInventoryRepo
	changes   *memChangeRepo
}

func (tx *memInventoryTx) Run(_ context.Context, fn func(repository.InventoryRepository, repository.InventoryChangeRepository) error) error {
	positions := make([]*entity.Inventory, len(tx.positions.positions))
	for i, p := range tx.positions.positions {
		cp := *p
		positions[i] = &cp
	}
	changes := append([]*entity.InventoryChange(nil), tx.changes.changes...)

	if err := fn(tx.positions, tx.changes); err != nil {
		tx.positions.positions = positions
		tx.changes.changes = changes
		return err
	}
	return nil
}

// fakePDFGenerator evita depender del render real de maroto en los tests HTTP.
type fakePDFGenerator struct{}

func (g *fakePDFGenerator) GenerateLowStockReport(_ context.Context, _ *entity.Company, _ []dto.LowStockAlertDTO, _ time.Time) ([]byte, error) {
	return []byte("%PDF-1.7 contenido de prueba"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: empresa 1 con la bodega 3, el producto 100 (GR-ARR-500) y su posición
// 50 con 10 unidades. Las alertas por empresa se siembran por test.
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app        *fiber.App
	companies  *memCompanyRepo
	warehouses *memWarehouseRepo
	products   *memProductRepo
	positions  *memInventoryRepo
	changes    *memChangeRepo
}

func newTestEnv() *testEnv {
	supplierID := int64(7)
	typeID := int64(2)

	companies := &memCompanyRepo{companies: map[int64]*entity.Company{
		1: {ID: 1, Name: "Distribuciones El Tesoro"},
	}}
	warehouses := &memWarehouseRepo{warehouses: map[int64]*entity.Warehouse{
		3: {ID: 3, CompanyID: 1, Name: "Bodega Norte"},
	}}
	suppliers := &memSupplierRepo{suppliers: map[int64]*entity.Supplier{
		7: {ID: 7, Name: "Alimentos del Valle S.A.S", ContactEmail: "ventas@alimentosdelvalle.co"},
	}}
	types := &memTypeRepo{types: map[int64]*entity.ProductType{
		2: {ID: 2, Name: "Granos", LowStockThreshold: 20},
	}}
	products := &memProductRepo{nextID: 100, products: []*entity.Product{{
		ID:         100,
		Name:       "Arroz blanco 500 g",
		SKU:        "GR-ARR-500",
		Price:      decimal.RequireFromString("2350.5"),
		SupplierID: &supplierID,
		TypeID:     &typeID,
	}}}
	positions := &memInventoryRepo{
		nextID: 50,
		positions: []*entity.Inventory{
			{ID: 50, ProductID: 100, WarehouseID: 3, Quantity: 10},
		},
		lowStock: map[int64][]repository.LowStockRow{},
		stock:    map[int64][]repository.WarehouseStockRow{},
	}
	changes := &memChangeRepo{}

	productUC := usecase.NewProductUseCase(products)
	createUC := catalog.NewCreateProductUseCase(&memCatalogTx{products: products, positions: positions}, products)
	adjustUC := inventory.NewRegisterAdjustmentUseCase(&memInventoryTx{positions: positions, changes: changes}, warehouses, nil)
	queryUC := inventory.NewQueryUseCase(positions, changes, warehouses)
	lowStockUC := alerts.NewLowStockUseCase(companies, positions, changes, nil, alerts.Config{})
	reportUC := alerts.NewReportUseCase(lowStockUC, companies, &fakePDFGenerator{}, export.NewXMLExporter())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CompanyUC:     usecase.NewCompanyUseCase(companies),
		WarehouseUC:   usecase.NewWarehouseUseCase(warehouses, companies),
		SupplierUC:    usecase.NewSupplierUseCase(suppliers),
		ProductTypeUC: usecase.NewProductTypeUseCase(types),
		ProductUC:     productUC,
		CreateProduct: createUC,
		Adjustment:    adjustUC,
		InvQuery:      queryUC,
		LowStock:      lowStockUC,
		Report:        reportUC,
	})

	return &testEnv{
		app:        app,
		companies:  companies,
		warehouses: warehouses,
		products:   products,
		positions:  positions,
		changes:    changes,
	}
}

// doJSON lanza una petición con cuerpo JSON y devuelve la respuesta.
func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func doGet(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	return doJSON(t, app, http.MethodGet, path, "")
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// readBody agota y devuelve el cuerpo como string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func decreaseStats(count int64, avg string) repository.DecreaseStats {
	return repository.DecreaseStats{Count: count, AvgDepletion: decimal.RequireFromString(avg)}
}
